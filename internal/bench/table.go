package bench

import (
	"github.com/ykhdr/crack-hash/internal/keyspace"
	"github.com/ykhdr/crack-hash/internal/verify"
)

type Level string

const (
	Easy     Level = "easy"
	Medium   Level = "medium"
	Hard     Level = "hard"
	VeryHard Level = "very-hard"
)

type Preset struct {
	Charset string
	Min     int
	Max     int
}

var presets = map[Level]Preset{
	Easy:     {Charset: "0123456789", Min: 1, Max: 6},
	Medium:   {Charset: keyspace.DefaultCharset, Min: 1, Max: 6},
	Hard:     {Charset: keyspace.DefaultCharset, Min: 1, Max: 7},
	VeryHard: {Charset: keyspace.DefaultCharset, Min: 1, Max: 8},
}

func (l Level) Preset() Preset {
	return presets[l]
}

// Case is one entry of the benchmark table.
type Case struct {
	Algorithm verify.Algorithm
	Level     Level
	Target    string
}

func (c Case) Preset() Preset {
	return c.Level.Preset()
}

// Table returns the benchmark cases in execution order.
func Table() []Case {
	return []Case{
		{verify.SHA1, Easy, "7c4a8d09ca3762af61e59520943dc26494f8941b"},
		{verify.SHA1, Medium, "d0be2dc421be4fcd0172e5afceea3970e2f3d940"},
		{verify.SHA1, Hard, "666846867fc5e0a46a7afc53eb8060967862f333"},
		{verify.SHA1, VeryHard, "6e157c5da4410b7e9de85f5c93026b9176e69064"},

		{verify.MD5, Easy, "e10adc3949ba59abbe56e057f20f883e"},
		{verify.MD5, Medium, "1f3870be274f6c49b3e31a0c6728957f"},
		{verify.MD5, Hard, "77892341aa9dc66e97f5c248782b5d92"},
		{verify.MD5, VeryHard, "686e697538050e4664636337cc3b834f"},

		{verify.Bcrypt, Easy, "$2a$10$z4u9ZkvopUiiytaNX7wfGedy9Lu2ywUxwYpbsAR5YBrAuUs3YGXdi"},
		{verify.Bcrypt, Medium, "$2a$10$26GB/T2/6aTsMkTjCgqm/.JP8SUjr32Bhfn9m9smtDiIwM4QIt2ze"},
		{verify.Bcrypt, Hard, "$2a$10$Q9M0vLLrE4/nu/9JEMXFTewB3Yr9uMdIEZ1Sgdk1NQTjHwLN0asfi"},
		{verify.Bcrypt, VeryHard, "$2a$10$yZBadi8Szw0nItV2g96P6eqctI2kbG/.mb0uD/ID9tlof0zpJLLL2"},

		{verify.Argon2, Easy, "$argon2id$v=19$m=65536,t=3,p=2$c2FsdHNhbHQ$PUF5UxxoUY++mMekkQwFurL0ZsTtB7lelO23zcyZQ0c"},
		{verify.Argon2, Medium, "$argon2id$v=19$m=65536,t=3,p=2$c2FsdHNhbHQ$HYQwRUw9VcfkvqkUQ5ppyYPom6f/ro3ZCXYznhrYZw4"},
		{verify.Argon2, Hard, "$argon2id$v=19$m=65536,t=3,p=2$c2FsdHNhbHQ$9asGA7Xv3vQBz7Yyh4/Ntw0GQgOg8R6OWolOfRETrEg"},
		{verify.Argon2, VeryHard, "$argon2id$v=19$m=65536,t=3,p=2$c2FsdHNhbHQ$+smq45/czydGj0lYNdZVXF++FOXJwrkXt6VUIcEauvo"},
	}
}
