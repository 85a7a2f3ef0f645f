package mongo

type ClientConfig struct {
	URI      string `kdl:"uri"`
	Username string `kdl:"username"`
	Password string `kdl:"password"`
}

type Config struct {
	ClientConfig
	Database   string `kdl:"database"`
	Collection string `kdl:"collection"`
}

func DefaultConfig() *Config {
	return &Config{
		Database:   "bruteforce",
		Collection: "bench_results",
	}
}

func (c *Config) Enabled() bool {
	return c != nil && c.URI != ""
}
