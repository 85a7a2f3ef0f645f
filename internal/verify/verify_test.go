package verify

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func argon2Hash(t *testing.T, variant, password string) string {
	t.Helper()
	salt := []byte("saltsalt")
	var key []byte
	switch variant {
	case argon2iVariant:
		key = argon2.Key([]byte(password), salt, 1, 64, 1, 16)
	default:
		key = argon2.IDKey([]byte(password), salt, 1, 64, 1, 16)
	}
	return fmt.Sprintf("$%s$v=%d$m=64,t=1,p=1$%s$%s", variant, argon2.Version,
		base64.RawStdEncoding.EncodeToString(salt), base64.RawStdEncoding.EncodeToString(key))
}

func mustVerifier(t *testing.T, alg Algorithm) Verifier {
	t.Helper()
	v, err := NewRegistry(AllBackends()).Verifier(alg)
	require.NoError(t, err)
	require.Equal(t, alg, v.Algorithm())
	return v
}

func TestParseAlgorithm(t *testing.T) {
	for _, name := range Names() {
		alg, err := ParseAlgorithm(name)
		require.NoError(t, err)
		assert.Equal(t, name, alg.String())
	}

	alg, err := ParseAlgorithm(" SHA1 ")
	require.NoError(t, err)
	assert.Equal(t, SHA1, alg)

	_, err = ParseAlgorithm("ntlm")
	assert.True(t, errors.Is(err, ErrUnsupportedAlgorithm))
}

func TestDigestVerifier(t *testing.T) {
	tests := []struct {
		name   string
		alg    Algorithm
		target string
		cand   string
		want   Outcome
	}{
		{name: "md5 match", alg: MD5, target: md5Hex("123456"), cand: "123456", want: Match},
		{name: "md5 mismatch", alg: MD5, target: md5Hex("123456"), cand: "123457", want: NoMatch},
		{name: "md5 upper case target with spaces", alg: MD5, target: "  " + strings.ToUpper(md5Hex("abc")) + "\n", cand: "abc", want: Match},
		{name: "sha1 match", alg: SHA1, target: "7c4a8d09ca3762af61e59520943dc26494f8941b", cand: "123456", want: Match},
		{name: "sha1 mismatch", alg: SHA1, target: sha1Hex("10"), cand: "01", want: NoMatch},
		{name: "wrong length target is a mismatch", alg: SHA1, target: md5Hex("10"), cand: "10", want: NoMatch},
		{name: "garbage target is a mismatch", alg: MD5, target: "not-a-digest", cand: "x", want: NoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustVerifier(t, tt.alg)
			assert.Equal(t, tt.want, v.Check(tt.cand, tt.target))
		})
	}
}

func TestDigestVerifier_ValidateTarget(t *testing.T) {
	v := mustVerifier(t, MD5)
	assert.NoError(t, v.ValidateTarget(md5Hex("x")))
	assert.True(t, errors.Is(v.ValidateTarget("abc"), ErrMalformedDigest))
	assert.True(t, errors.Is(v.ValidateTarget(strings.Repeat("z", 32)), ErrMalformedDigest))
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("b1"), bcrypt.MinCost)
	require.NoError(t, err)
	v := mustVerifier(t, Bcrypt)

	assert.Equal(t, Match, v.Check("b1", string(hash)))
	assert.Equal(t, NoMatch, v.Check("b2", string(hash)))
	assert.Equal(t, Match, v.Check("b1", " "+string(hash)+"\n"))
	assert.NoError(t, v.ValidateTarget(string(hash)))
}

func TestBcryptVerifier_MalformedTarget(t *testing.T) {
	v := mustVerifier(t, Bcrypt)
	for _, target := range []string{
		"",
		"not-a-bcrypt-hash",
		"$2a$10$short",
		"$9z$10$z4u9ZkvopUiiytaNX7wfGedy9Lu2ywUxwYpbsAR5YBrAuUs3YGXdi",
		"$2a$99$z4u9ZkvopUiiytaNX7wfGedy9Lu2ywUxwYpbsAR5YBrAuUs3YGXdi",
	} {
		assert.Equal(t, MalformedTarget, v.Check("a", target), "target %q", target)
		assert.Error(t, v.ValidateTarget(target), "target %q", target)
	}
}

func TestClassifyBcryptError(t *testing.T) {
	assert.Equal(t, Match, classifyBcryptError(nil))
	assert.Equal(t, NoMatch, classifyBcryptError(bcrypt.ErrMismatchedHashAndPassword))
	assert.Equal(t, MalformedTarget, classifyBcryptError(bcrypt.ErrHashTooShort))
	assert.Equal(t, BackendFailure, classifyBcryptError(errors.New("boom")))
}

func TestArgon2Verifier(t *testing.T) {
	v := mustVerifier(t, Argon2)
	for _, variant := range []string{argon2idVariant, argon2iVariant} {
		t.Run(variant, func(t *testing.T) {
			target := argon2Hash(t, variant, "ab")
			assert.Equal(t, Match, v.Check("ab", target))
			assert.Equal(t, NoMatch, v.Check("ba", target))
			assert.NoError(t, v.ValidateTarget(target))
		})
	}
}

func TestArgon2Verifier_PaddedBase64(t *testing.T) {
	v := mustVerifier(t, Argon2)
	target := argon2Hash(t, argon2idVariant, "pw")
	parts := strings.Split(target, "$")
	salt, _ := base64.RawStdEncoding.DecodeString(parts[4])
	parts[4] = base64.StdEncoding.EncodeToString(salt)
	assert.Equal(t, Match, v.Check("pw", strings.Join(parts, "$")))
}

func TestArgon2Verifier_MalformedTarget(t *testing.T) {
	v := mustVerifier(t, Argon2)
	valid := argon2Hash(t, argon2idVariant, "ab")
	tests := []struct {
		name   string
		target string
	}{
		{name: "empty", target: ""},
		{name: "too few fields", target: "$argon2id$v=19$m=64,t=1,p=1$c2FsdA"},
		{name: "argon2d is not supported", target: strings.Replace(valid, argon2idVariant, "argon2d", 1)},
		{name: "old version", target: strings.Replace(valid, "v=19", "v=16", 1)},
		{name: "bad parameters", target: strings.Replace(valid, "m=64,t=1,p=1", "m=x,t=1,p=1", 1)},
		{name: "zero parallelism", target: strings.Replace(valid, "p=1", "p=0", 1)},
		{name: "parallelism overflow", target: strings.Replace(valid, "p=1", "p=300", 1)},
		{name: "huge memory", target: strings.Replace(valid, "m=64", "m=4294967295", 1)},
		{name: "bad salt encoding", target: "$argon2id$v=19$m=64,t=1,p=1$!!!$c2FsdA"},
		{name: "empty hash", target: "$argon2id$v=19$m=64,t=1,p=1$c2FsdHNhbHQ$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, MalformedTarget, v.Check("ab", tt.target))
			assert.True(t, errors.Is(v.ValidateTarget(tt.target), ErrMalformedArgon2))
		})
	}
}

func TestRegistry_BackendUnavailable(t *testing.T) {
	r := NewRegistry(Backends{Digest: true})

	_, err := r.Verifier(MD5)
	assert.NoError(t, err)

	_, err = r.Verifier(Bcrypt)
	assert.True(t, errors.Is(err, ErrBackendUnavailable))
	_, err = r.Verifier(Argon2)
	assert.True(t, errors.Is(err, ErrBackendUnavailable))

	_, err = r.Verifier(UnknownAlgorithm)
	assert.True(t, errors.Is(err, ErrUnsupportedAlgorithm))

	assert.Equal(t, []Algorithm{MD5, SHA1}, r.Available())
}

func TestOutcome(t *testing.T) {
	assert.True(t, Match.Matched())
	for _, o := range []Outcome{NoMatch, MalformedTarget, BackendFailure} {
		assert.False(t, o.Matched(), o.String())
	}
}
