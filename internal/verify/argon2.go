package verify

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
)

const (
	argon2idVariant = "argon2id"
	argon2iVariant  = "argon2i"

	// maxArgon2MemoryKiB caps the memory a single target may request (4 GiB).
	maxArgon2MemoryKiB = 4 << 20
)

var ErrMalformedArgon2 = errors.New("malformed argon2 hash")

type argon2Params struct {
	variant string
	version int
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

type argon2Verifier struct{}

func newArgon2Verifier() *argon2Verifier {
	return &argon2Verifier{}
}

func (v *argon2Verifier) Algorithm() Algorithm {
	return Argon2
}

func (v *argon2Verifier) Check(candidate, target string) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = BackendFailure
		}
	}()
	p, err := parseArgon2(target)
	if err != nil {
		return MalformedTarget
	}
	if subtle.ConstantTimeCompare(p.derive(candidate), p.key) == 1 {
		return Match
	}
	return NoMatch
}

func (v *argon2Verifier) ValidateTarget(target string) error {
	_, err := parseArgon2(target)
	return err
}

func (p *argon2Params) derive(candidate string) []byte {
	keyLen := uint32(len(p.key))
	if p.variant == argon2iVariant {
		return argon2.Key([]byte(candidate), p.salt, p.time, p.memory, p.threads, keyLen)
	}
	return argon2.IDKey([]byte(candidate), p.salt, p.time, p.memory, p.threads, keyLen)
}

// parseArgon2 decodes a PHC string:
// $argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
func parseArgon2(target string) (*argon2Params, error) {
	parts := strings.Split(strings.TrimSpace(target), "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, errors.Wrapf(ErrMalformedArgon2, "expected 6 '$'-separated fields, got %d", len(parts))
	}
	p := &argon2Params{variant: parts[1]}
	if p.variant != argon2idVariant && p.variant != argon2iVariant {
		return nil, errors.Wrapf(ErrMalformedArgon2, "unsupported variant %q", p.variant)
	}
	if _, err := fmt.Sscanf(parts[2], "v=%d", &p.version); err != nil {
		return nil, errors.Wrapf(ErrMalformedArgon2, "version field %q", parts[2])
	}
	if p.version != argon2.Version {
		return nil, errors.Wrapf(ErrMalformedArgon2, "unsupported version %d", p.version)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return nil, errors.Wrapf(ErrMalformedArgon2, "parameters field %q", parts[3])
	}
	if p.memory == 0 || p.memory > maxArgon2MemoryKiB || p.time == 0 || p.threads == 0 {
		return nil, errors.Wrapf(ErrMalformedArgon2, "parameters out of range m=%d t=%d p=%d", p.memory, p.time, p.threads)
	}
	var err error
	if p.salt, err = decodeArgon2Field(parts[4]); err != nil {
		return nil, errors.Wrapf(ErrMalformedArgon2, "salt: %v", err)
	}
	if p.key, err = decodeArgon2Field(parts[5]); err != nil {
		return nil, errors.Wrapf(ErrMalformedArgon2, "hash: %v", err)
	}
	if len(p.key) == 0 {
		return nil, errors.Wrap(ErrMalformedArgon2, "empty hash")
	}
	return p, nil
}

func decodeArgon2Field(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}
