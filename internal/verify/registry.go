package verify

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrBackendUnavailable = errors.New("verification backend unavailable")

// Backends lists which hashing backends are usable in this process.
// It is resolved once at startup and handed to NewRegistry.
type Backends struct {
	Digest bool `kdl:"digest"`
	Bcrypt bool `kdl:"bcrypt"`
	Argon2 bool `kdl:"argon2"`
}

func AllBackends() Backends {
	return Backends{
		Digest: true,
		Bcrypt: true,
		Argon2: true,
	}
}

type backend struct {
	available bool
	build     func() Verifier
}

// Registry maps algorithms to verifier constructors and knows which of them
// may be used.
type Registry struct {
	l        zerolog.Logger
	backends map[Algorithm]backend
}

func NewRegistry(b Backends) *Registry {
	return &Registry{
		l: log.With().
			Str("domain", "verify").
			Str("type", "registry").
			Logger(),
		backends: map[Algorithm]backend{
			MD5:    {available: b.Digest, build: func() Verifier { return newMD5Verifier() }},
			SHA1:   {available: b.Digest, build: func() Verifier { return newSHA1Verifier() }},
			Bcrypt: {available: b.Bcrypt, build: func() Verifier { return newBcryptVerifier() }},
			Argon2: {available: b.Argon2, build: func() Verifier { return newArgon2Verifier() }},
		},
	}
}

// Verifier returns the verifier for alg, or ErrBackendUnavailable when the
// backend was disabled at startup.
func (r *Registry) Verifier(alg Algorithm) (Verifier, error) {
	b, ok := r.backends[alg]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "algorithm %s", alg)
	}
	if !b.available {
		r.l.Warn().Stringer("algorithm", alg).Msg("backend is not available")
		return nil, errors.Wrapf(ErrBackendUnavailable, "algorithm %s", alg)
	}
	r.l.Debug().Stringer("algorithm", alg).Msg("verifier created")
	return b.build(), nil
}

func (r *Registry) Available() []Algorithm {
	var out []Algorithm
	for _, alg := range []Algorithm{MD5, SHA1, Bcrypt, Argon2} {
		if r.backends[alg].available {
			out = append(out, alg)
		}
	}
	return out
}
