package verify

import (
	"strings"

	"github.com/pkg/errors"
)

type Algorithm int

const (
	UnknownAlgorithm Algorithm = iota
	MD5
	SHA1
	Bcrypt
	Argon2
)

const (
	md5Name    = "md5"
	sha1Name   = "sha1"
	bcryptName = "bcrypt"
	argon2Name = "argon2"
)

var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case md5Name:
		return MD5, nil
	case sha1Name:
		return SHA1, nil
	case bcryptName:
		return Bcrypt, nil
	case argon2Name:
		return Argon2, nil
	default:
		return UnknownAlgorithm, errors.Wrapf(ErrUnsupportedAlgorithm, "algorithm %q", name)
	}
}

func (a Algorithm) String() string {
	switch a {
	case MD5:
		return md5Name
	case SHA1:
		return sha1Name
	case Bcrypt:
		return bcryptName
	case Argon2:
		return argon2Name
	default:
		return "unknown"
	}
}

// Names lists the accepted algorithm names in their canonical order.
func Names() []string {
	return []string{md5Name, sha1Name, bcryptName, argon2Name}
}
