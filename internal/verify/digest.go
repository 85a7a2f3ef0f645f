package verify

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

var ErrMalformedDigest = errors.New("malformed hex digest")

type digestVerifier struct {
	alg  Algorithm
	size int
	sum  func([]byte) []byte
}

func newMD5Verifier() *digestVerifier {
	return &digestVerifier{
		alg:  MD5,
		size: md5.Size,
		sum: func(b []byte) []byte {
			s := md5.Sum(b)
			return s[:]
		},
	}
}

func newSHA1Verifier() *digestVerifier {
	return &digestVerifier{
		alg:  SHA1,
		size: sha1.Size,
		sum: func(b []byte) []byte {
			s := sha1.Sum(b)
			return s[:]
		},
	}
}

func (v *digestVerifier) Algorithm() Algorithm {
	return v.alg
}

func (v *digestVerifier) Check(candidate, target string) Outcome {
	target = normalizeDigest(target)
	if len(target) != 2*v.size {
		return NoMatch
	}
	var buf [2 * sha1.Size]byte
	hex.Encode(buf[:], v.sum([]byte(candidate)))
	if string(buf[:2*v.size]) == target {
		return Match
	}
	return NoMatch
}

func (v *digestVerifier) ValidateTarget(target string) error {
	target = normalizeDigest(target)
	if len(target) != 2*v.size {
		return errors.Wrapf(ErrMalformedDigest, "%s digest must be %d hex characters, got %d", v.alg, 2*v.size, len(target))
	}
	if _, err := hex.DecodeString(target); err != nil {
		return errors.Wrap(ErrMalformedDigest, err.Error())
	}
	return nil
}

func normalizeDigest(target string) string {
	return strings.ToLower(strings.TrimSpace(target))
}
