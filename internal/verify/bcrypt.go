package verify

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type bcryptVerifier struct{}

func newBcryptVerifier() *bcryptVerifier {
	return &bcryptVerifier{}
}

func (v *bcryptVerifier) Algorithm() Algorithm {
	return Bcrypt
}

// Check recomputes the hash with the cost and salt embedded in target.
func (v *bcryptVerifier) Check(candidate, target string) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = BackendFailure
		}
	}()
	err := bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(target)), []byte(candidate))
	return classifyBcryptError(err)
}

func (v *bcryptVerifier) ValidateTarget(target string) error {
	_, err := bcrypt.Cost([]byte(strings.TrimSpace(target)))
	if err != nil {
		return errors.Wrap(err, "malformed bcrypt hash")
	}
	return nil
}

func classifyBcryptError(err error) Outcome {
	if err == nil {
		return Match
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return NoMatch
	}
	if errors.Is(err, bcrypt.ErrHashTooShort) {
		return MalformedTarget
	}
	switch err.(type) {
	case bcrypt.InvalidHashPrefixError, bcrypt.InvalidCostError, bcrypt.HashVersionTooNewError, base64.CorruptInputError:
		return MalformedTarget
	}
	return BackendFailure
}
