package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/ykhdr/crack-hash/internal/pool"
	"github.com/ykhdr/crack-hash/internal/verify"
)

var ErrInvalidRequest = errors.New("invalid search request")

// Request describes one search run. It is not modified after construction.
type Request struct {
	Target    string
	Algorithm verify.Algorithm
	Alphabet  []rune
	MinLength int
	MaxLength int
	Workers   int
	ChunkSize int
	// TimeLimit of zero means unbounded.
	TimeLimit time.Duration
	Mode      pool.Mode
}

func (r *Request) Validate() error {
	switch {
	case strings.TrimSpace(r.Target) == "":
		return errors.Wrap(ErrInvalidRequest, "target digest is empty")
	case len(r.Alphabet) == 0:
		return errors.Wrap(ErrInvalidRequest, "alphabet is empty")
	case r.MinLength < 1:
		return errors.Wrapf(ErrInvalidRequest, "min length must be positive, got %d", r.MinLength)
	case r.MaxLength < r.MinLength:
		return errors.Wrapf(ErrInvalidRequest, "max length %d is less than min length %d", r.MaxLength, r.MinLength)
	case r.Workers < 1:
		return errors.Wrapf(ErrInvalidRequest, "workers must be positive, got %d", r.Workers)
	case r.ChunkSize < 1:
		return errors.Wrapf(ErrInvalidRequest, "chunk size must be positive, got %d", r.ChunkSize)
	case r.TimeLimit < 0:
		return errors.Wrapf(ErrInvalidRequest, "time limit must not be negative, got %s", r.TimeLimit)
	}
	return nil
}

func (r *Request) String() string {
	return fmt.Sprintf("Request<Alg: %s, Charset: %d, Min: %d, Max: %d, Workers: %d, Chunk: %d, TimeLimit: %s, Mode: %s>",
		r.Algorithm, len(r.Alphabet), r.MinLength, r.MaxLength, r.Workers, r.ChunkSize, r.TimeLimit, r.Mode)
}
