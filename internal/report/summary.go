package report

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
)

// minSeconds stands in for a zero or negative elapsed time so throughput
// stays finite.
const minSeconds = 1e-9

type Summary struct {
	Found     bool
	Plaintext string
	Attempts  int64
	Elapsed   time.Duration
}

func (s Summary) Seconds() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return minSeconds
	}
	return secs
}

func (s Summary) Throughput() float64 {
	return float64(s.Attempts) / s.Seconds()
}

// Line renders the single outcome line printed by the engine.
func (s Summary) Line() string {
	if s.Found {
		return fmt.Sprintf("FOUND: %s  attempts~%d elapsed=%.3fs H/s~%.1f",
			s.Plaintext, s.Attempts, s.Seconds(), s.Throughput())
	}
	return fmt.Sprintf("NOT FOUND in tested keyspace. attempts~%d elapsed=%.3fs H/s~%.1f",
		s.Attempts, s.Seconds(), s.Throughput())
}

func (s Summary) Write(w io.Writer) error {
	if _, err := fmt.Fprintln(w, s.Line()); err != nil {
		return errors.Wrap(err, "write summary")
	}
	return nil
}
