package report

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrNoSummary = errors.New("no summary line in output")

var (
	foundRe    = regexp.MustCompile(`FOUND:\s*(\S+)\s+attempts~(\d+)\s+elapsed=([0-9.]+)s\s+H/s~([0-9.]+)`)
	notFoundRe = regexp.MustCompile(`NOT FOUND.*attempts~(\d+).*elapsed=([0-9.]+)s\s+H/s~([0-9.]+)`)
	partialRe  = regexp.MustCompile(`attempts~(\d+).*elapsed=([0-9.]+)s`)
)

// Parsed is what could be recovered from an engine's output.
type Parsed struct {
	Found      bool
	Plaintext  string
	Attempts   int64
	Elapsed    float64
	Throughput float64
}

// Parse extracts the outcome from engine output. Output without a full
// summary line falls back to any attempts/elapsed pair it contains; when
// nothing matches the zero Parsed is returned with ErrNoSummary.
func Parse(output string) (Parsed, error) {
	s := strings.ReplaceAll(output, "\r", "\n")

	if m := foundRe.FindStringSubmatch(s); m != nil {
		return Parsed{
			Found:      true,
			Plaintext:  m[1],
			Attempts:   parseInt(m[2]),
			Elapsed:    parseFloat(m[3]),
			Throughput: parseFloat(m[4]),
		}, nil
	}
	if m := notFoundRe.FindStringSubmatch(s); m != nil {
		return Parsed{
			Attempts:   parseInt(m[1]),
			Elapsed:    parseFloat(m[2]),
			Throughput: parseFloat(m[3]),
		}, nil
	}
	if m := partialRe.FindStringSubmatch(s); m != nil {
		p := Parsed{
			Attempts: parseInt(m[1]),
			Elapsed:  parseFloat(m[2]),
		}
		if p.Elapsed > 0 {
			p.Throughput = float64(p.Attempts) / p.Elapsed
		}
		return p, nil
	}
	return Parsed{}, ErrNoSummary
}

func parseInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

// parseFloat returns 0 for values like "1.2.3" that the pattern admits.
func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
