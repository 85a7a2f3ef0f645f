package pool

import (
	"sync/atomic"
	"time"

	"github.com/ykhdr/crack-hash/internal/keyspace"
	"github.com/ykhdr/crack-hash/internal/verify"
)

// Result is the verification outcome of one chunk.
type Result struct {
	Length    int
	Seq       int
	Size      int
	Found     string
	Matched   bool
	Checked   int
	Malformed int
	Failures  int
	Duration  time.Duration
}

// Future yields exactly one Result and is then closed.
type Future <-chan Result

// Pool runs a verifier over submitted chunks. Submit may block until a worker
// is free; results are delivered through the returned Future.
type Pool interface {
	Submit(chunk keyspace.Chunk) Future
	Workers() int
	Stats() Stats
	Close() error
}

type Stats struct {
	Submitted int64
	Completed int64
	Busy      int64
}

type counters struct {
	submitted atomic.Int64
	completed atomic.Int64
	busy      atomic.Int64
}

func (c *counters) stats() Stats {
	return Stats{
		Submitted: c.submitted.Load(),
		Completed: c.completed.Load(),
		Busy:      c.busy.Load(),
	}
}

// checkChunk verifies candidates in order and stops at the first match.
func checkChunk(v verify.Verifier, target string, chunk keyspace.Chunk) Result {
	start := time.Now()
	res := Result{
		Length: chunk.Length,
		Seq:    chunk.Seq,
		Size:   chunk.Size(),
	}
	for _, candidate := range chunk.Candidates {
		res.Checked++
		switch v.Check(candidate, target) {
		case verify.Match:
			res.Found = candidate
			res.Matched = true
			res.Duration = time.Since(start)
			return res
		case verify.MalformedTarget:
			res.Malformed++
		case verify.BackendFailure:
			res.Failures++
		}
	}
	res.Duration = time.Since(start)
	return res
}

func (c *counters) run(v verify.Verifier, target string, chunk keyspace.Chunk, out chan<- Result) {
	c.busy.Add(1)
	res := checkChunk(v, target, chunk)
	c.busy.Add(-1)
	c.completed.Add(1)
	out <- res
	close(out)
}
