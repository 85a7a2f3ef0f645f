package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/crack-hash/internal/keyspace"
	"github.com/ykhdr/crack-hash/internal/pool"
	"github.com/ykhdr/crack-hash/internal/verify"
)

type VerifierSource interface {
	Verifier(alg verify.Algorithm) (verify.Verifier, error)
}

// Coordinator walks the keyspace length by length, dispatching chunks to a
// worker pool and consuming their results in generation order.
type Coordinator struct {
	l        zerolog.Logger
	req      Request
	verifier verify.Verifier
	keyspace uint64

	state    atomic.Int32
	attempts atomic.Int64
	length   atomic.Int64
	started  atomic.Int64
	finished atomic.Int64

	m    sync.RWMutex
	pool pool.Pool
}

// NewCoordinator validates req and resolves its verifier. Configuration
// errors are returned here, before anything is dispatched.
func NewCoordinator(req Request, verifiers VerifierSource) (*Coordinator, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	v, err := verifiers.Verifier(req.Algorithm)
	if err != nil {
		return nil, errors.Wrap(err, "resolve verifier")
	}
	c := &Coordinator{
		req:      req,
		verifier: v,
		l: log.With().
			Str("domain", "search").
			Stringer("algorithm", req.Algorithm).
			Logger(),
	}
	c.keyspace, _ = keyspace.Total(len(req.Alphabet), req.MinLength, req.MaxLength)
	if err := v.ValidateTarget(req.Target); err != nil {
		c.l.Warn().Err(err).Msg("target digest does not parse, candidates will not match")
	}
	return c, nil
}

// Run performs the search and returns its outcome. Cancelling ctx stops
// dispatch at the next chunk boundary.
func (c *Coordinator) Run(ctx context.Context) Outcome {
	start := time.Now()
	c.started.Store(start.UnixNano())
	c.state.Store(int32(Running))

	p := pool.New(c.req.Mode, c.verifier, c.req.Target, c.req.Workers)
	c.setPool(p)
	depth := 1
	if c.req.Mode == pool.PipelinedMode {
		depth = p.Workers()
	}
	c.l.Info().
		Str("request", c.req.String()).
		Uint64("keyspace", c.keyspace).
		Msg("search started")

	out := Outcome{State: Exhausted}
	var inflight []pool.Future

lengths:
	for length := c.req.MinLength; length <= c.req.MaxLength; length++ {
		c.length.Store(int64(length))
		chunker := keyspace.NewChunker(keyspace.NewGenerator(c.req.Alphabet, length), c.req.ChunkSize)
		for {
			if ctx.Err() != nil {
				out.State = Cancelled
				break lengths
			}
			if c.req.TimeLimit > 0 && time.Since(start) > c.req.TimeLimit {
				out.State = TimedOut
				break lengths
			}
			chunk, ok := chunker.Next()
			if !ok {
				break
			}
			inflight = append(inflight, p.Submit(chunk))
			if len(inflight) < depth {
				continue
			}
			if c.collect(&inflight, &out) {
				break lengths
			}
		}
		c.l.Debug().Int("length", length).Int64("attempts", c.attempts.Load()).Msg("length finished")
	}
	for out.State != Found && len(inflight) > 0 {
		c.collect(&inflight, &out)
	}
	if len(inflight) > 0 {
		c.l.Debug().Int("chunks", len(inflight)).Msg("discarding chunks after match")
	}

	out.Attempts = c.attempts.Load()
	out.Elapsed = time.Since(start)
	c.finished.Store(time.Now().UnixNano())
	c.state.Store(int32(out.State))
	if err := p.Close(); err != nil {
		c.l.Warn().Err(err).Msg("pool close failed")
	}

	c.l.Info().
		Stringer("state", out.State).
		Int64("attempts", out.Attempts).
		Dur("elapsed", out.Elapsed).
		Int64("malformed", out.Malformed).
		Int64("failures", out.Failures).
		Msg("search finished")
	return out
}

// collect waits for the oldest in-flight chunk and applies its result.
// It reports whether the chunk produced a match.
func (c *Coordinator) collect(inflight *[]pool.Future, out *Outcome) bool {
	res := <-(*inflight)[0]
	*inflight = (*inflight)[1:]

	c.attempts.Add(int64(res.Size))
	if res.Malformed > 0 && out.Malformed == 0 {
		c.l.Warn().Int("length", res.Length).Int("chunk", res.Seq).Msg("target digest is malformed, counting candidates as no match")
	}
	if res.Failures > 0 && out.Failures == 0 {
		c.l.Warn().Int("length", res.Length).Int("chunk", res.Seq).Msg("verification backend failed, counting candidates as no match")
	}
	out.Malformed += int64(res.Malformed)
	out.Failures += int64(res.Failures)

	c.l.Trace().
		Int("length", res.Length).
		Int("chunk", res.Seq).
		Int("size", res.Size).
		Dur("duration", res.Duration).
		Msg("chunk verified")
	if !res.Matched {
		return false
	}
	out.State = Found
	out.Plaintext = res.Found
	c.l.Debug().Int("length", res.Length).Int("chunk", res.Seq).Msg("match found")
	return true
}

func (c *Coordinator) setPool(p pool.Pool) {
	c.m.Lock()
	defer c.m.Unlock()
	c.pool = p
}

// Progress is safe to call from other goroutines while Run is executing.
func (c *Coordinator) Progress() Progress {
	pr := Progress{
		State:    State(c.state.Load()),
		Length:   int(c.length.Load()),
		Attempts: c.attempts.Load(),
		Keyspace: c.keyspace,
	}
	if started := c.started.Load(); started != 0 {
		end := time.Now()
		if finished := c.finished.Load(); finished != 0 {
			end = time.Unix(0, finished)
		}
		pr.Elapsed = end.Sub(time.Unix(0, started))
	}
	c.m.RLock()
	if c.pool != nil {
		pr.BusyWorkers = c.pool.Stats().Busy
	}
	c.m.RUnlock()
	return pr
}
