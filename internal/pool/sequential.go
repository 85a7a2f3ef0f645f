package pool

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/crack-hash/internal/keyspace"
	"github.com/ykhdr/crack-hash/internal/verify"
)

// sequentialPool verifies each chunk inside Submit, so only one chunk is
// ever in flight regardless of the configured size.
type sequentialPool struct {
	l        zerolog.Logger
	verifier verify.Verifier
	target   string
	workers  int
	counters
}

func NewSequential(v verify.Verifier, target string, workers int) Pool {
	return &sequentialPool{
		verifier: v,
		target:   target,
		workers:  max(workers, 1),
		l: log.With().
			Str("domain", "pool").
			Str("dispatch", SequentialMode.String()).
			Logger(),
	}
}

func (p *sequentialPool) Submit(chunk keyspace.Chunk) Future {
	p.submitted.Add(1)
	out := make(chan Result, 1)
	p.run(p.verifier, p.target, chunk, out)
	return out
}

func (p *sequentialPool) Workers() int {
	return p.workers
}

func (p *sequentialPool) Stats() Stats {
	return p.stats()
}

func (p *sequentialPool) Close() error {
	p.l.Debug().Int64("chunks", p.completed.Load()).Msg("pool closed")
	return nil
}
