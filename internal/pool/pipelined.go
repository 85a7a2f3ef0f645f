package pool

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/crack-hash/internal/keyspace"
	"github.com/ykhdr/crack-hash/internal/verify"
	"golang.org/x/sync/errgroup"
)

// pipelinedPool verifies up to workers chunks concurrently. Submit blocks
// while all workers are busy.
type pipelinedPool struct {
	l        zerolog.Logger
	verifier verify.Verifier
	target   string
	workers  int
	group    errgroup.Group
	counters
}

func NewPipelined(v verify.Verifier, target string, workers int) Pool {
	p := &pipelinedPool{
		verifier: v,
		target:   target,
		workers:  max(workers, 1),
		l: log.With().
			Str("domain", "pool").
			Str("dispatch", PipelinedMode.String()).
			Logger(),
	}
	p.group.SetLimit(p.workers)
	return p
}

func (p *pipelinedPool) Submit(chunk keyspace.Chunk) Future {
	p.submitted.Add(1)
	out := make(chan Result, 1)
	p.group.Go(func() error {
		p.run(p.verifier, p.target, chunk, out)
		return nil
	})
	return out
}

func (p *pipelinedPool) Workers() int {
	return p.workers
}

func (p *pipelinedPool) Stats() Stats {
	return p.stats()
}

// Close waits for every submitted chunk to finish.
func (p *pipelinedPool) Close() error {
	err := p.group.Wait()
	p.l.Debug().Int64("chunks", p.completed.Load()).Msg("pool closed")
	return err
}
