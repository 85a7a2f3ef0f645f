package bench

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/crack-hash/internal/report"
)

type Options struct {
	Procs     int
	Chunk     int
	TimeLimit time.Duration
}

// Args builds the engine command line for c.
func (o Options) Args(c Case) []string {
	p := c.Preset()
	args := []string{
		"--alg", c.Algorithm.String(),
		"--hash", c.Target,
		"--charset", p.Charset,
		"--min", strconv.Itoa(p.Min),
		"--max", strconv.Itoa(p.Max),
		"--procs", strconv.Itoa(o.Procs),
		"--chunk", strconv.Itoa(o.Chunk),
	}
	if o.TimeLimit > 0 {
		args = append(args, "--time-limit", strconv.FormatFloat(o.TimeLimit.Seconds(), 'f', -1, 64))
	}
	return args
}

// Harness runs every case in order and hands each row to its sinks. The
// primary sink must succeed; failures of the others are only logged.
type Harness struct {
	l        zerolog.Logger
	runId    uuid.UUID
	runner   Runner
	opts     Options
	cases    []Case
	primary  Sink
	optional map[string]Sink
	now      func() time.Time
}

func NewHarness(runner Runner, opts Options, primary Sink) *Harness {
	runId := uuid.New()
	return &Harness{
		runId:    runId,
		runner:   runner,
		opts:     opts,
		cases:    Table(),
		primary:  primary,
		optional: map[string]Sink{},
		now:      time.Now,
		l: log.With().
			Str("domain", "bench").
			Stringer("run", runId).
			Logger(),
	}
}

func (h *Harness) RunId() uuid.UUID {
	return h.runId
}

func (h *Harness) AddSink(name string, s Sink) {
	h.optional[name] = s
}

func (h *Harness) Run(ctx context.Context) ([]Row, error) {
	rows := make([]Row, 0, len(h.cases))
	for _, c := range h.cases {
		if err := ctx.Err(); err != nil {
			return rows, errors.Wrap(err, "bench interrupted")
		}
		row := h.runCase(ctx, c)
		rows = append(rows, row)
		if err := h.primary.Write(ctx, row); err != nil {
			return rows, errors.Wrap(err, "write result")
		}
		for name, s := range h.optional {
			if err := s.Write(ctx, row); err != nil {
				h.l.Warn().Err(err).Str("sink", name).Msg("failed to write result")
			}
		}
	}
	h.l.Info().Int("cases", len(rows)).Msg("bench finished")
	return rows, nil
}

func (h *Harness) runCase(ctx context.Context, c Case) Row {
	args := h.opts.Args(c)
	l := h.l.With().
		Stringer("algorithm", c.Algorithm).
		Str("level", string(c.Level)).
		Logger()
	l.Info().Strs("args", args).Msg("running case")

	output, err := h.runner.Run(ctx, args)
	if err != nil {
		l.Warn().Err(err).Msg("engine run failed, parsing partial output")
	}
	parsed, err := report.Parse(output)
	if err != nil {
		l.Warn().Err(err).Msg("engine output has no result")
	}
	row := NewRow(h.runId, c, parsed, h.now())
	l.Info().
		Bool("found", row.Found).
		Int64("attempts", row.Attempts).
		Float64("elapsed", row.Elapsed).
		Float64("hps", row.Hps).
		Msg("case finished")
	return row
}
