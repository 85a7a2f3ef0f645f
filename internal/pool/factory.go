package pool

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/ykhdr/crack-hash/internal/verify"
)

type Mode int

const (
	SequentialMode Mode = iota
	PipelinedMode
)

const (
	sequentialModeName = "sequential"
	pipelinedModeName  = "pipelined"
)

var ErrUnknownMode = errors.New("unknown dispatch mode")

func New(mode Mode, v verify.Verifier, target string, workers int) Pool {
	switch mode {
	case PipelinedMode:
		return NewPipelined(v, target, workers)
	default:
		return NewSequential(v, target, workers)
	}
}

func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", sequentialModeName:
		return SequentialMode, nil
	case pipelinedModeName:
		return PipelinedMode, nil
	default:
		return SequentialMode, errors.Wrapf(ErrUnknownMode, "mode %q", name)
	}
}

func (m Mode) String() string {
	if m == PipelinedMode {
		return pipelinedModeName
	}
	return sequentialModeName
}

func DefaultModeStr() string {
	return sequentialModeName
}
