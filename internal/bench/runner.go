package bench

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/pkg/errors"
)

var ErrTimeout = errors.New("engine run timed out")

// Runner invokes the engine once and returns everything it printed, even
// when the run fails.
type Runner interface {
	Run(ctx context.Context, args []string) (string, error)
}

type ExecRunner struct {
	Binary  string
	Timeout time.Duration
}

func (r *ExecRunner) Run(ctx context.Context, args []string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.WaitDelay = time.Second
	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return out.String(), errors.Wrapf(ErrTimeout, "after %s", r.Timeout)
	}
	if err != nil {
		return out.String(), errors.Wrapf(err, "run %s", r.Binary)
	}
	return out.String(), nil
}
