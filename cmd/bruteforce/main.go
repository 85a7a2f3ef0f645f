package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/crack-hash/common/consul"
	"github.com/ykhdr/crack-hash/config"
	"github.com/ykhdr/crack-hash/internal/report"
	"github.com/ykhdr/crack-hash/internal/search"
	"github.com/ykhdr/crack-hash/internal/server"
	"github.com/ykhdr/crack-hash/internal/verify"
	"golang.org/x/sync/errgroup"
)

const (
	exitOK     = 0
	exitConfig = 1
	exitUsage  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.ParseEngine(args, stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, config.ErrUsage):
		_, _ = fmt.Fprintf(stderr, "bruteforce: %v\nrun with -h for usage\n", err)
		return exitUsage
	case err != nil:
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitConfig
	}

	req, err := cfg.Request()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitConfig
	}
	coordinator, err := search.NewCoordinator(req, verify.NewRegistry(*cfg.Backends))
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitConfig
	}

	outcome := runSearch(ctx, cfg, coordinator)
	summary := report.Summary{
		Found:     outcome.Found(),
		Plaintext: outcome.Plaintext,
		Attempts:  outcome.Attempts,
		Elapsed:   outcome.Elapsed,
	}
	if err := summary.Write(stdout); err != nil {
		log.Error().Err(err).Msg("failed to print result")
		return exitConfig
	}
	return exitOK
}

// runSearch runs the coordinator, alongside the status server when one is
// configured. A failing status server never affects the search.
func runSearch(ctx context.Context, cfg *config.Engine, coordinator *search.Coordinator) search.Outcome {
	if cfg.Status.Address == "" {
		return coordinator.Run(ctx)
	}

	var registrar consul.Registrar
	if cfg.Status.Consul != nil {
		r, err := consul.NewClient(cfg.Status.Consul)
		if err != nil {
			log.Warn().Err(err).Msg("consul client unavailable, status server will not be registered")
		} else {
			registrar = r
		}
	}
	srv := server.NewServer(cfg.Status.Address, coordinator, registrar)

	srvCtx, stopSrv := context.WithCancel(ctx)
	group, gCtx := errgroup.WithContext(srvCtx)
	var outcome search.Outcome
	group.Go(func() error {
		return srv.Start(gCtx)
	})
	group.Go(func() error {
		defer stopSrv()
		outcome = coordinator.Run(ctx)
		return nil
	})
	if err := group.Wait(); err != nil {
		log.Warn().Err(err).Msg("status server stopped with error")
	}
	stopSrv()
	return outcome
}
