package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/crack-hash/common/amqp"
	"github.com/ykhdr/crack-hash/common/amqp/publisher"
	"github.com/ykhdr/crack-hash/common/store/mongo"
	"github.com/ykhdr/crack-hash/config"
	"github.com/ykhdr/crack-hash/internal/bench"
	"golang.org/x/sync/errgroup"
)

const connectTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.ParseBench(args, stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, config.ErrUsage):
		_, _ = fmt.Fprintf(stderr, "bench: %v\nrun with -h for usage\n", err)
		return 2
	case err != nil:
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	runner := &bench.ExecRunner{Binary: cfg.Engine, Timeout: cfg.TimeoutPerTest}
	opts := bench.Options{Procs: cfg.Procs, Chunk: cfg.Chunk, TimeLimit: cfg.TimeLimit}
	h := bench.NewHarness(runner, opts, bench.NewCSVSink(cfg.Out))

	sinks := connectSinks(ctx, cfg, h)
	defer sinks.close()

	rows, err := h.Run(ctx)
	if err != nil {
		log.Error().Err(err).Int("cases", len(rows)).Msg("bench failed")
		return 1
	}
	_, _ = fmt.Fprintf(stdout, "Saved: %s\n", cfg.Out)
	return 0
}

type closers struct {
	m   sync.Mutex
	fns []func(ctx context.Context) error
}

func (c *closers) add(fn func(ctx context.Context) error) {
	c.m.Lock()
	defer c.m.Unlock()
	c.fns = append(c.fns, fn)
}

func (c *closers) close() {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	for _, fn := range c.fns {
		if err := fn(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to close sink")
		}
	}
}

// connectSinks attaches the optional mongo and amqp sinks. Connection
// failures are logged and the sink is skipped.
func connectSinks(ctx context.Context, cfg *config.BenchConfig, h *bench.Harness) *closers {
	c := &closers{}
	var m sync.Mutex
	var group errgroup.Group
	if cfg.Mongo.Enabled() {
		group.Go(func() error {
			client, err := mongo.NewClient(&cfg.Mongo.ClientConfig)
			if err != nil {
				log.Warn().Err(err).Msg("mongo sink disabled")
				return nil
			}
			c.add(client.Disconnect)
			pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
			defer cancel()
			if err := client.Ping(pingCtx, nil); err != nil {
				log.Warn().Err(err).Msg("mongo is unreachable, sink disabled")
				return nil
			}
			coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
			m.Lock()
			h.AddSink("mongo", bench.NewMongoSink(coll))
			m.Unlock()
			return nil
		})
	}
	if cfg.Amqp.Enabled() {
		group.Go(func() error {
			conn, err := amqp.Dial(ctx, cfg.Amqp)
			if err != nil {
				log.Warn().Err(err).Msg("amqp sink disabled")
				return nil
			}
			c.add(func(context.Context) error { return conn.Close() })
			ch, err := conn.Channel(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("amqp channel unavailable, sink disabled")
				return nil
			}
			pub := publisher.New[bench.Row](ch, cfg.Amqp.PublisherConfig(nil, ""))
			m.Lock()
			h.AddSink("amqp", bench.NewAmqpSink(pub))
			m.Unlock()
			return nil
		})
	}
	_ = group.Wait()
	return c
}
