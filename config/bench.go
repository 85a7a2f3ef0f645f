package config

import (
	"flag"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/ykhdr/crack-hash/common/amqp"
	"github.com/ykhdr/crack-hash/common/config"
	"github.com/ykhdr/crack-hash/common/logging"
	"github.com/ykhdr/crack-hash/common/store/mongo"
)

type BenchConfig struct {
	config.LogConfig
	// Engine is the engine binary invoked once per table entry.
	Engine         string        `kdl:"engine"`
	Procs          int           `kdl:"procs"`
	Chunk          int           `kdl:"chunk"`
	TimeLimit      time.Duration `kdl:"time-limit"`
	TimeoutPerTest time.Duration `kdl:"timeout-per-test"`
	Out            string        `kdl:"out"`
	Mongo          *mongo.Config `kdl:"mongo"`
	Amqp           *amqp.Config  `kdl:"amqp"`
}

func DefaultBenchConfig() *BenchConfig {
	return &BenchConfig{
		LogConfig:      config.LogConfig{LogLevel: "info"},
		Engine:         "bruteforce",
		Procs:          12,
		Chunk:          20000,
		TimeoutPerTest: 600 * time.Second,
		Out:            "bench_results.csv",
		Mongo:          mongo.DefaultConfig(),
		Amqp:           amqp.DefaultConfig(),
	}
}

func ParseBench(args []string, output io.Writer) (*BenchConfig, error) {
	defaults := DefaultBenchConfig()
	var (
		configPath, logLevel, engine, out string
		procs, chunk                      int
		timeLimit, timeout                float64
	)
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&configPath, "config", "", "path to a KDL config file")
	fs.StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	fs.StringVar(&engine, "engine", defaults.Engine, "engine binary")
	fs.IntVar(&procs, "procs", defaults.Procs, "worker count passed to the engine")
	fs.IntVar(&chunk, "chunk", defaults.Chunk, "chunk size passed to the engine")
	fs.Float64Var(&timeLimit, "time-limit", 0, "per-test time limit in seconds passed to the engine")
	fs.Float64Var(&timeout, "timeout-per-test", defaults.TimeoutPerTest.Seconds(), "seconds before an engine run is killed")
	fs.StringVar(&out, "out", defaults.Out, "CSV output file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, errors.Wrap(ErrUsage, err.Error())
	}
	if fs.NArg() > 0 {
		return nil, errors.Wrapf(ErrUsage, "unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if timeLimit < 0 || timeout < 0 {
		return nil, errors.Wrap(ErrUsage, "durations must not be negative")
	}

	cfg, err := config.Load(configPath, *defaults)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "log-level":
			cfg.LogLevel = logLevel
			logging.Setup(logging.ParseLevel(logLevel))
		case "engine":
			cfg.Engine = engine
		case "procs":
			cfg.Procs = procs
		case "chunk":
			cfg.Chunk = chunk
		case "time-limit":
			cfg.TimeLimit = seconds(timeLimit)
		case "timeout-per-test":
			cfg.TimeoutPerTest = seconds(timeout)
		case "out":
			cfg.Out = out
		}
	})
	return cfg, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
