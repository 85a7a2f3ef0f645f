package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/ykhdr/crack-hash/common/config"
	"github.com/ykhdr/crack-hash/common/consul"
	"github.com/ykhdr/crack-hash/common/logging"
	"github.com/ykhdr/crack-hash/internal/keyspace"
	"github.com/ykhdr/crack-hash/internal/pool"
	"github.com/ykhdr/crack-hash/internal/search"
	"github.com/ykhdr/crack-hash/internal/verify"
)

// ErrUsage marks command line errors; callers exit with status 2.
var ErrUsage = errors.New("usage error")

type SearchConfig struct {
	Charset   string        `kdl:"charset"`
	Min       int           `kdl:"min"`
	Max       int           `kdl:"max"`
	Procs     int           `kdl:"procs"`
	Chunk     int           `kdl:"chunk"`
	TimeLimit time.Duration `kdl:"time-limit"`
	Dispatch  string        `kdl:"dispatch"`
}

type StatusConfig struct {
	// Address enables the status server when non-empty.
	Address string         `kdl:"address"`
	Consul  *consul.Config `kdl:"consul"`
}

type EngineConfig struct {
	config.LogConfig
	Search   *SearchConfig    `kdl:"search"`
	Backends *verify.Backends `kdl:"backends"`
	Status   *StatusConfig    `kdl:"status"`
}

func DefaultEngineConfig() *EngineConfig {
	backends := verify.AllBackends()
	return &EngineConfig{
		LogConfig: config.LogConfig{LogLevel: "info"},
		Search: &SearchConfig{
			Charset:  keyspace.DefaultCharset,
			Min:      1,
			Max:      6,
			Procs:    DefaultProcs(),
			Chunk:    5000,
			Dispatch: pool.DefaultModeStr(),
		},
		Backends: &backends,
		Status:   &StatusConfig{},
	}
}

// Engine is the resolved configuration of one engine invocation.
type Engine struct {
	*EngineConfig
	Algorithm verify.Algorithm
	Hash      string
}

type engineFlags struct {
	configPath string
	logLevel   string
	alg        string
	hash       string
	charset    string
	min        int
	max        int
	procs      int
	chunk      int
	timeLimit  float64
	dispatch   string
	statusAddr string
}

// ParseEngine resolves defaults, the optional KDL file and the command line,
// in increasing precedence. Errors wrapping ErrUsage (or flag.ErrHelp) are
// command line problems; anything else is a configuration error.
func ParseEngine(args []string, output io.Writer) (*Engine, error) {
	defaults := DefaultEngineConfig()
	var f engineFlags
	fs := flag.NewFlagSet("bruteforce", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.configPath, "config", "", "path to a KDL config file")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	fs.StringVar(&f.alg, "alg", "", fmt.Sprintf("hash algorithm {%s} (required)", strings.Join(verify.Names(), "|")))
	fs.StringVar(&f.hash, "hash", "", "target digest (required)")
	fs.StringVar(&f.charset, "charset", defaults.Search.Charset, "candidate alphabet")
	fs.IntVar(&f.min, "min", defaults.Search.Min, "minimum candidate length")
	fs.IntVar(&f.max, "max", defaults.Search.Max, "maximum candidate length")
	fs.IntVar(&f.procs, "procs", defaults.Search.Procs, "worker count")
	fs.IntVar(&f.chunk, "chunk", defaults.Search.Chunk, "candidates per chunk")
	fs.Float64Var(&f.timeLimit, "time-limit", 0, "time limit in seconds, unbounded when 0")
	fs.StringVar(&f.dispatch, "dispatch", defaults.Search.Dispatch, "chunk dispatch mode {sequential|pipelined}")
	fs.StringVar(&f.statusAddr, "status-addr", "", "serve progress over HTTP on this address")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, errors.Wrap(ErrUsage, err.Error())
	}
	if fs.NArg() > 0 {
		return nil, errors.Wrapf(ErrUsage, "unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if !set["alg"] || !set["hash"] {
		return nil, errors.Wrap(ErrUsage, "--alg and --hash are required")
	}
	alg, err := verify.ParseAlgorithm(f.alg)
	if err != nil {
		return nil, errors.Wrap(ErrUsage, err.Error())
	}
	if f.timeLimit < 0 {
		return nil, errors.Wrapf(ErrUsage, "--time-limit must not be negative, got %v", f.timeLimit)
	}

	cfg, err := config.Load(f.configPath, *defaults)
	if err != nil {
		return nil, err
	}
	if set["log-level"] {
		cfg.LogLevel = f.logLevel
		logging.Setup(logging.ParseLevel(f.logLevel))
	}
	cfg.ensureSections(defaults)
	f.overlay(cfg, set)

	return &Engine{
		EngineConfig: cfg,
		Algorithm:    alg,
		Hash:         f.hash,
	}, nil
}

// ensureSections restores sections a config file may have left nil.
func (c *EngineConfig) ensureSections(defaults *EngineConfig) {
	if c.Search == nil {
		c.Search = defaults.Search
	}
	if c.Backends == nil {
		c.Backends = defaults.Backends
	}
	if c.Status == nil {
		c.Status = defaults.Status
	}
}

func (f *engineFlags) overlay(cfg *EngineConfig, set map[string]bool) {
	s := cfg.Search
	for name := range set {
		switch name {
		case "charset":
			s.Charset = f.charset
		case "min":
			s.Min = f.min
		case "max":
			s.Max = f.max
		case "procs":
			s.Procs = f.procs
		case "chunk":
			s.Chunk = f.chunk
		case "time-limit":
			s.TimeLimit = seconds(f.timeLimit)
		case "dispatch":
			s.Dispatch = f.dispatch
		case "status-addr":
			cfg.Status.Address = f.statusAddr
		}
	}
}

// Request builds the search request. Failures are configuration errors.
func (e *Engine) Request() (search.Request, error) {
	mode, err := pool.ParseMode(e.Search.Dispatch)
	if err != nil {
		return search.Request{}, err
	}
	req := search.Request{
		Target:    strings.TrimSpace(e.Hash),
		Algorithm: e.Algorithm,
		Alphabet:  []rune(e.Search.Charset),
		MinLength: e.Search.Min,
		MaxLength: e.Search.Max,
		Workers:   e.Search.Procs,
		ChunkSize: e.Search.Chunk,
		TimeLimit: e.Search.TimeLimit,
		Mode:      mode,
	}
	if err := req.Validate(); err != nil {
		return search.Request{}, err
	}
	return req, nil
}
