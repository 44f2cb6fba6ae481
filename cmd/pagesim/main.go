// Command pagesim simulates page replacement over a reference string.
//
// Frame size, reference count, worker count, policy name, and the references
// are read from standard input in that order, unless set by flags, a JSON
// configuration file, or PAGESIM_* environment variables. One trace line is
// printed per reference as it is applied, followed by the fault and hit totals.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/djdv/go-pagesim"
	"github.com/djdv/go-pagesim/internal/tracefile"
)

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		slog.Error(err.Error(), "msg", "simulation failed")
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	config, err := loadConfig(args, stderr)
	if err != nil {
		return err
	}
	level, err := config.level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	references, err := newConsole(stdin, stdout).complete(config)
	if err != nil {
		return err
	}
	if config.Sequential {
		if config.Workers != 1 {
			logger.Info("sequential mode, ignoring worker count", "workers", config.Workers)
		}
		config.Workers = 1
	}
	policy, err := pagesim.ParsePolicy(config.Policy)
	if err != nil {
		return err
	}
	var (
		trace    *tracefile.Writer
		traceErr error
	)
	sim, err := pagesim.New(pagesim.Config{
		Policy:  policy,
		Frames:  config.Frames,
		Workers: config.Workers,
		Observer: func(step pagesim.Step) {
			line := step.String()
			if !config.Quiet {
				fmt.Fprintln(stdout, line)
			}
			if trace != nil && traceErr == nil {
				traceErr = trace.WriteLine(line)
			}
		},
		Logger: logger,
	}, references)
	if err != nil {
		return err
	}
	if trace, err = openTrace(config); err != nil {
		return err
	}
	if config.Workers > 1 {
		logger.Warn("workers share one frame pool; results are not those of a sequential run",
			"workers", config.Workers)
	}

	if !config.Quiet {
		empty := make([]pagesim.Frame, config.Frames)
		fmt.Fprintln(stdout, "Frames:", pagesim.FormatFrames(empty, nil))
	}
	result := sim.Run()
	fmt.Fprintf(stdout, "\nNumber of faults: %d\nNumber of hits: %d\n", result.Faults, result.Hits)
	logger.Info("simulation finished",
		"policy", result.Policy,
		"frames", config.Frames,
		"workers", config.Workers,
		slog.Group("totals",
			"references", result.References(),
			"faults", result.Faults,
			"hits", result.Hits,
			"hit_ratio", result.HitRatio(),
		),
	)
	if trace == nil {
		return nil
	}
	if err := errors.Join(traceErr, trace.Close()); err != nil {
		return err
	}
	logger.Info("trace written",
		"path", config.TraceOut,
		"compression", config.TraceCompression,
		"lines", trace.Lines(),
	)
	return nil
}

func loadConfig(args []string, stderr io.Writer) (*Config, error) {
	flags := flag.NewFlagSet("pagesim", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		configPath  = flags.String("config", "", "JSON configuration `file`")
		frames      = flags.Int("frames", 0, "frame pool size (read from stdin when 0)")
		workers     = flags.Int("workers", 0, "number of concurrent workers (read from stdin when 0)")
		policy      = flags.String("policy", "", "replacement policy: FIFO, LRU or Optimal (read from stdin when empty)")
		sequential  = flags.Bool("sequential", false, "use a single worker for deterministic results")
		quiet       = flags.Bool("quiet", false, "only print the totals")
		traceOut    = flags.String("trace-out", "", "also write trace lines to `file`")
		compression = flags.String("trace-compression", "", "trace file compression: none, snappy or lz4")
		logLevel    = flags.String("log-level", "", "debug, info, warn or error")
	)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	config := DefaultConfig()
	if *configPath != "" {
		var err error
		if config, err = LoadConfigFromFile(*configPath); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frames":
			config.Frames = *frames
		case "workers":
			config.Workers = *workers
		case "policy":
			config.Policy = *policy
		case "sequential":
			config.Sequential = *sequential
		case "quiet":
			config.Quiet = *quiet
		case "trace-out":
			config.TraceOut = *traceOut
		case "trace-compression":
			config.TraceCompression = *compression
		case "log-level":
			config.LogLevel = *logLevel
		}
	})
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func openTrace(config *Config) (*tracefile.Writer, error) {
	if config.TraceOut == "" {
		return nil, nil
	}
	compression, err := tracefile.ParseCompression(config.TraceCompression)
	if err != nil {
		return nil, err
	}
	return tracefile.Create(config.TraceOut, compression)
}
