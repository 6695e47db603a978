package commands

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qawafi/arud/internal/analyzer"
	"github.com/qawafi/arud/internal/cli/config"
	"github.com/qawafi/arud/internal/cli/ui"
	"github.com/qawafi/arud/internal/logging"
	"github.com/qawafi/arud/internal/metrics"
	"github.com/qawafi/arud/internal/prosody/engine"
	"github.com/qawafi/arud/internal/resultcache"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

const skipSetup = "arud/skip-setup"

// app carries the flags and the components built for one invocation
type app struct {
	configPath string
	format     string
	noColor    bool
	verbose    bool
	metricsOut string

	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	recorder *metrics.Recorder
	engine   *engine.Context
	cache    resultcache.Cache
	prompter prompter
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{prompter: surveyPrompter{}})
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arud",
		Short: "Arabic prosody meter detection",
		Long: `arud classifies Arabic verse against the sixteen Khalilian meters.

Input is a prosodic pattern ('/' for a moving letter, 'o' for a still one),
a phoneme list, or a scansion written as tafila names:

  arud detect //o/o//o/o/o//o/o//o/o/o
  arud scan "فعولن مفاعيلن فعولن مفاعلن"
  arud segment --phonemes verse.yaml`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: arud.yaml in the current or a parent directory)")
	flags.StringVarP(&a.format, "format", "f", "table", "output format: table or json")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	flags.StringVar(&a.metricsOut, "metrics-out", "", "write Prometheus metrics to this file on exit")

	rootCmd.AddCommand(newVersionCommand(a))
	rootCmd.AddCommand(newDetectCommand(a))
	rootCmd.AddCommand(newSegmentCommand(a))
	rootCmd.AddCommand(newScanCommand(a))
	rootCmd.AddCommand(newValidateCommand(a))
	rootCmd.AddCommand(newSimilarityCommand(a))
	rootCmd.AddCommand(newMetersCommand(a))
	rootCmd.AddCommand(newTafilaCommand(a))
	rootCmd.AddCommand(newStatsCommand(a))
	rootCmd.AddCommand(newBatchCommand(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipSetup] == "true" {
		return nil
	}
	if a.format != "table" && a.format != "json" {
		return fmt.Errorf("unknown format %q: expected table or json", a.format)
	}
	if a.noColor {
		color.NoColor = true
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		ui.ConfigError(err.Error(), a.noColor).Write(cmd.ErrOrStderr())
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	a.logger, err = logging.New(level, a.verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	a.registry = prometheus.NewRegistry()
	a.recorder, err = metrics.NewRecorder(a.registry)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	opts := engine.DefaultOptions()
	opts.Detector = cfg.DetectorOptions()
	opts.Detector.Recorder = a.recorder
	opts.Segmenter = cfg.SegmenterOptions()
	opts.Logger = a.logger
	a.engine, err = engine.New(opts)
	if err != nil {
		return fmt.Errorf("building prosody engine: %w", err)
	}

	a.cache, err = resultcache.New(cfg.ResultCacheConfig())
	if err != nil {
		a.logger.Warn("result cache unavailable, detecting without memoization",
			zap.String("backend", cfg.Cache.Backend), zap.Error(err))
		a.cache = nil
	}
	return nil
}

// execute runs cmd and always releases what setup acquired, also when the command
// fails
func (a *app) execute(cmd *cobra.Command) (err error) {
	defer func() {
		err = errors.Join(err, a.teardown())
	}()
	return cmd.Execute()
}

func (a *app) teardown() error {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("closing result cache", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.metricsOut != "" && a.registry != nil {
		if err := prometheus.WriteToTextfile(a.metricsOut, a.registry); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

// newAnalyzer builds an analyzer over the shared engine and result cache. topK <= 0 uses
// the configured default.
func (a *app) newAnalyzer(topK int, opts ...analyzer.Option) *analyzer.Analyzer {
	if topK <= 0 {
		topK = a.cfg.Detector.TopK
	}
	base := []analyzer.Option{
		analyzer.WithLogger(a.logger),
		analyzer.WithResultCache(a.cache, a.cfg.Cache.TTL, a.recorder),
		analyzer.WithTopK(topK),
	}
	return analyzer.New(a.engine, append(base, opts...)...)
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Annotations: map[string]string{skipSetup: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			kv := ui.NewKeyValueTable(cmd.OutOrStdout(), a.noColor)
			kv.AddRow("arud version", Version)
			kv.AddRow("Git commit", GitCommit)
			kv.AddRow("Build date", BuildDate)
			kv.AddRow("Go version", goVer)
			kv.Render()
		},
	}
}

// Execute runs the root command
func Execute() error {
	a := &app{prompter: surveyPrompter{}}
	rootCmd := newRootCommand(a)
	if err := a.execute(rootCmd); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
