package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/solatis/slovar/internal/core/config"
	"github.com/solatis/slovar/internal/fields"
	"github.com/solatis/slovar/internal/project"
)

const Version = "0.1.0"

// app carries per-invocation state shared by subcommands.
type app struct {
	configFile  string
	inputFormat string

	cfg    *config.Config
	log    *zap.Logger
	parser *fields.Parser
}

// NewRootCmd builds the slovar command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "slovar",
		Short:         "Flatten, project and merge nested JSON/YAML structures",
		Long:          `slovar converts nested documents to dotted-path form and back, selects fields with a compact expression language, and merges documents under configurable policies.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file path")
	pf.StringVar(&a.inputFormat, "input-format", "", "input format (json, yaml); detected from the file extension when empty")
	pf.String("output-format", "json", "output format (json, yaml)")
	pf.Int("indent", 2, "output indentation, 0 for compact JSON")
	pf.Int("cache-size", fields.DefaultCacheSize, "parsed field-expression cache size")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (json, text)")

	root.AddCommand(
		a.flattenCmd(),
		a.unflattenCmd(),
		a.extractCmd(),
		a.subsetCmd(),
		a.prefixCmd(),
		a.treeCmd(),
		a.mergeCmd(),
		a.updateCmd(),
		a.fromDottedCmd(),
		a.sensorCmd(),
	)
	return root
}

// Execute runs the slovar CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	log, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	a.log = log
	project.SetLogger(log)

	parser, err := fields.NewParser(cfg.FieldsCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create field parser: %w", err)
	}
	a.parser = parser

	log.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("output_format", cfg.OutputFormat),
		zap.Int("cache_size", cfg.FieldsCacheSize))
	return nil
}

// newLogger builds a stderr logger; text selects the console encoder.
func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if format == config.LogText {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
