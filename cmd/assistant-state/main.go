// Command assistant-state drives an assistant state bundle from the command
// line. It replays scripted actions against fresh stores and prints the
// derived application state after every change, which makes store behavior
// easy to inspect without a host UI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tailored-agentic-units/assistant-state/assistant"
	"github.com/tailored-agentic-units/assistant-state/observability"
)

type app struct {
	configFile string
	verbose    bool
	logger     string

	stderr    io.Writer
	zapLogger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "assistant-state",
		Short: "Inspect the reactive state engine behind the assistant UI",
		Long: `assistant-state builds the conversation, runtime and UI stores together
with their derived values, applies scripted actions to them and reports the
resulting application state.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.stderr = cmd.ErrOrStderr()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.zapLogger != nil {
				_ = a.zapLogger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "Path to config file (.json, .yaml, .yml, .toml)")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Log store events at debug level")
	root.PersistentFlags().StringVar(&a.logger, "logger", "", "Event logger: noop, slog or zap (default from config)")

	root.AddCommand(newReplayCmd(a), newConfigCmd(a))
	return root
}

// loadConfig returns the defaults merged with --config when given.
func (a *app) loadConfig() (*assistant.Config, error) {
	if a.configFile == "" {
		cfg := assistant.DefaultConfig()
		return &cfg, nil
	}
	return assistant.LoadConfig(a.configFile)
}

// observer builds the event observer selected by --logger. Without --logger
// the config file decides, unless --verbose asks for debug output from the
// config's logger. A nil observer leaves the choice to the bundle.
func (a *app) observer(cfg *assistant.Config) (observability.Observer, error) {
	name := a.logger
	if name == "" {
		if !a.verbose {
			return nil, nil
		}
		name = cfg.Observer
	}

	switch name {
	case "noop":
		return observability.NoOpObserver{}, nil
	case "slog":
		level := slog.LevelInfo
		if a.verbose {
			level = slog.LevelDebug
		}
		out := a.stderr
		if out == nil {
			out = os.Stderr
		}
		logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
		return observability.NewSlogObserver(logger), nil
	case "zap":
		config := zap.NewProductionConfig()
		if a.verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := config.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.zapLogger = logger
		return observability.NewZapObserver(logger), nil
	default:
		return nil, fmt.Errorf("unknown logger %q: want noop, slog or zap", name)
	}
}

// newBundle creates a bundle from the loaded config and the logging flags.
func (a *app) newBundle() (*assistant.Bundle, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	observer, err := a.observer(cfg)
	if err != nil {
		return nil, err
	}

	var opts []assistant.Option
	if observer != nil {
		opts = append(opts, assistant.WithObserver(observer))
	}
	return assistant.New(cfg, opts...)
}
