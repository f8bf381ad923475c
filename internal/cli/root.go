// Package cli implements the bsmodal command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-bsmodal/internal/config"
	"github.com/goliatone/go-bsmodal/internal/logging"
	"github.com/goliatone/go-bsmodal/pkg/directive"
)

// ErrViolations is returned by lint when any violation was reported.
var ErrViolations = errors.New("cli: lint violations found")

type app struct {
	cfgFile  string
	logLevel string
	logFile  string

	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "bsmodal",
		Short: "Bootstrap modal directive for pongo2 templates",
		Long: "bsmodal renders, lints and scaffolds {% bsmodal %} blocks in pongo2 " +
			"(Django syntax) templates.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./bsmodal.{yaml,json,toml})")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: DEBUG, INFO, WARN or ERROR")
	flags.StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(
		newRenderCommand(a),
		newLintCommand(a),
		newNewCommand(a),
		newConfigCommand(a),
	)
	return root
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	return execute(&app{}, args, stdout, stderr)
}

// execute closes the --log-file handle on every path, including failed runs.
func execute(a *app, args []string, stdout, stderr io.Writer) int {
	defer a.close()

	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		if !errors.Is(err, ErrViolations) {
			fmt.Fprintln(stderr, errorStyle.Render("error: ")+err.Error())
		}
		return 1
	}
	return 0
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Options{
		File: a.cfgFile,
		Overrides: map[string]any{
			"log.level": a.logLevel,
			"log.file":  a.logFile,
		},
	})
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.closer = closer
	if cfg.Source != "" {
		logger.Debug("loaded config", "file", cfg.Source)
	}
	return nil
}

func (a *app) close() {
	if a.closer != nil {
		_ = a.closer.Close()
		a.closer = nil
	}
}

func (a *app) directiveOptions() ([]directive.Option, error) {
	return a.cfg.DirectiveOptions(a.logger)
}
