package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfields/internal/config"
	"github.com/goliatone/go-formfields/internal/logging"
)

var version = "dev"

// errRejected marks a command that already reported its failure.
var errRejected = errors.New("rejected")

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:     "formfields",
		Short:   "Reusable form fields for the project creation form",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.App.LogLevel, _ = cmd.Flags().GetString("log-level")
			}
			logger, err := logging.New(cfg.App.LogLevel, cfg.App.LogFormat, a.errOut)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.serveCommand(),
		a.promptCommand(),
		a.validateCommand(),
		a.openAPICommand(),
		a.modelCommand(),
		a.previewCommand(),
	)
	return root
}
