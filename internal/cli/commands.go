// Package cli builds the stopwatch command tree.
//
//	stopwatch                 interactive session
//	stopwatch graph           print the engine chart (dot, json, yaml)
//	stopwatch version         print the build version
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comalice/stopwatch"
	"github.com/comalice/stopwatch/internal/config"
	"github.com/comalice/stopwatch/internal/console"
	"github.com/comalice/stopwatch/internal/graph"
	"github.com/comalice/stopwatch/internal/shell"
	"github.com/comalice/stopwatch/realtime"
)

// Version is set at build time with -ldflags "-X".
var Version = "dev"

// BuildRootCommand returns the root command reading keys from in and
// drawing on out.
func BuildRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "stopwatch",
		Short:         "Console stopwatch",
		Long:          "Start, stop and reset a stopwatch; the elapsed time is redrawn in place once per tick.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, in, out)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	config.RegisterFlags(root.Flags())

	root.AddCommand(graphCommand())
	root.AddCommand(versionCommand())
	return root
}

func runSession(cmd *cobra.Command, in io.Reader, out io.Writer) error {
	cfg, err := config.FromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	logger.Debug("starting session",
		zap.Duration("tick", cfg.Tick),
		zap.String("raw", string(cfg.Raw)),
	)

	sw := stopwatch.New(stopwatch.WithLogger(logger.Named("engine")))
	rt := realtime.NewRuntime(sw, realtime.Config{
		TickRate: cfg.Tick,
		Logger:   logger.Named("realtime"),
	})
	input := console.NewInput(in, logger.Named("console"))
	display := console.NewDisplay(out)

	opts := []shell.Option{shell.WithLogger(logger.Named("shell"))}
	if f, ok := in.(*os.File); ok {
		opts = append(opts, shell.WithRawSwitcher(
			console.NewTerminal(int(f.Fd()), cfg.Raw, logger.Named("console")),
		))
	}

	err = shell.New(rt, input, input, display, opts...).Run(cmd.Context())
	if errors.Cause(err) == context.Canceled {
		logger.Debug("session interrupted")
		return nil
	}
	return err
}

func graphCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the stopwatch state chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chart := stopwatch.New().Chart()

			var data []byte
			switch format {
			case "dot":
				data = []byte(graph.ExportDOT(chart))
			case "json":
				b, err := graph.ExportJSON(chart)
				if err != nil {
					return err
				}
				data = append(b, '\n')
			case "yaml":
				b, err := graph.ExportYAML(chart)
				if err != nil {
					return err
				}
				data = b
			default:
				return errors.Errorf("unknown format %q: want dot, json or yaml", format)
			}

			_, err := cmd.OutOrStdout().Write(data)
			return errors.Wrap(err, "write chart")
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, json or yaml")
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stopwatch %s\n", Version)
		},
	}
}
