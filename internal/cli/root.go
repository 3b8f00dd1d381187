// Package cli wires the elsat command tree: flag parsing, logging setup,
// and the classify/parse/version subcommands; classify drives the
// parse → normalize → saturate → classify pipeline.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var logLevel string

// Execute builds the root command and runs it against os.Args.
func Execute() error {
	root := newRootCmd()
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	opts := &classifyOptions{}

	root := &cobra.Command{
		Use:           "elsat",
		Short:         "EL-fragment description-logic classifier",
		Long:          "elsat parses an OBO or OWL/RDF-XML ontology, saturates it under the EL completion rules, and reports the classified subsumption hierarchy.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(logLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	bindClassifyFlags(root, opts)

	root.AddCommand(newClassifyCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func setupLogging(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
}
