package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/elsat/elsat/ontology"
)

type parseOptions struct {
	input  string
	format string
	output string
	pretty bool
}

func newParseCmd() *cobra.Command {
	opts := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse an ontology and dump the raw model as JSON, without saturating it",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer recoverPanic(&err)
			return runParse(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.input, "input", "", "path to an ontology file (.obo or .owl)")
	cmd.Flags().StringVar(&opts.format, "format", "auto", "input format: auto, obo, owl")
	cmd.Flags().StringVar(&opts.output, "output", "", "output JSON path (default: stdout)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "pretty-print JSON output")
	return cmd
}

func runParse(cmd *cobra.Command, opts *parseOptions) error {
	if opts.input == "" {
		return fmt.Errorf("missing required --input flag")
	}

	inputFmt := detectFormat(opts.input, opts.format)
	if inputFmt == "" {
		return fmt.Errorf("cannot detect format for %q: pass --format obo or --format owl", opts.input)
	}

	f, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	slog.Info("parse starting", "file", opts.input, "format", inputFmt)
	start := time.Now()

	var ont *ontology.Ontology
	switch inputFmt {
	case "obo":
		ont, err = ontology.ParseOBO(f)
	case "owl":
		ont, err = ontology.ParseOWL(f)
	}
	if err != nil {
		return fmt.Errorf("parse ontology: %w", err)
	}
	if n := ont.UnsupportedCount(); n > 0 {
		slog.Warn("parse found axioms outside the EL fragment", "unsupported", n)
	}
	slog.Info("parse complete", "duration", time.Since(start), "terms", len(ont.Terms))

	w := cmd.OutOrStdout()
	if opts.output != "" {
		outFile, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer outFile.Close()
		w = outFile
	}

	return ontology.WriteJSON(w, ont, opts.pretty)
}
