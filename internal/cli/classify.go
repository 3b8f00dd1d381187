package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/elsat/elsat/internal/metrics"
	"github.com/elsat/elsat/ontology"
	"github.com/elsat/elsat/reasoner"
	"github.com/elsat/elsat/taxonomy"
)

type classifyOptions struct {
	input  string
	format string
	output string
	pretty bool
}

func bindClassifyFlags(cmd *cobra.Command, opts *classifyOptions) {
	cmd.Flags().StringVar(&opts.input, "input", "", "path to an ontology file (.obo or .owl)")
	cmd.Flags().StringVar(&opts.format, "format", "auto", "input format: auto, obo, owl")
	cmd.Flags().StringVar(&opts.output, "output", "", "output JSON path (default: stdout)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "pretty-print JSON output")
}

func newClassifyCmd() *cobra.Command {
	opts := &classifyOptions{}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Parse, saturate, and classify an ontology",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, opts)
		},
	}
	bindClassifyFlags(cmd, opts)
	return cmd
}

// runClassify drives the full parse → normalize → saturate → classify →
// write pipeline. Fatal engine invariant violations surface as panics from
// the reasoner package; recoverPanic turns those into a plain error instead
// of a crash dump, matching the teacher's treatment of programmer errors as
// distinct from ordinary operational ones.
func runClassify(cmd *cobra.Command, opts *classifyOptions) (err error) {
	defer recoverPanic(&err)

	if opts.input == "" {
		return fmt.Errorf("missing required --input flag")
	}

	inputFmt := detectFormat(opts.input, opts.format)
	if inputFmt == "" {
		return fmt.Errorf("cannot detect format for %q: pass --format obo or --format owl", opts.input)
	}

	m := metrics.New()
	totalStart := time.Now()

	f, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	slog.Info("parse starting", "file", opts.input, "format", inputFmt)
	parseStart := time.Now()
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
	parseTime := time.Since(parseStart)
	m.ObservePhase(metrics.PhaseParse, parseTime)
	if n := ont.UnsupportedCount(); n > 0 {
		slog.Warn("parse found axioms outside the EL fragment", "unsupported", n)
	}
	slog.Info("parse complete", "duration", parseTime, "terms", len(ont.Terms))

	slog.Info("normalize starting")
	normStart := time.Now()
	st, store := reasoner.Normalize(ont)
	normTime := time.Since(normStart)
	m.ObservePhase(metrics.PhaseNormalize, normTime)
	m.Concepts.Set(float64(st.ConceptCount()))
	m.Roles.Set(float64(st.RoleCount()))
	slog.Info("normalize complete", "duration", normTime, "concepts", st.ConceptCount(), "roles", st.RoleCount())

	slog.Info("saturate starting")
	satStart := time.Now()
	contexts, stats := reasoner.Saturate(store, st.ConceptCount(), st.RoleCount())
	satTime := time.Since(satStart)
	m.ObservePhase(metrics.PhaseSaturate, satTime)
	m.WorklistItems.WithLabelValues("super").Add(float64(stats.SuperItems))
	m.WorklistItems.WithLabelValues("link").Add(float64(stats.LinkItems))
	slog.Info("saturate complete", "duration", satTime, "super_items", stats.SuperItems, "link_items", stats.LinkItems)

	slog.Info("enumerate starting")
	redStart := time.Now()
	tax := taxonomy.Build(contexts, st)
	redTime := time.Since(redStart)
	m.ObservePhase(metrics.PhaseEnumerate, redTime)
	inferred := reasoner.CountInferred(contexts)
	m.InferredSubsumptions.Set(float64(inferred))
	slog.Info("enumerate complete", "duration", redTime, "inferred_subsumptions", inferred)

	tstats := taxonomy.MakeStats(st, stats, parseTime, normTime, satTime, redTime)
	hierarchy := tax.ToJSON(contexts, st, tstats)

	slog.Info("write starting", "output", outputLabel(opts.output))
	writeStart := time.Now()
	w := cmd.OutOrStdout()
	if opts.output != "" {
		outFile, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer outFile.Close()
		w = outFile
	}
	if err := taxonomy.WriteJSON(w, hierarchy, opts.pretty); err != nil {
		return fmt.Errorf("write classified hierarchy: %w", err)
	}
	writeTime := time.Since(writeStart)
	m.ObservePhase(metrics.PhaseWrite, writeTime)
	slog.Info("write complete", "duration", writeTime)

	slog.Info("classification complete", "total_duration", time.Since(totalStart))
	if err := m.Summary(os.Stderr); err != nil {
		slog.Warn("metrics summary failed", "error", err)
	}

	return nil
}

func outputLabel(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}

func detectFormat(path, explicit string) string {
	if explicit != "auto" {
		return explicit
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obo":
		return "obo"
	case ".owl", ".xml", ".rdf":
		return "owl"
	}
	return ""
}

func recoverPanic(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("internal error: %v", r)
	}
}
