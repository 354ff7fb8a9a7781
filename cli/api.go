package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ChristianF88/catgene/analysis"
	"github.com/ChristianF88/catgene/config"
	"github.com/ChristianF88/catgene/dataset"
	"github.com/ChristianF88/catgene/form"
	"github.com/ChristianF88/catgene/output"
	"github.com/ChristianF88/catgene/tui"
	"github.com/ChristianF88/catgene/view"
)

// OutputConfig contains output formatting options
type OutputConfig struct {
	Compact bool
	Plain   bool
	TUI     bool
}

// session is one loaded dataset with its form
type session struct {
	cfg       *config.Config
	ds        *dataset.Dataset
	colorTags []dataset.ColorTag
	form      *form.Form
}

// openSession loads the dataset and color tags named in cfg and builds a
// form over them from the configured values.
func openSession(cfg *config.Config) (*session, error) {
	ds, err := dataset.Load(cfg.Global.Dataset)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	log.Debug("Dataset loaded", "file", cfg.Global.Dataset, "rows", len(ds.Rows()), "columns", len(ds.Columns()))

	var tags []dataset.ColorTag
	if cfg.Global.ColorTags != "" {
		if tags, err = dataset.LoadColorTags(cfg.Global.ColorTags); err != nil {
			return nil, fmt.Errorf("loading color tags: %w", err)
		}
		log.Debug("Color tags loaded", "count", len(tags))
	}

	f := form.New(form.Props{
		InitialValues: cfg.Form.Clone(),
		Dataset:       ds,
		ColorTags:     tags,
	})
	return &session{cfg: cfg, ds: ds, colorTags: tags, form: f}, nil
}

// fieldErrors lists the field errors of a form in field order
func fieldErrors(f *form.Form) []string {
	fieldErrs := f.Errors()
	lines := make([]string, 0, len(fieldErrs))
	for field, err := range fieldErrs {
		lines = append(lines, fmt.Sprintf("%s: %v", field, err))
	}
	sort.Strings(lines)
	return lines
}

// run analyzes the submitted values, lays out the view and writes every
// configured output file. The returned report is complete even on error.
func (s *session) run(values form.Values) (*output.JSONOutput, *view.Scene, error) {
	start := time.Now()
	report := output.NewJSONOutput("analyze", start)
	report.General = output.General{
		DatasetFile: s.cfg.Global.Dataset,
		Rows:        len(s.ds.Rows()),
		Columns:     s.ds.Columns(),
		ColorTags:   len(s.colorTags),
	}
	report.Settings = &values
	for _, key := range s.cfg.Unknown {
		report.AddWarning("config", fmt.Sprintf("unknown config key %q", key), 0)
	}

	log.Info("Analyzing", "columns", len(values.FeatureColumns), "root", values.RootCatalyst, "method", values.VisualizationMethod)
	res, err := analysis.Analyze(s.ds, values)
	if err != nil {
		report.AddError("analysis", err.Error(), 0)
		return report, nil, fmt.Errorf("analysis failed: %w", err)
	}
	report.SetResult(res)
	if res.Failed() {
		log.Warn("Analysis stopped", "detail", res.Detail)
	}

	scene, err := view.Build(view.Props{
		Data:      res,
		Options:   s.cfg.ViewOptions(),
		ColorTags: s.colorTags,
	})
	if err != nil {
		// the scene degraded to empty and is still rendered
		report.AddWarning("layout", err.Error(), 0)
		log.Warn("Layout failed, rendering an empty view", "error", err)
	}

	summary := &output.ViewSummary{
		Kind:       scene.Kind.String(),
		TargetID:   scene.TargetID,
		Title:      scene.Options.Title,
		PlotWidth:  scene.PlotWidth,
		PlotHeight: scene.PlotHeight,
	}
	switch {
	case scene.Clustering != nil:
		for _, m := range scene.Clustering.Markers {
			summary.Similar = append(summary.Similar, m.Label)
		}
	case scene.Heatmap != nil:
		for _, m := range scene.Heatmap.Markers {
			summary.Similar = append(summary.Similar, m.Label)
		}
	}
	report.View = summary

	files, err := writeOutputs(s.cfg.Output, scene, res)
	summary.Files = files
	if err != nil {
		report.AddError("output", err.Error(), 0)
		return report, scene, err
	}

	report.UpdateDuration(start)
	return report, scene, nil
}

// writeOutputs renders every configured file and returns the written paths
func writeOutputs(oc *config.OutputConfig, scene *view.Scene, res *analysis.Result) ([]string, error) {
	if oc == nil {
		return nil, nil
	}

	type target struct {
		path   string
		render func(w io.Writer) error
	}
	targets := []target{
		{oc.HTML, func(w io.Writer) error { return output.RenderHTML(w, scene) }},
		{oc.PNG, func(w io.Writer) error { return output.RenderPNG(w, scene) }},
	}
	if len(res.ParallelData) > 0 {
		targets = append(targets, target{oc.Parallel, func(w io.Writer) error { return output.PlotParallel(w, res) }})
	}

	var written []string
	for _, t := range targets {
		if t.path == "" {
			continue
		}
		if err := writeFile(t.path, t.render); err != nil {
			return written, err
		}
		log.Info("Chart saved", "file", t.path)
		written = append(written, t.path)
	}
	return written, nil
}

func writeFile(path string, render func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// Analyze runs the full pipeline for cfg and prints the report to w
func Analyze(cfg *config.Config, oc OutputConfig, w io.Writer) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}

	if oc.TUI {
		return runTUI(s)
	}

	values, err := s.form.Submit()
	if err != nil {
		return err
	}

	report, _, runErr := s.run(values)
	if err := emit(report, cfg.Output.JSON, oc, w); err != nil {
		return err
	}
	return runErr
}

// runTUI shows the interactive form; every submit reruns the pipeline and
// stores the submitted values back into the config file when one was given.
func runTUI(s *session) error {
	app := tui.NewApp(s.form, func(values form.Values) (string, error) {
		report, scene, err := s.run(values)
		if err != nil {
			return "", err
		}
		if s.cfg.Path != "" {
			s.cfg.Form = &values
			if err := s.cfg.Save(s.cfg.Path); err != nil {
				return "", err
			}
		}
		return summarize(report, scene), nil
	})
	return app.Run()
}

// summarize is the one paragraph shown after a submit in the TUI
func summarize(report *output.JSONOutput, scene *view.Scene) string {
	var b strings.Builder
	fmt.Fprintf(&b, "View: %s (%s)\n", scene.Kind, scene.Options.Title)
	if res := report.Result; res != nil {
		if res.Failed() {
			fmt.Fprintf(&b, "Analysis failed: %s\n", res.Detail)
		} else {
			fmt.Fprintf(&b, "Similar to %s: %s\n", res.RootCatalyst, strings.Join(res.SimilarGeneCatalyst, ", "))
		}
	}
	if report.View != nil && len(report.View.Files) > 0 {
		fmt.Fprintf(&b, "Files: %s\n", strings.Join(report.View.Files, ", "))
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", warning.Message)
	}
	return b.String()
}

// emit writes the report to jsonPath when set and to w in the requested format
func emit(report *output.JSONOutput, jsonPath string, oc OutputConfig, w io.Writer) error {
	if jsonPath != "" {
		data, err := report.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to marshal JSON output: %w", err)
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			return fmt.Errorf("could not write %s: %w", jsonPath, err)
		}
		log.Info("Report saved", "file", jsonPath)
	}
	return outputResult(report, oc, w)
}

// outputResult is the unified output function that handles all output formats
func outputResult(report *output.JSONOutput, oc OutputConfig, w io.Writer) error {
	if oc.Plain {
		outputPlain(report, w)
		return nil
	}

	var data []byte
	var err error
	if oc.Compact {
		data, err = report.ToCompactJSON()
	} else {
		data, err = report.ToJSON()
	}
	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

const (
	rule    = "==============================================================================="
	subRule = "-------------------------------------------------------------------------------"
)

// outputPlain formats the report as human-readable plain text
func outputPlain(report *output.JSONOutput, w io.Writer) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "                          catgene Analysis Results")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "OVERVIEW")
	fmt.Fprintln(w, subRule)
	fmt.Fprintf(w, "Dataset:         %s\n", report.General.DatasetFile)
	fmt.Fprintf(w, "Rows:            %s\n", formatNumber(report.General.Rows))
	fmt.Fprintf(w, "Generated:       %s\n", report.Metadata.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "Duration:        %d ms\n", report.Metadata.DurationMS)
	if report.View != nil {
		fmt.Fprintf(w, "View:            %s\n", report.View.Kind)
	}
	fmt.Fprintln(w)

	if res := report.Result; res != nil && !res.Failed() {
		fmt.Fprintf(w, "GENES (root %s)\n", res.RootCatalyst)
		fmt.Fprintln(w, subRule)
		for _, row := range res.DistanceTable {
			fmt.Fprintf(w, "  %-24s  %-16s  distance %d\n", row.Catalyst, row.Gene, row.Distance)
		}
		fmt.Fprintln(w)

		if len(res.SimilarGeneCatalyst) > 0 {
			fmt.Fprintf(w, "Similar catalysts: %s\n\n", strings.Join(res.SimilarGeneCatalyst, ", "))
		}

		if len(res.PatternCounts) > 0 {
			fmt.Fprintln(w, "PATTERNS")
			fmt.Fprintln(w, subRule)
			thresholds := make([]int, 0, len(res.PatternCounts))
			for d := range res.PatternCounts {
				thresholds = append(thresholds, d)
			}
			sort.Ints(thresholds)
			for _, d := range thresholds {
				var parts []string
				for _, pc := range res.PatternCounts[d] {
					parts = append(parts, fmt.Sprintf("%s=%d", pc.Combination, pc.Counts))
				}
				fmt.Fprintf(w, "  <= %d: %s\n", d, strings.Join(parts, " "))
			}
			fmt.Fprintln(w)
		}
	}

	if len(report.Warnings) > 0 || len(report.Errors) > 0 {
		fmt.Fprintln(w, "DIAGNOSTICS")
		fmt.Fprintln(w, subRule)
		for _, warning := range report.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warning.Message)
		}
		for _, e := range report.Errors {
			fmt.Fprintf(w, "  error:   %s\n", e.Message)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, rule)
}

// formatNumber adds thousand separators to numbers
func formatNumber(n int) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}
	return result.String()
}
