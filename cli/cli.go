package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	cli "github.com/urfave/cli/v2"

	"github.com/ChristianF88/catgene/config"
	"github.com/ChristianF88/catgene/dataset"
	"github.com/ChristianF88/catgene/form"
	"github.com/ChristianF88/catgene/layout"
	"github.com/ChristianF88/catgene/version"
)

// parseDate attempts to parse the build date
func parseDate(d string) time.Time {
	t, err := time.Parse(time.RFC3339, d)
	if err != nil {
		return time.Now()
	}
	return t
}

// Shared flag definitions to eliminate duplication
var (
	// Configuration flags
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to configuration file (mutually exclusive with the analysis flags)",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "logLevel",
		Usage: "Log level: debug, info, warn, error",
		Value: "info",
	}

	// Input flags
	datasetFlag = &cli.StringFlag{
		Name:    "dataset",
		Aliases: []string{"d"},
		Usage:   "Path to the dataset (JSON {main:{schema,data}} or CSV with a header row)",
	}
	colorTagsFlag = &cli.StringFlag{
		Name:  "colorTags",
		Usage: "Path to a JSON list of {id, color} color tags",
	}
	catalystColumnFlag = &cli.StringFlag{
		Name:  "catalystColumn",
		Usage: "Column holding the catalyst names",
		Value: form.DefaultCatalystColumn,
	}

	// Form flags
	featureColumnsFlag = &cli.StringSliceFlag{
		Name:  "featureColumns",
		Usage: "Columns to build genes from, at least 3 (e.g., 'Fe,Co,Ni')",
	}
	rootFlag = &cli.StringFlag{
		Name:  "root",
		Usage: "Root catalyst all genes are compared against",
	}
	visualizationFlag = &cli.StringFlag{
		Name:  "visualization",
		Usage: fmt.Sprintf("Visualization method: %s", strings.Join(form.VisualizationMethods, " | ")),
		Value: form.VisHierarchicalClustering,
	}
	preprocFlag = &cli.StringFlag{
		Name:  "preprocess",
		Usage: fmt.Sprintf("Enable preprocessing with one of: %s", strings.Join(form.PreprocMethods, ", ")),
	}
	scalingMinFlag = &cli.Float64Flag{
		Name:  "scalingMin",
		Usage: "Lower bound for MinMaxScaler",
		Value: 0,
	}
	scalingMaxFlag = &cli.Float64Flag{
		Name:  "scalingMax",
		Usage: "Upper bound for MinMaxScaler",
		Value: 1,
	}
	clusteringMethodFlag = &cli.StringFlag{
		Name:  "clusteringMethod",
		Usage: fmt.Sprintf("Linkage method: %s", strings.Join(form.ClusteringMethods, ", ")),
		Value: form.DefaultClusteringMethod,
	}
	distanceBorderFlag = &cli.IntFlag{
		Name:  "distanceBorder",
		Usage: "Maximum gene edit distance for a catalyst to count as similar",
		Value: form.DefaultDistanceBorder,
	}
	componentColumnsFlag = &cli.StringSliceFlag{
		Name:  "componentColumns",
		Usage: "Columns holding element names for pattern counting",
	}

	// Output flags
	htmlFlag = &cli.StringFlag{
		Name:  "html",
		Usage: "Path where to save the interactive chart (e.g., '/path/to/genes.html')",
	}
	pngFlag = &cli.StringFlag{
		Name:  "png",
		Usage: "Path where to save the chart as PNG",
	}
	parallelFlag = &cli.StringFlag{
		Name:  "parallel",
		Usage: "Path where to save the parallel coordinate PNG of the gene areas",
	}
	jsonFlag = &cli.StringFlag{
		Name:  "json",
		Usage: "Path where to save the JSON report in addition to stdout",
	}
	titleFlag = &cli.StringFlag{
		Name:  "title",
		Usage: "Chart title",
	}
	colorMapFlag = &cli.StringFlag{
		Name:  "colorMap",
		Usage: "Heatmap color map (see 'catgene colormaps')",
	}
	compactFlag = &cli.BoolFlag{
		Name:  "compact",
		Usage: "Output compact JSON (no pretty printing)",
		Value: false,
	}
	plainFlag = &cli.BoolFlag{
		Name:  "plain",
		Usage: "Output plain text format for easy readability",
		Value: false,
	}
	tuiFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Launch the interactive form instead of analyzing right away",
		Value: false,
	}

	// Options command flags
	filterFlag = &cli.StringFlag{
		Name:  "filter",
		Usage: "Only list options whose text contains this (case insensitive)",
	}
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Where to write the generated config file",
		Value:   config.DefaultConfigFile,
	}
)

// flags that describe an analysis and therefore conflict with --config
var analysisFlags = []string{
	"dataset", "colorTags", "catalystColumn", "featureColumns", "root", "visualization",
	"preprocess", "scalingMin", "scalingMax", "clusteringMethod", "distanceBorder",
	"componentColumns", "html", "png", "parallel", "json", "title", "colorMap",
}

// Shared validation functions
func validateConfigModeFlags(c *cli.Context) error {
	for _, flag := range analysisFlags {
		if c.IsSet(flag) {
			return fmt.Errorf("when using --config, only the tui, compact and plain flags are allowed (got --%s)", flag)
		}
	}
	return nil
}

func validateOutputPath(path string) error {
	if path != "" {
		dir := filepath.Dir(path)
		if dir == "." {
			dir, _ = os.Getwd()
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("output directory does not exist: %s", dir)
		}
	}
	return nil
}

// createConfigFromCLI creates a config.Config from CLI flags, the same
// structure a config file produces
func createConfigFromCLI(c *cli.Context) *config.Config {
	cfg := config.Default()
	cfg.Global.LogLevel = c.String("logLevel")
	cfg.Global.Dataset = c.String("dataset")
	cfg.Global.ColorTags = c.String("colorTags")

	values := cfg.Form
	values.CatalystColumn = c.String("catalystColumn")
	values.FeatureColumns = splitList(c.StringSlice("featureColumns"))
	values.RootCatalyst = c.String("root")
	values.VisualizationMethod = c.String("visualization")
	if method := c.String("preprocess"); method != "" {
		values.PreprocessingEnabled = true
		values.PreprocMethod = method
	}
	values.Options.Scaling = form.Scaling{Min: c.Float64("scalingMin"), Max: c.Float64("scalingMax")}
	values.ClusteringMethod = c.String("clusteringMethod")
	values.DistanceBorder = c.Int("distanceBorder")
	values.ComponentColumns = splitList(c.StringSlice("componentColumns"))

	cfg.View.Title = c.String("title")
	cfg.View.ColorMap = c.String("colorMap")

	cfg.Output.HTML = c.String("html")
	cfg.Output.PNG = c.String("png")
	cfg.Output.Parallel = c.String("parallel")
	cfg.Output.JSON = c.String("json")
	return cfg
}

// splitList accepts both repeated flags and comma separated values
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// loadConfig reads --config or builds the configuration from flags
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	if configPath == "" {
		if !c.IsSet("dataset") {
			return nil, fmt.Errorf("dataset is required when not using --config")
		}
		return createConfigFromCLI(c), nil
	}

	if err := validateConfigModeFlags(c); err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for _, key := range cfg.Unknown {
		log.Warn("Unknown config key", "key", key, "file", configPath)
	}
	if !c.IsSet("logLevel") {
		level, err := cfg.GetLogLevel()
		if err != nil {
			return nil, fmt.Errorf("invalid logLevel in config: %w", err)
		}
		log.SetLevel(level)
	}
	return cfg, nil
}

// Command handler functions to reduce deep nesting

// handleAnalyzeCommand runs the analysis and writes the requested outputs
func handleAnalyzeCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for _, path := range []string{cfg.Output.HTML, cfg.Output.PNG, cfg.Output.Parallel, cfg.Output.JSON} {
		if err := validateOutputPath(path); err != nil {
			return err
		}
	}

	return Analyze(cfg, OutputConfig{
		Compact: c.Bool("compact"),
		Plain:   c.Bool("plain"),
		TUI:     c.Bool("tui"),
	}, c.App.Writer)
}

// handleValidateCommand checks a configuration against its dataset without analyzing
func handleValidateCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	w := c.App.Writer
	if s.form.Valid() {
		fmt.Fprintln(w, "configuration is valid")
		return nil
	}
	for _, line := range fieldErrors(s.form) {
		fmt.Fprintln(w, line)
	}
	return form.ErrNotSubmittable
}

// handleOptionsCommand lists the catalyst dropdown options of a dataset
func handleOptionsCommand(c *cli.Context) error {
	if !c.IsSet("dataset") {
		return fmt.Errorf("dataset is required")
	}
	ds, err := dataset.Load(c.String("dataset"))
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	options := form.MakeCatalystOptions(ds.Rows(), c.String("catalystColumn"))
	if path := c.String("colorTags"); path != "" {
		tags, err := dataset.LoadColorTags(path)
		if err != nil {
			return fmt.Errorf("loading color tags: %w", err)
		}
		options = form.ColorTagOptions(tags)
	}
	options = form.FilterOptions(options, c.String("filter"))

	printOptions(c.App.Writer, options)
	return nil
}

func printOptions(w io.Writer, options []form.Option) {
	for _, o := range options {
		fmt.Fprintf(w, "%s\t%s\n", o.Key, o.Text)
	}
}

// handleColorMapsCommand lists the known color maps with their palette size
func handleColorMapsCommand(c *cli.Context) error {
	for _, name := range layout.ColorMapNames() {
		fmt.Fprintf(c.App.Writer, "%-12s %d\n", name, layout.CmMax[name])
	}
	return nil
}

// handleInitCommand writes a default configuration file
func handleInitCommand(c *cli.Context) error {
	path := c.String("output")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	cfg := config.Default()
	cfg.Global.Dataset = c.String("dataset")
	if err := cfg.Save(path); err != nil {
		return err
	}
	log.Info("Config written", "file", path)
	return nil
}

// setupLogging routes charmbracelet/log to stderr so stdout stays clean JSON
func setupLogging(c *cli.Context) error {
	log.SetOutput(c.App.ErrWriter)
	log.SetPrefix("catgene")
	level, err := log.ParseLevel(c.String("logLevel"))
	if err != nil {
		return fmt.Errorf("invalid --logLevel: %w", err)
	}
	log.SetLevel(level)
	return nil
}

var analysisCommandFlags = []cli.Flag{
	// Configuration
	configFlag,
	// Input
	datasetFlag,
	colorTagsFlag,
	catalystColumnFlag,
	// Form
	featureColumnsFlag,
	rootFlag,
	visualizationFlag,
	preprocFlag,
	scalingMinFlag,
	scalingMaxFlag,
	clusteringMethodFlag,
	distanceBorderFlag,
	componentColumnsFlag,
	// Output
	htmlFlag,
	pngFlag,
	parallelFlag,
	jsonFlag,
	titleFlag,
	colorMapFlag,
	compactFlag,
	plainFlag,
	tuiFlag,
}

var App = &cli.App{
	Name:     "catgene",
	Usage:    "Compare catalysts by their feature genes",
	Version:  version.Version,
	Compiled: parseDate(version.Date),
	Flags:    []cli.Flag{logLevelFlag},
	Before:   setupLogging,
	Commands: []*cli.Command{
		{
			Name:  "analyze",
			Usage: "Build genes, cluster the catalysts and render the chart",
			Description: heredoc.Doc(`
				Every row of the dataset becomes a gene: the selected feature columns are
				averaged pairwise into areas, binned into 16 levels and written as letters.
				Catalysts whose gene is within --distanceBorder edits of the root catalyst
				are marked as similar in the chart.

				Examples:
				  catgene analyze -d catalysts.json --featureColumns Fe,Co,Ni,Cu --root Cat-01 --html genes.html
				  catgene analyze --config catgene.toml --plain
				  catgene analyze --config catgene.toml --tui
			`),
			Flags:  analysisCommandFlags,
			Action: handleAnalyzeCommand,
		},
		{
			Name:  "validate",
			Usage: "Check a configuration and its form values against the dataset",
			Description: heredoc.Doc(`
				Runs the same field validation as the interactive form and prints one
				line per field in error. Exits non-zero when the form cannot be submitted.
			`),
			Flags:  analysisCommandFlags,
			Action: handleValidateCommand,
		},
		{
			Name:  "options",
			Usage: "List the catalyst options of a dataset",
			Flags: []cli.Flag{
				datasetFlag,
				catalystColumnFlag,
				colorTagsFlag,
				filterFlag,
			},
			Action: handleOptionsCommand,
		},
		{
			Name:   "colormaps",
			Usage:  "List the available heatmap color maps",
			Action: handleColorMapsCommand,
		},
		{
			Name:  "init",
			Usage: "Write a default configuration file",
			Flags: []cli.Flag{
				outputFlag,
				datasetFlag,
			},
			Action: handleInitCommand,
		},
	},
}
