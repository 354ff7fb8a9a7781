package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/ChristianF88/catgene/form"
	"github.com/ChristianF88/catgene/layout"
	"github.com/ChristianF88/catgene/view"
)

var HomeDir string = os.Getenv("HOME")
var DefaultConfigFile string = filepath.Join(HomeDir, ".catgene.toml")

type GlobalConfig struct {
	LogLevel       string `toml:"logLevel"`
	Dataset        string `toml:"dataset"`
	ColorTags      string `toml:"colorTags,omitempty"`
	CatalystColumn string `toml:"catalystColumn,omitempty"`
}

type OutputConfig struct {
	HTML     string `toml:"html,omitempty"`
	PNG      string `toml:"png,omitempty"`
	Parallel string `toml:"parallel,omitempty"`
	JSON     string `toml:"json,omitempty"`
}

// Config is the TOML configuration file: dataset location, the form values
// to analyze with, display options and output paths.
type Config struct {
	Global *GlobalConfig `toml:"global"`
	Form   *form.Values  `toml:"form"`
	View   *view.Options `toml:"view,omitempty"`
	Output *OutputConfig `toml:"output,omitempty"`

	// Path is the file the config was loaded from
	Path string `toml:"-"`
	// keys present in the file that no section understands
	Unknown []string `toml:"-"`
}

// Default returns a configuration with every section present
func Default() *Config {
	values := form.DefaultValues()
	return &Config{
		Global: &GlobalConfig{LogLevel: "info"},
		Form:   &values,
		View:   &view.Options{},
		Output: &OutputConfig{},
	}
}

func LoadConfig(configPath string) (*Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	config.Path = configPath
	md, err := toml.Decode(string(configData), config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	for _, key := range md.Undecoded() {
		config.Unknown = append(config.Unknown, key.String())
	}
	sort.Strings(config.Unknown)

	if config.Global.CatalystColumn != "" && !md.IsDefined("form", "catalystColumn") {
		config.Form.CatalystColumn = config.Global.CatalystColumn
	}

	return config, nil
}

// Save writes the configuration back as TOML
func (c *Config) Save(configPath string) error {
	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("could not create config file %s: %w", configPath, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("writing config file %s: %w", configPath, err)
	}
	return nil
}

// GetLogLevel parses [global] logLevel, defaulting to info
func (c *Config) GetLogLevel() (log.Level, error) {
	if c.Global == nil || c.Global.LogLevel == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(c.Global.LogLevel)
}

// ViewOptions returns the [view] section, never nil
func (c *Config) ViewOptions() view.Options {
	if c.View == nil {
		return view.Options{}
	}
	return *c.View
}

// Validate checks the settings that do not depend on the dataset contents.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Global == nil {
		return fmt.Errorf("global configuration section is required")
	}
	if _, err := c.GetLogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("logLevel: %w", err))
	}
	if c.Global.Dataset == "" {
		errs = append(errs, fmt.Errorf("dataset is required in global configuration"))
	} else if _, err := os.Stat(c.Global.Dataset); os.IsNotExist(err) {
		errs = append(errs, fmt.Errorf("dataset does not exist: %s", c.Global.Dataset))
	}
	if c.Global.ColorTags != "" {
		if _, err := os.Stat(c.Global.ColorTags); os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("colorTags file does not exist: %s", c.Global.ColorTags))
		}
	}

	if c.Form == nil {
		errs = append(errs, fmt.Errorf("form configuration section is required"))
	} else {
		errs = append(errs, validateForm(c.Form)...)
	}

	if c.View != nil {
		errs = append(errs, validateView(c.View)...)
	}

	return errors.Join(errs...)
}

func validateForm(v *form.Values) []error {
	var errs []error
	if v.VisualizationMethod != "" && !slices.Contains(form.VisualizationMethods, v.VisualizationMethod) {
		errs = append(errs, fmt.Errorf("unknown visualizationMethod %q (choose from %s)",
			v.VisualizationMethod, strings.Join(form.VisualizationMethods, ", ")))
	}
	if v.PreprocessingEnabled && v.PreprocMethod != "" && !slices.Contains(form.PreprocMethods, v.PreprocMethod) {
		errs = append(errs, fmt.Errorf("unknown preprocMethod %q (choose from %s)",
			v.PreprocMethod, strings.Join(form.PreprocMethods, ", ")))
	}
	if v.Method != "" && !slices.Contains(form.Methods, v.Method) {
		errs = append(errs, fmt.Errorf("unknown method %q", v.Method))
	}
	if v.ClusteringMethod != "" && !slices.Contains(form.ClusteringMethods, v.ClusteringMethod) {
		errs = append(errs, fmt.Errorf("unknown clusteringMethod %q (choose from %s)",
			v.ClusteringMethod, strings.Join(form.ClusteringMethods, ", ")))
	}
	if v.DistanceBorder < 0 {
		errs = append(errs, fmt.Errorf("distanceBorder must not be negative, got %d", v.DistanceBorder))
	}
	if v.PreprocessingEnabled && v.PreprocMethod == form.PreprocMinMaxScaler &&
		v.Options.Scaling.Min >= v.Options.Scaling.Max {
		errs = append(errs, fmt.Errorf("scaling min (%g) must be smaller than max (%g)",
			v.Options.Scaling.Min, v.Options.Scaling.Max))
	}
	if v.Options.Extent.Width < 0 || v.Options.Extent.Height < 0 {
		errs = append(errs, fmt.Errorf("extent must not be negative"))
	}
	return errs
}

func validateView(o *view.Options) []error {
	var errs []error
	if o.ColorMap != "" {
		if _, ok := layout.CmMax[o.ColorMap]; !ok {
			errs = append(errs, fmt.Errorf("unknown colorMap %q (choose from %s)",
				o.ColorMap, strings.Join(layout.ColorMapNames(), ", ")))
		}
	}
	for _, c := range o.Colors {
		if _, err := layout.ParseColor(c); err != nil {
			errs = append(errs, err)
		}
	}
	if n := len(o.ColorMapperMinMax); n != 0 && n != 2 {
		errs = append(errs, fmt.Errorf("colorMapperMinMax needs exactly 2 values, got %d", n))
	}
	if n := len(o.XRange); n != 0 && n != 2 {
		errs = append(errs, fmt.Errorf("x_range needs exactly 2 values, got %d", n))
	}
	if n := len(o.YRange); n != 0 && n != 2 {
		errs = append(errs, fmt.Errorf("y_range needs exactly 2 values, got %d", n))
	}
	if o.Extent != nil && (o.Extent.Width <= 0 || o.Extent.Height <= 0) {
		errs = append(errs, fmt.Errorf("view extent must be positive, got %dx%d", o.Extent.Width, o.Extent.Height))
	}
	return errs
}
