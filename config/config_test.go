package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ChristianF88/catgene/form"
	"github.com/ChristianF88/catgene/view"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catgene.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"main":{"data":[]}}`), 0644); err != nil {
		t.Fatalf("Failed to write dataset: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	testConfigContent := `
[global]
logLevel = "debug"
dataset = "catalysts.json"
colorTags = "tags.json"

[form]
featureColumns = ["Fe", "Co", "Ni"]
rootCatalyst = "Cat-01"
visualizationMethod = "Heatmap"
preprocessingEnabled = true
preprocMethod = "MinMaxScaler"
clusteringMethod = "average"
distanceBorder = 3

[form.options.scaling]
min = -1.0
max = 1.0

[view]
title = "My Genes"
colorMap = "Viridis"
colorMapperMinMax = [0.0, 10.0]
heatValUnit = "%%"

[view.extent]
width = 800
height = 400

[output]
html = "out.html"
png = "out.png"
`
	config, err := LoadConfig(writeConfig(t, testConfigContent))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Global.LogLevel != "debug" || config.Global.Dataset != "catalysts.json" || config.Global.ColorTags != "tags.json" {
		t.Errorf("Unexpected global config: %+v", config.Global)
	}

	f := config.Form
	if len(f.FeatureColumns) != 3 || f.RootCatalyst != "Cat-01" || f.VisualizationMethod != form.VisHeatmap {
		t.Errorf("Unexpected form values: %+v", f)
	}
	if !f.PreprocessingEnabled || f.PreprocMethod != form.PreprocMinMaxScaler {
		t.Errorf("Preprocessing not loaded: %+v", f)
	}
	if f.Options.Scaling.Min != -1 || f.Options.Scaling.Max != 1 {
		t.Errorf("Scaling not loaded: %+v", f.Options.Scaling)
	}
	if f.ClusteringMethod != "average" || f.DistanceBorder != 3 {
		t.Errorf("Clustering settings not loaded: %+v", f)
	}
	// keys missing from the file keep their defaults
	if f.CatalystColumn != form.DefaultCatalystColumn || f.Options.Extent.Width != 600 {
		t.Errorf("Defaults lost: %+v", f)
	}

	v := config.ViewOptions()
	if v.Title != "My Genes" || v.ColorMap != "Viridis" || v.HeatValUnit != "%%" {
		t.Errorf("Unexpected view options: %+v", v)
	}
	if v.Extent == nil || v.Extent.Width != 800 || v.Extent.Height != 400 {
		t.Errorf("Unexpected view extent: %+v", v.Extent)
	}
	if v.Margin != nil {
		t.Errorf("Unset nested view options should stay nil")
	}

	if config.Output.HTML != "out.html" || config.Output.PNG != "out.png" || config.Output.JSON != "" {
		t.Errorf("Unexpected output config: %+v", config.Output)
	}
	if len(config.Unknown) != 0 {
		t.Errorf("Expected no unknown keys, got %v", config.Unknown)
	}

	level, err := config.GetLogLevel()
	if err != nil || level != log.DebugLevel {
		t.Errorf("GetLogLevel() = %v, %v", level, err)
	}
}

func TestLoadConfigWithMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.toml")
	if err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoadConfigWithInvalidTOML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[global\nlogLevel = "))
	if err == nil {
		t.Error("Expected error for invalid TOML")
	}
}

func TestLoadConfigWithEmptyFile(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Failed to load empty config: %v", err)
	}

	if config.Global == nil || config.Form == nil || config.View == nil || config.Output == nil {
		t.Fatal("All sections should be initialized")
	}
	if config.Form.ClusteringMethod != form.DefaultClusteringMethod {
		t.Errorf("Expected default clustering method, got %q", config.Form.ClusteringMethod)
	}
	if level, _ := config.GetLogLevel(); level != log.InfoLevel {
		t.Errorf("Expected info level by default, got %v", level)
	}
}

func TestLoadConfigUnknownKeys(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, `
[global]
logFile = "/var/log/x.log"

[view]
colour = "red"
`))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	want := []string{"global.logFile", "view.colour"}
	if strings.Join(config.Unknown, ",") != strings.Join(want, ",") {
		t.Errorf("Unknown = %v, want %v", config.Unknown, want)
	}
}

func TestGlobalCatalystColumn(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, `
[global]
catalystColumn = "Name"
`))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Form.CatalystColumn != "Name" {
		t.Errorf("Global catalystColumn should apply, got %q", config.Form.CatalystColumn)
	}

	config, err = LoadConfig(writeConfig(t, `
[global]
catalystColumn = "Name"

[form]
catalystColumn = "Label"
`))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Form.CatalystColumn != "Label" {
		t.Errorf("Form catalystColumn should win, got %q", config.Form.CatalystColumn)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	config := Default()
	config.Global.Dataset = "data.json"
	config.Form.FeatureColumns = []string{"Fe", "Co", "Ni"}
	config.Form.RootCatalyst = "Cat-02"
	config.View = &view.Options{Title: "Saved", Margin: &view.Margin{L: 5, R: 5, T: 5, B: 5}}
	config.Output.JSON = "report.json"

	path := filepath.Join(t.TempDir(), "saved.toml")
	if err := config.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.Form.RootCatalyst != "Cat-02" || len(loaded.Form.FeatureColumns) != 3 {
		t.Errorf("Form values not saved: %+v", loaded.Form)
	}
	if loaded.View.Title != "Saved" || loaded.View.Margin == nil || loaded.View.Margin.L != 5 {
		t.Errorf("View options not saved: %+v", loaded.View)
	}
	if loaded.View.Extent != nil {
		t.Errorf("Nil view extent should not be written")
	}
	if loaded.Output.JSON != "report.json" || loaded.Global.Dataset != "data.json" {
		t.Errorf("Output or global not saved")
	}
	if len(loaded.Unknown) != 0 {
		t.Errorf("Saved config should reload without unknown keys, got %v", loaded.Unknown)
	}
}

func TestValidate(t *testing.T) {
	dataset := writeDataset(t)

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing dataset", func(c *Config) { c.Global.Dataset = "" }, "dataset is required"},
		{"nonexistent dataset", func(c *Config) { c.Global.Dataset = "/nonexistent/data.json" }, "dataset does not exist"},
		{"bad log level", func(c *Config) { c.Global.LogLevel = "loud" }, "logLevel"},
		{"bad visualization", func(c *Config) { c.Form.VisualizationMethod = "Pie" }, "unknown visualizationMethod"},
		{"bad clustering", func(c *Config) { c.Form.ClusteringMethod = "nearest" }, "unknown clusteringMethod"},
		{"bad preproc", func(c *Config) {
			c.Form.PreprocessingEnabled = true
			c.Form.PreprocMethod = "Whiten"
		}, "unknown preprocMethod"},
		{"preproc ignored when disabled", func(c *Config) { c.Form.PreprocMethod = "Whiten" }, ""},
		{"inverted scaling", func(c *Config) {
			c.Form.PreprocessingEnabled = true
			c.Form.PreprocMethod = form.PreprocMinMaxScaler
			c.Form.Options.Scaling = form.Scaling{Min: 2, Max: 1}
		}, "scaling min"},
		{"negative border", func(c *Config) { c.Form.DistanceBorder = -1 }, "distanceBorder"},
		{"bad color map", func(c *Config) { c.View.ColorMap = "Rainbow" }, "unknown colorMap"},
		{"bad color", func(c *Config) { c.View.Colors = []string{"#12"} }, "invalid color"},
		{"bad min max", func(c *Config) { c.View.ColorMapperMinMax = []float64{1} }, "colorMapperMinMax"},
		{"bad range", func(c *Config) { c.View.XRange = []float64{1, 2, 3} }, "x_range"},
		{"bad extent", func(c *Config) { c.View.Extent = &view.Extent{Width: 0, Height: 10} }, "view extent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			c.Global.Dataset = dataset
			tt.modify(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	c := Default()
	c.Form.ClusteringMethod = "nearest"
	c.View.ColorMap = "Rainbow"
	err := c.Validate()
	if err == nil {
		t.Fatal("Expected validation errors")
	}
	for _, want := range []string{"dataset is required", "clusteringMethod", "colorMap"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %v", want, err)
		}
	}
}

func FuzzLoadConfig(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("[global]\ndataset = \"x.json\"\n"))
	f.Add([]byte("[form]\nfeatureColumns = [\"a\", \"b\", \"c\"]\n[form.options.extent]\nwidth = 10\n"))
	f.Add([]byte("[view]\ncolors = [\"#ff0000\"]\nx_range = [0.0, 1.0]\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		path := filepath.Join(t.TempDir(), "fuzz.toml")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return
		}
		// invalid configs return errors, they never panic
		if c, err := LoadConfig(path); err == nil {
			_ = c.Validate()
		}
	})
}
