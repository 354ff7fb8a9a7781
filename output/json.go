package output

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ChristianF88/catgene/analysis"
	"github.com/ChristianF88/catgene/form"
	"github.com/ChristianF88/catgene/version"
)

// JSONOutput is the machine readable report of one analysis run
type JSONOutput struct {
	Metadata Metadata         `json:"metadata"`
	General  General          `json:"general"`
	Settings *form.Values     `json:"settings,omitempty"`
	Result   *analysis.Result `json:"result,omitempty"`
	View     *ViewSummary     `json:"view,omitempty"`
	Warnings []Warning        `json:"warnings"`
	Errors   []Error          `json:"errors"`

	// guards Warnings and Errors
	mu sync.Mutex `json:"-"`
}

// Metadata contains information about the run
type Metadata struct {
	GeneratedAt  time.Time `json:"generated_at"`
	AnalysisType string    `json:"analysis_type"`
	Version      string    `json:"version"`
	DurationMS   int64     `json:"duration_ms"`
}

// General describes the input dataset
type General struct {
	DatasetFile string   `json:"dataset_file,omitempty"`
	Rows        int      `json:"rows"`
	Columns     []string `json:"columns"`
	ColorTags   int      `json:"color_tags,omitempty"`
}

// ViewSummary is what the view layer made of the result
type ViewSummary struct {
	Kind       string   `json:"kind"`
	TargetID   string   `json:"target_id"`
	Title      string   `json:"title"`
	PlotWidth  float64  `json:"plot_width"`
	PlotHeight float64  `json:"plot_height"`
	Similar    []string `json:"similar_markers,omitempty"`
	Files      []string `json:"files,omitempty"`
}

// Warning represents a warning message
type Warning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// Error represents an error message
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// NewJSONOutput creates a report with its metadata filled in
func NewJSONOutput(analysisType string, startTime time.Time) *JSONOutput {
	return &JSONOutput{
		Metadata: Metadata{
			GeneratedAt:  time.Now().UTC(),
			AnalysisType: analysisType,
			Version:      version.Version,
			DurationMS:   time.Since(startTime).Milliseconds(),
		},
		General:  General{Columns: []string{}},
		Warnings: []Warning{},
		Errors:   []Error{},
	}
}

// SetResult attaches an analysis result and copies its warnings into the report
func (j *JSONOutput) SetResult(res *analysis.Result) {
	j.Result = res
	if res == nil {
		return
	}
	for _, w := range res.Warnings {
		j.AddWarning("analysis", w, 0)
	}
	if res.Failed() {
		j.AddError("analysis", res.Detail, 0)
	}
}

// ToJSON converts the output to pretty-printed JSON
func (j *JSONOutput) ToJSON() ([]byte, error) {
	return json.MarshalIndent(j, "", "  ")
}

// ToCompactJSON converts the output to compact JSON
func (j *JSONOutput) ToCompactJSON() ([]byte, error) {
	return json.Marshal(j)
}

// AddWarning adds a warning to the output (thread-safe)
func (j *JSONOutput) AddWarning(warningType, message string, count int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Warnings = append(j.Warnings, Warning{
		Type:    warningType,
		Message: message,
		Count:   count,
	})
}

// AddError adds an error to the output (thread-safe)
func (j *JSONOutput) AddError(errorType, message string, count int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Errors = append(j.Errors, Error{
		Type:    errorType,
		Message: message,
		Count:   count,
	})
}

// UpdateDuration updates the duration in metadata
func (j *JSONOutput) UpdateDuration(startTime time.Time) {
	j.Metadata.DurationMS = time.Since(startTime).Milliseconds()
}
