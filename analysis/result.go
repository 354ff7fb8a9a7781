package analysis

import (
	"github.com/ChristianF88/catgene/layout"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// DetailTooFewColumns is reported when coercion leaves fewer than three numeric columns
const DetailTooFewColumns = "More than 3 valid columns are required"

// Result is the chart data produced for one set of form values
type Result struct {
	Status              string   `json:"status"`
	Detail              string   `json:"detail,omitempty"`
	FeatureColumns      []string `json:"featureColumns"`
	VisualizationMethod string   `json:"visualizationMethod"`
	RootCatalyst        string   `json:"rootCatalyst"`

	ScaledData     map[string][]float64 `json:"scaledData,omitempty"`
	ColumnsForGene []string             `json:"columnsForGene,omitempty"`

	ClusteringData  []layout.Segment `json:"clusteringData,omitempty"`
	ClusteringTicks []string         `json:"clusteringTicks,omitempty"`
	Leaves          []int            `json:"leaves,omitempty"`

	AreaColumns []string             `json:"areaColumns,omitempty"`
	AreaData    map[string][]float64 `json:"areaData,omitempty"`
	Genes       []string             `json:"genes,omitempty"`

	HeatmapData *layout.HeatmapData `json:"heatmapData,omitempty"`

	SimilarGeneCatalyst []string               `json:"similarGeneCatalyst"`
	DistanceTable       []DistanceRow          `json:"distanceTable,omitempty"`
	ParallelData        map[string][]float64   `json:"parallelData,omitempty"`
	PatternCounts       map[int][]PatternCount `json:"patternCounts,omitempty"`
	Warnings            []string               `json:"-"`

	// ResetRequest asks the view to show its reset title once
	ResetRequest bool `json:"resetRequest,omitempty"`
}

// DistanceRow is one catalyst with its gene and its edit distance to the root gene
type DistanceRow struct {
	Row      int       `json:"row"`
	Catalyst string    `json:"catalyst"`
	Gene     string    `json:"gene"`
	Distance int       `json:"distance"`
	Areas    []float64 `json:"areas"`
}

// PatternCount is how often a component pair occurs within a distance threshold
type PatternCount struct {
	Combination string `json:"combination"`
	Counts      int    `json:"counts"`
}

// Failed reports whether the analysis stopped early
func (r *Result) Failed() bool {
	return r.Status == StatusError
}

func (r *Result) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
