package view

import (
	"github.com/ChristianF88/catgene/analysis"
	"github.com/ChristianF88/catgene/form"
)

// Kind is the chart variant a view renders
type Kind int

const (
	KindEmpty Kind = iota
	KindClustering
	KindHeatmap
)

func (k Kind) String() string {
	switch k {
	case KindClustering:
		return "clustering"
	case KindHeatmap:
		return "heatmap"
	default:
		return "empty"
	}
}

// Select picks the chart variant for data. Without scaled data or a
// visualization method, and for methods without a chart, the view is empty.
func Select(data *analysis.Result) Kind {
	if data == nil || len(data.ScaledData) == 0 || data.VisualizationMethod == "" {
		return KindEmpty
	}
	switch data.VisualizationMethod {
	case form.VisHierarchicalClustering:
		return KindClustering
	case form.VisHeatmap:
		return KindHeatmap
	default:
		return KindEmpty
	}
}
