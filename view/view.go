// Package view turns analysis results and display options into a laid out scene.
package view

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ChristianF88/catgene/analysis"
	"github.com/ChristianF88/catgene/dataset"
	"github.com/ChristianF88/catgene/layout"
)

// Props is everything a view is rendered from
type Props struct {
	Data                    *analysis.Result
	Options                 Options
	ColorTags               []dataset.ColorTag
	SelectedIndices         []int
	OnSelectedIndicesChange func(indices []int)
}

// Scene is one fully laid out view, ready for a renderer
type Scene struct {
	Kind       Kind
	TargetID   string
	Options    Options
	PlotWidth  float64
	PlotHeight float64

	Clustering *layout.Clustering
	Heatmap    *layout.Heatmap

	ColorTags       []dataset.ColorTag
	SelectedIndices []int

	// kept for selection linking; the clustering and heatmap charts never call it
	onSelectedIndicesChange func(indices []int)
}

// Build merges the options over the defaults and lays out the selected chart.
// When the layout fails Build returns an empty scene together with the error.
func Build(p Props) (*Scene, error) {
	opts := DefaultOptions().Merge(p.Options)
	if p.Data != nil && p.Data.ResetRequest {
		opts.Title = ResetTitle
		p.Data.ResetRequest = false
	}

	w, h := opts.PlotSize()
	scene := &Scene{
		Kind:                    Select(p.Data),
		TargetID:                uuid.New().String(),
		Options:                 opts,
		PlotWidth:               w,
		PlotHeight:              h,
		ColorTags:               p.ColorTags,
		SelectedIndices:         p.SelectedIndices,
		onSelectedIndicesChange: p.OnSelectedIndicesChange,
	}

	var err error
	switch scene.Kind {
	case KindClustering:
		scene.Clustering, err = layout.NewClustering(w, h,
			p.Data.ClusteringTicks, p.Data.RootCatalyst, p.Data.SimilarGeneCatalyst, p.Data.ClusteringData)
		if err != nil {
			err = fmt.Errorf("clustering layout: %w", err)
		}
	case KindHeatmap:
		if p.Data.HeatmapData == nil {
			err = fmt.Errorf("heatmap layout: %w", layout.ErrNoCells)
			break
		}
		scene.Heatmap, err = layout.NewHeatmap(w, h, *p.Data.HeatmapData,
			p.Data.RootCatalyst, p.Data.SimilarGeneCatalyst, layout.ColorSettings{
				Colors:   opts.Colors,
				ColorMap: opts.ColorMap,
				MinMax:   opts.ColorMapperMinMax,
				Unit:     opts.HeatValUnit,
				FontSize: opts.FontSize,
			})
		if err != nil {
			err = fmt.Errorf("heatmap layout: %w", err)
		}
	}

	if err != nil {
		scene.Kind = KindEmpty
		scene.Clustering = nil
		scene.Heatmap = nil
		return scene, err
	}
	return scene, nil
}

// HasSelectionHook reports whether a selection callback was supplied
func (s *Scene) HasSelectionHook() bool {
	return s.onSelectedIndicesChange != nil
}
