package analysis

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ChristianF88/catgene/dataset"
	"github.com/ChristianF88/catgene/form"
	"github.com/ChristianF88/catgene/layout"
)

// MinGeneColumns is the smallest number of numeric feature columns a gene can be built from
const MinGeneColumns = 3

// Analyze computes the clustering, heatmap and gene similarity data for settings.
// Problems with the data itself are reported through Result.Status and
// Result.Detail; the returned error is reserved for unusable input.
func Analyze(ds *dataset.Dataset, settings form.Values) (*Result, error) {
	if ds == nil {
		return nil, errors.New("dataset is nil")
	}
	for _, c := range settings.FeatureColumns {
		if !ds.HasColumn(c) {
			return nil, fmt.Errorf("feature column %q is not part of the dataset", c)
		}
	}

	res := &Result{
		Status:              StatusOK,
		FeatureColumns:      settings.FeatureColumns,
		VisualizationMethod: settings.VisualizationMethod,
		RootCatalyst:        settings.RootCatalyst,
		SimilarGeneCatalyst: []string{},
	}

	// Columns with any non-numeric cell are dropped entirely
	var columns []string
	var values [][]float64
	for _, c := range settings.FeatureColumns {
		v, ok := ds.NumericColumn(c)
		if !ok {
			res.warn(fmt.Sprintf("column %q dropped: contains non-numeric values", c))
			continue
		}
		columns = append(columns, c)
		values = append(values, v)
	}
	if len(columns) < MinGeneColumns {
		return res.fail(DetailTooFewColumns), nil
	}

	numRows := len(ds.Rows())
	if numRows < 2 {
		return res.fail(fmt.Sprintf("at least two catalysts are required for clustering, got %d", numRows)), nil
	}

	data := mat.NewDense(numRows, len(columns), nil)
	for j, v := range values {
		data.SetCol(j, v)
	}

	if settings.PreprocessingEnabled {
		if err := Preprocess(data, settings.PreprocMethod, settings.Options.Scaling); err != nil {
			return res.fail(err.Error()), nil
		}
	}

	scaled := make([][]float64, len(columns))
	res.ScaledData = make(map[string][]float64, len(columns))
	for j, c := range columns {
		scaled[j] = mat.Col(nil, j, data)
		res.ScaledData[c] = scaled[j]
	}
	res.ColumnsForGene = columns

	catalysts := catalystNames(ds, settings.CatalystColumn, res)

	method := settings.ClusteringMethod
	if method == "" {
		method = form.DefaultClusteringMethod
	}
	links, err := Linkage(data, method)
	if err != nil {
		return res.fail(err.Error()), nil
	}
	dendrogram := BuildDendrogram(links, catalysts)
	res.ClusteringData = dendrogram.Segments()
	res.ClusteringTicks = dendrogram.Labels
	res.Leaves = dendrogram.Leaves

	areaNames, areas := Areas(scaled)
	res.AreaColumns = areaNames
	res.AreaData = make(map[string][]float64, len(areaNames))
	for k, name := range areaNames {
		res.AreaData[name] = areas[k]
	}
	genes := Genes(areas, GeneEdges(areas))
	res.Genes = genes

	res.HeatmapData = heatmapByLeaves(dendrogram.Leaves, catalysts, areaNames, areas)

	rootRow := -1
	for i, name := range catalysts {
		if name == settings.RootCatalyst {
			rootRow = i
			break
		}
	}
	if rootRow < 0 {
		res.warn(fmt.Sprintf("root catalyst %q not found, similarity skipped", settings.RootCatalyst))
		return res, nil
	}

	distances := GeneDistances(genes[rootRow], genes)
	res.DistanceTable = DistanceTable(rootRow, catalysts, genes, distances, areas)

	res.ParallelData = make(map[string][]float64, len(res.DistanceTable))
	for _, r := range res.DistanceTable {
		if r.Distance <= settings.DistanceBorder {
			res.SimilarGeneCatalyst = append(res.SimilarGeneCatalyst, r.Catalyst)
		}
		res.ParallelData[r.Catalyst] = r.Areas
	}

	if src, ok := componentSource(ds, settings, res); ok {
		res.PatternCounts = PatternCounts(res.DistanceTable, ds.Rows(), src)
	}

	return res, nil
}

func (r *Result) fail(detail string) *Result {
	r.Status = StatusError
	r.Detail = detail
	return r
}

func catalystNames(ds *dataset.Dataset, column string, res *Result) []string {
	if column == "" {
		column = form.DefaultCatalystColumn
	}
	rows := ds.Rows()
	names := make([]string, len(rows))
	if !ds.HasColumn(column) {
		res.warn(fmt.Sprintf("catalyst column %q not found, using row numbers", column))
		for i := range names {
			names[i] = fmt.Sprint(i)
		}
		return names
	}
	for i, row := range rows {
		names[i] = dataset.CellString(row[column])
	}
	return names
}

// heatmapByLeaves emits one cell per (area column, catalyst) with the
// catalysts in dendrogram leaf order
func heatmapByLeaves(leaves []int, catalysts, areaNames []string, areas [][]float64) *layout.HeatmapData {
	hm := &layout.HeatmapData{XTicks: areaNames}
	for i, row := range leaves {
		hm.YTicks = append(hm.YTicks, catalysts[row])
		for j := range areaNames {
			hm.XData = append(hm.XData, float64(j))
			hm.YData = append(hm.YData, float64(i))
			hm.HeatVal = append(hm.HeatVal, areas[j][row])
		}
	}
	return hm
}

func componentSource(ds *dataset.Dataset, settings form.Values, res *Result) (ComponentSource, bool) {
	if settings.DataOneHot {
		cols, err := ComponentRange(ds.Columns(), settings.ComponentFirstColumn, settings.ComponentLastColumn)
		if err != nil {
			res.warn(fmt.Sprintf("pattern counts skipped: %v", err))
			return ComponentSource{}, false
		}
		return ComponentSource{OneHot: true, OneHotColumns: cols}, true
	}
	if len(settings.ComponentColumns) == 0 {
		return ComponentSource{}, false
	}
	for _, c := range settings.ComponentColumns {
		if !ds.HasColumn(c) {
			res.warn(fmt.Sprintf("pattern counts skipped: component column %q not found", c))
			return ComponentSource{}, false
		}
	}
	return ComponentSource{Columns: settings.ComponentColumns}, true
}
