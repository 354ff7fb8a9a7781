package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ChristianF88/catgene/form"
)

// Preprocess scales the columns of data in place the way the named method does.
// An empty method leaves the data untouched.
func Preprocess(data *mat.Dense, method string, scaling form.Scaling) error {
	switch method {
	case "":
		return nil
	case form.PreprocStandardScaler:
		standardScale(data)
	case form.PreprocNormalizer:
		normalizeRows(data)
	case form.PreprocMaxAbsScaler:
		maxAbsScale(data)
	case form.PreprocMinMaxScaler:
		return minMaxScale(data, scaling.Min, scaling.Max)
	default:
		return fmt.Errorf("unknown preprocessing method %q", method)
	}
	return nil
}

// standardScale removes the mean and divides by the population standard
// deviation. Constant columns keep a scale of 1.
func standardScale(data *mat.Dense) {
	_, cols := data.Dims()
	for j := 0; j < cols; j++ {
		col := mat.Col(nil, j, data)
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		for i := range col {
			col[i] = (col[i] - mean) / std
		}
		data.SetCol(j, col)
	}
}

// normalizeRows scales every row to unit L2 norm; zero rows stay zero
func normalizeRows(data *mat.Dense) {
	rows, _ := data.Dims()
	for i := 0; i < rows; i++ {
		row := mat.Row(nil, i, data)
		norm := floats.Norm(row, 2)
		if norm == 0 {
			continue
		}
		floats.Scale(1/norm, row)
		data.SetRow(i, row)
	}
}

func maxAbsScale(data *mat.Dense) {
	_, cols := data.Dims()
	for j := 0; j < cols; j++ {
		col := mat.Col(nil, j, data)
		maxAbs := 0.0
		for _, v := range col {
			maxAbs = math.Max(maxAbs, math.Abs(v))
		}
		if maxAbs == 0 {
			continue
		}
		floats.Scale(1/maxAbs, col)
		data.SetCol(j, col)
	}
}

// minMaxScale maps each column onto [lo, hi]. Constant columns map to lo.
func minMaxScale(data *mat.Dense, lo, hi float64) error {
	if lo >= hi {
		return fmt.Errorf("minimum of desired feature range must be smaller than maximum, got (%g, %g)", lo, hi)
	}
	_, cols := data.Dims()
	for j := 0; j < cols; j++ {
		col := mat.Col(nil, j, data)
		cmin, cmax := floats.Min(col), floats.Max(col)
		span := cmax - cmin
		if span == 0 {
			span = 1
		}
		for i := range col {
			col[i] = (col[i]-cmin)/span*(hi-lo) + lo
		}
		data.SetCol(j, col)
	}
	return nil
}
