package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/ChristianF88/catgene/pools"
)

// GeneBins is the number of bin edges used to digitize area values
const GeneBins = 16

const geneLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Areas averages each pair of neighbouring columns. columns[k] holds the
// values of column k; the result has one column less and is named area1..
func Areas(columns [][]float64) (names []string, areas [][]float64) {
	for k := 0; k+1 < len(columns); k++ {
		left, right := columns[k], columns[k+1]
		area := make([]float64, len(left))
		for i := range area {
			area[i] = (left[i] + right[i]) / 2
		}
		names = append(names, fmt.Sprintf("area%d", k+1))
		areas = append(areas, area)
	}
	return names, areas
}

// GeneEdges spreads GeneBins edges from the lowest to slightly above the
// highest area value so that the maximum falls into the last bin.
func GeneEdges(areas [][]float64) []float64 {
	var all []float64
	for _, a := range areas {
		all = append(all, a...)
	}
	if len(all) == 0 {
		return nil
	}
	lo, hi := floats.Min(all), floats.Max(all)
	margin := (hi - lo) / 1000
	return floats.Span(make([]float64, GeneBins), lo, hi+margin)
}

// digitize returns the number of edges that are <= v
func digitize(v float64, edges []float64) int {
	return sort.Search(len(edges), func(i int) bool { return edges[i] > v })
}

// GeneLetter maps a value to the letter of its bin
func GeneLetter(v float64, edges []float64) byte {
	idx := digitize(v, edges) - 1
	if idx < 0 {
		// below the first edge wraps to the last letter
		idx = len(geneLetters) - 1
	}
	return geneLetters[idx]
}

// Genes builds one gene string per row from the area columns
func Genes(areas [][]float64, edges []float64) []string {
	if len(areas) == 0 {
		return nil
	}
	rows := len(areas[0])
	genes := make([]string, rows)
	b := pools.Pools.GetGeneBuilder()
	defer pools.Pools.ReturnGeneBuilder(b)
	for i := 0; i < rows; i++ {
		b.Reset()
		for _, area := range areas {
			b.WriteByte(GeneLetter(area[i], edges))
		}
		genes[i] = b.String()
	}
	return genes
}
