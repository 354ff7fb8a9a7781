package analysis

import (
	"fmt"
	"sort"

	"github.com/ChristianF88/catgene/dataset"
)

// ComponentSource says where the components of a catalyst are read from
type ComponentSource struct {
	// Columns holding component names; used when OneHot is false
	Columns []string
	// OneHot columns mark a component by a non-zero cell; the column name is the component
	OneHot bool
	// OneHotColumns is the inclusive schema range of one-hot columns
	OneHotColumns []string
}

// ComponentRange returns the schema columns between first and last, inclusive,
// in either order.
func ComponentRange(schema []string, first, last string) ([]string, error) {
	fi, li := -1, -1
	for i, c := range schema {
		if c == first && fi < 0 {
			fi = i
		}
		if c == last && li < 0 {
			li = i
		}
	}
	if fi < 0 || li < 0 {
		return nil, fmt.Errorf("component range %q..%q is not part of the dataset", first, last)
	}
	if fi > li {
		fi, li = li, fi
	}
	return append([]string(nil), schema[fi:li+1]...), nil
}

// PatternCounts counts component pairs for every distance threshold from 0
// to the largest distance in table. Each threshold includes the rows whose
// distance is at or below it.
func PatternCounts(table []DistanceRow, rows []map[string]any, src ComponentSource) map[int][]PatternCount {
	maxDistance := 0
	for _, r := range table {
		maxDistance = max(maxDistance, r.Distance)
	}

	columns := src.Columns
	if src.OneHot {
		columns = src.OneHotColumns
	}

	atoms := make(map[int][]string, len(table))
	for _, r := range table {
		atoms[r.Row] = rowAtoms(rows[r.Row], columns, src.OneHot)
	}

	counts := make(map[int][]PatternCount, maxDistance+1)
	for d := 0; d <= maxDistance; d++ {
		seen := make(map[string]int)
		for _, r := range table {
			if r.Distance > d {
				continue
			}
			a := atoms[r.Row]
			for i := 0; i < len(a); i++ {
				for j := i + 1; j < len(a); j++ {
					if a[i] == "" || a[j] == "" {
						continue
					}
					seen[a[i]+"/"+a[j]]++
				}
			}
		}
		counts[d] = sortedCounts(seen)
	}
	return counts
}

func rowAtoms(row map[string]any, columns []string, oneHot bool) []string {
	atoms := make([]string, len(columns))
	for i, c := range columns {
		cell := row[c]
		if isZeroCell(cell) {
			continue
		}
		if oneHot {
			atoms[i] = c
		} else {
			atoms[i] = dataset.CellString(cell)
		}
	}
	return atoms
}

// isZeroCell treats missing cells, "0" and numeric zero as absent
func isZeroCell(cell any) bool {
	switch v := cell.(type) {
	case nil:
		return true
	case string:
		return v == "0" || v == ""
	}
	f, ok := dataset.ToFloat(cell)
	return ok && f == 0
}

func sortedCounts(seen map[string]int) []PatternCount {
	out := make([]PatternCount, 0, len(seen))
	for combination, n := range seen {
		out = append(out, PatternCount{Combination: combination, Counts: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Counts != out[j].Counts {
			return out[i].Counts > out[j].Counts
		}
		return out[i].Combination < out[j].Combination
	})
	return out
}
