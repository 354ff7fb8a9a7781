package analysis

import (
	"testing"

	"github.com/ChristianF88/catgene/form"
)

func formScaling(lo, hi float64) form.Scaling {
	return form.Scaling{Min: lo, Max: hi}
}

func TestAreas(t *testing.T) {
	names, areas := Areas([][]float64{{0, 2}, {2, 4}, {4, 4}})
	if len(names) != 2 || names[0] != "area1" || names[1] != "area2" {
		t.Fatalf("unexpected names %v", names)
	}
	if areas[0][0] != 1 || areas[0][1] != 3 || areas[1][0] != 3 || areas[1][1] != 4 {
		t.Errorf("unexpected areas %v", areas)
	}
}

func TestGeneEdgesAndLetters(t *testing.T) {
	areas := [][]float64{{0, 15}, {7.5, 3}}
	edges := GeneEdges(areas)
	if len(edges) != GeneBins {
		t.Fatalf("expected %d edges, got %d", GeneBins, len(edges))
	}
	if edges[0] != 0 || edges[GeneBins-1] <= 15 {
		t.Errorf("edges should span [min, max+margin], got %v", edges)
	}

	if got := GeneLetter(0, edges); got != 'A' {
		t.Errorf("minimum should be A, got %c", got)
	}
	if got := GeneLetter(15, edges); got != 'O' {
		t.Errorf("maximum should fall in the last bin O, got %c", got)
	}

	genes := Genes(areas, edges)
	if len(genes) != 2 || len(genes[0]) != 2 || genes[0][0] != 'A' || genes[1][0] != 'O' {
		t.Errorf("unexpected genes %v", genes)
	}
}

func TestGeneLetterFlatRange(t *testing.T) {
	edges := GeneEdges([][]float64{{2, 2}})
	if got := GeneLetter(2, edges); got != 'P' {
		t.Errorf("constant areas land past the last edge, want P got %c", got)
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"ABC", "ABC", 0},
		{"ABC", "ABD", 1},
		{"ABC", "", 3},
		{"kitten", "sitting", 3},
		{"AB", "BA", 2},
	}
	for _, tt := range tests {
		if got := EditDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("EditDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGeneDistances(t *testing.T) {
	genes := make([]string, 300)
	for i := range genes {
		genes[i] = "ABC"
		if i%2 == 1 {
			genes[i] = "ABD"
		}
	}
	distances := GeneDistances("ABC", genes)
	for i, d := range distances {
		if d != i%2 {
			t.Fatalf("distance %d = %d, want %d", i, d, i%2)
		}
	}
}

func TestDistanceTable(t *testing.T) {
	catalysts := []string{"a", "b", "c", "d"}
	genes := []string{"AAA", "AAB", "ABB", "AAA"}
	distances := []int{2, 1, 0, 2}
	areas := [][]float64{{1, 2, 3, 4}}

	table := DistanceTable(2, catalysts, genes, distances, areas)
	order := []string{"c", "b", "a", "d"}
	for i, want := range order {
		if table[i].Catalyst != want {
			t.Fatalf("order = %+v, want %v", table, order)
		}
	}
	if table[0].Distance != 0 || table[0].Areas[0] != 3 {
		t.Errorf("root row should come first with distance 0: %+v", table[0])
	}
}

func TestPatternCounts(t *testing.T) {
	rows := []map[string]any{
		{"E1": "Pt", "E2": "Ni", "E3": nil, "Pt": 1.0, "Ni": 1.0, "Co": 0.0},
		{"E1": "Pt", "E2": "Co", "E3": "0", "Pt": 1.0, "Ni": 0.0, "Co": 1.0},
		{"E1": "Pt", "E2": "Ni", "E3": "Co", "Pt": 1.0, "Ni": 1.0, "Co": "0"},
	}
	table := []DistanceRow{{Row: 0, Distance: 0}, {Row: 2, Distance: 0}, {Row: 1, Distance: 1}}

	counts := PatternCounts(table, rows, ComponentSource{Columns: []string{"E1", "E2", "E3"}})
	if len(counts) != 2 {
		t.Fatalf("expected thresholds 0 and 1, got %v", counts)
	}
	if counts[0][0] != (PatternCount{Combination: "Pt/Ni", Counts: 2}) {
		t.Errorf("threshold 0 = %+v", counts[0])
	}
	want := []PatternCount{{"Pt/Co", 2}, {"Pt/Ni", 2}, {"Ni/Co", 1}}
	if len(counts[1]) != len(want) {
		t.Fatalf("threshold 1 = %+v", counts[1])
	}
	for i := range want {
		if counts[1][i] != want[i] {
			t.Errorf("threshold 1 entry %d = %+v, want %+v", i, counts[1][i], want[i])
		}
	}

	oneHot, err := ComponentRange([]string{"E1", "E2", "E3", "Pt", "Ni", "Co"}, "Co", "Pt")
	if err != nil || len(oneHot) != 3 {
		t.Fatalf("ComponentRange = %v, %v", oneHot, err)
	}
	counts = PatternCounts(table, rows, ComponentSource{OneHot: true, OneHotColumns: oneHot})
	if counts[1][0] != (PatternCount{Combination: "Pt/Ni", Counts: 2}) || counts[1][1] != (PatternCount{Combination: "Pt/Co", Counts: 1}) {
		t.Errorf("one-hot threshold 1 = %+v", counts[1])
	}

	if _, err := ComponentRange([]string{"a"}, "a", "z"); err == nil {
		t.Errorf("expected error for unknown range column")
	}
}
