package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/ChristianF88/catgene/dataset"
)

// FeatureColumns are the numeric columns produced by NewDataset
var FeatureColumns = []string{"Fe", "Co", "Ni", "Cu", "Zn"}

// NewDataset builds a deterministic dataset with a Catalyst name column,
// the numeric FeatureColumns and a free text Comment column.
func NewDataset(numRows int) *dataset.Dataset {
	ds := &dataset.Dataset{}
	ds.Main.Schema.Fields = append(ds.Main.Schema.Fields, dataset.Field{Name: "Catalyst", Type: "string"})
	for _, c := range FeatureColumns {
		ds.Main.Schema.Fields = append(ds.Main.Schema.Fields, dataset.Field{Name: c, Type: "number"})
	}
	ds.Main.Schema.Fields = append(ds.Main.Schema.Fields, dataset.Field{Name: "Comment", Type: "string"})

	for i := 0; i < numRows; i++ {
		row := map[string]any{
			"Catalyst": fmt.Sprintf("Cat-%02d", i),
			"Comment":  fmt.Sprintf("batch %d", i%3),
		}
		for j, c := range FeatureColumns {
			// Spread values so that rows differ but stay reproducible
			row[c] = float64((i*7+j*3)%11) + 0.5*float64(j)
		}
		ds.Main.Data = append(ds.Main.Data, row)
	}
	return ds
}

// GenerateTestDataset writes NewDataset(numRows) as a JSON file.
// Returns the file path and a cleanup function.
func GenerateTestDataset(t *testing.T, numRows int) (string, func()) {
	t.Helper()

	if numRows < 3 {
		numRows = 3
	}

	tmpFile, err := os.CreateTemp("", "test_dataset_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp dataset file: %v", err)
	}

	if err := json.NewEncoder(tmpFile).Encode(NewDataset(numRows)); err != nil {
		t.Fatalf("Failed to write temp dataset file: %v", err)
	}
	tmpFile.Close()

	cleanup := func() {
		os.Remove(tmpFile.Name())
	}

	return tmpFile.Name(), cleanup
}

// TempFilePath returns a cross-platform temporary file path
// with the given pattern. Does not create the file.
func TempFilePath(t *testing.T, pattern string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	path := tmpFile.Name()
	tmpFile.Close()
	os.Remove(path)

	return path
}
