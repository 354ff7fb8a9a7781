package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Field is a single column of the dataset schema
type Field struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Schema describes the columns of a table
type Schema struct {
	Fields []Field `json:"fields"`
}

// Table holds row-oriented data together with its schema
type Table struct {
	Schema Schema           `json:"schema"`
	Data   []map[string]any `json:"data"`
}

// Dataset is the data object shared by the form and the analysis.
// Only the main table is read.
type Dataset struct {
	Main Table `json:"main"`
}

// ColorTag is a user defined color label
type ColorTag struct {
	ID    int    `json:"id"`
	Color string `json:"color"`
}

// Columns returns the column names of the main schema in schema order
func (d *Dataset) Columns() []string {
	if d == nil {
		return nil
	}
	columns := make([]string, 0, len(d.Main.Schema.Fields))
	for _, f := range d.Main.Schema.Fields {
		columns = append(columns, f.Name)
	}
	return columns
}

// HasColumn reports whether name is part of the main schema
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns() {
		if c == name {
			return true
		}
	}
	return false
}

// Rows returns the main data rows
func (d *Dataset) Rows() []map[string]any {
	if d == nil {
		return nil
	}
	return d.Main.Data
}

// Column projects one column out of the main data, keeping row order
func (d *Dataset) Column(name string) []any {
	rows := d.Rows()
	values := make([]any, len(rows))
	for i, row := range rows {
		values[i] = row[name]
	}
	return values
}

// NumericColumn coerces a column to float64. Cells that cannot be read as a
// number become NaN; ok is false when at least one NaN was produced.
func (d *Dataset) NumericColumn(name string) (values []float64, ok bool) {
	cells := d.Column(name)
	values = make([]float64, len(cells))
	ok = true
	for i, cell := range cells {
		f, valid := ToFloat(cell)
		if !valid {
			f = math.NaN()
			ok = false
		}
		values[i] = f
	}
	return values, ok
}

// ToFloat converts a raw cell value to float64
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t)
	case float32:
		return float64(t), !math.IsNaN(float64(t))
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// CellString renders a raw cell value the way it is shown in option lists
func CellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Load reads a dataset from a .json or .csv file
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		ds, err := ReadCSV(f)
		if err != nil {
			return nil, fmt.Errorf("reading dataset %s: %w", path, err)
		}
		return ds, nil
	default:
		ds, err := ReadJSON(f)
		if err != nil {
			return nil, fmt.Errorf("reading dataset %s: %w", path, err)
		}
		return ds, nil
	}
}

// ReadJSON decodes a dataset document. When the schema is missing it is
// derived from the keys of the first row.
func ReadJSON(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if len(ds.Main.Schema.Fields) == 0 && len(ds.Main.Data) > 0 {
		for key := range ds.Main.Data[0] {
			ds.Main.Schema.Fields = append(ds.Main.Schema.Fields, Field{Name: key})
		}
		sortFields(ds.Main.Schema.Fields)
	}
	return &ds, nil
}

// ReadCSV reads a header row followed by data rows. Cells stay strings; the
// analysis coerces them when needed.
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	ds := &Dataset{}
	header := records[0]
	for _, name := range header {
		ds.Main.Schema.Fields = append(ds.Main.Schema.Fields, Field{Name: name})
	}
	for lineNum, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("line %d has %d cells, want %d", lineNum+2, len(rec), len(header))
		}
		row := make(map[string]any, len(header))
		for i, cell := range rec {
			row[header[i]] = cell
		}
		ds.Main.Data = append(ds.Main.Data, row)
	}
	return ds, nil
}

// LoadColorTags reads a JSON list of color tags
func LoadColorTags(path string) ([]ColorTag, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read color tags %s: %w", path, err)
	}
	var tags []ColorTag
	if err := json.Unmarshal(content, &tags); err != nil {
		return nil, fmt.Errorf("failed to decode color tags %s: %w", path, err)
	}
	return tags, nil
}

func sortFields(fields []Field) {
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
}
