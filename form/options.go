package form

import (
	"strconv"
	"strings"

	"github.com/ChristianF88/catgene/dataset"
)

// Option is one dropdown entry
type Option struct {
	Key   string `json:"key"`
	Text  string `json:"text"`
	Value any    `json:"value"`
}

// MakeCatalystOptions projects column out of rows into dropdown options.
// Row order is kept and duplicates are not removed.
func MakeCatalystOptions(rows []map[string]any, column string) []Option {
	options := make([]Option, 0, len(rows))
	for _, row := range rows {
		raw := row[column]
		s := dataset.CellString(raw)
		options = append(options, Option{Key: s, Text: s, Value: raw})
	}
	return options
}

// DropdownOptions turns a plain list into options with key, text and value equal
func DropdownOptions(list []string) []Option {
	options := make([]Option, 0, len(list))
	for _, item := range list {
		options = append(options, Option{Key: item, Text: item, Value: item})
	}
	return options
}

// ColorTagOptions shows the tag color and submits the tag id
func ColorTagOptions(tags []dataset.ColorTag) []Option {
	options := make([]Option, 0, len(tags))
	for _, tag := range tags {
		options = append(options, Option{Key: strconv.Itoa(tag.ID), Text: tag.Color, Value: tag.ID})
	}
	return options
}

// FilterOptions keeps the options whose text contains query, ignoring case
func FilterOptions(options []Option, query string) []Option {
	if query == "" {
		return options
	}
	query = strings.ToLower(query)
	var filtered []Option
	for _, o := range options {
		if strings.Contains(strings.ToLower(o.Text), query) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}
