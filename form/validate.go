package form

import (
	"errors"
)

var (
	ErrTooFewColumns = errors.New("At least three(3) columns have to be selected")
	ErrRequired      = errors.New("Required")
)

// MinFeatureColumns is the smallest non-empty feature column selection
const MinFeatureColumns = 3

// Context tracks which fields currently fail validation and the submit
// state derived from them. It is not safe for concurrent use.
type Context struct {
	fieldErrors    map[Field]bool
	submitDisabled bool
}

func NewContext() *Context {
	return &Context{fieldErrors: make(map[Field]bool)}
}

// HasError reports whether the last validation of field failed
func (c *Context) HasError(field Field) bool {
	return c.fieldErrors[field]
}

// AnyError reports whether any tracked field is in error
func (c *Context) AnyError() bool {
	for _, failed := range c.fieldErrors {
		if failed {
			return true
		}
	}
	return false
}

// SubmitDisabled is the derived submit state. The most recent Validate call decides it.
func (c *Context) SubmitDisabled() bool {
	return c.submitDisabled
}

// Forget drops a field from tracking, used when its widget is hidden
func (c *Context) Forget(field Field) {
	delete(c.fieldErrors, field)
}

// Validate checks one field after a change. values is updated in place when a
// selected feature column is missing from schema: the feature columns, root
// catalyst and visualization method are reset before any other rule runs.
// A nil ctx validates without tracking.
func Validate(ctx *Context, field Field, value any, values *Values, schema []string) error {
	if values != nil && values.FeatureColumns != nil && !allInSchema(values.FeatureColumns, schema) {
		values.FeatureColumns = nil
		values.RootCatalyst = ""
		values.VisualizationMethod = ""
		switch field {
		case FieldFeatureColumns, FieldRootCatalyst, FieldVisualizationMethod:
			value = nil
		}
	}

	var err error

	if field == FieldFeatureColumns {
		if n := selectionLen(value); n > 0 && n < MinFeatureColumns {
			err = ErrTooFewColumns
		}
	}

	switch field {
	case FieldRootCatalyst, FieldFeatureColumns, FieldVisualizationMethod:
		if isEmpty(value) {
			err = ErrRequired
		}
	}

	if ctx == nil {
		return err
	}
	if ctx.fieldErrors == nil {
		ctx.fieldErrors = make(map[Field]bool)
	}
	ctx.fieldErrors[field] = err != nil

	if values != nil {
		if !values.PreprocessingEnabled {
			values.PreprocMethod = ""
			ctx.submitDisabled = err != nil || ctx.AnyError()
		} else {
			ctx.submitDisabled = isEmpty(value) || err != nil || ctx.AnyError()
		}
	}

	return err
}

func allInSchema(columns, schema []string) bool {
	known := make(map[string]struct{}, len(schema))
	for _, s := range schema {
		known[s] = struct{}{}
	}
	for _, c := range columns {
		if _, ok := known[c]; !ok {
			return false
		}
	}
	return true
}

func selectionLen(value any) int {
	switch v := value.(type) {
	case []string:
		return len(v)
	case []any:
		return len(v)
	case string:
		if v == "" {
			return 0
		}
		return 1
	}
	return 0
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case bool:
		return !v
	}
	return false
}
