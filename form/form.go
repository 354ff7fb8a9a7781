package form

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ChristianF88/catgene/dataset"
)

var (
	ErrUnknownField   = errors.New("unknown form field")
	ErrInvalidValue   = errors.New("invalid field value")
	ErrNotSubmittable = errors.New("form is not submittable")
)

// Props is what a form is mounted with
type Props struct {
	InitialValues Values
	Columns       []string
	Dataset       *dataset.Dataset
	ColorTags     []dataset.ColorTag
	TargetID      string
}

// Form owns the values being edited and their validation state
type Form struct {
	props  Props
	values Values
	ctx    *Context
	errs   map[Field]error
}

// New mounts a form. Columns default to the dataset schema. The initial
// values are validated once so that the submit state is known immediately.
func New(props Props) *Form {
	if props.Columns == nil && props.Dataset != nil {
		props.Columns = props.Dataset.Columns()
	}
	f := &Form{
		props:  props,
		values: props.InitialValues.Clone(),
		ctx:    NewContext(),
		errs:   make(map[Field]error),
	}
	f.validateAll()
	return f
}

func (f *Form) Props() Props { return f.props }

func (f *Form) TargetID() string { return f.props.TargetID }

// Values returns a copy of the current values
func (f *Form) Values() Values { return f.values.Clone() }

// Schema is the list of columns of the active dataset
func (f *Form) Schema() []string {
	if f.props.Dataset != nil {
		return f.props.Dataset.Columns()
	}
	return f.props.Columns
}

// CatalystOptions lists the catalyst names of the dataset in row order.
// A form mounted without a dataset has no options.
func (f *Form) CatalystOptions() []Option {
	if f.props.Dataset == nil {
		return []Option{}
	}
	column := f.values.CatalystColumn
	if column == "" {
		column = DefaultCatalystColumn
	}
	return MakeCatalystOptions(f.props.Dataset.Rows(), column)
}

// Change sets a field and runs validation for every visible validated field.
// It returns the validation error of the changed field, if any.
func (f *Form) Change(field Field, value any) error {
	if err := f.set(field, value); err != nil {
		return err
	}
	if field == FieldPreprocessingEnabled && !f.values.PreprocessingEnabled {
		f.values.PreprocMethod = ""
		f.ctx.Forget(FieldPreprocMethod)
		delete(f.errs, FieldPreprocMethod)
	}
	f.validateAll()
	return f.errs[field]
}

// Errors returns the current validation message per field
func (f *Form) Errors() map[Field]error {
	out := make(map[Field]error, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

func (f *Form) Error(field Field) error { return f.errs[field] }

// Valid reports whether no field is in error and submitting is allowed
func (f *Form) Valid() bool {
	return len(f.errs) == 0 && !f.ctx.SubmitDisabled()
}

func (f *Form) SubmitDisabled() bool { return f.ctx.SubmitDisabled() }

// PreprocVisible reports whether the preprocessing method selector is shown
func (f *Form) PreprocVisible() bool { return f.values.PreprocessingEnabled }

// ScalingVisible reports whether the MinMaxScaler range inputs are shown
func (f *Form) ScalingVisible() bool {
	return f.values.PreprocessingEnabled && f.values.PreprocMethod == PreprocMinMaxScaler
}

// Submit validates every field and hands out the values when the form is submittable
func (f *Form) Submit() (Values, error) {
	f.validateAll()
	if f.ctx.SubmitDisabled() || len(f.errs) > 0 {
		return f.values.Clone(), fmt.Errorf("%w: %s", ErrNotSubmittable, f.describeErrors())
	}
	return f.values.Clone(), nil
}

// Reset restores the initial values
func (f *Form) Reset() {
	f.values = f.props.InitialValues.Clone()
	f.ctx = NewContext()
	f.errs = make(map[Field]error)
	f.validateAll()
}

func (f *Form) validatedFields() []Field {
	fields := []Field{FieldFeatureColumns, FieldRootCatalyst, FieldVisualizationMethod}
	if f.values.PreprocessingEnabled {
		fields = append(fields, FieldPreprocMethod)
	}
	return fields
}

func (f *Form) validateAll() {
	schema := f.Schema()
	for _, field := range f.validatedFields() {
		if err := Validate(f.ctx, field, f.values.Get(field), &f.values, schema); err != nil {
			f.errs[field] = err
		} else {
			delete(f.errs, field)
		}
	}
}

func (f *Form) describeErrors() string {
	if len(f.errs) == 0 {
		return "required field missing"
	}
	parts := make([]string, 0, len(f.errs))
	for field, err := range f.errs {
		parts = append(parts, fmt.Sprintf("%s: %v", field, err))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

func (f *Form) set(field Field, value any) error {
	switch field {
	case FieldFeatureColumns:
		switch v := value.(type) {
		case nil:
			f.values.FeatureColumns = nil
		case []string:
			f.values.FeatureColumns = append([]string{}, v...)
		case []any:
			cols := make([]string, 0, len(v))
			for _, c := range v {
				cols = append(cols, dataset.CellString(c))
			}
			f.values.FeatureColumns = cols
		default:
			return fmt.Errorf("%w: %s expects a list, got %T", ErrInvalidValue, field, value)
		}
	case FieldRootCatalyst, FieldVisualizationMethod, FieldPreprocMethod:
		var s string
		if value != nil {
			s = dataset.CellString(value)
		}
		switch field {
		case FieldRootCatalyst:
			f.values.RootCatalyst = s
		case FieldVisualizationMethod:
			f.values.VisualizationMethod = s
		default:
			f.values.PreprocMethod = s
		}
	case FieldPreprocessingEnabled:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects a bool, got %T", ErrInvalidValue, field, value)
		}
		f.values.PreprocessingEnabled = b
	case FieldScalingMin, FieldScalingMax:
		n, ok := dataset.ToFloat(value)
		if !ok {
			return fmt.Errorf("%w: %s expects a number, got %v", ErrInvalidValue, field, value)
		}
		if field == FieldScalingMin {
			f.values.Options.Scaling.Min = n
		} else {
			f.values.Options.Scaling.Max = n
		}
	case FieldExtentWidth, FieldExtentHeight:
		n, err := toInt(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
		}
		if field == FieldExtentWidth {
			f.values.Options.Extent.Width = n
		} else {
			f.values.Options.Extent.Height = n
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	}
	return 0, fmt.Errorf("expected an integer, got %T", value)
}
