package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/ChristianF88/catgene/form"
	"github.com/ChristianF88/catgene/testutil"
)

func newTestApp(t *testing.T, submit SubmitFunc) *App {
	t.Helper()
	f := form.New(form.Props{
		InitialValues: form.DefaultValues(),
		Dataset:       testutil.NewDataset(6),
	})
	if submit == nil {
		submit = func(values form.Values) (string, error) {
			return "root " + values.RootCatalyst, nil
		}
	}
	return NewApp(f, submit)
}

// fill selects three columns, a root catalyst and a visualization
func fill(a *App) {
	for _, column := range []string{"Fe", "Co", "Ni"} {
		a.columnBoxes[column].SetChecked(true)
	}
	a.rootDrop.SetCurrentOption(2)
	a.visDrop.SetCurrentOption(0)
}

func TestNewAppStartsDisabled(t *testing.T) {
	a := newTestApp(t, nil)

	if !a.form.SubmitDisabled() {
		t.Fatal("empty form should not be submittable")
	}
	if button := a.submitButton(); button == nil || !button.IsDisabled() {
		t.Error("submit button should be disabled")
	}
	text := a.errorView.GetText(true)
	for _, field := range []string{"featureColumns", "rootCatalyst", "visualizationMethod"} {
		if !strings.Contains(text, field) {
			t.Errorf("validation panel missing %s:\n%s", field, text)
		}
	}
	if len(a.columnBoxes) != len(a.form.Schema()) {
		t.Errorf("got %d column boxes, want one per column", len(a.columnBoxes))
	}
}

func TestWidgetsDriveForm(t *testing.T) {
	a := newTestApp(t, nil)
	fill(a)

	values := a.form.Values()
	if got := strings.Join(values.FeatureColumns, ","); got != "Fe,Co,Ni" {
		t.Errorf("FeatureColumns = %s", got)
	}
	if values.RootCatalyst != "Cat-02" {
		t.Errorf("RootCatalyst = %q, want Cat-02", values.RootCatalyst)
	}
	if values.VisualizationMethod != form.VisHierarchicalClustering {
		t.Errorf("VisualizationMethod = %q", values.VisualizationMethod)
	}
	if a.form.SubmitDisabled() || a.submitButton().IsDisabled() {
		t.Error("filled form should be submittable")
	}
	if !strings.Contains(a.errorView.GetText(true), "All fields valid") {
		t.Errorf("validation panel = %q", a.errorView.GetText(true))
	}
}

func TestTooFewColumns(t *testing.T) {
	a := newTestApp(t, nil)
	a.columnBoxes["Fe"].SetChecked(true)
	a.columnBoxes["Co"].SetChecked(true)

	if !errors.Is(a.form.Error(form.FieldFeatureColumns), form.ErrTooFewColumns) {
		t.Errorf("featureColumns error = %v", a.form.Error(form.FieldFeatureColumns))
	}
}

func TestColumnToggles(t *testing.T) {
	a := newTestApp(t, nil)

	steps := []struct {
		column  string
		checked bool
		want    string
	}{
		{"Ni", true, "Ni"},
		{"Fe", true, "Fe,Ni"},
		{"Co", true, "Fe,Co,Ni"},
		{"Fe", false, "Co,Ni"},
		{"Ni", false, "Co"},
	}
	for _, step := range steps {
		a.columnBoxes[step.column].SetChecked(step.checked)
		if got := strings.Join(a.form.Values().FeatureColumns, ","); got != step.want {
			t.Errorf("after setting %s=%v: FeatureColumns = %q, want %q", step.column, step.checked, got, step.want)
		}
	}
}

func TestPreprocessingVisibility(t *testing.T) {
	a := newTestApp(t, nil)
	fill(a)

	if a.inputs.GetFormItemIndex(labelPreprocMethod) >= 0 {
		t.Fatal("preprocessing method should be hidden")
	}

	a.preprocBox.SetChecked(true)
	if a.inputs.GetFormItemIndex(labelPreprocMethod) < 0 {
		t.Fatal("preprocessing method should be shown once enabled")
	}
	if !a.form.SubmitDisabled() {
		t.Error("enabled preprocessing without a method should disable submit")
	}
	if a.inputs.GetFormItemIndex(labelScalingMin) >= 0 {
		t.Error("scaling bounds should stay hidden until MinMaxScaler is picked")
	}

	a.preprocDrop.SetCurrentOption(3)
	if a.form.Values().PreprocMethod != form.PreprocMinMaxScaler {
		t.Fatalf("PreprocMethod = %q", a.form.Values().PreprocMethod)
	}
	if a.inputs.GetFormItemIndex(labelScalingMin) < 0 {
		t.Error("scaling bounds should be shown for MinMaxScaler")
	}
	if a.form.SubmitDisabled() {
		t.Error("form with a preprocessing method should be submittable")
	}

	a.scalingMin.SetText("0.25")
	if got := a.form.Values().Options.Scaling.Min; got != 0.25 {
		t.Errorf("Scaling.Min = %v, want 0.25", got)
	}

	a.preprocBox.SetChecked(false)
	if a.inputs.GetFormItemIndex(labelPreprocMethod) >= 0 {
		t.Error("preprocessing method should be hidden again")
	}
	if a.form.Values().PreprocMethod != "" {
		t.Error("disabling preprocessing should clear the method")
	}
}

func TestExtentInput(t *testing.T) {
	a := newTestApp(t, nil)
	a.extentWidth.SetText("800")

	if got := a.form.Values().Options.Extent.Width; got != 800 {
		t.Errorf("Extent.Width = %d, want 800", got)
	}
	// partial input is ignored until it is a number again
	a.extentWidth.SetText("-")
	if got := a.form.Values().Options.Extent.Width; got != 800 {
		t.Errorf("Extent.Width = %d after partial input", got)
	}
}

func TestSubmitUsesCache(t *testing.T) {
	calls := 0
	a := newTestApp(t, func(values form.Values) (string, error) {
		calls++
		return "similar to " + values.RootCatalyst, nil
	})

	a.doSubmit()
	if calls != 0 {
		t.Fatal("disabled form must not submit")
	}

	fill(a)
	a.doSubmit()
	a.doSubmit()
	if calls != 1 {
		t.Errorf("submit called %d times, want 1", calls)
	}
	if got := a.resultView.GetText(true); !strings.Contains(got, "similar to Cat-02") {
		t.Errorf("result panel = %q", got)
	}
	if hits, misses := a.cache.Stats(); hits != 1 || misses != 1 {
		t.Errorf("cache stats = %d hits, %d misses", hits, misses)
	}

	a.rootDrop.SetCurrentOption(4)
	a.doSubmit()
	if calls != 2 {
		t.Errorf("changed values should rerun the pipeline, calls = %d", calls)
	}
}

func TestSubmitError(t *testing.T) {
	a := newTestApp(t, func(form.Values) (string, error) {
		return "", errors.New("render failed")
	})
	fill(a)
	a.doSubmit()

	if got := a.resultView.GetText(true); !strings.Contains(got, "render failed") {
		t.Errorf("result panel = %q", got)
	}
	if a.cache.Len() != 0 {
		t.Error("failed submits must not be cached")
	}
	if a.submitting.Load() {
		t.Error("submitting flag left set")
	}
}

func TestReset(t *testing.T) {
	a := newTestApp(t, nil)
	fill(a)
	a.preprocBox.SetChecked(true)

	a.reset()

	values := a.form.Values()
	if len(values.FeatureColumns) != 0 || values.RootCatalyst != "" || values.PreprocessingEnabled {
		t.Errorf("values not reset: %+v", values)
	}
	for column, box := range a.columnBoxes {
		if box.IsChecked() {
			t.Errorf("checkbox %s still checked", column)
		}
	}
	if a.inputs.GetFormItemIndex(labelPreprocMethod) >= 0 {
		t.Error("preprocessing method should be hidden after reset")
	}
	if !a.form.SubmitDisabled() {
		t.Error("reset form should not be submittable")
	}
}
