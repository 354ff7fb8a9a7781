package tui

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/ChristianF88/catgene/form"
)

// SubmitFunc runs the pipeline for submitted values and returns a short
// summary to show next to the form
type SubmitFunc func(values form.Values) (string, error)

// Labels of the form items; the dynamic items are looked up by label
const (
	labelRoot          = "Root catalyst"
	labelVisualization = "Visualization"
	labelPreproc       = "Preprocessing"
	labelPreprocMethod = "Preprocessing method"
	labelScalingMin    = "Scaling min"
	labelScalingMax    = "Scaling max"
	labelWidth         = "Width"
	labelHeight        = "Height"
	buttonSubmit       = "Submit"
)

// App represents the TUI application
type App struct {
	app        *tview.Application
	pages      *tview.Pages
	inputs     *tview.Form
	errorView  *tview.TextView
	resultView *tview.TextView
	statusBar  *tview.TextView

	form   *form.Form
	submit SubmitFunc
	cache  *SubmitCache

	// Widgets kept across rebuilds of the input form
	columnBoxes   map[string]*tview.Checkbox
	columnOrder   []string
	rootDrop      *tview.DropDown
	rootOptions   []form.Option
	visDrop       *tview.DropDown
	preprocBox    *tview.Checkbox
	preprocDrop   *tview.DropDown
	scalingMin    *tview.InputField
	scalingMax    *tview.InputField
	extentWidth   *tview.InputField
	extentHeight  *tview.InputField
	shownPreproc  bool
	shownScaling  bool
	building      bool
	lastInputNote string

	// Atomic flags for cross-goroutine signaling (no mutex needed)
	running    atomic.Bool
	submitting atomic.Bool
}

// NewApp builds the interactive form around f. submit is called with the
// values of every successful submit.
func NewApp(f *form.Form, submit SubmitFunc) *App {
	a := &App{
		app:         tview.NewApplication(),
		pages:       tview.NewPages(),
		form:        f,
		submit:      submit,
		cache:       NewSubmitCache(),
		columnBoxes: make(map[string]*tview.Checkbox),
	}
	a.setupUI()
	return a
}

// Run shows the form until the user quits
func (a *App) Run() error {
	a.running.Store(true)
	defer a.running.Store(false)
	return a.app.Run()
}

// setupUI initializes the user interface
func (a *App) setupUI() {
	a.building = true
	defer func() { a.building = false }()

	a.inputs = tview.NewForm()
	a.inputs.SetBorder(true).SetTitle(" catgene ").SetTitleAlign(tview.AlignLeft)
	a.createInputs()

	a.errorView = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	a.errorView.SetBorder(true).SetTitle(" Validation ")

	a.resultView = tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetScrollable(true)
	a.resultView.SetBorder(true).SetTitle(" Result ")
	a.resultView.SetText("[gray]Fill in the form and press Submit[white]")

	a.statusBar = tview.NewTextView().SetDynamicColors(true)

	side := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.errorView, 0, 1, false).
		AddItem(a.resultView, 0, 2, false)

	body := tview.NewFlex().
		AddItem(a.inputs, 0, 1, true).
		AddItem(side, 0, 1, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.pages.AddPage("form", main, true, true)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			a.app.Stop()
			return nil
		case tcell.KeyCtrlS:
			a.doSubmit()
			return nil
		case tcell.KeyCtrlR:
			a.reset()
			return nil
		}
		return event
	})
	a.app.SetRoot(a.pages, true).EnableMouse(true)

	a.layoutInputs()
	a.refresh()
}

// createInputs creates every widget once; layoutInputs decides which are shown
func (a *App) createInputs() {
	values := a.form.Values()

	a.columnOrder = a.form.Schema()
	for _, column := range a.columnOrder {
		box := tview.NewCheckbox().
			SetLabel(column).
			SetChecked(slices.Contains(values.FeatureColumns, column))
		box.SetChangedFunc(func(checked bool) { a.changeColumns(column, checked) })
		a.columnBoxes[column] = box
	}

	a.rootOptions = a.form.CatalystOptions()
	texts := make([]string, len(a.rootOptions))
	current := -1
	for i, o := range a.rootOptions {
		texts[i] = o.Text
		if current < 0 && o.Text == values.RootCatalyst {
			current = i
		}
	}
	a.rootDrop = tview.NewDropDown().SetLabel(labelRoot).SetOptions(texts, nil)
	a.rootDrop.SetCurrentOption(current)
	a.rootDrop.SetSelectedFunc(func(_ string, index int) {
		var value any
		if index >= 0 && index < len(a.rootOptions) {
			value = a.rootOptions[index].Value
		}
		a.change(form.FieldRootCatalyst, value)
	})

	a.visDrop = tview.NewDropDown().SetLabel(labelVisualization).SetOptions(form.VisualizationMethods, nil)
	a.visDrop.SetCurrentOption(slices.Index(form.VisualizationMethods, values.VisualizationMethod))
	a.visDrop.SetSelectedFunc(func(text string, _ int) {
		a.change(form.FieldVisualizationMethod, text)
	})

	a.preprocBox = tview.NewCheckbox().SetLabel(labelPreproc).SetChecked(values.PreprocessingEnabled)
	a.preprocBox.SetChangedFunc(func(checked bool) {
		a.change(form.FieldPreprocessingEnabled, checked)
	})

	a.preprocDrop = tview.NewDropDown().SetLabel(labelPreprocMethod).SetOptions(form.PreprocMethods, nil)
	a.preprocDrop.SetCurrentOption(slices.Index(form.PreprocMethods, values.PreprocMethod))
	a.preprocDrop.SetSelectedFunc(func(text string, _ int) {
		a.change(form.FieldPreprocMethod, text)
	})

	a.scalingMin = a.numberInput(labelScalingMin, formatFloat(values.Options.Scaling.Min), tview.InputFieldFloat, form.FieldScalingMin)
	a.scalingMax = a.numberInput(labelScalingMax, formatFloat(values.Options.Scaling.Max), tview.InputFieldFloat, form.FieldScalingMax)
	a.extentWidth = a.numberInput(labelWidth, strconv.Itoa(values.Options.Extent.Width), tview.InputFieldInteger, form.FieldExtentWidth)
	a.extentHeight = a.numberInput(labelHeight, strconv.Itoa(values.Options.Extent.Height), tview.InputFieldInteger, form.FieldExtentHeight)
}

func (a *App) numberInput(label, text string, accept func(string, rune) bool, field form.Field) *tview.InputField {
	input := tview.NewInputField().
		SetLabel(label).
		SetText(text).
		SetFieldWidth(10).
		SetAcceptanceFunc(accept)
	input.SetChangedFunc(func(text string) {
		if strings.TrimSpace(text) == "" || text == "-" || text == "." {
			return
		}
		a.change(field, text)
	})
	return input
}

// layoutInputs (re)adds the form items; the preprocessing method is only
// shown when preprocessing is enabled and the scaling bounds only for MinMaxScaler
func (a *App) layoutInputs() {
	focused, _ := a.inputs.GetFocusedItemIndex()

	a.inputs.Clear(true)
	for _, column := range a.columnOrder {
		a.inputs.AddFormItem(a.columnBoxes[column])
	}
	a.inputs.AddFormItem(a.rootDrop)
	a.inputs.AddFormItem(a.visDrop)
	a.inputs.AddFormItem(a.preprocBox)

	a.shownPreproc = a.form.PreprocVisible()
	if a.shownPreproc {
		a.inputs.AddFormItem(a.preprocDrop)
	}
	a.shownScaling = a.form.ScalingVisible()
	if a.shownScaling {
		a.inputs.AddFormItem(a.scalingMin)
		a.inputs.AddFormItem(a.scalingMax)
	}
	a.inputs.AddFormItem(a.extentWidth)
	a.inputs.AddFormItem(a.extentHeight)

	a.inputs.AddButton(buttonSubmit, a.doSubmit)
	a.inputs.AddButton("Reset", a.reset)
	a.inputs.AddButton("Quit", a.app.Stop)

	if focused >= 0 && focused < a.inputs.GetFormItemCount() {
		a.inputs.SetFocus(focused)
	}
}

// changeColumns rebuilds the selection in schema order. The toggled box
// reports its new state through checked; tview assigns it only after the
// changed callback returns.
func (a *App) changeColumns(toggled string, checked bool) {
	var selected []string
	for _, column := range a.columnOrder {
		on := a.columnBoxes[column].IsChecked()
		if column == toggled {
			on = checked
		}
		if on {
			selected = append(selected, column)
		}
	}
	a.change(form.FieldFeatureColumns, selected)
}

// change forwards a widget edit to the form and redraws the derived state
func (a *App) change(field form.Field, value any) {
	if a.building {
		return
	}
	a.lastInputNote = ""
	if err := a.form.Change(field, value); err != nil && a.form.Error(field) == nil {
		// the value itself was rejected, not the field state
		a.lastInputNote = err.Error()
	}
	a.refresh()
}

// refresh updates everything derived from the form state
func (a *App) refresh() {
	if a.shownPreproc != a.form.PreprocVisible() || a.shownScaling != a.form.ScalingVisible() {
		a.layoutInputs()
	}

	if button := a.submitButton(); button != nil {
		button.SetDisabled(a.form.SubmitDisabled())
	}
	a.errorView.SetText(a.errorText())
	a.updateStatusBar()
}

func (a *App) submitButton() *tview.Button {
	index := a.inputs.GetButtonIndex(buttonSubmit)
	if index < 0 {
		return nil
	}
	return a.inputs.GetButton(index)
}

func (a *App) errorText() string {
	errs := a.form.Errors()
	if len(errs) == 0 && a.lastInputNote == "" {
		return "[green]All fields valid[white]"
	}
	lines := make([]string, 0, len(errs)+1)
	for field, err := range errs {
		lines = append(lines, fmt.Sprintf("[red]%s[white]: %v", field, err))
	}
	sort.Strings(lines)
	if a.lastInputNote != "" {
		lines = append(lines, fmt.Sprintf("[yellow]%s[white]", tview.Escape(a.lastInputNote)))
	}
	return strings.Join(lines, "\n")
}

func (a *App) updateStatusBar() {
	hits, _ := a.cache.Stats()
	state := "[green]ready[white]"
	switch {
	case a.submitting.Load():
		state = "[yellow]running...[white]"
	case a.form.SubmitDisabled():
		state = "[red]submit disabled[white]"
	}
	a.statusBar.SetText(fmt.Sprintf("%s | %d cached (%d hits) | Ctrl-S submit, Ctrl-R reset, Esc quit",
		state, a.cache.Len(), hits))
}

// doSubmit runs the submit callback. While the application runs the work
// happens off the UI goroutine.
func (a *App) doSubmit() {
	if a.form.SubmitDisabled() || !a.submitting.CompareAndSwap(false, true) {
		return
	}

	values, err := a.form.Submit()
	if err != nil {
		a.submitting.Store(false)
		a.showResult("", err)
		return
	}
	a.updateStatusBar()

	if !a.running.Load() {
		a.showResult(a.execute(values))
		return
	}
	go func() {
		summary, err := a.execute(values)
		a.app.QueueUpdateDraw(func() {
			a.showResult(summary, err)
		})
	}()
}

func (a *App) execute(values form.Values) (string, error) {
	defer a.submitting.Store(false)
	if summary, ok := a.cache.Get(values); ok {
		return summary, nil
	}
	summary, err := a.submit(values)
	if err != nil {
		return "", err
	}
	a.cache.Put(values, summary)
	return summary, nil
}

func (a *App) showResult(summary string, err error) {
	if err != nil {
		a.resultView.SetText(fmt.Sprintf("[red]Error:[white] %s", tview.Escape(err.Error())))
	} else {
		a.resultView.SetText(tview.Escape(summary))
	}
	a.resultView.ScrollToBeginning()
	a.refresh()
}

// reset restores the initial values in the form and the widgets
func (a *App) reset() {
	a.form.Reset()
	values := a.form.Values()

	a.building = true
	for column, box := range a.columnBoxes {
		box.SetChecked(slices.Contains(values.FeatureColumns, column))
	}
	current := -1
	for i, o := range a.rootOptions {
		if o.Text == values.RootCatalyst {
			current = i
			break
		}
	}
	a.rootDrop.SetCurrentOption(current)
	a.visDrop.SetCurrentOption(slices.Index(form.VisualizationMethods, values.VisualizationMethod))
	a.preprocBox.SetChecked(values.PreprocessingEnabled)
	a.preprocDrop.SetCurrentOption(slices.Index(form.PreprocMethods, values.PreprocMethod))
	a.scalingMin.SetText(formatFloat(values.Options.Scaling.Min))
	a.scalingMax.SetText(formatFloat(values.Options.Scaling.Max))
	a.extentWidth.SetText(strconv.Itoa(values.Options.Extent.Width))
	a.extentHeight.SetText(strconv.Itoa(values.Options.Extent.Height))
	a.building = false

	a.lastInputNote = ""
	a.refresh()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
