package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/dweymouth/lapwatch/backend/stopwatch"
	"github.com/dweymouth/lapwatch/ui/layouts"
	myTheme "github.com/dweymouth/lapwatch/ui/theme"
)

// TimeDisplay renders the elapsed time as HH:MM:SS.mmm.
type TimeDisplay struct {
	widget.BaseWidget

	fields  stopwatch.TimeFields
	running bool

	bg   *myTheme.ThemedRectangle
	text *canvas.Text
}

func NewTimeDisplay() *TimeDisplay {
	t := &TimeDisplay{
		bg:   myTheme.NewThemedRectangle(myTheme.ColorNamePageBackground),
		text: canvas.NewText(stopwatch.TimeFields{}.String(), nil),
	}
	t.bg.CornerRadius = theme.InputRadiusSize()
	t.text.TextStyle.Monospace = true
	t.text.Alignment = fyne.TextAlignCenter
	t.ExtendBaseWidget(t)
	return t
}

func (t *TimeDisplay) SetFields(f stopwatch.TimeFields) {
	if f == t.fields {
		return
	}
	t.fields = f
	t.text.Text = f.String()
	t.text.Refresh()
}

func (t *TimeDisplay) Fields() stopwatch.TimeFields {
	return t.fields
}

func (t *TimeDisplay) SetRunning(running bool) {
	if running == t.running {
		return
	}
	t.running = running
	t.Refresh()
}

func (t *TimeDisplay) Refresh() {
	t.text.Color = myTheme.TimeDisplayColor(t.running)
	t.text.TextSize = myTheme.TimeDisplaySize()
	t.bg.Refresh()
	t.BaseWidget.Refresh()
}

func (t *TimeDisplay) CreateRenderer() fyne.WidgetRenderer {
	t.text.Color = myTheme.TimeDisplayColor(t.running)
	t.text.TextSize = myTheme.TimeDisplaySize()
	p := theme.Padding() * 4
	return widget.NewSimpleRenderer(
		container.NewStack(t.bg, container.New(layouts.NewUniformPadLayout(p), t.text)),
	)
}
