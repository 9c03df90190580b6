package widgets

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/widget"

	"github.com/dweymouth/lapwatch/backend/stopwatch"
	myTheme "github.com/dweymouth/lapwatch/ui/theme"
)

// LapList shows the recorded laps in the order they were taken.
type LapList struct {
	widget.BaseWidget

	laps  []stopwatch.LapEntry
	list  *widget.List
	empty *widget.Label
}

func NewLapList() *LapList {
	l := &LapList{
		empty: widget.NewLabelWithStyle(lang.L("No laps recorded"), fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
	}
	l.list = widget.NewList(
		func() int { return len(l.laps) },
		func() fyne.CanvasObject { return newLapRow() },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*lapRow).Update(l.lapAt(id), id%2 == 1)
		},
	)
	l.ExtendBaseWidget(l)
	return l
}

// Add appends a lap. Entries must arrive in index order.
func (l *LapList) Add(index int, label string) {
	l.laps = append(l.laps, stopwatch.LapEntry{Index: index, Label: label})
	l.empty.Hide()
	l.list.Refresh()
	l.list.ScrollToBottom()
}

func (l *LapList) Clear() {
	l.laps = nil
	l.empty.Show()
	l.list.Refresh()
}

func (l *LapList) Len() int {
	return len(l.laps)
}

func (l *LapList) lapAt(id widget.ListItemID) stopwatch.LapEntry {
	return l.laps[id]
}

func (l *LapList) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(l.list, container.NewCenter(l.empty)))
}

type lapRow struct {
	widget.BaseWidget

	bg    *myTheme.ThemedRectangle
	index *widget.Label
	label *widget.Label
}

func newLapRow() *lapRow {
	r := &lapRow{
		bg:    myTheme.NewThemedRectangle(myTheme.ColorNameLapRowAlt),
		index: widget.NewLabel(""),
		label: widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true}),
	}
	r.ExtendBaseWidget(r)
	return r
}

func (r *lapRow) Update(lap stopwatch.LapEntry, alt bool) {
	r.index.SetText(lang.L("Lap") + fmt.Sprintf(" %d", lap.Index))
	r.label.SetText(lap.Label)
	if alt {
		r.bg.Show()
	} else {
		r.bg.Hide()
	}
}

func (r *lapRow) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(
		container.NewStack(r.bg, container.NewBorder(nil, nil, r.index, r.label)),
	)
}
