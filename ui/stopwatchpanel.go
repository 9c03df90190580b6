package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/dweymouth/lapwatch/backend/stopwatch"
	"github.com/dweymouth/lapwatch/ui/widgets"
)

// StopwatchPanel is the time readout, the control buttons and the lap list.
type StopwatchPanel struct {
	widget.BaseWidget

	Display *widgets.TimeDisplay
	Laps    *widgets.LapList

	engine              *stopwatch.Engine
	allowLapWhilePaused bool
	running             bool

	toggleBtn *ttwidget.Button
	lapBtn    *ttwidget.Button
	resetBtn  *ttwidget.Button

	container *fyne.Container
}

func NewStopwatchPanel(engine *stopwatch.Engine, allowLapWhilePaused bool) *StopwatchPanel {
	s := &StopwatchPanel{
		Display:             widgets.NewTimeDisplay(),
		Laps:                widgets.NewLapList(),
		engine:              engine,
		allowLapWhilePaused: allowLapWhilePaused,
	}
	s.ExtendBaseWidget(s)

	s.toggleBtn = ttwidget.NewButtonWithIcon("", theme.MediaPlayIcon(), engine.Toggle)
	s.toggleBtn.Importance = widget.HighImportance
	s.lapBtn = ttwidget.NewButtonWithIcon(lang.L("Lap"), theme.ContentAddIcon(), func() { engine.RecordLap() })
	s.lapBtn.SetToolTip(lang.L("Record a lap") + " (L)")
	s.resetBtn = ttwidget.NewButtonWithIcon(lang.L("Reset"), theme.ContentUndoIcon(), engine.Reset)
	s.resetBtn.SetToolTip(lang.L("Stop and clear all laps") + " (R)")
	s.setRunning(false)

	// engine callbacks run on the engine's goroutines
	engine.OnTimeUpdate(func(f stopwatch.TimeFields) {
		fyne.Do(func() { s.Display.SetFields(f) })
	})
	engine.OnLapAdded(func(index int, label string) {
		fyne.Do(func() { s.Laps.Add(index, label) })
	})
	engine.OnLapsCleared(func() {
		fyne.Do(s.Laps.Clear)
	})
	engine.OnRunStateChanged(func(running bool) {
		fyne.Do(func() { s.setRunning(running) })
	})

	buttons := container.NewGridWithColumns(3, s.resetBtn, s.toggleBtn, s.lapBtn)
	s.container = container.NewBorder(
		container.NewVBox(s.Display, buttons, widget.NewSeparator()),
		nil, nil, nil,
		s.Laps,
	)
	return s
}

func (s *StopwatchPanel) setRunning(running bool) {
	s.running = running
	s.Display.SetRunning(running)
	if running {
		s.toggleBtn.SetText(lang.L("Stop"))
		s.toggleBtn.SetIcon(theme.MediaPauseIcon())
		s.toggleBtn.SetToolTip(lang.L("Pause the stopwatch") + " (Space)")
	} else {
		s.toggleBtn.SetText(lang.L("Start"))
		s.toggleBtn.SetIcon(theme.MediaPlayIcon())
		s.toggleBtn.SetToolTip(lang.L("Start the stopwatch") + " (Space)")
	}
	if s.LapEnabled() {
		s.lapBtn.Enable()
	} else {
		s.lapBtn.Disable()
	}
}

// LapEnabled reports whether the lap control is currently usable.
func (s *StopwatchPanel) LapEnabled() bool {
	return s.running || s.allowLapWhilePaused
}

func (s *StopwatchPanel) Running() bool {
	return s.running
}

func (s *StopwatchPanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.container)
}
