package backend

import (
	"time"

	"github.com/dweymouth/lapwatch/backend/ipc"
	"github.com/dweymouth/lapwatch/backend/stopwatch"
	"github.com/dweymouth/lapwatch/sharedutil"
)

var _ ipc.StopwatchHandler = (*StopwatchCommands)(nil)

// StopwatchCommands adapts the engine to the error-returning command
// surface shared by IPC, MPRIS and the command line.
type StopwatchCommands struct {
	engine *stopwatch.Engine
}

func NewStopwatchCommands(e *stopwatch.Engine) *StopwatchCommands {
	return &StopwatchCommands{engine: e}
}

func (s *StopwatchCommands) Toggle() error {
	s.engine.Toggle()
	return nil
}

func (s *StopwatchCommands) Start() error {
	s.engine.Start()
	return nil
}

func (s *StopwatchCommands) Stop() error {
	s.engine.Stop()
	return nil
}

func (s *StopwatchCommands) Reset() error {
	s.engine.Reset()
	return nil
}

func (s *StopwatchCommands) RecordLap() error {
	if !s.engine.RecordLap() {
		return ipc.ErrLapRejected
	}
	return nil
}

func (s *StopwatchCommands) SetTheme(dark bool) error {
	s.engine.SetTheme(dark)
	return nil
}

func (s *StopwatchCommands) State() ipc.State {
	snap := s.engine.Snapshot()
	laps := sharedutil.MapSlice(s.engine.Laps(), func(l stopwatch.LapEntry) ipc.Lap {
		return ipc.Lap{Index: l.Index, Label: l.Label}
	})
	if laps == nil {
		laps = []ipc.Lap{}
	}
	return ipc.State{
		Running:   snap.Running,
		ElapsedMs: snap.ElapsedMs,
		Display:   stopwatch.FieldsFromDuration(time.Duration(snap.ElapsedMs) * time.Millisecond).String(),
		Laps:      laps,
		Theme:     string(snap.Theme),
		Session:   snap.SessionID.String(),
	}
}
