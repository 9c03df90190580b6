package backend

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"fyne.io/fyne/v2/lang"
	"github.com/dweymouth/lapwatch/backend/stopwatch"
	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

const dbusSessionPrefix = "/Lapwatch/Session/"

var (
	_ types.OrgMprisMediaPlayer2Adapter       = (*MPRISHandler)(nil)
	_ types.OrgMprisMediaPlayer2PlayerAdapter = (*MPRISHandler)(nil)
)

var (
	errNotSupported = errors.New("not supported")
	errNotStarted   = errors.New("not started")
	errStopped      = errors.New("stopped")
)

// MPRISHandler exposes the stopwatch to desktop media keys:
// play/pause toggles, stop resets and next records a lap.
type MPRISHandler struct {
	// Function called if the app is requested to quit through MPRIS.
	// Should *asynchronously* start shutdown and return immediately.
	OnQuit func() error

	// Function called if the app is requested to bring its UI to the front.
	OnRaise func() error

	// result of the D-Bus connection; nil while connected
	connErr    atomic.Pointer[error]
	playerName string
	engine     *stopwatch.Engine
	s          *server.Server
	evt        *events.EventHandler
}

func NewMPRISHandler(playerName string, engine *stopwatch.Engine) *MPRISHandler {
	m := &MPRISHandler{playerName: playerName, engine: engine}
	m.setConnErr(errNotStarted)
	m.s = server.NewServer(playerName, m, m)
	m.evt = events.NewEventHandler(m.s)

	// engine callbacks run under the engine lock and the D-Bus
	// property reads call back into the engine, so emit asynchronously
	engine.OnRunStateChanged(func(bool) {
		if m.connected() {
			go m.evt.Player.OnPlayPause()
		}
	})
	engine.OnLapAdded(func(int, string) {
		if m.connected() {
			go m.evt.Player.OnTitle()
		}
	})
	engine.OnLapsCleared(func() {
		if m.connected() {
			go func() {
				m.evt.Player.OnTitle()
				m.evt.Player.OnSeek(0)
			}()
		}
	})

	return m
}

// Starts listening for MPRIS events.
func (m *MPRISHandler) Start() {
	m.setConnErr(nil)
	go func() {
		// exits early with err if unable to establish D-Bus connection
		m.setConnErr(m.s.Listen())
	}()
}

// Stops listening for MPRIS events and releases any D-Bus resources.
func (m *MPRISHandler) Shutdown() {
	if m.connected() {
		m.s.Stop()
		m.setConnErr(errStopped)
	}
}

func (m *MPRISHandler) setConnErr(err error) {
	m.connErr.Store(&err)
}

func (m *MPRISHandler) connected() bool {
	err := m.connErr.Load()
	return err != nil && *err == nil
}

// OrgMprisMediaPlayer2Adapter implementation

func (m *MPRISHandler) Identity() (string, error) {
	return m.playerName, nil
}

func (m *MPRISHandler) CanQuit() (bool, error) {
	return m.OnQuit != nil, nil
}

func (m *MPRISHandler) Quit() error {
	if m.OnQuit != nil {
		return m.OnQuit()
	}
	return errors.New("no quit handler added")
}

func (m *MPRISHandler) CanRaise() (bool, error) {
	return m.OnRaise != nil, nil
}

func (m *MPRISHandler) Raise() error {
	if m.OnRaise != nil {
		return m.OnRaise()
	}
	return errors.New("no raise handler added")
}

func (m *MPRISHandler) HasTrackList() (bool, error) {
	return false, nil
}

func (m *MPRISHandler) SupportedUriSchemes() ([]string, error) {
	return nil, nil
}

func (m *MPRISHandler) SupportedMimeTypes() ([]string, error) {
	return nil, nil
}

// OrgMprisMediaPlayer2PlayerAdapter implementation

func (m *MPRISHandler) Next() error {
	m.engine.RecordLap()
	return nil
}

func (m *MPRISHandler) Previous() error {
	return errNotSupported
}

func (m *MPRISHandler) Pause() error {
	m.engine.Stop()
	return nil
}

func (m *MPRISHandler) PlayPause() error {
	m.engine.Toggle()
	return nil
}

func (m *MPRISHandler) Stop() error {
	m.engine.Reset()
	return nil
}

func (m *MPRISHandler) Play() error {
	m.engine.Start()
	return nil
}

func (m *MPRISHandler) Seek(types.Microseconds) error {
	return errNotSupported
}

func (m *MPRISHandler) SetPosition(string, types.Microseconds) error {
	return errNotSupported
}

func (m *MPRISHandler) OpenUri(string) error {
	return errNotSupported
}

func (m *MPRISHandler) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(m.engine.Running(), m.engine.Elapsed().Milliseconds()), nil
}

func playbackStatus(running bool, elapsedMs int64) types.PlaybackStatus {
	switch {
	case running:
		return types.PlaybackStatusPlaying
	case elapsedMs == 0:
		return types.PlaybackStatusStopped
	default:
		return types.PlaybackStatusPaused
	}
}

func (m *MPRISHandler) Rate() (float64, error) {
	return 1, nil
}

func (m *MPRISHandler) SetRate(float64) error {
	return errNotSupported
}

func (m *MPRISHandler) Metadata() (types.Metadata, error) {
	return types.Metadata{
		TrackId: sessionObjectPath(m.engine.SessionID().String()),
		Title:   m.engine.Fields().String(),
		Album:   m.playerName,
		Artist:  []string{lastLapText(m.engine.Laps())},
	}, nil
}

func lastLapText(laps []stopwatch.LapEntry) string {
	n := len(laps)
	if n == 0 {
		return lang.L("No laps recorded")
	}
	return fmt.Sprintf("%s %d: %s", lang.L("Lap"), laps[n-1].Index, laps[n-1].Label)
}

// D-Bus object path elements may only contain [A-Za-z0-9_]
func sessionObjectPath(session string) dbus.ObjectPath {
	return dbus.ObjectPath(dbusSessionPrefix + strings.ReplaceAll(session, "-", ""))
}

func (m *MPRISHandler) Volume() (float64, error) {
	return 1, nil
}

func (m *MPRISHandler) SetVolume(float64) error {
	return errNotSupported
}

func (m *MPRISHandler) Position() (int64, error) {
	return m.engine.Elapsed().Microseconds(), nil
}

func (m *MPRISHandler) MinimumRate() (float64, error) {
	return 1, nil
}

func (m *MPRISHandler) MaximumRate() (float64, error) {
	return 1, nil
}

func (m *MPRISHandler) CanGoNext() (bool, error) {
	return m.engine.CanRecordLap(), nil
}

func (m *MPRISHandler) CanGoPrevious() (bool, error) {
	return false, nil
}

func (m *MPRISHandler) CanPlay() (bool, error) {
	return true, nil
}

func (m *MPRISHandler) CanPause() (bool, error) {
	return true, nil
}

func (m *MPRISHandler) CanSeek() (bool, error) {
	return false, nil
}

func (m *MPRISHandler) CanControl() (bool, error) {
	return true, nil
}
