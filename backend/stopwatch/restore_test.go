package stopwatch

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRestore_NoSnapshot(t *testing.T) {
	c := newFakeClock()
	e := Restore(c, NewMemoryStore(nil), Options{})
	r := newRecorder(e)
	e.Attach()

	if e.Running() || e.Elapsed() != 0 || len(e.Laps()) != 0 || e.Theme() != ThemeLight {
		t.Errorf("cold start state: running=%v elapsed=%v laps=%v theme=%s",
			e.Running(), e.Elapsed(), e.Laps(), e.Theme())
	}
	if len(r.times) != 1 || r.times[0].String() != "00:00:00.000" {
		t.Errorf("expected zero state rendered, got %v", r.times)
	}
	if c.tickerCount() != 0 {
		t.Error("cold start should not tick")
	}
}

func TestRestore_RunningSnapshot(t *testing.T) {
	c := newFakeClock()
	c.Set(10_000)
	r0 := c.Now().UnixMilli()
	store := NewMemoryStore(EncodeSnapshot(Snapshot{
		ElapsedMs:   5000,
		Running:     true,
		ReferenceMs: r0,
		Laps:        []string{"00:00:01.000", "00:00:03.500"},
		Theme:       ThemeDark,
	}))

	// the process was gone for 3 seconds
	c.Set(13_000)
	e := Restore(c, store, Options{})
	r := newRecorder(e)
	e.Attach()

	if !e.Running() {
		t.Fatal("expected restored engine to be running")
	}
	if el := e.Elapsed(); el != 8000*time.Millisecond {
		t.Errorf("restored elapsed = %v, want 8s", el)
	}
	if e.Theme() != ThemeDark || len(r.themes) != 1 || r.themes[0] != ThemeDark {
		t.Errorf("theme not restored: %s %v", e.Theme(), r.themes)
	}
	if running, _ := r.lastRunState(); !running {
		t.Error("expected controls synchronized to running")
	}

	// ticking resumes from the reconstructed value, not from 0 or E
	c.Advance(250)
	if f := tick(t, c, r); f.String() != "00:00:08.250" {
		t.Errorf("first tick after restore = %s, want 00:00:08.250", f)
	}

	// numbering continues after restored laps
	e.RecordLap()
	laps := e.Laps()
	if len(laps) != 3 || laps[0].Label != "00:00:01.000" || laps[2].Index != 3 {
		t.Errorf("laps after restore = %v", laps)
	}
	e.Stop()
}

func TestRestore_RunningSnapshotFormula(t *testing.T) {
	for _, tc := range []struct {
		e, r, now int64
		want      int64
	}{
		{e: 0, r: 1000, now: 1000, want: 0},
		{e: 1500, r: 2000, now: 62_000, want: 61_500},
		{e: 42, r: 5000, now: 5001, want: 43},
		// clock moved backwards while closed: no gap, never below E
		{e: 7000, r: 9000, now: 4000, want: 7000},
	} {
		c := newFakeClock()
		store := NewMemoryStore(EncodeSnapshot(Snapshot{
			ElapsedMs:   tc.e,
			Running:     true,
			ReferenceMs: epoch.UnixMilli() + tc.r,
		}))
		c.Set(tc.now)
		e := Restore(c, store, Options{})
		if got := e.Elapsed().Milliseconds(); got != tc.want {
			t.Errorf("E=%d R=%d T=%d: elapsed = %d, want %d", tc.e, tc.r, tc.now, got, tc.want)
		}
		e.Stop()
	}
}

func TestRestore_StoppedSnapshot(t *testing.T) {
	c := newFakeClock()
	store := NewMemoryStore(EncodeSnapshot(Snapshot{
		ElapsedMs:   5000,
		Running:     false,
		ReferenceMs: epoch.UnixMilli(),
		Laps:        []string{"00:00:02.000"},
	}))
	c.Set(60_000)
	e := Restore(c, store, Options{})

	if e.Running() {
		t.Error("stopped snapshot restored as running")
	}
	c.Advance(time.Hour)
	if el := e.Elapsed(); el != 5000*time.Millisecond {
		t.Errorf("elapsed = %v, want exactly 5s", el)
	}
	if c.tickerCount() != 0 {
		t.Error("stopped restore should not tick")
	}
	if e.RecordLap() {
		t.Error("lap accepted on restored paused stopwatch")
	}
}

func TestRestore_KeepsSession(t *testing.T) {
	id := uuid.New()
	store := NewMemoryStore(EncodeSnapshot(Snapshot{ElapsedMs: 1, SessionID: id}))
	e := Restore(newFakeClock(), store, Options{})
	if e.SessionID() != id {
		t.Errorf("session = %s, want %s", e.SessionID(), id)
	}
}

func TestRestore_MalformedSnapshot(t *testing.T) {
	for _, kv := range []map[string]string{
		{KeyElapsedMs: "abc", KeyIsRunning: "false"},
		{KeyElapsedMs: "100", KeyIsRunning: "yes"},
		{KeyElapsedMs: "100", KeyIsRunning: "true"},
		{KeyElapsedMs: "100", KeyIsRunning: "false", KeyLaps: "[1,"},
		{KeyElapsedMs: "20000000000000", KeyIsRunning: "false"},
		{KeyElapsedMs: "9223372036854775807", KeyIsRunning: "false"},
		{KeyElapsedMs: "100", KeyIsRunning: "true", KeyStartReference: "-9223372036854775808"},
		{KeyElapsedMs: "9223372036854", KeyIsRunning: "true", KeyStartReference: "0", KeyTheme: "dark"},
	} {
		c := newFakeClock()
		e := Restore(c, NewMemoryStore(kv), Options{})
		if e.Running() || e.Elapsed() != 0 || len(e.Laps()) != 0 || e.Theme() != ThemeLight {
			t.Errorf("%v: expected cold-start defaults", kv)
		}
	}
}

type brokenStore struct{}

func (brokenStore) Load() (map[string]string, error) { return nil, errors.New("unreadable") }
func (brokenStore) Save(map[string]string) error     { return nil }

func TestResumedElapsed_LargestValue(t *testing.T) {
	snap := Snapshot{ElapsedMs: maxElapsedMs - 10, Running: true, ReferenceMs: 1000}
	el, gap, err := resumedElapsed(snap, 1010)
	if err != nil {
		t.Fatal(err)
	}
	if el.Milliseconds() != maxElapsedMs || gap != 10*time.Millisecond {
		t.Errorf("elapsed=%v gap=%v", el, gap)
	}
	if _, _, err := resumedElapsed(snap, 1011); !errors.Is(err, errElapsedRange) {
		t.Errorf("one past the largest duration: err=%v", err)
	}
}

func TestRestore_LoadError(t *testing.T) {
	e := Restore(newFakeClock(), brokenStore{}, Options{})
	if e.Running() || e.Elapsed() != 0 {
		t.Error("expected cold-start defaults on load error")
	}
}

func TestRestore_RoundTripThroughEngine(t *testing.T) {
	c := newFakeClock()
	store := NewMemoryStore(nil)

	e := NewEngine(c, store, Options{})
	e.SetTheme(true)
	e.Start()
	c.Set(3000)
	e.RecordLap()
	c.Set(4500)
	e.Close()

	c.Set(10_000)
	e2 := Restore(c, store, Options{})
	if !e2.Running() || e2.Elapsed() != 10*time.Second {
		t.Errorf("restored running=%v elapsed=%v, want running at 10s", e2.Running(), e2.Elapsed())
	}
	if laps := e2.Laps(); len(laps) != 1 || laps[0].Label != "00:00:03.000" {
		t.Errorf("laps = %v", laps)
	}
	if e2.Theme() != ThemeDark {
		t.Error("theme not restored")
	}
	e2.Stop()
}
