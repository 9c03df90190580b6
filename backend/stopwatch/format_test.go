package stopwatch

import (
	"testing"
	"time"
)

func TestFieldsFromDuration(t *testing.T) {
	for _, tc := range []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00.000"},
		{1500 * time.Millisecond, "00:00:01.500"},
		{65400 * time.Millisecond, "00:01:05.400"},
		{130 * time.Second, "00:02:10.000"},
		{time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond, "01:59:59.999"},
		{99*time.Hour + 123*time.Millisecond, "99:00:00.123"},
		// sub-millisecond precision is truncated
		{1999999 * time.Microsecond, "00:00:01.999"},
		{-time.Second, "00:00:00.000"},
	} {
		if got := FieldsFromDuration(tc.d).String(); got != tc.want {
			t.Errorf("FieldsFromDuration(%v) = %s, want %s", tc.d, got, tc.want)
		}
	}
}

func TestFieldsRanges(t *testing.T) {
	f := FieldsFromDuration(3*time.Hour + 61*time.Minute + 61*time.Second + 1001*time.Millisecond)
	if f.Hours != 4 || f.Minutes != 2 || f.Seconds != 2 || f.Millis != 1 {
		t.Errorf("fields = %+v", f)
	}
}

func TestLapLedger(t *testing.T) {
	var l LapLedger
	for i, label := range []string{"a", "b", "c"} {
		if e := l.Record(label); e.Index != i+1 {
			t.Errorf("lap %q index = %d, want %d", label, e.Index, i+1)
		}
	}
	entries := l.Entries()
	entries[0].Label = "mutated"
	if l.Entries()[0].Label != "a" {
		t.Error("Entries() exposes internal storage")
	}

	l.Clear()
	if l.Len() != 0 || len(l.Labels()) != 0 {
		t.Error("Clear() left entries")
	}
	if e := l.Record("z"); e.Index != 1 {
		t.Errorf("index after clear = %d, want 1", e.Index)
	}

	l.Restore([]string{"x", "y"})
	if e := l.Record("w"); e.Index != 3 {
		t.Errorf("index after restore = %d, want 3", e.Index)
	}
	if got := l.Labels(); len(got) != 3 || got[0] != "x" || got[2] != "w" {
		t.Errorf("labels = %v", got)
	}
}
