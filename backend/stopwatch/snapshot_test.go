package stopwatch

import (
	"testing"

	"github.com/google/uuid"
)

func TestEncodeSnapshot_Layout(t *testing.T) {
	id := uuid.MustParse("3f1c1d0e-8a0b-4c5d-9e6f-7a8b9c0d1e2f")
	kv := EncodeSnapshot(Snapshot{
		ElapsedMs:   65400,
		Running:     true,
		ReferenceMs: 1700000000123,
		Laps:        []string{"00:01:05.400"},
		Theme:       ThemeDark,
		SessionID:   id,
	})
	want := map[string]string{
		KeyElapsedMs:      "65400",
		KeyIsRunning:      "true",
		KeyStartReference: "1700000000123",
		KeyLaps:           `["00:01:05.400"]`,
		KeyTheme:          "dark",
		KeySession:        id.String(),
	}
	for k, v := range want {
		if kv[k] != v {
			t.Errorf("%s = %q, want %q", k, kv[k], v)
		}
	}
}

func TestEncodeSnapshot_Defaults(t *testing.T) {
	kv := EncodeSnapshot(Snapshot{})
	if kv[KeyLaps] != "[]" {
		t.Errorf("laps = %q, want []", kv[KeyLaps])
	}
	if kv[KeyTheme] != "light" {
		t.Errorf("theme = %q, want light", kv[KeyTheme])
	}
	if _, ok := kv[KeySession]; ok {
		t.Error("nil session should not be written")
	}
}

func TestDecodeSnapshot_Absent(t *testing.T) {
	for _, kv := range []map[string]string{nil, {}} {
		_, ok, err := DecodeSnapshot(kv)
		if ok || err != nil {
			t.Errorf("%v: ok=%v err=%v, want absent", kv, ok, err)
		}
	}
}

func TestDecodeSnapshot_OptionalKeys(t *testing.T) {
	s, ok, err := DecodeSnapshot(map[string]string{
		KeyElapsedMs: "1200",
		KeyIsRunning: "false",
	})
	if !ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if s.ElapsedMs != 1200 || s.Running || len(s.Laps) != 0 || s.Theme != ThemeLight || s.SessionID != uuid.Nil {
		t.Errorf("decoded %+v", s)
	}
}

func TestDecodeSnapshot_RejectsWholeRecord(t *testing.T) {
	valid := func() map[string]string {
		return EncodeSnapshot(Snapshot{ElapsedMs: 10, Running: true, ReferenceMs: 99, Laps: []string{"a"}})
	}
	for name, mutate := range map[string]func(map[string]string){
		"missing elapsed":      func(kv map[string]string) { delete(kv, KeyElapsedMs) },
		"negative elapsed":     func(kv map[string]string) { kv[KeyElapsedMs] = "-5" },
		"fractional elapsed":   func(kv map[string]string) { kv[KeyElapsedMs] = "1.5" },
		"elapsed overflows":    func(kv map[string]string) { kv[KeyElapsedMs] = "20000000000000" },
		"elapsed at int64 max": func(kv map[string]string) { kv[KeyElapsedMs] = "9223372036854775807" },
		"missing running":      func(kv map[string]string) { delete(kv, KeyIsRunning) },
		"bad running":          func(kv map[string]string) { kv[KeyIsRunning] = "1" },
		"missing reference":    func(kv map[string]string) { delete(kv, KeyStartReference) },
		"bad reference":        func(kv map[string]string) { kv[KeyStartReference] = "soon" },
		"bad laps":             func(kv map[string]string) { kv[KeyLaps] = `{"a":1}` },
		"unknown theme":        func(kv map[string]string) { kv[KeyTheme] = "sepia" },
		"malformed session id": func(kv map[string]string) { kv[KeySession] = "not-a-uuid" },
	} {
		kv := valid()
		mutate(kv)
		if _, ok, err := DecodeSnapshot(kv); ok || err == nil {
			t.Errorf("%s: ok=%v err=%v, want rejection", name, ok, err)
		}
	}
}

func TestDecodeSnapshot_StoppedWithoutReference(t *testing.T) {
	s, ok, err := DecodeSnapshot(map[string]string{
		KeyElapsedMs: "300",
		KeyIsRunning: "false",
		KeyTheme:     "dark",
		KeyLaps:      `["00:00:00.100","00:00:00.200"]`,
	})
	if !ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if s.Theme != ThemeDark || len(s.Laps) != 2 || s.Laps[1] != "00:00:00.200" {
		t.Errorf("decoded %+v", s)
	}
}
