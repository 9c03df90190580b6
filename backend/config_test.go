package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestReadConfigFile_Defaults(t *testing.T) {
	c, err := ReadConfigFile(writeTestConfig(t, ""), "v1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultConfig("v1.0.0")
	if c.Stopwatch != def.Stopwatch || c.Application != def.Application || c.MPRIS != def.MPRIS {
		t.Errorf("empty config did not yield defaults: %+v", c)
	}
	if c.Stopwatch.TickIntervalMs != 10 || c.Stopwatch.StateBackend != StateBackendFile {
		t.Errorf("unexpected stopwatch defaults: %+v", c.Stopwatch)
	}
}

func TestReadConfigFile_Clamping(t *testing.T) {
	c, err := ReadConfigFile(writeTestConfig(t, `
[Stopwatch]
TickIntervalMs = 5000
SaveIntervalMs = -3
StateBackend = "postgres"
`), "v1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if c.Stopwatch.TickIntervalMs != 1000 {
		t.Errorf("TickIntervalMs = %d, want 1000", c.Stopwatch.TickIntervalMs)
	}
	if c.Stopwatch.SaveIntervalMs != 0 {
		t.Errorf("SaveIntervalMs = %d, want 0", c.Stopwatch.SaveIntervalMs)
	}
	if c.Stopwatch.StateBackend != StateBackendFile {
		t.Errorf("StateBackend = %q, want %q", c.Stopwatch.StateBackend, StateBackendFile)
	}

	c, err = ReadConfigFile(writeTestConfig(t, "[Stopwatch]\nTickIntervalMs = 0\nStateBackend = \"sqlite\"\n"), "v1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if c.Stopwatch.TickIntervalMs != 1 || c.Stopwatch.StateBackend != StateBackendSQLite {
		t.Errorf("got %+v", c.Stopwatch)
	}
}

func TestReadConfigFile_Malformed(t *testing.T) {
	if _, err := ReadConfigFile(writeTestConfig(t, "[Stopwatch\nTickIntervalMs = "), "v1.0.0"); err == nil {
		t.Error("expected error for malformed config")
	}
	if _, err := ReadConfigFile(filepath.Join(t.TempDir(), "missing.toml"), "v1.0.0"); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.toml")
	c := DefaultConfig("v1.0.0")
	c.Application.WindowWidth = 500
	c.Stopwatch.AllowLapWhilePaused = true
	c.Stopwatch.SaveIntervalMs = 250
	c.MPRIS.Enabled = false
	if err := c.WriteConfigFile(p); err != nil {
		t.Fatal(err)
	}

	read, err := ReadConfigFile(p, "v1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if *read != *c {
		t.Errorf("got %+v, want %+v", read, c)
	}
}

func TestStopwatchConfig_EngineOptions(t *testing.T) {
	c := StopwatchConfig{TickIntervalMs: 20, SaveIntervalMs: 500, AllowLapWhilePaused: true}
	opts := c.EngineOptions()
	if opts.TickInterval != 20*time.Millisecond || opts.SaveInterval != 500*time.Millisecond || !opts.AllowLapWhilePaused {
		t.Errorf("unexpected options: %+v", opts)
	}
}
