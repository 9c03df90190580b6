package backend

import (
	"errors"
	"flag"
	"slices"
	"testing"
)

type recordingTarget struct {
	calls  []string
	lapErr error
}

func (r *recordingTarget) Toggle() error { r.calls = append(r.calls, "toggle"); return nil }
func (r *recordingTarget) Start() error  { r.calls = append(r.calls, "start"); return nil }
func (r *recordingTarget) Stop() error   { r.calls = append(r.calls, "stop"); return nil }
func (r *recordingTarget) Reset() error  { r.calls = append(r.calls, "reset"); return nil }
func (r *recordingTarget) RecordLap() error {
	r.calls = append(r.calls, "lap")
	return r.lapErr
}
func (r *recordingTarget) SetTheme(dark bool) error {
	if dark {
		r.calls = append(r.calls, "theme:dark")
	} else {
		r.calls = append(r.calls, "theme:light")
	}
	return nil
}

func parseTestFlags(t *testing.T, args ...string) {
	t.Helper()
	resetFlags()
	if err := flag.CommandLine.Parse(args); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(resetFlags)
}

func resetFlags() {
	for _, f := range []*bool{FlagToggle, FlagStart, FlagStop, FlagReset, FlagLap, FlagState, FlagVersion, FlagHelp} {
		*f = false
	}
	ThemeCLIArg = ""
}

func TestRunCommandLineCommands_Order(t *testing.T) {
	parseTestFlags(t, "-theme", "dark", "-stop", "-lap", "-start", "-reset")
	if !HaveCommandLineOptions() {
		t.Error("HaveCommandLineOptions = false")
	}

	r := &recordingTarget{}
	if err := RunCommandLineCommands(r); err != nil {
		t.Fatal(err)
	}
	want := []string{"reset", "start", "lap", "stop", "theme:dark"}
	if !slices.Equal(r.calls, want) {
		t.Errorf("calls = %v, want %v", r.calls, want)
	}
}

func TestRunCommandLineCommands_Errors(t *testing.T) {
	parseTestFlags(t, "-lap", "-toggle")

	errRejected := errors.New("rejected")
	r := &recordingTarget{lapErr: errRejected}
	err := RunCommandLineCommands(r)
	if !errors.Is(err, errRejected) {
		t.Errorf("err = %v, want wrapped %v", err, errRejected)
	}
	// all commands still attempted
	if want := []string{"toggle", "lap"}; !slices.Equal(r.calls, want) {
		t.Errorf("calls = %v, want %v", r.calls, want)
	}
}

func TestThemeFlag_Invalid(t *testing.T) {
	f := flag.Lookup("theme")
	if err := f.Value.Set("purple"); err == nil {
		t.Error("expected error for invalid theme")
	}
	if err := f.Value.Set("light"); err != nil || ThemeCLIArg != "light" {
		t.Errorf("err = %v, ThemeCLIArg = %q", err, ThemeCLIArg)
	}
	ThemeCLIArg = ""
}

func TestHaveCommandLineOptions_VersionOnly(t *testing.T) {
	parseTestFlags(t, "-version")
	if HaveCommandLineOptions() {
		t.Error("-version alone counted as a stopwatch command")
	}
}
