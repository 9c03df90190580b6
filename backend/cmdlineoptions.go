package backend

import (
	"errors"
	"flag"
	"fmt"
)

var (
	ThemeCLIArg string

	FlagToggle  = flag.Bool("toggle", false, "start the stopwatch if paused, else pause it")
	FlagStart   = flag.Bool("start", false, "start or resume the stopwatch")
	FlagStop    = flag.Bool("stop", false, "pause the stopwatch")
	FlagReset   = flag.Bool("reset", false, "stop the stopwatch, zero it and clear all laps")
	FlagLap     = flag.Bool("lap", false, "record a lap (only while running)")
	FlagState   = flag.Bool("state", false, "print the stopwatch state as JSON and exit")
	FlagVersion = flag.Bool("version", false, "print app version and exit")
	FlagHelp    = flag.Bool("help", false, "print command line options and exit")
)

func init() {
	flag.Func("theme", "sets the theme (dark or light)", func(s string) error {
		if s != "dark" && s != "light" {
			return errors.New(`must be "dark" or "light"`)
		}
		ThemeCLIArg = s
		return nil
	})
}

// HaveCommandLineOptions reports whether any stopwatch command flag was given.
func HaveCommandLineOptions() bool {
	return *FlagToggle || *FlagStart || *FlagStop || *FlagReset || *FlagLap ||
		*FlagState || ThemeCLIArg != ""
}

type commandTarget interface {
	Toggle() error
	Start() error
	Stop() error
	Reset() error
	RecordLap() error
	SetTheme(dark bool) error
}

// RunCommandLineCommands applies the command flags to t in a fixed order:
// reset, start, toggle, lap, stop, theme.
// All commands are attempted; the errors are joined.
func RunCommandLineCommands(t commandTarget) error {
	var errs []error
	run := func(set bool, name string, f func() error) {
		if set {
			if err := f(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}
	run(*FlagReset, "reset", t.Reset)
	run(*FlagStart, "start", t.Start)
	run(*FlagToggle, "toggle", t.Toggle)
	run(*FlagLap, "lap", t.RecordLap)
	run(*FlagStop, "stop", t.Stop)
	run(ThemeCLIArg != "", "theme", func() error {
		return t.SetTheme(ThemeCLIArg == "dark")
	})
	return errors.Join(errs...)
}
