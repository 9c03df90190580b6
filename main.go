package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dweymouth/lapwatch/backend"
	"github.com/dweymouth/lapwatch/res"
	"github.com/dweymouth/lapwatch/sharedutil"
	"github.com/dweymouth/lapwatch/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/lang"
)

func main() {
	flag.Parse()
	if *backend.FlagVersion {
		fmt.Println(res.AppVersion)
		return
	}
	if *backend.FlagHelp {
		flag.Usage()
		return
	}

	myApp, err := backend.StartupApp(res.AppName, res.DisplayName, res.AppVersionTag, res.LatestReleaseURL, *backend.FlagState)
	if err != nil {
		if errors.Is(err, backend.ErrAnotherInstance) {
			return
		}
		log.Fatalf("fatal startup error: %v", err.Error())
	}

	if *backend.FlagState {
		// headless query: print and exit without opening a window
		state := myApp.Commands.State()
		if *backend.FlagLap {
			if lap, ok := sharedutil.Last(state.Laps); ok {
				log.Printf("recorded lap %d at %s", lap.Index, lap.Label)
			}
		}
		if err := backend.PrintState(state); err != nil {
			log.Printf("failed to print state: %s", err.Error())
		}
		myApp.Shutdown()
		return
	}

	loadTranslations()

	fyneApp := app.NewWithID("io.github.dweymouth.lapwatch")

	w := float32(myApp.Config.Application.WindowWidth)
	if w <= 1 {
		w = 420
	}
	h := float32(myApp.Config.Application.WindowHeight)
	if h <= 1 {
		h = 560
	}
	mainWindow := ui.NewMainWindow(fyneApp, res.AppName, res.DisplayName, res.AppVersion, myApp, fyne.NewSize(w, h))
	// IPC and MPRIS requests arrive on their own goroutines
	myApp.OnReactivate = func() { fyne.Do(mainWindow.Show) }
	myApp.OnExit = func() { fyne.Do(mainWindow.Quit) }

	mainWindow.Show()
	mainWindow.Window.SetCloseIntercept(func() {
		mainWindow.SaveWindowSize()
		if myApp.Config.Application.CloseToSystemTray &&
			mainWindow.HaveSystemTray() {
			mainWindow.Window.Hide()
		} else {
			fyneApp.Quit()
		}
	})
	fyneApp.Lifecycle().SetOnStarted(func() {
		mainWindow.RunStartupTasks(res.DisplayName)
	})
	fyneApp.Run()

	log.Println("Running shutdown tasks...")
	myApp.Shutdown()
}

func loadTranslations() {
	for _, t := range res.TranslationsInfo {
		content, err := res.Translations.ReadFile("translations/" + t.TranslationFileName)
		if err != nil {
			log.Printf("missing translation %s: %s", t.Name, err.Error())
			continue
		}
		if err := lang.AddTranslationsForLocale(content, fyne.Locale(t.Name)); err != nil {
			log.Printf("error loading translation %s: %s", t.Name, err.Error())
		}
	}
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", res.AppName)
		fmt.Fprintln(os.Stderr, "With an instance already running, commands are sent to it.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
}
