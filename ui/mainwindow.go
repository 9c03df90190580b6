package ui

import (
	"fmt"
	"math"

	"github.com/dweymouth/lapwatch/backend"
	"github.com/dweymouth/lapwatch/backend/stopwatch"
	"github.com/dweymouth/lapwatch/res"
	"github.com/dweymouth/lapwatch/ui/dialogs"
	"github.com/dweymouth/lapwatch/ui/shortcuts"
	"github.com/dweymouth/lapwatch/ui/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/lang"
	fynetheme "fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
)

type MainWindow struct {
	Window fyne.Window

	App   *backend.App
	Panel *StopwatchPanel

	theme          *theme.MyTheme
	darkCheck      *widget.Check
	menuBtn        *ttwidget.Button
	trayLapItem    *fyne.MenuItem
	trayMenu       *fyne.Menu
	haveSystemTray bool
}

func NewMainWindow(fyneApp fyne.App, appName, displayAppName, appVersion string, app *backend.App, size fyne.Size) *MainWindow {
	m := &MainWindow{
		App:    app,
		Window: fyneApp.NewWindow(displayAppName),
		theme:  theme.NewMyTheme(app.Engine.Theme().IsDark()),
	}
	fyneApp.Settings().SetTheme(m.theme)

	engine := app.Engine
	m.Panel = NewStopwatchPanel(engine, app.Config.Stopwatch.AllowLapWhilePaused)

	m.darkCheck = widget.NewCheck(lang.L("Dark theme"), engine.SetTheme)
	m.darkCheck.Checked = m.theme.IsDark()
	engine.OnThemeChanged(func(t stopwatch.Theme) {
		fyne.Do(func() { m.applyTheme(t.IsDark()) })
	})

	m.menuBtn = ttwidget.NewButtonWithIcon("", fynetheme.MenuIcon(), m.showMenu)
	m.menuBtn.Importance = widget.LowImportance
	m.menuBtn.SetToolTip(lang.L("Menu"))

	if app.Config.Application.EnableSystemTray {
		m.SetupSystemTrayMenu(displayAppName, fyneApp)
	}
	engine.OnRunStateChanged(func(running bool) {
		fyne.Do(func() { m.setRunningTitle(displayAppName, running) })
	})

	toolbar := container.NewBorder(nil, nil, m.darkCheck, m.menuBtn)
	content := container.NewBorder(toolbar, nil, nil, nil, m.Panel)
	m.Window.SetContent(fynetooltip.AddWindowToolTipLayer(
		container.NewPadded(content), m.Window.Canvas()))
	m.Window.Resize(size)
	m.addShortcuts()

	// all callbacks are registered; render the restored state
	engine.Attach()
	return m
}

func (m *MainWindow) applyTheme(dark bool) {
	if m.theme.SetDark(dark) {
		fyne.CurrentApp().Settings().SetTheme(m.theme)
	}
	// SetChecked would call back into the engine
	if m.darkCheck.Checked != dark {
		m.darkCheck.Checked = dark
		m.darkCheck.Refresh()
	}
}

func (m *MainWindow) setRunningTitle(displayAppName string, running bool) {
	if running {
		m.Window.SetTitle(fmt.Sprintf("%s · %s", lang.L("Running"), displayAppName))
	} else {
		m.Window.SetTitle(displayAppName)
	}
	if m.trayLapItem != nil {
		m.trayLapItem.Disabled = !m.Panel.LapEnabled()
		m.trayMenu.Refresh()
	}
}

// RunStartupTasks shows the what's new or update dialogs if needed.
// Called once the window is shown.
func (m *MainWindow) RunStartupTasks(displayAppName string) {
	app := m.App
	// check if launching new version, else if found available update on startup
	if l := app.Config.Application.LastLaunchedVersion; app.VersionTag() != l {
		if !app.IsFirstLaunch() {
			m.ShowWhatsNewDialog()
		}
		app.Config.Application.LastLaunchedVersion = app.VersionTag()
	} else if t := app.UpdateChecker.VersionTagFound(); t != "" && t != app.Config.Application.LastCheckedVersion {
		if t != app.VersionTag() {
			m.ShowNewVersionDialog(displayAppName, t)
		}
		app.Config.Application.LastCheckedVersion = t
	}
	// register callback for the ongoing periodic update check
	app.UpdateChecker.OnUpdatedVersionFound = func() {
		t := app.UpdateChecker.VersionTagFound()
		fyne.Do(func() {
			if t != app.VersionTag() {
				m.ShowNewVersionDialog(displayAppName, t)
			}
			app.Config.Application.LastCheckedVersion = t
		})
	}
	app.SaveConfigFile()
}

func (m *MainWindow) SetupSystemTrayMenu(appName string, fyneApp fyne.App) {
	if desk, ok := fyneApp.(desktop.App); ok {
		engine := m.App.Engine
		m.trayLapItem = fyne.NewMenuItem(lang.L("Lap"), func() { engine.RecordLap() })
		m.trayLapItem.Disabled = !m.Panel.LapEnabled()
		m.trayMenu = fyne.NewMenu(appName,
			fyne.NewMenuItem(lang.L("Start/Stop"), engine.Toggle),
			m.trayLapItem,
			fyne.NewMenuItem(lang.L("Reset"), engine.Reset),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem(lang.L("Toggle theme"), m.toggleTheme),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem(lang.L("Show"), m.Window.Show),
			fyne.NewMenuItem(lang.L("Hide"), m.Window.Hide),
		)
		desk.SetSystemTrayMenu(m.trayMenu)
		m.haveSystemTray = true
	}
}

func (m *MainWindow) HaveSystemTray() bool {
	return m.haveSystemTray
}

func (m *MainWindow) toggleTheme() {
	m.App.Engine.SetTheme(!m.theme.IsDark())
}

func (m *MainWindow) showMenu() {
	menu := fyne.NewMenu("",
		fyne.NewMenuItem(lang.L("Check for Updates"), m.checkForUpdates),
		fyne.NewMenuItem(lang.L("What's New"), m.ShowWhatsNewDialog),
		fyne.NewMenuItem(lang.L("About"), m.showAboutDialog),
	)
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(m.menuBtn)
	pos = pos.Add(fyne.NewPos(0, m.menuBtn.Size().Height))
	widget.ShowPopUpMenuAtPosition(menu, m.Window.Canvas(), pos)
}

func (m *MainWindow) checkForUpdates() {
	app := m.App
	go func() {
		t := app.UpdateChecker.CheckLatestVersionTag()
		fyne.Do(func() {
			if t != "" && t != app.VersionTag() {
				m.ShowNewVersionDialog(res.DisplayName, t)
			} else {
				dialog.ShowInformation(lang.L("No new version found"),
					lang.L("You are running the latest version of")+" "+res.DisplayName,
					m.Window)
			}
		})
	}()
}

func (m *MainWindow) ShowNewVersionDialog(appName, versionTag string) {
	contentStr := fmt.Sprintf("%s %s (%s)", lang.L("A new version is available:"), appName, versionTag)
	dialog.ShowCustomConfirm(lang.L("A new version is available"),
		lang.L("Go to release page"), lang.L("Skip this version"),
		widget.NewLabel(contentStr), func(show bool) {
			if show {
				fyne.CurrentApp().OpenURL(m.App.UpdateChecker.LatestReleaseURL())
			}
			m.App.Config.Application.LastCheckedVersion = versionTag
		}, m.Window)
}

func (m *MainWindow) ShowWhatsNewDialog() {
	dialog.ShowCustom(lang.L("What's new in")+" "+res.AppVersion, lang.L("Close"), dialogs.NewWhatsNewDialog(), m.Window)
}

func (m *MainWindow) showAboutDialog() {
	about := dialogs.NewAboutDialog(m.App.VersionTag(), m.App.ConfigDir(), m.App.IsPortableMode())
	pop := widget.NewModalPopUp(about, m.Window.Canvas())
	about.OnDismiss = pop.Hide
	pop.Show()
}

func (m *MainWindow) addShortcuts() {
	engine := m.App.Engine
	if shortcuts.QuitShortcut != nil {
		m.Canvas().AddShortcut(shortcuts.QuitShortcut, func(_ fyne.Shortcut) {
			m.Quit()
		})
	}
	m.Canvas().AddShortcut(&shortcuts.ShortcutToggleTheme, func(_ fyne.Shortcut) {
		m.toggleTheme()
	})
	m.Canvas().AddShortcut(&shortcuts.ShortcutCloseWindow, func(_ fyne.Shortcut) {
		if m.App.Config.Application.CloseToSystemTray && m.HaveSystemTray() {
			m.Window.Hide()
		}
	})

	m.Canvas().SetOnTypedKey(func(e *fyne.KeyEvent) {
		switch e.Name {
		case shortcuts.KeyToggle:
			engine.Toggle()
		case shortcuts.KeyLap:
			engine.RecordLap()
		case shortcuts.KeyReset:
			engine.Reset()
		}
	})
}

func (m *MainWindow) Show() {
	m.Window.Show()
	m.Window.RequestFocus()
}

func (m *MainWindow) Canvas() fyne.Canvas {
	return m.Window.Canvas()
}

func (m *MainWindow) Quit() {
	m.SaveWindowSize()
	fyne.CurrentApp().Quit()
}

func (m *MainWindow) SaveWindowSize() {
	// round sizes to even to avoid Wayland issues with 2x scaling factor
	m.App.Config.Application.WindowHeight = int(math.RoundToEven(float64(m.Window.Canvas().Size().Height)))
	m.App.Config.Application.WindowWidth = int(math.RoundToEven(float64(m.Window.Canvas().Size().Width)))
}
