package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

func currentColor(name fyne.ThemeColorName) color.Color {
	settings := fyne.CurrentApp().Settings()
	return settings.Theme().Color(name, settings.ThemeVariant())
}

func currentSize(name fyne.ThemeSizeName) float32 {
	return fyne.CurrentApp().Settings().Theme().Size(name)
}

// TimeDisplayColor is the color of the elapsed time readout.
// It is dimmed while the stopwatch is paused.
func TimeDisplayColor(running bool) color.Color {
	c := currentColor(ColorNameTimeDisplay)
	if running {
		return c
	}
	return BlendColors(c, currentColor(theme.ColorNameDisabled), 0.6)
}

func TimeDisplaySize() float32 {
	return currentSize(SizeNameTimeDisplay)
}
