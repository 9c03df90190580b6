package theme

import (
	"bytes"
	"image/color"
	"log"
	"sync/atomic"

	"github.com/dweymouth/lapwatch/res"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	ColorNameTimeDisplay    fyne.ThemeColorName = "TimeDisplay"
	ColorNameLapRowAlt      fyne.ThemeColorName = "LapRowAlt"
	ColorNamePageBackground fyne.ThemeColorName = "PageBackground"
	ColorNameIconButton     fyne.ThemeColorName = "IconButton"

	SizeNameTimeDisplay fyne.ThemeSizeName = "timeDisplay"
	SizeNameSubText     fyne.ThemeSizeName = "subText" // in between Text and Caption
)

// MyTheme draws the built-in palette in the light or dark
// variant chosen by the stopwatch, ignoring the OS preference.
type MyTheme struct {
	dark      atomic.Bool
	themeFile *ThemeFile
}

var _ fyne.Theme = (*MyTheme)(nil)

func NewMyTheme(dark bool) *MyTheme {
	m := &MyTheme{}
	var err error
	if m.themeFile, err = DecodeThemeFile(bytes.NewReader(res.DefaultThemeToml)); err != nil {
		log.Fatalf("Failed to load builtin theme: %v", err.Error())
	}
	m.dark.Store(dark)
	return m
}

// SetDark switches the variant. Returns true if it changed;
// the caller must then reapply the theme to the app settings.
func (m *MyTheme) SetDark(dark bool) bool {
	return m.dark.Swap(dark) != dark
}

func (m *MyTheme) IsDark() bool {
	return m.dark.Load()
}

func (m *MyTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	variant := m.getVariant()
	colors := m.themeFile.Colors(variant)
	switch name {
	case ColorNameIconButton:
		foreground := colorOrDefault(colors.Foreground, theme.ColorNameForeground, variant)
		if variant == theme.VariantDark {
			return darkenColor(foreground, 0.05)
		}
		return brightenColor(foreground, 0.2)
	case ColorNameTimeDisplay:
		return colorOrDefault(colors.TimeDisplay, theme.ColorNameForeground, variant)
	case ColorNameLapRowAlt:
		return colorOrDefault(colors.LapRowAlt, theme.ColorNameBackground, variant)
	case ColorNamePageBackground:
		return colorOrDefault(colors.PageBackground, theme.ColorNameBackground, variant)
	case theme.ColorNameBackground:
		return colorOrDefault(colors.Background, name, variant)
	case theme.ColorNameButton:
		return colorOrDefault(colors.Button, name, variant)
	case theme.ColorNameDisabled:
		return colorOrDefault(colors.Disabled, name, variant)
	case theme.ColorNameDisabledButton:
		return colorOrDefault(colors.DisabledButton, name, variant)
	case theme.ColorNameError:
		return colorOrDefault(colors.Error, name, variant)
	case theme.ColorNameFocus:
		return colorOrDefault(colors.Focus, name, variant)
	case theme.ColorNameForeground:
		return colorOrDefault(colors.Foreground, name, variant)
	case theme.ColorNameHover:
		return colorOrDefault(colors.Hover, name, variant)
	case theme.ColorNameInputBackground:
		return colorOrDefault(colors.InputBackground, name, variant)
	case theme.ColorNameMenuBackground:
		return colorOrDefault(colors.MenuBackground, name, variant)
	case theme.ColorNameOverlayBackground:
		return colorOrDefault(colors.OverlayBackground, name, variant)
	case theme.ColorNamePressed:
		return colorOrDefault(colors.Pressed, name, variant)
	case theme.ColorNamePrimary:
		return colorOrDefault(colors.Primary, name, variant)
	case theme.ColorNameScrollBar:
		return colorOrDefault(colors.ScrollBar, name, variant)
	case theme.ColorNameSelection:
		return colorOrDefault(colors.Selection, name, variant)
	case theme.ColorNameSeparator:
		return colorOrDefault(colors.Separator, name, variant)
	case theme.ColorNameShadow:
		return colorOrDefault(colors.Shadow, name, variant)
	case theme.ColorNameSuccess:
		return colorOrDefault(colors.Success, name, variant)
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func colorOrDefault(colorStr string, name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, err := ColorStringToColor(colorStr); err == nil {
		return c
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (m *MyTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m *MyTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m *MyTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case SizeNameTimeDisplay:
		return 48
	case SizeNameSubText:
		return 13
	}
	return theme.DefaultTheme().Size(name)
}

func (m *MyTheme) getVariant() fyne.ThemeVariant {
	if m.dark.Load() {
		return theme.VariantDark
	}
	return theme.VariantLight
}

func BlendColors(a, b color.Color, fractionA float64) color.Color {
	ra, ga, ba, aa := a.RGBA()
	rb, gb, bb, ab := b.RGBA()

	fractionB := 1 - fractionA
	rAvg := uint8(float64(ra/257)*fractionA + float64(rb/257)*fractionB)
	gAvg := uint8(float64(ga/257)*fractionA + float64(gb/257)*fractionB)
	bAvg := uint8(float64(ba/257)*fractionA + float64(bb/257)*fractionB)
	aAvg := uint8(float64(aa/257)*fractionA + float64(ab/257)*fractionB)
	return color.RGBA{R: rAvg, G: gAvg, B: bAvg, A: aAvg}
}

func brightenColor(c color.Color, fraction float64) color.Color {
	r, g, b, a := c.RGBA()
	r, g, b = brightenComponent(r, fraction), brightenComponent(g, fraction), brightenComponent(b, fraction)
	return color.RGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}
}

func darkenColor(c color.Color, fraction float64) color.Color {
	r, g, b, a := c.RGBA()
	r, g, b = darkenComponent(r, fraction), darkenComponent(g, fraction), darkenComponent(b, fraction)
	return color.RGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}
}

func brightenComponent(component uint32, fraction float64) uint32 {
	brightened := component + uint32(float64(component)*fraction)
	if brightened > 0xffff {
		brightened = 0xffff
	}
	return brightened
}

func darkenComponent(component uint32, fraction float64) uint32 {
	i := uint32(float64(component) * fraction)
	if i > component {
		return 0
	}
	return component - i
}
