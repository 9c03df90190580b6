package theme

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/dweymouth/lapwatch/res"

	"fyne.io/fyne/v2/theme"
)

func TestDecodeBuiltinThemeFile(t *testing.T) {
	tf, err := DecodeThemeFile(bytes.NewReader(res.DefaultThemeToml))
	if err != nil {
		t.Fatalf("failed to decode builtin theme: %v", err)
	}
	if !tf.SupportsVariant(theme.VariantDark) || !tf.SupportsVariant(theme.VariantLight) {
		t.Error("builtin theme must support both variants")
	}
	for _, c := range []ThemeColors{tf.DarkColors, tf.LightColors} {
		for _, s := range []string{c.TimeDisplay, c.Background, c.Foreground, c.Primary} {
			if _, err := ColorStringToColor(s); err != nil {
				t.Errorf("invalid builtin color %q: %v", s, err)
			}
		}
	}
}

func TestDecodeThemeFile_Invalid(t *testing.T) {
	for _, file := range []string{
		"[LapwatchTheme]\nName = \"x\"\nVersion = \"9.9\"\nSupportsDark = true",
		"[LapwatchTheme]\nVersion = \"0.1\"\nSupportsDark = true",
		"[LapwatchTheme]\nName = \"x\"\nVersion = \"0.1\"",
		"not toml ===",
	} {
		if _, err := DecodeThemeFile(strings.NewReader(file)); err == nil {
			t.Errorf("expected error decoding %q", file)
		}
	}
}

func TestColorStringToColor(t *testing.T) {
	c, err := ColorStringToColor("#102030")
	if err != nil || c != (color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) {
		t.Errorf("got %v, %v", c, err)
	}
	c, err = ColorStringToColor("#10203040")
	if err != nil || c != (color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}) {
		t.Errorf("got %v, %v", c, err)
	}
	for _, bad := range []string{"", "102030", "#1020", "#zzzzzz"} {
		if _, err := ColorStringToColor(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestMyTheme_Variant(t *testing.T) {
	m := NewMyTheme(false)
	light := m.Color(ColorNameTimeDisplay, theme.VariantDark)
	if m.SetDark(false) {
		t.Error("SetDark(false) on a light theme reported a change")
	}
	if !m.SetDark(true) || !m.IsDark() {
		t.Fatal("SetDark(true) did not switch to dark")
	}
	dark := m.Color(ColorNameTimeDisplay, theme.VariantLight)
	if light == dark {
		t.Errorf("time display color did not change with variant: %v", dark)
	}
}
