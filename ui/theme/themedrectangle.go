package theme

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// ThemedRectangle is a rectangle filled with a named theme color
// that follows theme changes on Refresh.
type ThemedRectangle struct {
	widget.BaseWidget

	rect *canvas.Rectangle

	ColorName    fyne.ThemeColorName
	CornerRadius float32
}

func NewThemedRectangle(colorName fyne.ThemeColorName) *ThemedRectangle {
	t := &ThemedRectangle{
		ColorName: colorName,
		rect:      canvas.NewRectangle(currentColor(colorName)),
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *ThemedRectangle) Refresh() {
	t.rect.FillColor = currentColor(t.ColorName)
	t.rect.CornerRadius = t.CornerRadius
	t.BaseWidget.Refresh()
}

func (t *ThemedRectangle) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.rect)
}
