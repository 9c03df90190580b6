package dialogs

import (
	"fmt"
	"net/url"

	"github.com/dweymouth/lapwatch/res"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type AboutDialog struct {
	widget.BaseWidget

	OnDismiss func()

	content fyne.CanvasObject
}

// NewAboutDialog builds the about box. configDir is shown so
// users can find config.toml and the saved stopwatch state.
func NewAboutDialog(version, configDir string, portable bool) *AboutDialog {
	a := &AboutDialog{}
	a.ExtendBaseWidget(a)

	title := widget.NewRichTextWithText(res.DisplayName)
	ts := title.Segments[0].(*widget.TextSegment)
	ts.Style.TextStyle.Bold = true
	ts.Style.SizeName = theme.SizeNameSubHeadingText
	ts.Style.Alignment = fyne.TextAlignCenter

	dirLabel := lang.L("Config directory")
	if portable {
		dirLabel = lang.L("Config directory (portable mode)")
	}
	dir := widget.NewLabel(fmt.Sprintf("%s: %s", dirLabel, configDir))
	dir.Wrapping = fyne.TextWrapBreak

	ghUrl, _ := url.Parse(res.GithubURL)
	a.content = container.NewVBox(
		title,
		newCenterAlignLabel(fmt.Sprintf("%s %s", lang.L("version"), version)),
		newCenterAlignLabel(res.Copyright),
		container.NewCenter(widget.NewHyperlink(lang.L("Github page"), ghUrl)),
		dir,
		widget.NewSeparator(),
		container.NewHBox(
			layout.NewSpacer(),
			widget.NewButton(lang.L("Close"), func() {
				if a.OnDismiss != nil {
					a.OnDismiss()
				}
			}),
		),
	)
	return a
}

func (a *AboutDialog) MinSize() fyne.Size {
	return fyne.NewSize(380, a.BaseWidget.MinSize().Height)
}

func (a *AboutDialog) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(a.content)
}

func newCenterAlignLabel(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignCenter, fyne.TextStyle{})
}
