package dialogs

import (
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/widget"
	"github.com/dweymouth/lapwatch/res"
)

type WhatsNewDialog struct {
	widget.BaseWidget
}

func NewWhatsNewDialog() *WhatsNewDialog {
	w := &WhatsNewDialog{}
	w.ExtendBaseWidget(w)
	return w
}

func (w *WhatsNewDialog) CreateRenderer() fyne.WidgetRenderer {
	objects := container.NewVBox()
	for _, md := range []string{res.WhatsAdded, res.WhatsFixed} {
		if md == "" {
			continue
		}
		rt := widget.NewRichTextFromMarkdown(md)
		rt.Wrapping = fyne.TextWrapWord
		objects.Add(rt)
	}

	ghUrl, _ := url.Parse(res.GithubURL)
	objects.Add(container.NewCenter(widget.NewHyperlink(lang.L("Github page"), ghUrl)))

	c := container.NewVScroll(objects)
	return widget.NewSimpleRenderer(c)
}

func (w *WhatsNewDialog) MinSize() fyne.Size {
	return fyne.NewSize(360, 220)
}
