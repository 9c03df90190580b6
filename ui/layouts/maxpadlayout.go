package layouts

import "fyne.io/fyne/v2"

var _ fyne.Layout = (*MaxPadLayout)(nil)

// MaxPadLayout stretches its objects over the container
// minus the configured padding on each side.
type MaxPadLayout struct {
	PadLeft   float32
	PadRight  float32
	PadTop    float32
	PadBottom float32
}

func NewUniformPadLayout(pad float32) *MaxPadLayout {
	return &MaxPadLayout{PadLeft: pad, PadRight: pad, PadTop: pad, PadBottom: pad}
}

func (c *MaxPadLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var min fyne.Size
	for _, o := range objects {
		if o.Visible() {
			min = min.Max(o.MinSize())
		}
	}
	return min.AddWidthHeight(c.PadLeft+c.PadRight, c.PadTop+c.PadBottom)
}

func (c *MaxPadLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	pos := fyne.NewPos(c.PadLeft, c.PadTop)
	objSize := fyne.NewSize(size.Width-c.PadLeft-c.PadRight, size.Height-c.PadTop-c.PadBottom)
	for _, child := range objects {
		if !child.Visible() {
			continue
		}
		child.Move(pos)
		child.Resize(objSize)
	}
}
