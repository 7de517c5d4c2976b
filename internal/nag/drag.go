package nag

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// dragArea is a transparent surface behind the widgets that lets the whole
// window body act as a grab handle, since a splash window has no title bar.
type dragArea struct {
	widget.BaseWidget
	dialog *Dialog
}

func newDragArea(d *Dialog) *dragArea {
	a := &dragArea{dialog: d}
	a.ExtendBaseWidget(a)
	return a
}

func (a *dragArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (a *dragArea) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary {
		a.dialog.dragging = true
		a.dialog.dragAnchor = ev.Position
	}
}

func (a *dragArea) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary {
		a.dialog.dragging = false
	}
}

// Dragged only keeps the gesture alive: Fyne has no portable
// window-positioning API, so placement stays with the window manager while
// MouseDown/MouseUp maintain the drag state.
func (a *dragArea) Dragged(*fyne.DragEvent) {}

func (a *dragArea) DragEnd() {
	a.dialog.dragging = false
}
