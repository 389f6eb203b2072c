package viewer

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gotetra/pkg/labels"
	"github.com/philipparndt/gotetra/pkg/solid"
	"github.com/philipparndt/gotetra/pkg/visibility"
)

// TetraView renders the labeled solid and turns pointer input into orbit, zoom and picks
type TetraView struct {
	widget.BaseWidget
	state  *ViewState
	engine *visibility.Engine
	picker *Picker
	scene  *Scene
	layout *labels.Layout

	raster *canvas.Raster
	texts  []*canvas.Text
	last   visibility.Result

	dragStart  *fyne.Position
	isDragging bool
	onPick     func(Hit)
	onSelect   func(face string)
}

// NewTetraView creates the view widget. All arguments share the same solid.
func NewTetraView(s *solid.Solid, layout *labels.Layout, state *ViewState, engine *visibility.Engine, picker *Picker) *TetraView {
	v := &TetraView{
		state:  state,
		engine: engine,
		picker: picker,
		scene:  NewScene(s),
		layout: layout,
	}
	v.raster = canvas.NewRaster(v.draw)
	for _, l := range layout.All() {
		text := canvas.NewText(l.Text, LabelText)
		text.TextStyle = fyne.TextStyle{Bold: true}
		text.Hide()
		v.texts = append(v.texts, text)
	}
	v.ExtendBaseWidget(v)
	v.last = engine.Update(state.Frame())
	return v
}

// SetOnPick sets the callback for successful picks
func (v *TetraView) SetOnPick(callback func(Hit)) {
	v.onPick = callback
}

// SetOnSelect sets the callback for selection changes made by double taps
func (v *TetraView) SetOnSelect(callback func(face string)) {
	v.onSelect = callback
}

// State returns the view state driven by this widget
func (v *TetraView) State() *ViewState {
	return v.state
}

// Result returns the label states of the last frame
func (v *TetraView) Result() visibility.Result {
	return v.last
}

// Step advances the spin by dt seconds, reruns the visibility pass and redraws.
// It must run on the UI thread.
func (v *TetraView) Step(dt float64) {
	v.state.Tick(dt)
	v.last = v.engine.Update(v.state.Frame())
	v.updateTexts()
	v.Refresh()
}

func (v *TetraView) draw(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	// the raster may be backed by more pixels than the widget has logical units
	cam := *v.state.Camera
	cam.Resize(float64(w), float64(h))
	v.scene.Draw(img, &cam, v.state.Body, v.last)
	return img
}

func (v *TetraView) updateTexts() {
	states := append(append([]visibility.LabelState{}, v.last.Faces...), v.last.Vertices...)
	for i, st := range states {
		if i >= len(v.texts) {
			break
		}
		text := v.texts[i]
		if !st.Visible() {
			text.Hide()
			continue
		}

		style := labels.VertexSprite
		if st.Label.Kind == labels.KindFace {
			style = labels.FaceSprite
		}
		box := SpriteBox(v.state.Camera, st.World, st.Label.Width, st.Label.Height)
		size := float32(float64(box.Dy()) * style.FontSize / (style.FontSize + 2*style.Padding))
		if size < 1 {
			text.Hide()
			continue
		}

		text.TextSize = size
		text.Color = withAlpha(LabelText, st.Opacity)
		textSize := text.MinSize()
		center := box.Min.Add(box.Max).Div(2)
		text.Move(fyne.NewPos(float32(center.X)-textSize.Width/2, float32(center.Y)-textSize.Height/2))
		text.Resize(textSize)
		text.Show()
	}
}

func (v *TetraView) pointer(pos fyne.Position) PointerEvent {
	size := v.Size()
	return PointerEvent{
		ClientX: float64(pos.X),
		ClientY: float64(pos.Y),
		Rect:    Rect{Width: float64(size.Width), Height: float64(size.Height)},
	}
}

// Tapped picks under the pointer
func (v *TetraView) Tapped(event *fyne.PointEvent) {
	if v.isDragging {
		return
	}
	hit, ok := v.picker.Pick(v.pointer(event.Position))
	if !ok {
		return
	}
	if v.onPick != nil {
		v.onPick(hit)
	}
	v.Step(0)
}

// DoubleTapped pins the face under the pointer, or clears the selection over empty space
func (v *TetraView) DoubleTapped(event *fyne.PointEvent) {
	face := ""
	if hit, ok := v.picker.Intersect(v.state.Camera.Ray(v.pointer(event.Position).NDC())); ok && hit.Kind != HitVertexLabel {
		if hit.Key != v.state.Selected {
			face = hit.Key
		}
	}
	v.state.Select(face)
	if v.onSelect != nil {
		v.onSelect(face)
	}
	v.Step(0)
}

// Dragged handles mouse drag events for orbiting
func (v *TetraView) Dragged(event *fyne.DragEvent) {
	if v.dragStart != nil {
		deltaX := event.Position.X - v.dragStart.X
		deltaY := event.Position.Y - v.dragStart.Y

		v.state.Camera.Rotate(float64(deltaY)*0.01, float64(-deltaX)*0.01)
		v.Step(0)
	}
	v.dragStart = &event.Position
	v.isDragging = true
}

// DragEnd handles the end of a drag event
func (v *TetraView) DragEnd() {
	v.dragStart = nil
	v.isDragging = false
}

// Scrolled handles scroll events for zooming
func (v *TetraView) Scrolled(event *fyne.ScrollEvent) {
	delta := -float64(event.Scrolled.DY) * 0.001
	v.state.Camera.Zoom(delta)
	v.Step(0)
}

// CreateRenderer creates the renderer for the widget
func (v *TetraView) CreateRenderer() fyne.WidgetRenderer {
	objects := []fyne.CanvasObject{v.raster}
	for _, t := range v.texts {
		objects = append(objects, t)
	}
	return &tetraWidgetRenderer{view: v, objects: objects}
}

// tetraWidgetRenderer implements fyne.WidgetRenderer
type tetraWidgetRenderer struct {
	view    *TetraView
	objects []fyne.CanvasObject
}

func (r *tetraWidgetRenderer) Layout(size fyne.Size) {
	r.view.raster.Resize(size)
	r.view.state.Resize(float64(size.Width), float64(size.Height))
	r.view.last = r.view.engine.Update(r.view.state.Frame())
	r.view.updateTexts()
}

func (r *tetraWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *tetraWidgetRenderer) Refresh() {
	r.view.raster.Refresh()
	for _, t := range r.view.texts {
		t.Refresh()
	}
}

func (r *tetraWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *tetraWidgetRenderer) Destroy() {}
