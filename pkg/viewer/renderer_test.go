package viewer

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(t *testing.T) (*fixture, *TetraView) {
	t.Helper()
	test.NewTempApp(t)

	f := newFixture(t)
	v := NewTetraView(f.solid, f.layout, f.state, f.engine, f.picker)
	v.Resize(fyne.NewSize(float32(surface.Width), float32(surface.Height)))
	return f, v
}

func TestSceneDraw(t *testing.T) {
	f := newFixture(t)
	scene := NewScene(f.solid)
	scene.DrawText = true

	img := image.NewRGBA(image.Rect(0, 0, 200, 150))
	cam := *f.state.Camera
	cam.Resize(200, 150)
	scene.Draw(img, &cam, f.state.Body, f.engine.Update(f.state.Frame()))

	assert.Equal(t, Background, img.RGBAAt(0, 0))
	assert.Equal(t, Background, img.RGBAAt(199, 149))
	assert.NotEqual(t, Background, img.RGBAAt(100, 75))
}

func TestSpriteBox(t *testing.T) {
	f := newFixture(t)
	l := f.layout.Faces[0]

	box := SpriteBox(f.state.Camera, f.state.Body.Apply(l.Local), l.Width, l.Height)
	require.False(t, box.Empty())
	assert.Greater(t, box.Dx(), box.Dy())

	behind := SpriteBox(f.state.Camera, f.state.Camera.Eye.Mul(2), l.Width, l.Height)
	assert.True(t, behind.Empty())
}

func TestViewLayoutResizesCamera(t *testing.T) {
	f, v := newTestView(t)
	v.Resize(fyne.NewSize(640, 480))

	assert.Equal(t, 640.0, f.state.Camera.Width)
	assert.Equal(t, 480.0, f.state.Camera.Height)
}

func TestViewStep(t *testing.T) {
	f, v := newTestView(t)
	before := f.state.Body.Rotation

	v.Step(1)
	assert.False(t, f.state.Body.Rotation.ApproxEqual(before, 1e-9))
	assert.Len(t, v.Result().Faces, 4)
	assert.Len(t, v.Result().Vertices, 4)
}

func TestViewTapPicks(t *testing.T) {
	f, v := newTestView(t)
	var picked []Hit
	v.SetOnPick(func(h Hit) { picked = append(picked, h) })

	v.Tapped(&fyne.PointEvent{Position: fyne.NewPos(400, 300)})
	require.Len(t, picked, 1)
	assert.False(t, f.state.Spinning)
	assert.Equal(t, []string{picked[0].Key}, f.keys)

	v.Tapped(&fyne.PointEvent{Position: fyne.NewPos(2, 2)})
	assert.Len(t, picked, 1)
}

func TestViewDoubleTapSelects(t *testing.T) {
	f, v := newTestView(t)
	f.face(1)
	v.Step(0)
	name := f.solid.Faces[1].Name

	var selected []string
	v.SetOnSelect(func(face string) { selected = append(selected, face) })

	center := f.state.Body.Apply(f.solid.Faces[1].Centroid)
	x, y, _ := f.state.Camera.ToScreen(center)
	pos := fyne.NewPos(float32(x), float32(y))

	v.DoubleTapped(&fyne.PointEvent{Position: pos})
	assert.Equal(t, name, f.state.Selected)
	for _, st := range v.Result().Faces {
		if st.Label.FaceName != name {
			assert.Equal(t, 0.0, st.Opacity)
		}
	}

	// a second double tap on the same face releases it
	v.DoubleTapped(&fyne.PointEvent{Position: pos})
	assert.Empty(t, f.state.Selected)
	assert.Equal(t, []string{name, ""}, selected)
}

func TestViewScrollZooms(t *testing.T) {
	f, v := newTestView(t)
	distance := f.state.Camera.Distance()

	v.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, -100)})
	assert.InDelta(t, distance*1.1, f.state.Camera.Distance(), 1e-9)
}

func TestViewDragOrbits(t *testing.T) {
	f, v := newTestView(t)
	eye := f.state.Camera.Eye
	distance := f.state.Camera.Distance()

	v.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(100, 100)}})
	v.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(150, 100)}})
	v.DragEnd()

	assert.NotEqual(t, eye, f.state.Camera.Eye)
	assert.InDelta(t, distance, f.state.Camera.Distance(), 1e-9)
}
