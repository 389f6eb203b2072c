package viewer

import (
	"github.com/philipparndt/gotetra/pkg/geometry"
	"github.com/philipparndt/gotetra/pkg/schema"
	"github.com/philipparndt/gotetra/pkg/visibility"
)

// ViewState is the mutable render state shared by the frame loop and the UI handlers.
//
// All fields are written by exactly one goroutine: the UI thread that also runs the
// frame tick. A renderer that ticks on another goroutine must add its own locking.
type ViewState struct {
	Camera   *Camera
	Body     geometry.Transform
	Spinning bool
	// Selected pins one face by name; empty shows every face
	Selected string

	spinRate float64
	defaults schema.View
}

// NewViewState creates the state in the default view with the idle spin running
func NewViewState(sc *schema.Schema) *ViewState {
	v := &ViewState{
		Camera:   NewCamera(sc.View()),
		Spinning: true,
		spinRate: sc.SpinRate(),
		defaults: sc.View(),
	}
	v.Camera.MinDistance = DefaultMinDistance * sc.Radius()
	v.ResetDefaultView()
	return v
}

// ResetDefaultView restores the camera pose and the object rotation.
// Spin and selection are left alone.
func (v *ViewState) ResetDefaultView() {
	v.Camera.Apply(v.defaults)
	r := v.defaults.ObjectRotation
	v.Body.Rotation = geometry.EulerXYZ(r.X, r.Y, r.Z)
}

// Tick advances the idle spin by dt seconds about the world vertical axis
func (v *ViewState) Tick(dt float64) {
	if v.Spinning && dt > 0 {
		v.Body.RotateOnWorldAxis(geometry.Up, v.spinRate*dt)
	}
}

// ToggleSpin flips the idle spin and returns the new state
func (v *ViewState) ToggleSpin() bool {
	v.Spinning = !v.Spinning
	return v.Spinning
}

// SetSpinning starts or stops the idle spin
func (v *ViewState) SetSpinning(on bool) {
	v.Spinning = on
}

// SpinRate returns the spin speed in radians per second
func (v *ViewState) SpinRate() float64 {
	return v.spinRate
}

// Select pins a face; an empty name clears the selection
func (v *ViewState) Select(face string) {
	v.Selected = face
}

// Resize forwards the render surface size to the camera
func (v *ViewState) Resize(width, height float64) {
	v.Camera.Resize(width, height)
}

// Frame snapshots the state for one visibility pass
func (v *ViewState) Frame() visibility.Frame {
	return visibility.Frame{Camera: v.Camera, Body: v.Body, Selected: v.Selected}
}
