package viewer

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/philipparndt/gotetra/pkg/geometry"
	"github.com/philipparndt/gotetra/pkg/labels"
	"github.com/philipparndt/gotetra/pkg/solid"
	"github.com/philipparndt/gotetra/pkg/visibility"
)

var (
	Background    = color.RGBA{11, 15, 20, 255}
	WireColor     = color.RGBA{255, 255, 255, 255}
	LabelText     = color.RGBA{230, 237, 243, 255}
	keyLight      = geometry.NewVector3(5, 6, 7).Normalize()
	wireAlpha     = 0.35
	faceBoxAlpha  = 0.28
	vertBoxAlpha  = 0.22
	boxRadiusFrac = 14.0 / 92.0
)

// Scene rasterizes one frame of the solid and its label sprites
type Scene struct {
	Solid *solid.Solid
	// DrawText renders label text into the image; the fyne widget overlays its own text instead
	DrawText bool

	zbuffer []float64
}

// NewScene creates a scene for s
func NewScene(s *solid.Solid) *Scene {
	return &Scene{Solid: s}
}

// Draw renders the solid as seen by cam with body placement and the label states of res
func (sc *Scene) Draw(img *image.RGBA, cam *Camera, body geometry.Transform, res visibility.Result) {
	bounds := img.Bounds()
	draw.Draw(img, bounds, image.NewUniform(Background), image.Point{}, draw.Src)

	size := bounds.Dx() * bounds.Dy()
	if cap(sc.zbuffer) < size {
		sc.zbuffer = make([]float64, size)
	}
	sc.zbuffer = sc.zbuffer[:size]
	for i := range sc.zbuffer {
		sc.zbuffer[i] = math.Inf(1)
	}

	sc.drawFaces(img, cam, body)
	sc.drawWireframe(img, cam, body)
	sc.drawLabels(img, cam, res)
}

func (sc *Scene) drawFaces(img *image.RGBA, cam *Camera, body geometry.Transform) {
	mesh := sc.Solid.Mesh
	for i := 0; i < mesh.TriangleCount(); i++ {
		tri := mesh.Triangle(i)
		var pts [3][3]float64
		visible := true
		for j, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			ndc, ok := cam.Project(body.Apply(v))
			if !ok {
				visible = false
				break
			}
			x, y := cam.NDCToScreen(ndc.X, ndc.Y)
			pts[j] = [3]float64{x, y, ndc.Z}
		}
		if !visible {
			continue
		}

		face, _ := mesh.FaceOfTriangle(i)
		normal := body.ApplyDirection(sc.Solid.Faces[face].Normal)
		col := shade(mesh.Colors[3*i], normal)
		fillTriangleWithDepth(img, sc.zbuffer,
			pts[0][0], pts[0][1], pts[0][2],
			pts[1][0], pts[1][1], pts[1][2],
			pts[2][0], pts[2][1], pts[2][2], col)
	}
}

func (sc *Scene) drawWireframe(img *image.RGBA, cam *Camera, body geometry.Transform) {
	for _, e := range sc.Solid.Wireframe {
		a, okA := cam.Project(body.Apply(e.A))
		b, okB := cam.Project(body.Apply(e.B))
		if !okA || !okB {
			continue
		}
		x1, y1 := cam.NDCToScreen(a.X, a.Y)
		x2, y2 := cam.NDCToScreen(b.X, b.Y)
		drawLine(img, int(x1), int(y1), int(x2), int(y2), WireColor, wireAlpha)
	}
}

// drawLabels paints vertex sprites first and face sprites on top
func (sc *Scene) drawLabels(img *image.RGBA, cam *Camera, res visibility.Result) {
	states := make([]visibility.LabelState, 0, len(res.Faces)+len(res.Vertices))
	states = append(states, res.Vertices...)
	states = append(states, res.Faces...)
	sort.SliceStable(states, func(i, j int) bool {
		return states[i].Label.Kind == labels.KindVertex && states[j].Label.Kind == labels.KindFace
	})

	for _, st := range states {
		if !st.Visible() {
			continue
		}
		box := SpriteBox(cam, st.World, st.Label.Width, st.Label.Height)
		if box.Empty() {
			continue
		}
		alpha := vertBoxAlpha
		if st.Label.Kind == labels.KindFace {
			alpha = faceBoxAlpha
		}
		fillRoundedRect(img, box, float32(float64(box.Dy())*boxRadiusFrac), withAlpha(color.RGBA{}, alpha*st.Opacity))
		if sc.DrawText {
			drawText(img, box, st.Label.Text, withAlpha(LabelText, st.Opacity))
		}
	}
}

// SpriteBox returns the pixel rectangle covered by a camera-facing sprite at world
func SpriteBox(cam *Camera, world geometry.Vector3, width, height float64) image.Rectangle {
	_, up, _ := cam.Basis()
	c, okC := cam.Project(world)
	t, okT := cam.Project(world.Add(up.Mul(height / 2)))
	if !okC || !okT {
		return image.Rectangle{}
	}
	cx, cy := cam.NDCToScreen(c.X, c.Y)
	_, ty := cam.NDCToScreen(t.X, t.Y)

	halfH := math.Abs(cy - ty)
	halfW := halfH * width / height
	return image.Rect(
		int(math.Round(cx-halfW)), int(math.Round(cy-halfH)),
		int(math.Round(cx+halfW)), int(math.Round(cy+halfH)),
	)
}

// shade applies ambient plus one directional key light
func shade(c color.RGBA, normal geometry.Vector3) color.RGBA {
	k := math.Min(1, 0.55+0.45*math.Max(0, normal.Dot(keyLight)))
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: 255,
	}
}

func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(255 * visibility.Clamp01(alpha)))}
}

// fillTriangleWithDepth fills a triangle with depth testing
func fillTriangleWithDepth(img *image.RGBA, zbuffer []float64, x1, y1, z1, x2, y2, z2, x3, y3, z3 float64, col color.RGBA) {
	vertices := [3][3]float64{
		{x1, y1, z1},
		{x2, y2, z2},
		{x3, y3, z3},
	}

	// Sort vertices by Y coordinate (top to bottom)
	sort.Slice(vertices[:], func(i, j int) bool { return vertices[i][1] < vertices[j][1] })
	top, mid, bottom := vertices[0], vertices[1], vertices[2]

	bounds := img.Bounds()
	width := bounds.Dx()

	for y := int(math.Max(0, math.Ceil(top[1]))); y <= int(math.Min(float64(bounds.Max.Y-1), bottom[1])); y++ {
		fy := float64(y)

		// the long edge spans the whole triangle, the short one switches at mid
		xa, za := edgeAt(top, bottom, fy)
		var xb, zb float64
		if fy < mid[1] {
			xb, zb = edgeAt(top, mid, fy)
		} else {
			xb, zb = edgeAt(mid, bottom, fy)
		}
		if xa > xb {
			xa, xb = xb, xa
			za, zb = zb, za
		}

		xStart := int(math.Max(0, math.Ceil(xa)))
		xEnd := int(math.Min(float64(bounds.Max.X-1), xb))
		for x := xStart; x <= xEnd; x++ {
			t := 0.0
			if xb != xa {
				t = (float64(x) - xa) / (xb - xa)
			}
			z := za + t*(zb-za)

			// Depth test - draw if closer (smaller z)
			idx := y*width + x
			if idx >= 0 && idx < len(zbuffer) && z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

func edgeAt(a, b [3]float64, y float64) (x, z float64) {
	if b[1] == a[1] {
		return a[0], a[2]
	}
	t := (y - a[1]) / (b[1] - a[1])
	return a[0] + t*(b[0]-a[0]), a[2] + t*(b[2]-a[2])
}

// drawLine draws a blended line using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, alpha float64) {
	bounds := img.Bounds()
	src := withAlpha(col, alpha)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		if (image.Point{X: x1, Y: y1}).In(bounds) {
			blend(img, x1, y1, src)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// blend composites src over the pixel at x, y
func blend(img *image.RGBA, x, y int, src color.NRGBA) {
	dst := img.RGBAAt(x, y)
	a := float64(src.A) / 255
	mix := func(s, d uint8) uint8 {
		return uint8(math.Round(float64(s)*a + float64(d)*(1-a)))
	}
	img.SetRGBA(x, y, color.RGBA{R: mix(src.R, dst.R), G: mix(src.G, dst.G), B: mix(src.B, dst.B), A: 255})
}

// fillRoundedRect composites a rounded rectangle of col over img
func fillRoundedRect(img *image.RGBA, r image.Rectangle, radius float32, col color.NRGBA) {
	w, h := r.Dx(), r.Dy()
	fw, fh := float32(w), float32(h)
	radius = min(radius, fw/2, fh/2)

	z := vector.NewRasterizer(w, h)
	z.MoveTo(radius, 0)
	z.LineTo(fw-radius, 0)
	z.QuadTo(fw, 0, fw, radius)
	z.LineTo(fw, fh-radius)
	z.QuadTo(fw, fh, fw-radius, fh)
	z.LineTo(radius, fh)
	z.QuadTo(0, fh, 0, fh-radius)
	z.LineTo(0, radius)
	z.QuadTo(0, 0, radius, 0)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(img, r, image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)
}

// drawText centers text in box using the fixed 7x13 face
func drawText(img *image.RGBA, box image.Rectangle, text string, col color.NRGBA) {
	face := basicfont.Face7x13
	advance := font.MeasureString(face, text)
	center := box.Min.Add(box.Max).Div(2)

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(center.X) - advance/2,
			Y: fixed.I(center.Y + (face.Ascent-face.Descent)/2),
		},
	}
	d.DrawString(text)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
