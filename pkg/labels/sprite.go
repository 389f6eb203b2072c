package labels

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// SpriteStyle is the pixel layout of a text sprite
type SpriteStyle struct {
	FontSize float64
	Padding  float64
}

var (
	FaceSprite   = SpriteStyle{FontSize: 54, Padding: 18}
	VertexSprite = SpriteStyle{FontSize: 56, Padding: 18}
)

var metricsFace = basicfont.Face7x13

// TextWidth estimates the pixel advance of text at the style's font size
func (s SpriteStyle) TextWidth(text string) float64 {
	advance := float64(font.MeasureString(metricsFace, text)) / 64
	return advance * s.FontSize / float64(metricsFace.Height)
}

// PixelSize returns the padded sprite size in pixels
func (s SpriteStyle) PixelSize(text string) (w, h float64) {
	return s.TextWidth(text) + 2*s.Padding, s.FontSize + 2*s.Padding
}

// SpriteSize returns the world-space size of a sprite whose height is scale
func SpriteSize(text string, style SpriteStyle, scale float64) (w, h float64) {
	pw, ph := style.PixelSize(text)
	return scale * pw / ph, scale
}
