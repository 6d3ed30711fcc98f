// Package text draws glyph-textured quads from a font atlas baked at
// startup. The default face is Go Regular; any opentype face works.
package text

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	atlasSize = 512
	atlasPad  = 1

	// Printable ASCII.
	firstRune = ' '
	lastRune  = '~'
)

// Glyph describes one baked glyph: its patch in the atlas and the metrics
// needed to lay a quad on the baseline. Pixel units at the face's size.
type Glyph struct {
	U0, V0, U1, V1 float32 // atlas texture coordinates, V down

	Width    float32
	Height   float32
	BearingX float32 // pen to left edge
	BearingY float32 // baseline to top edge
	Advance  float32
}

// Atlas is the CPU side of the text renderer: a grayscale coverage image
// with one patch per printable ASCII glyph.
type Atlas struct {
	img        *image.Gray
	glyphs     map[rune]Glyph
	lineHeight float32
	ascent     float32
}

// DefaultFace returns a Go Regular face at the given pixel height.
func DefaultFace(pixelHeight float64) (font.Face, error) {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    pixelHeight,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	return face, nil
}

// BuildAtlas rasterizes printable ASCII from the face into a shelf-packed
// coverage image.
func BuildAtlas(face font.Face) (*Atlas, error) {
	a := &Atlas{
		img:    image.NewGray(image.Rect(0, 0, atlasSize, atlasSize)),
		glyphs: make(map[rune]Glyph),
	}
	metrics := face.Metrics()
	a.lineHeight = fixedToFloat(metrics.Height)
	a.ascent = fixedToFloat(metrics.Ascent)

	drawer := font.Drawer{
		Dst:  a.img,
		Src:  image.White,
		Face: face,
	}

	penX, penY, rowH := atlasPad, atlasPad, 0
	for r := rune(firstRune); r <= lastRune; r++ {
		bounds, advance, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}

		gw := (bounds.Max.X - bounds.Min.X).Ceil()
		gh := (bounds.Max.Y - bounds.Min.Y).Ceil()

		g := Glyph{
			Width:    float32(gw),
			Height:   float32(gh),
			BearingX: fixedToFloat(bounds.Min.X),
			BearingY: -fixedToFloat(bounds.Min.Y),
			Advance:  fixedToFloat(advance),
		}

		if gw > 0 && gh > 0 {
			if penX+gw+atlasPad > atlasSize {
				penX = atlasPad
				penY += rowH + atlasPad
				rowH = 0
			}
			if penY+gh+atlasPad > atlasSize {
				return nil, fmt.Errorf("font atlas overflow at %q (%dx%d atlas)", r, atlasSize, atlasSize)
			}

			drawer.Dot = fixed.Point26_6{
				X: fixed.I(penX) - bounds.Min.X,
				Y: fixed.I(penY) - bounds.Min.Y,
			}
			drawer.DrawString(string(r))

			g.U0 = float32(penX) / atlasSize
			g.V0 = float32(penY) / atlasSize
			g.U1 = float32(penX+gw) / atlasSize
			g.V1 = float32(penY+gh) / atlasSize

			penX += gw + atlasPad
			if gh > rowH {
				rowH = gh
			}
		}

		a.glyphs[r] = g
	}
	return a, nil
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// Glyph looks up a baked glyph; unknown runes fall back to '?'.
func (a *Atlas) Glyph(r rune) (Glyph, bool) {
	g, ok := a.glyphs[r]
	if !ok {
		g, ok = a.glyphs['?']
	}
	return g, ok
}

// LineHeight returns the face line height in pixels at the given scale.
func (a *Atlas) LineHeight(scale float32) float32 { return a.lineHeight * scale }

// Ascent returns the baseline-to-top distance in pixels at the given
// scale.
func (a *Atlas) Ascent(scale float32) float32 { return a.ascent * scale }

// Measure returns the pixel width and height of a single line of text at
// the given scale.
func (a *Atlas) Measure(s string, scale float32) (w, h float32) {
	for _, r := range s {
		if g, ok := a.Glyph(r); ok {
			w += g.Advance
		}
	}
	return w * scale, a.lineHeight * scale
}

// Image returns the baked coverage image.
func (a *Atlas) Image() *image.Gray { return a.img }
