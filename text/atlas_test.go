package text

import (
	"testing"
)

func buildTestAtlas(t *testing.T) *Atlas {
	t.Helper()
	face, err := DefaultFace(24)
	if err != nil {
		t.Fatalf("DefaultFace: %v", err)
	}
	atlas, err := BuildAtlas(face)
	if err != nil {
		t.Fatalf("BuildAtlas: %v", err)
	}
	return atlas
}

func TestAtlasCoversPrintableASCII(t *testing.T) {
	atlas := buildTestAtlas(t)

	for r := rune(firstRune); r <= lastRune; r++ {
		if _, ok := atlas.glyphs[r]; !ok {
			t.Errorf("missing glyph for %q", r)
		}
	}
}

func TestGlyphPatchesStayInBounds(t *testing.T) {
	atlas := buildTestAtlas(t)

	for r, g := range atlas.glyphs {
		if g.U0 < 0 || g.V0 < 0 || g.U1 > 1 || g.V1 > 1 {
			t.Errorf("glyph %q has UVs outside the atlas: (%v,%v)-(%v,%v)", r, g.U0, g.V0, g.U1, g.V1)
		}
		if g.U1 < g.U0 || g.V1 < g.V0 {
			t.Errorf("glyph %q has inverted UVs", r)
		}
	}
}

func TestSpaceAdvancesWithoutPatch(t *testing.T) {
	atlas := buildTestAtlas(t)

	g, ok := atlas.Glyph(' ')
	if !ok {
		t.Fatal("no glyph for space")
	}
	if g.Advance <= 0 {
		t.Errorf("space advance = %v, want > 0", g.Advance)
	}
	if g.Width != 0 || g.Height != 0 {
		t.Errorf("space has a bitmap patch %vx%v", g.Width, g.Height)
	}
}

func TestUnknownRuneFallsBack(t *testing.T) {
	atlas := buildTestAtlas(t)

	got, ok := atlas.Glyph('世')
	if !ok {
		t.Fatal("fallback glyph missing")
	}
	want, _ := atlas.Glyph('?')
	if got != want {
		t.Error("unknown rune did not fall back to '?'")
	}
}

func TestMeasure(t *testing.T) {
	atlas := buildTestAtlas(t)

	w1, h := atlas.Measure("A", 1)
	if w1 <= 0 {
		t.Fatalf("width of A = %v, want > 0", w1)
	}
	if h != atlas.LineHeight(1) {
		t.Errorf("height = %v, want line height %v", h, atlas.LineHeight(1))
	}

	// Width is the sum of advances, so "AA" is exactly twice "A".
	w2, _ := atlas.Measure("AA", 1)
	if diff := w2 - 2*w1; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("width of AA = %v, want %v", w2, 2*w1)
	}

	// Scale multiplies linearly.
	ws, _ := atlas.Measure("A", 2)
	if diff := ws - 2*w1; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("scaled width = %v, want %v", ws, 2*w1)
	}

	if w, _ := atlas.Measure("", 1); w != 0 {
		t.Errorf("width of empty string = %v", w)
	}
}

func TestAtlasHasInk(t *testing.T) {
	atlas := buildTestAtlas(t)

	ink := 0
	for _, px := range atlas.Image().Pix {
		if px > 0 {
			ink++
		}
	}
	if ink == 0 {
		t.Error("atlas image is entirely blank")
	}
}
