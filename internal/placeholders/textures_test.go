package placeholders

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestWallTextureLayout(t *testing.T) {
	img := WallTexture(64)
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("Expected 64x64, got %dx%d", b.Dx(), b.Dy())
	}
	if got := img.RGBAAt(0, 0); got != ColorPalette.Mortar {
		t.Errorf("Expected mortar at origin, got %v", got)
	}
	if got := img.RGBAAt(1, 2); got != ColorPalette.Brick {
		t.Errorf("Expected brick face at (1, 2), got %v", got)
	}
	// Odd courses are shifted by half a brick.
	if got := img.RGBAAt(8, 10); got != ColorPalette.Mortar {
		t.Errorf("Expected offset joint at (8, 10), got %v", got)
	}
	if got := img.RGBAAt(8, 2); got == ColorPalette.Mortar {
		t.Error("Expected no joint at (8, 2) on an even course")
	}
}

func TestTexturesAreOpaque(t *testing.T) {
	for _, tex := range Textures(32) {
		b := tex.Image.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if a := tex.Image.RGBAAt(x, y).A; a != 255 {
					t.Fatalf("%s: expected opaque pixel at (%d, %d), got alpha %d", tex.Name, x, y, a)
				}
			}
		}
	}
}

func TestDarkenLighten(t *testing.T) {
	c := ColorPalette.Brick
	if d := Darken(c, 0.5); d.R != c.R/2 || d.A != 255 {
		t.Errorf("Expected half red %d, got %d", c.R/2, d.R)
	}
	if l := Lighten(c, 1); l.R != 255 || l.G != 255 || l.B != 255 {
		t.Errorf("Expected white, got %v", l)
	}
}

func TestGenerateAndSave(t *testing.T) {
	dir := t.TempDir()
	if err := GenerateAndSave(dir); err != nil {
		t.Fatalf("GenerateAndSave failed: %v", err)
	}

	for _, name := range []string{"wall.png", "stone.png", "wood.png", "moss.png"} {
		f, err := os.Open(filepath.Join(dir, "assets", name))
		if err != nil {
			t.Fatalf("Expected %s to exist: %v", name, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("Failed to decode %s: %v", name, err)
		}
		if b := img.Bounds(); b.Dx() != TextureSize || b.Dy() != TextureSize {
			t.Errorf("%s: expected %dx%d, got %dx%d", name, TextureSize, TextureSize, b.Dx(), b.Dy())
		}
	}
}
