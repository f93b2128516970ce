// Package placeholders draws simple wall textures so the game can run
// without any art assets.
package placeholders

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

// TextureSize is the edge length of generated wall textures.
const TextureSize = 64

// ColorPalette defines the base colors for each wall style
var ColorPalette = struct {
	Brick  color.RGBA
	Mortar color.RGBA
	Stone  color.RGBA
	Wood   color.RGBA
	Moss   color.RGBA
}{
	Brick:  color.RGBA{150, 70, 50, 255},
	Mortar: color.RGBA{90, 85, 80, 255},
	Stone:  color.RGBA{130, 125, 115, 255},
	Wood:   color.RGBA{120, 85, 50, 255},
	Moss:   color.RGBA{70, 110, 60, 255},
}

// CreateSolidTexture creates a square texture filled with one color
func CreateSolidTexture(size int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
