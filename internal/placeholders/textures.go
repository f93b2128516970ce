package placeholders

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
)

// WallTexture draws offset brick courses separated by mortar lines.
func WallTexture(size int) *image.RGBA {
	img := CreateSolidTexture(size, ColorPalette.Brick)
	course := max(size/8, 2)
	brick := course * 2

	for y := 0; y < size; y++ {
		row := y / course
		offset := 0
		if row%2 == 1 {
			offset = brick / 2
		}
		for x := 0; x < size; x++ {
			switch {
			case y%course == 0 || (x+offset)%brick == 0:
				img.Set(x, y, ColorPalette.Mortar)
			case y%course == 1:
				img.Set(x, y, Lighten(ColorPalette.Brick, 0.15))
			case y%course == course-1:
				img.Set(x, y, Darken(ColorPalette.Brick, 0.8))
			}
		}
	}
	return img
}

// StoneTexture draws large bordered blocks.
func StoneTexture(size int) *image.RGBA {
	img := CreateSolidTexture(size, ColorPalette.Stone)
	block := max(size/2, 2)
	edge := Darken(ColorPalette.Stone, 0.6)
	light := Lighten(ColorPalette.Stone, 0.2)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			switch {
			case x%block == 0 || y%block == 0:
				img.Set(x, y, edge)
			case x%block == 1 || y%block == 1:
				img.Set(x, y, light)
			}
		}
	}
	return img
}

// WoodTexture draws vertical planks.
func WoodTexture(size int) *image.RGBA {
	img := CreateSolidTexture(size, ColorPalette.Wood)
	plank := max(size/4, 2)
	seam := Darken(ColorPalette.Wood, 0.5)
	grain := Darken(ColorPalette.Wood, 0.85)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			switch {
			case x%plank == 0:
				img.Set(x, y, seam)
			case (x+y/3)%7 == 0:
				img.Set(x, y, grain)
			}
		}
	}
	return img
}

// MossTexture is the brick texture with moss creeping up from the floor.
func MossTexture(size int) *image.RGBA {
	img := WallTexture(size)
	for x := 0; x < size; x++ {
		height := size/4 + (x*7)%(size/4+1)
		for y := size - height; y < size; y++ {
			if (x+y)%3 != 0 {
				img.Set(x, y, ColorPalette.Moss)
			}
		}
	}
	return img
}

// Textures maps generated file names to their images. Wall codes 1 to 4 use
// them in this order when listed in the config.
func Textures(size int) []NamedTexture {
	return []NamedTexture{
		{Name: "wall.png", Image: WallTexture(size)},
		{Name: "stone.png", Image: StoneTexture(size)},
		{Name: "wood.png", Image: WoodTexture(size)},
		{Name: "moss.png", Image: MossTexture(size)},
	}
}

// NamedTexture is a generated image and the file name it is saved under.
type NamedTexture struct {
	Name  string
	Image *image.RGBA
}

// GenerateAndSave writes every placeholder texture to baseDir/assets.
func GenerateAndSave(baseDir string) error {
	fmt.Println("Generating placeholder wall textures...")

	assetsDir := filepath.Join(baseDir, "assets")
	if err := os.MkdirAll(assetsDir, 0755); err != nil {
		return fmt.Errorf("failed to create assets directory: %w", err)
	}

	for _, tex := range Textures(TextureSize) {
		path := filepath.Join(assetsDir, tex.Name)
		if err := SavePNG(tex.Image, path); err != nil {
			return fmt.Errorf("failed to save %s: %w", tex.Name, err)
		}
		fmt.Printf("✓ Generated %s (%dx%d pixels)\n", path, TextureSize, TextureSize)
	}

	fmt.Println("Placeholder textures generated successfully!")
	return nil
}
