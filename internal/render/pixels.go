package render

import (
	"image"
	"image/color"

	"archipelago/internal/island"
)

var bandPalette = []color.RGBA{
	island.BandWater:    {R: 38, G: 84, B: 186, A: 255},
	island.BandShore:    {R: 226, G: 208, B: 128, A: 255},
	island.BandLowland:  {R: 86, G: 158, B: 72, A: 255},
	island.BandHighland: {R: 138, G: 134, B: 128, A: 255},
}

// BandColor returns the display colour of a height band.
func BandColor(b island.Band) color.RGBA {
	if int(b) >= len(bandPalette) {
		return bandPalette[len(bandPalette)-1]
	}
	return bandPalette[b]
}

// HeightColor classifies h and returns its band colour.
func HeightColor(h float64) color.RGBA { return BandColor(island.Classify(h)) }

// IslandRGBA rasterises an island at one pixel per tile. Water tiles are
// transparent so the sea behind the island shows through.
func IslandRGBA(is *island.Island) *image.RGBA {
	w, h := is.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cells := make([]uint8, 0, w*h)
	for _, row := range is.Tiles {
		for _, t := range row {
			cells = append(cells, uint8(island.Classify(t.Height)))
		}
	}
	palette := append([]color.RGBA(nil), bandPalette...)
	palette[island.BandWater] = color.RGBA{}
	fillPaletteRGBA(img.Pix, cells, palette)
	return img
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		col := palette[min(int(c), last)]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

func blend(dst, src color.RGBA) color.RGBA {
	a := uint32(src.A)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a)) / 255)
	}
	return color.RGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 255}
}
