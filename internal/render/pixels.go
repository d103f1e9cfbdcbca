package render

import (
	"image"
	"image/color"
)

// fillRectRGBA paints r into an RGBA buffer of the given width. Pixels
// outside the buffer are skipped.
func fillRectRGBA(buf []byte, width int, r image.Rectangle, col color.RGBA) {
	if width <= 0 {
		return
	}
	height := len(buf) / (4 * width)
	r = r.Intersect(image.Rect(0, 0, width, height))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			base := (y*width + x) * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
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
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// FinishCell is the side of one square of the chequered finish strip.
const FinishCell = 20

// FinishColumns is the width of the strip in squares.
const FinishColumns = 2

// CheckerCells lays out a w*h chequerboard of cell-sized squares as palette
// indices 0 and 1, starting with 0 in the top-left corner.
func CheckerCells(w, h, cell int) []uint8 {
	if w <= 0 || h <= 0 {
		return nil
	}
	if cell <= 0 {
		cell = 1
	}
	cells := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cells[y*w+x] = uint8((x/cell + y/cell) % 2)
		}
	}
	return cells
}

// FinishPixels renders the chequered finish strip for a track of the given
// height into an RGBA buffer. The strip is FinishColumns squares wide.
func FinishPixels(height int) (buf []byte, w, h int) {
	w = FinishCell * FinishColumns
	h = height
	cells := CheckerCells(w, h, FinishCell)
	buf = make([]byte, 4*len(cells))
	fillPaletteRGBA(buf, cells, []color.RGBA{FinishLight, FinishDark})
	return buf, w, h
}

// HorsePixels draws a single animation frame of a horse silhouette in the
// given saddle colour. Frames alternate the leg positions.
func HorsePixels(saddle color.RGBA, frame int) (buf []byte, w, h int) {
	w, h = HorseWidth, HorseHeight
	buf = make([]byte, 4*w*h)

	body := image.Rect(4, 6, w-8, h-8)
	head := image.Rect(w-12, 0, w, 10)
	blanket := image.Rect(body.Min.X+8, body.Min.Y, body.Max.X-8, body.Max.Y-4)
	fillRectRGBA(buf, w, body, Coat)
	fillRectRGBA(buf, w, head, Coat)
	fillRectRGBA(buf, w, blanket, saddle)

	for i, x := range legColumns(frame) {
		drop := 0
		if (i+frame)%2 == 1 {
			drop = 2
		}
		fillRectRGBA(buf, w, image.Rect(x, h-8, x+3, h-drop), Coat)
	}
	return buf, w, h
}

// GaitFrames is the number of frames in a gallop cycle.
const GaitFrames = 4

func legColumns(frame int) [4]int {
	shift := frame % GaitFrames
	return [4]int{6 + shift, 12 - shift, HorseWidth - 20 + shift, HorseWidth - 14 - shift}
}

// Horse sprite size in pixels.
const (
	HorseWidth  = 40
	HorseHeight = 28
)
