// Package display implements the monochrome CHIP-8 frame buffer and sprite drawing.
package display

// Display resolutions.
const (
	Width  = 64
	Height = 32

	HighWidth  = 128
	HighHeight = 64
)

// spriteWidth is the number of pixels stored in one sprite byte.
const spriteWidth = 8

// Display is a row major bitmap, the pixel at x, y is stored at index width*y + x.
type Display struct {
	width  int
	height int
	pixels []bool
}

// New returns a cleared display in standard resolution.
func New() *Display {
	d := &Display{}
	d.resize(Width, Height)
	return d
}

// Width returns the current width in pixels.
func (d *Display) Width() int {
	return d.width
}

// Height returns the current height in pixels.
func (d *Display) Height() int {
	return d.height
}

// HighResolution returns whether the display is in 128x64 mode.
func (d *Display) HighResolution() bool {
	return d.width == HighWidth
}

// Clear turns off all pixels.
func (d *Display) Clear() {
	clear(d.pixels)
}

// SetHighResolution switches between 128x64 and 64x32. The buffer is cleared
// on every call, even if the resolution does not change.
func (d *Display) SetHighResolution(enabled bool) {
	if enabled {
		d.resize(HighWidth, HighHeight)
	} else {
		d.resize(Width, Height)
	}
}

// Reset returns the display to a cleared standard resolution buffer.
func (d *Display) Reset() {
	d.resize(Width, Height)
}

// Pixel returns the pixel at the given position. Positions outside the buffer are off.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return false
	}
	return d.pixels[d.width*y+x]
}

// Pixels returns a copy of the buffer in row major order.
func (d *Display) Pixels() []bool {
	pixels := make([]bool, len(d.pixels))
	copy(pixels, d.pixels)
	return pixels
}

// Draw XORs the sprite rows onto the buffer starting at x, y and returns whether
// any lit pixel was turned off. The start position wraps around the buffer size,
// pixels that then fall past the right or bottom edge are clipped.
func (d *Display) Draw(sprite []byte, x, y uint8) bool {
	startX := int(x) % d.width
	startY := int(y) % d.height
	var collision bool

	for row, bits := range sprite {
		py := startY + row
		if py >= d.height {
			break
		}
		for col := range spriteWidth {
			px := startX + col
			if px >= d.width {
				break
			}
			if bits&(0x80>>col) == 0 {
				continue
			}
			index := d.width*py + px
			if d.pixels[index] {
				collision = true
			}
			d.pixels[index] = !d.pixels[index]
		}
	}
	return collision
}

// String renders the buffer as text, lit pixels as '#' and dark pixels as '.'.
func (d *Display) String() string {
	buf := make([]byte, 0, (d.width+1)*d.height)
	for y := range d.height {
		for x := range d.width {
			if d.pixels[d.width*y+x] {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

func (d *Display) resize(width, height int) {
	d.width = width
	d.height = height
	d.pixels = make([]bool, width*height)
}
