package term

import (
	"image/color"

	"unios/hal"

	"tinygo.org/x/drivers"
)

// fbDisplay adapts an RGB565 hal.Framebuffer to tinyterm.Displayer.
// Other pixel formats draw nothing.
type fbDisplay struct {
	fb hal.Framebuffer
}

func newFBDisplay(fb hal.Framebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) pixels() (buf []byte, w, h, stride int, ok bool) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil, 0, 0, 0, false
	}
	buf = d.fb.Buffer()
	if buf == nil {
		return nil, 0, 0, 0, false
	}
	return buf, d.fb.Width(), d.fb.Height(), d.fb.StrideBytes(), true
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	_ = d.FillRectangle(x, y, 1, 1, c)
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	buf, w, h, stride, ok := d.pixels()
	if !ok {
		return nil
	}

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)

	pixel := hal.RGB565(c.R, c.G, c.B)
	lo, hi := byte(pixel), byte(pixel>>8)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			off := py*stride + px*2
			if off+1 >= len(buf) {
				break
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

// ScrollUp moves the picture up by lines pixel rows and blanks the bottom.
// tinyterm uses it for software scrolling.
func (d *fbDisplay) ScrollUp(lines int16, bg color.RGBA) error {
	buf, w, h, stride, ok := d.pixels()
	if !ok || lines <= 0 {
		return nil
	}
	n := int(lines)
	if n >= h {
		return d.FillRectangle(0, 0, int16(w), int16(h), bg)
	}

	end := h * stride
	if end > len(buf) {
		end = len(buf)
	}
	if n*stride >= end {
		return d.FillRectangle(0, 0, int16(w), int16(h), bg)
	}
	copy(buf, buf[n*stride:end])
	return d.FillRectangle(0, int16(h-n), int16(w), int16(n), bg)
}

func (d *fbDisplay) SetScroll(line int16) {}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
