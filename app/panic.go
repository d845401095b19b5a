package app

import (
	"fmt"
	"image/color"
	"strings"

	"unios/hal"
	"unios/sparkos/fonts/font6x8"
	"unios/sparkos/kernel"

	"tinygo.org/x/tinyfont"
)

func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		if disp := h.Display(); disp != nil {
			if fb := disp.Framebuffer(); fb != nil {
				drawPanic(fb, lines)
				_ = fb.Present()
			}
		}
		// The failed task stays parked; the screen keeps the report.
		select {}
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"unios panic:",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
	}
	return lines
}

// drawPanic paints lines black on white, wrapping at the screen edge and
// stopping at the bottom.
func drawPanic(fb hal.Framebuffer, lines []string) {
	fb.ClearRGB(255, 255, 255)

	font := font6x8.Font
	_, w := tinyfont.LineWidth(font, "0")
	fontWidth := int(w)
	if fontWidth <= 0 {
		return
	}
	cols := fb.Width() / fontWidth
	if cols <= 0 {
		return
	}

	d := panicDisplay{fb: fb}
	fg := color.RGBA{A: 255}

	y := 0
	for _, line := range lines {
		for {
			if y+font6x8.Height > fb.Height() {
				return
			}
			chunk := line
			if len(chunk) > cols {
				chunk = chunk[:cols]
			}
			for i := 0; i < len(chunk); i++ {
				tinyfont.DrawChar(d, font, int16(i*fontWidth), int16(y+font6x8.Baseline), rune(chunk[i]), fg)
			}
			y += font6x8.Height
			line = strings.TrimLeft(line[len(chunk):], " ")
			if line == "" {
				break
			}
		}
	}
}

type panicDisplay struct {
	fb hal.Framebuffer
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	if x < 0 || int(x) >= d.fb.Width() || y < 0 || int(y) >= d.fb.Height() {
		return
	}
	buf := d.fb.Buffer()
	off := int(y)*d.fb.StrideBytes() + int(x)*2
	if off+1 >= len(buf) {
		return
	}
	pixel := hal.RGB565(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d panicDisplay) Display() error { return nil }
