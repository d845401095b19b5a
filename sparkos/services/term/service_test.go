package term

import (
	"bytes"
	"image/color"
	"testing"
	"time"

	"unios/hal"
	"unios/sparkos/console"
	"unios/sparkos/fonts/font6x8"
	"unios/sparkos/kernel"
)

type fakeFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newFakeFB(w, h int) *fakeFB { return &fakeFB{w: w, h: h, buf: make([]byte, w*h*2)} }

func (f *fakeFB) Width() int              { return f.w }
func (f *fakeFB) Height() int             { return f.h }
func (f *fakeFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *fakeFB) StrideBytes() int        { return f.w * 2 }
func (f *fakeFB) Buffer() []byte          { return f.buf }
func (f *fakeFB) Present() error          { f.presents++; return nil }

func (f *fakeFB) ClearRGB(r, g, b uint8) {
	p := hal.RGB565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

func (f *fakeFB) at(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

type fakeDisplay struct{ fb hal.Framebuffer }

func (d fakeDisplay) Framebuffer() hal.Framebuffer { return d.fb }

func blankCells() *[console.Cells]byte {
	var cells [console.Cells]byte
	for i := range cells {
		cells[i] = ' '
	}
	return &cells
}

func TestFrameBytes(t *testing.T) {
	cells := blankCells()
	copy(cells[console.Width:], "> ls")
	cells[5] = 0x1b

	out := frameBytes(nil, cells, 1, 4)

	if n := bytes.Count(out, []byte{'\n'}); n != console.Height-1 {
		t.Fatalf("newlines=%d, want %d", n, console.Height-1)
	}
	if n := bytes.Count(out, []byte(sgrCursor)); n != 1 {
		t.Fatalf("cursor markers=%d, want 1", n)
	}
	if !bytes.Contains(out, []byte("> ls"+sgrCursor+" "+sgrReset)) {
		t.Fatalf("cursor cell not after %q", "> ls")
	}
	if want := console.Cells + console.Height - 1 + len(sgrCursor) + len(sgrReset); len(out) != want {
		t.Fatalf("len=%d, want %d", len(out), want)
	}
	if bytes.Count(out, []byte{0x1b}) != 2 {
		t.Fatalf("control byte from the grid leaked into the stream")
	}
}

func TestFillAndScroll(t *testing.T) {
	fb := newFakeFB(4, 4)
	d := newFBDisplay(fb)
	red := color.RGBA{R: 255, A: 255}
	redPix := hal.RGB565(255, 0, 0)

	if err := d.FillRectangle(-2, 1, 10, 1, red); err != nil {
		t.Fatalf("FillRectangle: %v", err)
	}
	for x := 0; x < 4; x++ {
		if got := fb.at(x, 1); got != redPix {
			t.Fatalf("pixel (%d,1)=%#04x, want %#04x", x, got, redPix)
		}
	}

	if err := d.ScrollUp(1, color.RGBA{}); err != nil {
		t.Fatalf("ScrollUp: %v", err)
	}
	if got := fb.at(0, 0); got != redPix {
		t.Fatalf("row 0 after scroll=%#04x, want %#04x", got, redPix)
	}
	if got := fb.at(0, 1); got != 0 {
		t.Fatalf("row 1 after scroll=%#04x, want 0", got)
	}
}

func TestServiceDrawsNewestFrameOnce(t *testing.T) {
	fb := newFakeFB(console.Width*font6x8.Width, console.Height*font6x8.Height)
	frame := kernel.NewSharedBuffer(console.Cells)
	s := New(fakeDisplay{fb: fb}, kernel.Capability{}, frame)
	s.fb = fb
	s.d = newFBDisplay(fb)
	s.reset()

	cells := blankCells()
	cells[0] = 'A'
	frame.Write(cells[:])

	if !s.draw(0, 1) {
		t.Fatal("draw returned false for a new frame")
	}
	if s.draw(0, 1) {
		t.Fatal("draw returned true for an already drawn frame")
	}

	lit := false
	for y := 0; y < font6x8.Height; y++ {
		for x := 0; x < font6x8.Width; x++ {
			if fb.at(x, y) != 0 {
				lit = true
			}
		}
	}
	if !lit {
		t.Fatal("glyph A drew no pixels")
	}
	if got, want := fb.at(7, 0), hal.RGB565(0, 128, 0); got != want {
		t.Fatalf("cursor cell pixel=%#04x, want %#04x", got, want)
	}
	if got := fb.at(7, 2*font6x8.Height); got != 0 {
		t.Fatalf("pixel below the cursor=%#04x, want black", got)
	}
}

type tickForwarder struct {
	done   chan struct{}
	out    chan uint64
	exited chan struct{}
}

func (f tickForwarder) Run(ctx *kernel.Context) {
	forwardTicks(ctx, f.done, f.out)
	close(f.exited)
}

func TestForwardTicksStopsAfterDone(t *testing.T) {
	k := kernel.New()
	f := tickForwarder{
		done:   make(chan struct{}),
		out:    make(chan uint64, 1),
		exited: make(chan struct{}),
	}
	k.AddTask(f)

	// The forwarder may not be waiting yet; keep ticking until one arrives.
	var got uint64
	for tick := uint64(1); got == 0; tick++ {
		k.TickTo(tick)
		select {
		case got = <-f.out:
		case <-time.After(10 * time.Millisecond):
		}
		if tick > 100 {
			t.Fatal("no tick forwarded")
		}
	}

	close(f.done)
	for tick := uint64(1000); ; tick++ {
		k.TickTo(tick)
		select {
		case <-f.exited:
			return
		case <-time.After(10 * time.Millisecond):
		}
		if tick > 1100 {
			t.Fatal("forwardTicks kept running after done was closed")
		}
	}
}
