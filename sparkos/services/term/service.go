package term

import (
	"unios/hal"
	"unios/sparkos/console"
	"unios/sparkos/fonts/font6x8"
	"unios/sparkos/kernel"
	"unios/sparkos/proto"

	"tinygo.org/x/tinyterm"
)

const (
	sgrCursor = "\x1b[42m"
	sgrReset  = "\x1b[0m"
)

// Service draws console frames onto the framebuffer. Frames arrive as
// MsgTermFrame notifies pointing into a shared buffer.
type Service struct {
	disp  hal.Display
	ep    kernel.Capability
	frame *kernel.SharedBuffer

	fb hal.Framebuffer
	d  *fbDisplay
	t  *tinyterm.Terminal

	cells   [console.Cells]byte
	lastSeq uint32
	out     []byte
}

func New(disp hal.Display, ep kernel.Capability, frame *kernel.SharedBuffer) *Service {
	return &Service{disp: disp, ep: ep, frame: frame}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}

	if s.disp == nil || s.frame == nil {
		return
	}
	s.fb = s.disp.Framebuffer()
	if s.fb == nil {
		return
	}

	s.d = newFBDisplay(s.fb)
	s.reset()

	dirty := false

	done := make(chan struct{})
	defer close(done)
	tickCh := make(chan uint64, 16)
	go forwardTicks(ctx, done, tickCh)

	for {
		select {
		case <-tickCh:
			if dirty && !kernel.InPanicMode() {
				s.t.Display()
				dirty = false
			}

		case msg, ok := <-ch:
			if !ok {
				return
			}
			if proto.Kind(msg.Kind) != proto.MsgTermFrame {
				continue
			}
			seq, row, col, ok := proto.DecodeFramePayload(msg.Payload())
			if !ok || seq <= s.lastSeq {
				continue
			}
			if s.draw(int(row), int(col)) {
				dirty = true
			}
		}
	}
}

// forwardTicks copies kernel ticks into out, dropping ticks out cannot take.
// It returns at the first tick after done is closed.
func forwardTicks(ctx *kernel.Context, done <-chan struct{}, out chan<- uint64) {
	last := ctx.NowTick()
	for {
		last = ctx.WaitTick(last)
		select {
		case <-done:
			return
		default:
		}
		select {
		case out <- last:
		default:
		}
	}
}

// draw renders the newest frame in the shared buffer. Notifies that arrive
// after a newer frame was already drawn are skipped.
func (s *Service) draw(row, col int) bool {
	if kernel.InPanicMode() {
		return false
	}
	seq, n := s.frame.Read(s.cells[:])
	if n < console.Cells || seq <= s.lastSeq {
		return false
	}
	s.lastSeq = seq

	s.reset()
	s.out = frameBytes(s.out[:0], &s.cells, row, col)
	_, _ = s.t.Write(s.out)
	return true
}

func (s *Service) reset() {
	s.t = tinyterm.NewTerminal(s.d)
	s.t.Configure(&tinyterm.Config{
		Font:              font6x8.Font,
		FontHeight:        font6x8.Height,
		FontOffset:        font6x8.Baseline,
		UseSoftwareScroll: true,
	})
	s.fb.ClearRGB(0, 0, 0)
}

// frameBytes appends the terminal byte stream for one grid: rows separated
// by '\n', the cursor cell on a green background. Control bytes render as blanks.
func frameBytes(dst []byte, cells *[console.Cells]byte, row, col int) []byte {
	for r := 0; r < console.Height; r++ {
		if r > 0 {
			dst = append(dst, '\n')
		}
		for c := 0; c < console.Width; c++ {
			b := cells[r*console.Width+c]
			if b < 0x20 || b == 0x7f {
				b = ' '
			}
			if r == row && c == col {
				dst = append(dst, sgrCursor...)
				dst = append(dst, b)
				dst = append(dst, sgrReset...)
				continue
			}
			dst = append(dst, b)
		}
	}
	return dst
}
