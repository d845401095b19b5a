package termkbd

import (
	"unios/hal"
	"unios/sparkos/kernel"
	"unios/sparkos/proto"
)

// Service turns hal key events into VT100 bytes for the shell, with
// auto-repeat for held editing keys.
type Service struct {
	in     hal.Input
	outCap kernel.Capability

	events  <-chan hal.KeyEvent
	pending []byte

	heldCode hal.KeyCode
	heldData []byte

	nextRepeatTick uint64
}

// NewInput writes VT100 bytes as MsgTermInput messages to inputCap.
func NewInput(in hal.Input, inputCap kernel.Capability) *Service {
	return &Service{in: in, outCap: inputCap}
}

func (s *Service) Run(ctx *kernel.Context) {
	if ctx == nil {
		return
	}
	if s.in == nil {
		return
	}
	kbd := s.in.Keyboard()
	if kbd == nil {
		return
	}
	s.events = kbd.Events()
	if s.events == nil {
		return
	}

	done := make(chan struct{})
	defer close(done)

	tickCh := make(chan uint64, 16)
	go func() {
		last := ctx.NowTick()
		for {
			select {
			case <-done:
				return
			default:
			}
			last = ctx.WaitTick(last)
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return
			}
			s.handleKeyEvent(ctx.NowTick(), ev)
			s.flush(ctx)
		case tick := <-tickCh:
			s.handleRepeat(tick)
			s.flush(ctx)
		}
	}
}

func (s *Service) handleKeyEvent(now uint64, ev hal.KeyEvent) {
	if !ev.Press {
		if s.heldData != nil && ev.Code == s.heldCode {
			s.heldData = nil
			s.nextRepeatTick = 0
		}
		return
	}

	data := vt100FromKey(ev)
	s.pending = append(s.pending, data...)

	if !repeatableKey(ev, data) {
		return
	}
	s.heldCode = ev.Code
	s.heldData = append(s.heldData[:0], data...)
	s.nextRepeatTick = now + repeatDelayTicks
}

func (s *Service) handleRepeat(tick uint64) {
	if s.heldData == nil {
		return
	}
	if tick < s.nextRepeatTick {
		return
	}
	s.pending = append(s.pending, s.heldData...)
	s.nextRepeatTick = tick + repeatRateTicks
}

func (s *Service) flush(ctx *kernel.Context) {
	if len(s.pending) == 0 {
		return
	}
	if !s.outCap.Valid() {
		s.pending = nil
		return
	}

	chunk := s.pending
	if len(chunk) > kernel.MaxMessageBytes {
		chunk = chunk[:kernel.MaxMessageBytes]
	}

	res := ctx.SendToCapResult(s.outCap, uint16(proto.MsgTermInput), chunk, kernel.Capability{})
	switch res {
	case kernel.SendOK:
		s.pending = s.pending[len(chunk):]
	case kernel.SendErrQueueFull:
		// Kept for the next tick.
	default:
		s.pending = nil
	}
}

const (
	// Ticks are 1ms on the host.
	repeatDelayTicks = 350
	repeatRateTicks  = 60
)

func repeatableKey(ev hal.KeyEvent, data []byte) bool {
	if len(data) == 0 {
		return false
	}
	switch ev.Code {
	case hal.KeyUp, hal.KeyDown, hal.KeyLeft, hal.KeyRight, hal.KeyBackspace:
		return true
	default:
		return false
	}
}

// vt100FromKey encodes a key press. Runes outside 7-bit ASCII have no glyph
// in the console and are dropped.
func vt100FromKey(ev hal.KeyEvent) []byte {
	if ev.Rune != 0 {
		if ev.Rune < 0x20 || ev.Rune > 0x7e {
			return nil
		}
		return []byte{byte(ev.Rune)}
	}

	switch ev.Code {
	case hal.KeyEnter:
		return []byte{'\n'}
	case hal.KeyEscape:
		return []byte{0x1b}
	case hal.KeyBackspace:
		return []byte{0x7f}
	case hal.KeyTab:
		return []byte{'\t'}
	case hal.KeyUp:
		return []byte("\x1b[A")
	case hal.KeyDown:
		return []byte("\x1b[B")
	case hal.KeyRight:
		return []byte("\x1b[C")
	case hal.KeyLeft:
		return []byte("\x1b[D")
	default:
		return nil
	}
}
