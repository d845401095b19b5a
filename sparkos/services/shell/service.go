package shell

import (
	"fmt"
	"sync"

	"unios/internal/buildinfo"
	logclient "unios/sparkos/client/logger"
	"unios/sparkos/console"
	"unios/sparkos/kernel"
	"unios/sparkos/proto"
)

// frameRetries bounds how many ticks a frame notify waits for the term queue.
const frameRetries = 4

// Service runs the shell as a kernel task. It owns the console grid and the
// namespace; keystrokes arrive as MsgTermInput and frames leave through a
// shared buffer announced with MsgTermFrame.
type Service struct {
	inCap   kernel.Capability
	termCap kernel.Capability
	logCap  kernel.Capability
	frame   *kernel.SharedBuffer

	mu   sync.Mutex
	ctx  *kernel.Context
	scr  *console.Screen
	sh   *Shell
	dec  KeyDecoder
	snap [console.Cells]byte
}

// NewService builds the shell task. frame must hold at least console.Cells bytes.
func NewService(inCap, termCap, logCap kernel.Capability, frame *kernel.SharedBuffer, align console.Alignment) (*Service, error) {
	if frame == nil || frame.Size() < console.Cells {
		return nil, fmt.Errorf("shell: frame buffer smaller than %d bytes", console.Cells)
	}
	s := &Service{
		inCap:   inCap,
		termCap: termCap,
		logCap:  logCap,
		frame:   frame,
		scr:     console.New(align),
	}
	sh, err := New(s.scr, s.log)
	if err != nil {
		return nil, err
	}
	s.sh = sh
	return s, nil
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.inCap)
	if !ok {
		return
	}

	s.mu.Lock()
	s.ctx = ctx
	s.scr.Write(buildinfo.Banner() + "\n")
	s.scr.Write("Type help.\n\n")
	s.sh.Prompt()
	s.publish(ctx)
	s.mu.Unlock()

	for msg := range ch {
		if proto.Kind(msg.Kind) != proto.MsgTermInput {
			continue
		}
		s.handleInput(ctx, msg.Payload())
	}
}

func (s *Service) handleInput(ctx *kernel.Context, b []byte) {
	s.dec.Feed(b, func(k Key) {
		s.mu.Lock()
		s.sh.HandleKey(k)
		s.mu.Unlock()
	})

	s.mu.Lock()
	s.publish(ctx)
	s.mu.Unlock()
}

// publish copies the grid to the shared buffer if it changed and notifies
// the renderer. Called with s.mu held.
func (s *Service) publish(ctx *kernel.Context) {
	if !s.scr.TakeDirty() {
		return
	}
	s.scr.Snapshot(&s.snap)
	seq := s.frame.Write(s.snap[:])
	row, col := s.scr.Cursor()

	res := ctx.SendToCapRetry(s.termCap, uint16(proto.MsgTermFrame), proto.FramePayload(seq, uint8(row), uint8(col)), kernel.Capability{}, frameRetries)
	if res != kernel.SendOK {
		s.log(fmt.Sprintf("shell: frame %d: %s", seq, res))
	}
}

func (s *Service) log(line string) {
	if s.ctx == nil {
		return
	}
	_ = logclient.Log(s.ctx, s.logCap, line)
}
