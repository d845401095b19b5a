package app

import (
	"fmt"

	"unios/hal"
	"unios/sparkos/console"
	"unios/sparkos/kernel"
	"unios/sparkos/services/logger"
	"unios/sparkos/services/shell"
	"unios/sparkos/services/term"
	"unios/sparkos/services/termkbd"
)

type Config struct {
	// Align places glyphs on the active console row.
	Align console.Alignment
}

// New initializes and starts the OS with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// NewWithConfig starts the OS and returns the per-frame step function.
// A wiring failure is reported by the first step.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	if err := startSystem(h, cfg); err != nil {
		return func() error { return err }
	}
	return func() error { return nil }
}

// startSystem wires the kernel tasks. Once it returns they run on their own
// goroutines driven by the HAL's ticks and key events.
func startSystem(h hal.HAL, cfg Config) error {
	switch cfg.Align {
	case console.AlignLeft, console.AlignRight, console.AlignCenter:
	default:
		return fmt.Errorf("app: unknown console alignment %d", cfg.Align)
	}

	installPanicHandler(h)

	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	shellEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	termEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	if !logEP.Valid() || !shellEP.Valid() || !termEP.Valid() {
		return fmt.Errorf("app: out of endpoints")
	}

	frame := kernel.NewSharedBuffer(console.Cells)
	sh, err := shell.NewService(
		shellEP.Restrict(kernel.RightRecv),
		termEP.Restrict(kernel.RightSend),
		logEP.Restrict(kernel.RightSend),
		frame,
		cfg.Align,
	)
	if err != nil {
		return fmt.Errorf("app: shell: %w", err)
	}

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(term.New(h.Display(), termEP.Restrict(kernel.RightRecv), frame))
	k.AddTask(sh)
	k.AddTask(termkbd.NewInput(h.Input(), shellEP.Restrict(kernel.RightSend)))

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return nil
}
