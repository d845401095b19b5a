package kernel

import (
	"sync"
	"sync/atomic"
)

// PanicInfo describes the first task panic the kernel recovered.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

var (
	panicActive  atomic.Bool
	panicOnce    sync.Once
	panicHandler atomic.Pointer[func(PanicInfo)]
)

// InPanicMode reports whether a task has panicked. Renderers stop drawing
// frames once it is set so the panic screen stays visible.
func InPanicMode() bool {
	return panicActive.Load()
}

// SetPanicHandler installs the process-wide handler for task panics.
// Only the first panic reaches it; it must not panic itself.
func SetPanicHandler(fn func(PanicInfo)) {
	if fn == nil {
		panicHandler.Store(nil)
		return
	}
	panicHandler.Store(&fn)
}

func triggerPanic(info PanicInfo) {
	panicOnce.Do(func() {
		panicActive.Store(true)
		info.Stack = captureStack()
		if fn := panicHandler.Load(); fn != nil {
			(*fn)(info)
		}
	})
}
