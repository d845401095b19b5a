package hal

import "time"

// hostTickPeriod is the length of one kernel tick on the host.
const hostTickPeriod = time.Millisecond

// hostTime turns wall-clock time elapsed between frames into 1ms ticks.
type hostTime struct {
	ch  chan uint64
	seq uint64

	last    time.Time
	pending time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step emits the ticks that fit in the time since the previous step. The
// first call emits n ticks so the kernel clock starts moving at once.
func (t *hostTime) step(n uint64) {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.emit(n)
		return
	}
	t.pending += now.Sub(t.last)
	t.last = now

	ticks := uint64(t.pending / hostTickPeriod)
	t.pending %= hostTickPeriod
	t.emit(ticks)
}

// emit drops ticks nobody reads; the sequence number still advances.
func (t *hostTime) emit(n uint64) {
	for ; n > 0; n-- {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
