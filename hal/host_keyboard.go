package hal

import (
	"bufio"
	"io"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// emit drops the event when nobody keeps up with the queue.
func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

// press queues a press and release pair, blocking while the queue is full.
func (k *hostKeyboard) press(code KeyCode) {
	k.ch <- KeyEvent{Code: code, Press: true}
	k.ch <- KeyEvent{Code: code, Press: false}
}

// readFrom turns a byte stream (a pipe or a terminal in line mode) into key
// events until r fails. Unlike emit it blocks on a full queue, so scripted
// input is never lost.
func (k *hostKeyboard) readFrom(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case b == '\r':
		case b == '\n':
			k.press(KeyEnter)
		case b == '\t':
			k.press(KeyTab)
		case b == 0x7f || b == 0x08:
			k.press(KeyBackspace)
		case b >= 0x20 && b < 0x7f:
			k.ch <- KeyEvent{Press: true, Rune: rune(b)}
		}
	}
}
