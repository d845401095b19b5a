package shell

// parseEscape decodes one VT100 sequence at the start of b. ok is false when
// b holds only a prefix and more bytes are needed. Sequences the shell has no
// key for are consumed and reported with ok true and handled false.
func parseEscape(b []byte) (consumed int, key Key, handled, ok bool) {
	if len(b) == 0 || b[0] != 0x1b {
		return 0, Key{}, false, true
	}
	if len(b) < 2 {
		return 0, Key{}, false, false
	}
	if b[1] != '[' {
		return 2, Key{}, false, true
	}
	if len(b) < 3 {
		return 0, Key{}, false, false
	}
	switch b[2] {
	case 'A':
		return 3, Key{Code: KeyUp}, true, true
	case 'B':
		return 3, Key{Code: KeyDown}, true, true
	case 'C':
		return 3, Key{Code: KeyRight}, true, true
	case 'D':
		return 3, Key{Code: KeyLeft}, true, true
	}
	n := consumeEscape(b)
	if n == len(b) && (b[n-1] < 0x40 || b[n-1] > 0x7e) {
		return 0, Key{}, false, false
	}
	return n, Key{}, false, true
}

func consumeEscape(b []byte) int {
	if len(b) < 2 || b[0] != 0x1b {
		return 0
	}
	if b[1] == '[' {
		for i := 2; i < len(b); i++ {
			if b[i] >= 0x40 && b[i] <= 0x7e {
				return i + 1
			}
		}
		return len(b)
	}
	return 2
}

// KeyDecoder turns the terminal byte stream into keys. A partial escape
// sequence is held until the next Feed.
type KeyDecoder struct {
	pending []byte
}

// maxPending bounds a held escape prefix; longer garbage is discarded.
const maxPending = 8

func (d *KeyDecoder) Feed(in []byte, emit func(Key)) {
	b := in
	if len(d.pending) > 0 {
		b = append(d.pending, in...)
		d.pending = nil
	}

	for len(b) > 0 {
		c := b[0]
		switch {
		case c == 0x1b:
			n, k, handled, ok := parseEscape(b)
			if !ok {
				if len(b) <= maxPending {
					d.pending = append([]byte(nil), b...)
				}
				return
			}
			b = b[n:]
			if handled {
				emit(k)
			}
		case c == '\r':
			b = b[1:]
		case c == '\n':
			b = b[1:]
			emit(Key{Code: KeyEnter})
		case c == 0x7f || c == 0x08:
			b = b[1:]
			emit(Key{Code: KeyBackspace})
		case c == '\t':
			b = b[1:]
			emit(Key{Code: KeyTab})
		case c >= 0x20 && c < 0x7f:
			b = b[1:]
			emit(CharKey(c))
		default:
			// Other control bytes have no key.
			b = b[1:]
		}
	}
}
