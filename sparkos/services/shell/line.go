package shell

const (
	LineCap = 80
	CmdCap  = 10
	ArgCap  = 70
)

// CmdToken and ArgToken are NUL-padded parsed words.
type (
	CmdToken [CmdCap]byte
	ArgToken [ArgCap]byte
)

func (t CmdToken) String() string { return trimNUL(t[:]) }
func (t ArgToken) String() string { return trimNUL(t[:]) }

func trimNUL(b []byte) string {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return string(b[:n])
}

// lineBuffer accumulates the keystrokes of one command line.
type lineBuffer struct {
	buf [LineCap]byte
	n   int
}

func (l *lineBuffer) Append(b byte) error {
	if l.n >= LineCap {
		return ErrBufferFull
	}
	l.buf[l.n] = b
	l.n++
	return nil
}

// Backspace drops the last byte. It is a no-op on an empty line.
func (l *lineBuffer) Backspace() {
	if l.n == 0 {
		return
	}
	l.n--
	l.buf[l.n] = 0
}

func (l *lineBuffer) Len() int { return l.n }

func (l *lineBuffer) Reset() {
	*l = lineBuffer{}
}

func (l *lineBuffer) String() string { return string(l.buf[:l.n]) }

// Split cuts the line at the first space into a command and an argument.
// Exactly one space is consumed; any further spaces belong to the argument.
//
// A first word longer than CmdCap is returned truncated together with
// ErrCommandNotFound, and an argument longer than ArgCap with ErrArgumentTooLong.
func (l *lineBuffer) Split() (cmd CmdToken, arg ArgToken, err error) {
	line := l.buf[:l.n]

	i := 0
	for i < len(line) && line[i] != ' ' {
		i++
	}
	copy(cmd[:], line[:i])
	if i > CmdCap {
		return cmd, arg, &Error{Op: "parse", Kind: kindCommand, Name: string(line[:i]), Err: ErrCommandNotFound}
	}
	if i >= len(line) {
		return cmd, arg, nil
	}

	rest := line[i+1:]
	if len(rest) > ArgCap {
		copy(arg[:], rest)
		return cmd, arg, &Error{Op: "parse", Name: cmd.String(), Err: ErrArgumentTooLong}
	}
	copy(arg[:], rest)
	return cmd, arg, nil
}
