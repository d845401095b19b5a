package shell

import (
	"errors"

	"unios/sparkos/console"
)

// Prompt starts every command line. Backspace never erases it.
const Prompt = "> "

// KeyCode classifies a decoded key. Values follow the keyboard decoder's codes.
type KeyCode uint8

const (
	KeyChar      KeyCode = 0
	KeyBackspace KeyCode = 8
	KeyTab       KeyCode = 9
	KeyEnter     KeyCode = 10
	KeySpace     KeyCode = 32
	KeyLeft      KeyCode = 37
	KeyUp        KeyCode = 38
	KeyRight     KeyCode = 39
	KeyDown      KeyCode = 40
)

// Key is one decoded keystroke. Char is set for KeyChar and KeySpace.
type Key struct {
	Code KeyCode
	Char byte
}

// CharKey returns the key for a printable byte.
func CharKey(b byte) Key {
	if b == ' ' {
		return Key{Code: KeySpace, Char: ' '}
	}
	return Key{Code: KeyChar, Char: b}
}

// Console is the text display the shell draws on.
type Console interface {
	Write(s string)
	WriteByte(b byte) error
	Clear()
	DeleteLastGlyph(reserved int) bool
	Snapshot(dst *[console.Cells]byte)
}

// Shell is the command interpreter state. It is not safe for concurrent use;
// the owner feeds it one key at a time.
type Shell struct {
	con Console
	ns  *Namespace
	reg *registry
	log func(string)

	line lineBuffer
	cwd  int

	editing bool
	target  int // file being edited, MaxFiles when not editing
}

// New returns a shell in Normal mode at the root folder. log may be nil.
func New(con Console, log func(string)) (*Shell, error) {
	s := &Shell{
		con:    con,
		ns:     NewNamespace(),
		log:    log,
		cwd:    Root,
		target: MaxFiles,
	}
	if err := s.initRegistry(); err != nil {
		return nil, err
	}
	return s, nil
}

// Namespace exposes the folder tree.
func (s *Shell) Namespace() *Namespace { return s.ns }

// Cwd returns the current folder slot.
func (s *Shell) Cwd() int { return s.cwd }

// Editing reports whether keystrokes go to a file, and which one.
func (s *Shell) Editing() (bool, int) { return s.editing, s.target }

// Prompt writes the command prompt.
func (s *Shell) Prompt() {
	s.con.Write(Prompt)
}

// HandleKey runs one keystroke to completion.
func (s *Shell) HandleKey(k Key) {
	if s.editing {
		s.editKey(k)
		return
	}
	s.lineKey(k)
}

func (s *Shell) lineKey(k Key) {
	switch k.Code {
	case KeyEnter:
		_ = s.con.WriteByte('\n')
		s.execute()
		s.line.Reset()
		if !s.editing {
			s.Prompt()
		}
	case KeyBackspace:
		if s.line.Len() == 0 {
			return
		}
		if s.con.DeleteLastGlyph(s.reserved()) {
			s.line.Backspace()
		}
	case KeyChar, KeySpace:
		if err := s.line.Append(k.Char); err != nil {
			s.logf("key dropped: " + (&Error{Kind: kindLine, Err: err}).Error())
			return
		}
		_ = s.con.WriteByte(k.Char)
	default:
		// Tab and arrows do nothing on the command line.
	}
}

// reserved is the width of the prompt on the cursor row. Once the line has
// wrapped onto the next console row that row carries no prompt.
func (s *Shell) reserved() int {
	if len(Prompt)+s.line.Len() > console.Width {
		return 0
	}
	return len(Prompt)
}

func (s *Shell) editKey(k Key) {
	switch k.Code {
	case KeyEnter:
		s.ns.File(s.target).Lines++
		_ = s.con.WriteByte('\n')
	case KeyBackspace:
		s.con.DeleteLastGlyph(0)
	case KeyTab:
		s.stopEditing()
	case KeyChar, KeySpace:
		_ = s.con.WriteByte(k.Char)
	default:
	}
}

func (s *Shell) startEditing(slot int) {
	s.con.Clear()
	s.editing = true
	s.target = slot
}

// stopEditing captures the whole console into the target file.
func (s *Shell) stopEditing() {
	f := s.ns.File(s.target)
	s.con.Snapshot(&f.Content)
	s.con.Clear()
	s.editing = false
	s.target = MaxFiles
	s.Prompt()
}

func (s *Shell) execute() {
	line := s.line.String()
	cmd, arg, err := s.line.Split()
	if err != nil {
		s.report(line, err)
		return
	}
	if cmd.String() == "" {
		return
	}

	c, ok := s.reg.resolve(cmd)
	if !ok {
		s.report(line, &Error{Op: "exec", Kind: kindCommand, Name: cmd.String(), Err: ErrCommandNotFound})
		return
	}
	if err := c.Run(s, arg.String()); err != nil {
		s.report(line, err)
		return
	}
	s.logf(line)
}

// report prints a recovered command error. State is left as the command found it.
func (s *Shell) report(line string, err error) {
	s.con.Write(err.Error() + "\n")

	var se *Error
	if errors.As(err, &se) && se.Op != "" {
		s.logf(line + ": " + se.Op + ": " + err.Error())
		return
	}
	s.logf(line + ": " + err.Error())
}

func (s *Shell) logf(line string) {
	if s.log == nil {
		return
	}
	s.log("shell: " + line)
}
