package shell

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrNameTooLong     = errors.New("name too long")
	ErrNameEmpty       = errors.New("name empty")
	ErrArenaExhausted  = errors.New("slots exhausted")
	ErrNotEmpty        = errors.New("not empty")
	ErrBufferFull      = errors.New("buffer full")
	ErrArgumentTooLong = errors.New("argument too long")
	ErrCommandNotFound = errors.New("not found")
)

// Subjects used in Error.Kind.
const (
	kindFolder  = "folder"
	kindFile    = "file"
	kindCommand = "command"
	kindLine    = "line"
)

// Error wraps a shell error with the operation and the name it was about.
// It prints as "<kind> <err>: <name>", e.g. "folder not found: docs".
type Error struct {
	Op   string // operation that failed, e.g. "mkdir"
	Kind string // folder, file, command, line
	Name string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Err.Error()
	if e.Kind != "" {
		msg = e.Kind + " " + msg
	}
	if e.Name == "" {
		return msg
	}
	return msg + ": " + e.Name
}

func (e *Error) Unwrap() error {
	return e.Err
}

func folderErr(op, name string, err error) *Error {
	return &Error{Op: op, Kind: kindFolder, Name: name, Err: err}
}

func fileErr(op, name string, err error) *Error {
	return &Error{Op: op, Kind: kindFile, Name: name, Err: err}
}
