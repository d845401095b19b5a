package shell

import (
	"fmt"

	"unios/sparkos/console"
)

const (
	// NameCap is the fixed capacity of folder and file names.
	NameCap = 10

	MaxDirs     = 100
	MaxFiles    = 10
	MaxChildren = 20
	MaxDirFiles = 5
)

// Name is a NUL-padded fixed-length name.
type Name [NameCap]byte

// makeName validates and packs s.
func makeName(s string) (Name, error) {
	var n Name
	if len(s) == 0 {
		return n, ErrNameEmpty
	}
	if len(s) > NameCap {
		return n, ErrNameTooLong
	}
	copy(n[:], s)
	return n, nil
}

// String returns the name without trailing NUL padding.
func (n Name) String() string {
	return string(n[:n.len()])
}

// Equal compares both names with their trailing NULs trimmed.
func (n Name) Equal(o Name) bool {
	return n.String() == o.String()
}

// matches reports whether s equals the name. s longer than NameCap never matches.
func (n Name) matches(s string) bool {
	if len(s) > NameCap {
		return false
	}
	return n.String() == s
}

func (n Name) len() int {
	i := NameCap
	for i > 0 && n[i-1] == 0 {
		i--
	}
	return i
}

// Dir is a folder record. A slot whose Index is MaxDirs is free.
type Dir struct {
	Index       int
	Name        Name
	Parent      int
	NumChildren int
	Children    [MaxChildren]int // MaxDirs marks an empty entry
	Files       [MaxDirFiles]int // MaxFiles marks an empty entry
}

func (d *Dir) live() bool { return d.Index != MaxDirs }

func (d *Dir) reset() {
	*d = Dir{Index: MaxDirs, Parent: MaxDirs}
	for i := range d.Children {
		d.Children[i] = MaxDirs
	}
	for i := range d.Files {
		d.Files[i] = MaxFiles
	}
}

// File is a file record. A slot whose Index is MaxFiles is free.
// Content mirrors the console grid; only the first Lines rows are meaningful.
type File struct {
	Index   int
	Name    Name
	Lines   int
	Dir     int
	Content [console.Cells]byte
}

func (f *File) live() bool { return f.Index != MaxFiles }

func (f *File) reset() {
	*f = File{Index: MaxFiles, Dir: MaxDirs}
}

type dirArena struct {
	slots [MaxDirs]Dir
}

func (a *dirArena) init() {
	for i := range a.slots {
		a.slots[i].reset()
	}
}

// alloc claims the lowest free slot.
func (a *dirArena) alloc() (int, error) {
	for i := range a.slots {
		if a.slots[i].live() {
			continue
		}
		a.slots[i].reset()
		a.slots[i].Index = i
		return i, nil
	}
	return MaxDirs, ErrArenaExhausted
}

// free returns a slot to the pool. Callers unlink it from its parent first.
func (a *dirArena) free(i int) {
	a.slots[i].reset()
}

func (a *dirArena) live() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].live() {
			n++
		}
	}
	return n
}

// get returns the live folder at slot i. A free or out-of-range slot is a
// broken reference and panics.
func (a *dirArena) get(i int) *Dir {
	if i < 0 || i >= MaxDirs || !a.slots[i].live() {
		panic(fmt.Sprintf("shell: dangling folder reference %d", i))
	}
	return &a.slots[i]
}

type fileArena struct {
	slots [MaxFiles]File
}

func (a *fileArena) init() {
	for i := range a.slots {
		a.slots[i].reset()
	}
}

func (a *fileArena) alloc() (int, error) {
	for i := range a.slots {
		if a.slots[i].live() {
			continue
		}
		a.slots[i].reset()
		a.slots[i].Index = i
		return i, nil
	}
	return MaxFiles, ErrArenaExhausted
}

func (a *fileArena) free(i int) {
	a.slots[i].reset()
}

func (a *fileArena) live() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].live() {
			n++
		}
	}
	return n
}

func (a *fileArena) get(i int) *File {
	if i < 0 || i >= MaxFiles || !a.slots[i].live() {
		panic(fmt.Sprintf("shell: dangling file reference %d", i))
	}
	return &a.slots[i]
}
