package shell

import (
	"fmt"
	"strings"
)

// Root is the slot of the root folder. It is its own parent.
const Root = 0

const treeIndent = 4

type stringWriter interface {
	Write(s string)
}

// Namespace is the folder tree and the files attached to it.
// All storage is preallocated; nothing grows.
type Namespace struct {
	dirs  dirArena
	files fileArena
}

// NewNamespace returns a namespace holding only the root folder.
func NewNamespace() *Namespace {
	ns := &Namespace{}
	ns.dirs.init()
	ns.files.init()

	root, _ := ns.dirs.alloc()
	ns.dirs.slots[root].Parent = root
	return ns
}

// Dir returns the folder at slot i.
func (ns *Namespace) Dir(i int) *Dir { return ns.dirs.get(i) }

// File returns the file at slot i.
func (ns *Namespace) File(i int) *File { return ns.files.get(i) }

// LiveDirs returns the number of allocated folder slots, root included.
func (ns *Namespace) LiveDirs() int { return ns.dirs.live() }

// LiveFiles returns the number of allocated file slots.
func (ns *Namespace) LiveFiles() int { return ns.files.live() }

// ResolveChild returns the slot of the live child of dir called name.
func (ns *Namespace) ResolveChild(dir int, name string) (int, error) {
	d := ns.dirs.get(dir)
	for _, c := range d.Children {
		if c == MaxDirs {
			continue
		}
		if ns.dirs.get(c).Name.matches(name) {
			return c, nil
		}
	}
	return MaxDirs, folderErr("resolve", name, ErrNotFound)
}

// CreateChild adds a folder called name under dir and returns its slot.
func (ns *Namespace) CreateChild(dir int, name string) (int, error) {
	n, err := makeName(name)
	if err != nil {
		return MaxDirs, folderErr("mkdir", name, err)
	}
	if _, err := ns.ResolveChild(dir, name); err == nil {
		return MaxDirs, folderErr("mkdir", name, ErrAlreadyExists)
	}

	d := ns.dirs.get(dir)
	entry := -1
	for i, c := range d.Children {
		if c == MaxDirs {
			entry = i
			break
		}
	}
	if entry < 0 {
		return MaxDirs, folderErr("mkdir", name, ErrArenaExhausted)
	}

	slot, err := ns.dirs.alloc()
	if err != nil {
		return MaxDirs, folderErr("mkdir", name, err)
	}
	child := &ns.dirs.slots[slot]
	child.Name = n
	child.Parent = dir

	d.Children[entry] = slot
	d.NumChildren++
	return slot, nil
}

// DeleteChild removes the empty child folder called name from dir.
// Folders with children are refused; subtrees are emptied bottom-up.
func (ns *Namespace) DeleteChild(dir int, name string) error {
	slot, err := ns.ResolveChild(dir, name)
	if err != nil {
		return folderErr("deldir", name, ErrNotFound)
	}
	if ns.dirs.get(slot).NumChildren > 0 {
		return folderErr("deldir", name, ErrNotEmpty)
	}

	d := ns.dirs.get(dir)
	for i, c := range d.Children {
		if c == slot {
			d.Children[i] = MaxDirs
			d.NumChildren--
			break
		}
	}
	ns.dropFiles(slot)
	ns.dirs.free(slot)
	return nil
}

// dropFiles frees the files attached to dir so no file outlives its folder.
func (ns *Namespace) dropFiles(dir int) {
	d := ns.dirs.get(dir)
	for i, f := range d.Files {
		if f == MaxFiles {
			continue
		}
		ns.files.free(f)
		d.Files[i] = MaxFiles
	}
}

// ChangeDirectory resolves token relative to cur. "." (and "..") go to the
// parent; root stays at root. The returned slot is cur on error.
func (ns *Namespace) ChangeDirectory(cur int, token string) (int, error) {
	if token == "." || token == ".." {
		return ns.dirs.get(cur).Parent, nil
	}
	next, err := ns.ResolveChild(cur, token)
	if err != nil {
		return cur, folderErr("cd", token, ErrNotFound)
	}
	return next, nil
}

// PrintPath writes "/a/b" for dir, root first. Root itself writes nothing.
// A parent chain that never reaches root panics.
func (ns *Namespace) PrintPath(w stringWriter, dir int) {
	ns.printPath(w, dir, 0)
}

func (ns *Namespace) printPath(w stringWriter, dir, depth int) {
	if dir == Root {
		return
	}
	if depth >= MaxDirs {
		panic(fmt.Sprintf("shell: folder %d is its own ancestor", dir))
	}
	d := ns.dirs.get(dir)
	ns.printPath(w, d.Parent, depth+1)
	w.Write("/" + d.Name.String())
}

// PrintTree writes every live descendant of dir, pre-order, one per line,
// indented by depth.
func (ns *Namespace) PrintTree(w stringWriter, dir int, depth int) {
	if depth >= MaxDirs {
		panic(fmt.Sprintf("shell: folder %d is its own descendant", dir))
	}
	d := ns.dirs.get(dir)
	for _, c := range d.Children {
		if c == MaxDirs {
			continue
		}
		child := ns.dirs.get(c)
		w.Write(strings.Repeat(" ", depth*treeIndent) + "/" + child.Name.String() + "\n")
		ns.PrintTree(w, c, depth+1)
	}
}
