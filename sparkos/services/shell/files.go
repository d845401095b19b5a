package shell

import "unios/sparkos/console"

// CreateFile attaches an empty file called name to dir and returns its slot.
func (ns *Namespace) CreateFile(dir int, name string) (int, error) {
	n, err := makeName(name)
	if err != nil {
		return MaxFiles, fileErr("mkfile", name, err)
	}
	if _, err := ns.FindFile(dir, name); err == nil {
		return MaxFiles, fileErr("mkfile", name, ErrAlreadyExists)
	}

	d := ns.dirs.get(dir)
	entry := -1
	for i, f := range d.Files {
		if f == MaxFiles {
			entry = i
			break
		}
	}
	if entry < 0 {
		return MaxFiles, fileErr("mkfile", name, ErrArenaExhausted)
	}

	slot, err := ns.files.alloc()
	if err != nil {
		return MaxFiles, fileErr("mkfile", name, err)
	}
	f := &ns.files.slots[slot]
	f.Name = n
	f.Dir = dir

	d.Files[entry] = slot
	return slot, nil
}

// FindFile returns the slot of the file called name in dir.
func (ns *Namespace) FindFile(dir int, name string) (int, error) {
	d := ns.dirs.get(dir)
	for _, slot := range d.Files {
		if slot == MaxFiles {
			continue
		}
		f := ns.files.get(slot)
		if f.Dir != dir {
			panic("shell: file attached to the wrong folder")
		}
		if f.Name.matches(name) {
			return slot, nil
		}
	}
	return MaxFiles, fileErr("find", name, ErrNotFound)
}

// DeleteFile frees the file called name and detaches it from dir.
func (ns *Namespace) DeleteFile(dir int, name string) error {
	slot, err := ns.FindFile(dir, name)
	if err != nil {
		return fileErr("delfile", name, ErrNotFound)
	}

	d := ns.dirs.get(dir)
	for i, f := range d.Files {
		if f == slot {
			d.Files[i] = MaxFiles
			break
		}
	}
	ns.files.free(slot)
	return nil
}

// ListFiles writes the names of the files in dir, space separated, in slot order.
// It returns how many names were written.
func (ns *Namespace) ListFiles(w stringWriter, dir int) int {
	d := ns.dirs.get(dir)
	n := 0
	for _, slot := range d.Files {
		if slot == MaxFiles {
			continue
		}
		if n > 0 {
			w.Write(" ")
		}
		w.Write(ns.files.get(slot).Name.String())
		n++
	}
	return n
}

// text returns the meaningful part of the file content: Lines full rows.
func (f *File) text() []byte {
	lines := f.Lines
	if lines > console.Height {
		lines = console.Height
	}
	if lines < 0 {
		lines = 0
	}
	return f.Content[:lines*console.Width]
}
