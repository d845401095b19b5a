package shell

func registerFileCommands(r *registry) error {
	for _, cmd := range []command{
		{Name: "ls", Usage: "ls", Desc: "List files in this folder.", Run: cmdLs},
		{Name: "mkfile", Usage: "mkfile <name>", Desc: "Create a file and start editing it.", Run: cmdMkfile},
		{Name: "delfile", Usage: "delfile <name>", Desc: "Delete a file.", Run: cmdDelfile},
		{Name: "readfile", Usage: "readfile <name>", Desc: "Show a file.", Run: cmdReadfile},
		{Name: "editfile", Usage: "editfile <name>", Desc: "Rewrite a file (tab saves).", Run: cmdEditfile},
	} {
		if err := r.register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func cmdLs(s *Shell, _ string) error {
	if s.ns.ListFiles(s.con, s.cwd) > 0 {
		s.con.Write("\n")
	}
	return nil
}

func cmdMkfile(s *Shell, arg string) error {
	slot, err := s.ns.CreateFile(s.cwd, arg)
	if err != nil {
		return err
	}
	s.startEditing(slot)
	return nil
}

func cmdDelfile(s *Shell, arg string) error {
	return s.ns.DeleteFile(s.cwd, arg)
}

func cmdReadfile(s *Shell, arg string) error {
	slot, err := s.ns.FindFile(s.cwd, arg)
	if err != nil {
		return fileErr("readfile", arg, ErrNotFound)
	}
	text := s.ns.File(slot).text()

	s.con.Clear()
	for _, b := range text {
		_ = s.con.WriteByte(b)
	}
	if len(text) > 0 {
		s.con.Write("\n")
	}
	return nil
}

func cmdEditfile(s *Shell, arg string) error {
	slot, err := s.ns.FindFile(s.cwd, arg)
	if err != nil {
		return fileErr("editfile", arg, ErrNotFound)
	}
	s.ns.File(slot).Lines = 0
	s.startEditing(slot)
	return nil
}
