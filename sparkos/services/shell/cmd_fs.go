package shell

func registerFolderCommands(r *registry) error {
	for _, cmd := range []command{
		{Name: "curdir", Usage: "curdir", Desc: "Print the current folder path.", Run: cmdCurdir},
		{Name: "mkdir", Usage: "mkdir <name>", Desc: "Create a folder here.", Run: cmdMkdir},
		{Name: "deldir", Usage: "deldir <name>", Desc: "Delete an empty folder.", Run: cmdDeldir},
		{Name: "cd", Usage: "cd <name|.>", Desc: "Enter a folder, or . for the parent.", Run: cmdCd},
		{Name: "dirtree", Usage: "dirtree", Desc: "Print the folders below this one.", Run: cmdDirtree},
	} {
		if err := r.register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func cmdCurdir(s *Shell, _ string) error {
	if s.cwd == Root {
		s.con.Write("/\n")
		return nil
	}
	s.ns.PrintPath(s.con, s.cwd)
	s.con.Write("\n")
	return nil
}

func cmdMkdir(s *Shell, arg string) error {
	_, err := s.ns.CreateChild(s.cwd, arg)
	return err
}

func cmdDeldir(s *Shell, arg string) error {
	return s.ns.DeleteChild(s.cwd, arg)
}

func cmdCd(s *Shell, arg string) error {
	next, err := s.ns.ChangeDirectory(s.cwd, arg)
	if err != nil {
		return err
	}
	s.cwd = next
	return nil
}

func cmdDirtree(s *Shell, _ string) error {
	s.ns.PrintTree(s.con, s.cwd, 0)
	return nil
}
