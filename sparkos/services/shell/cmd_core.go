package shell

import (
	"fmt"

	"unios/internal/buildinfo"
)

func registerCoreCommands(r *registry) error {
	for _, cmd := range []command{
		{Name: "help", Usage: "help", Desc: "Show available commands.", Run: cmdHelp},
		{Name: "echo", Usage: "echo [text]", Desc: "Print text.", Run: cmdEcho},
		{Name: "clear", Usage: "clear", Desc: "Clear the console.", Run: cmdClear},
	} {
		if err := r.register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func cmdHelp(s *Shell, _ string) error {
	s.con.Write(buildinfo.Banner() + "\n")
	for _, cmd := range s.reg.all() {
		s.con.Write(fmt.Sprintf("%-16s %s\n", cmd.Usage, cmd.Desc))
	}
	return nil
}

func cmdEcho(s *Shell, arg string) error {
	s.con.Write(arg + "\n")
	return nil
}

func cmdClear(s *Shell, _ string) error {
	s.con.Clear()
	return nil
}
