package shell

import "fmt"

type cmdFunc func(s *Shell, arg string) error

type command struct {
	Name  string
	Usage string
	Desc  string
	Run   cmdFunc

	key CmdToken
}

// registry is the closed command table. Lookup compares the parsed command
// token byte for byte against each entry, once, in registration order.
type registry struct {
	cmds []command
}

func newRegistry() *registry {
	return &registry{}
}

func (r *registry) register(cmd command) error {
	if cmd.Name == "" {
		return fmt.Errorf("shell registry: empty command name")
	}
	if len(cmd.Name) > CmdCap {
		return fmt.Errorf("shell registry: %q longer than %d bytes", cmd.Name, CmdCap)
	}
	if cmd.Run == nil {
		return fmt.Errorf("shell registry: %q has no handler", cmd.Name)
	}
	copy(cmd.key[:], cmd.Name)
	if _, ok := r.resolve(cmd.key); ok {
		return fmt.Errorf("shell registry: duplicate command %q", cmd.Name)
	}
	r.cmds = append(r.cmds, cmd)
	return nil
}

func (r *registry) resolve(tok CmdToken) (command, bool) {
	for _, cmd := range r.cmds {
		if cmd.key == tok {
			return cmd, true
		}
	}
	return command{}, false
}

func (r *registry) all() []command {
	return r.cmds
}

func (s *Shell) initRegistry() error {
	r := newRegistry()

	for _, register := range []func(r *registry) error{
		registerCoreCommands,
		registerFolderCommands,
		registerFileCommands,
	} {
		if err := register(r); err != nil {
			return err
		}
	}

	s.reg = r
	return nil
}
