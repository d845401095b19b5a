// Command unish drives the shell from a script and prints the final console.
//
// Script bytes are keystrokes: '\n' is Enter, '\t' Tab (ends file editing),
// DEL or BS Backspace, ESC [ A..D the arrows.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"unios/sparkos/console"
	"unios/sparkos/services/shell"
)

func main() {
	var scriptPath string
	var align string
	var verbose bool
	flag.StringVar(&scriptPath, "script", "", "Keystroke script (default stdin).")
	flag.StringVar(&align, "align", "left", "Console alignment: left, right or center.")
	flag.BoolVar(&verbose, "v", false, "Log executed commands to stderr.")
	flag.Parse()

	a, err := parseAlign(align)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	in := io.Reader(os.Stdin)
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	var logw io.Writer
	if verbose {
		logw = os.Stderr
	}
	if err := run(in, os.Stdout, logw, a); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func parseAlign(s string) (console.Alignment, error) {
	for _, a := range []console.Alignment{console.AlignLeft, console.AlignRight, console.AlignCenter} {
		if a.String() == s {
			return a, nil
		}
	}
	return console.AlignLeft, fmt.Errorf("unknown alignment %q", s)
}

func run(in io.Reader, out io.Writer, logw io.Writer, align console.Alignment) error {
	scr := console.New(align)

	var logf func(string)
	if logw != nil {
		logf = func(line string) { fmt.Fprintln(logw, line) }
	}
	sh, err := shell.New(scr, logf)
	if err != nil {
		return err
	}
	sh.Prompt()

	var dec shell.KeyDecoder
	buf := make([]byte, 256)
	for {
		n, err := in.Read(buf)
		dec.Feed(buf[:n], sh.HandleKey)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
	}

	return dumpScreen(out, scr)
}

// dumpScreen writes the grid without trailing blanks or trailing empty rows.
func dumpScreen(out io.Writer, scr *console.Screen) error {
	rows := make([]string, console.Height)
	last := -1
	for r := range rows {
		rows[r] = strings.TrimRight(scr.Row(r), " ")
		if rows[r] != "" {
			last = r
		}
	}

	w := bufio.NewWriter(out)
	for _, row := range rows[:last+1] {
		if _, err := w.WriteString(row + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
