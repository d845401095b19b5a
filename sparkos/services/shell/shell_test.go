package shell

import (
	"strings"
	"testing"

	"unios/sparkos/console"
)

type testShell struct {
	*Shell
	scr  *console.Screen
	logs []string
}

func newTestShell(t *testing.T) *testShell {
	t.Helper()
	return newAlignedShell(t, console.AlignLeft)
}

func newAlignedShell(t *testing.T, align console.Alignment) *testShell {
	t.Helper()
	ts := &testShell{scr: console.New(align)}
	sh, err := New(ts.scr, func(line string) { ts.logs = append(ts.logs, line) })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts.Shell = sh
	sh.Prompt()
	return ts
}

// typeKeys feeds s one key at a time: '\n' is Enter, '\t' Tab and '\b' Backspace.
func (ts *testShell) typeKeys(s string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			ts.HandleKey(Key{Code: KeyEnter})
		case '\t':
			ts.HandleKey(Key{Code: KeyTab})
		case '\b':
			ts.HandleKey(Key{Code: KeyBackspace})
		default:
			ts.HandleKey(CharKey(s[i]))
		}
	}
}

func (ts *testShell) row(r int) string {
	return strings.TrimRight(ts.scr.Row(r), " ")
}

func (ts *testShell) logged(substr string) bool {
	for _, l := range ts.logs {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestCommandErrorsPrint(t *testing.T) {
	tcs := []struct {
		name  string
		input string
		want  string
	}{
		{name: "cd missing", input: "cd nope\n", want: "folder not found: nope"},
		{name: "unknown command", input: "frob\n", want: "command not found: frob"},
		{name: "long command", input: "abcdefghijk\n", want: "command not found: abcdefghijk"},
		{name: "long name", input: "mkdir abcdefghijk\n", want: "folder name too long: abcdefghijk"},
		{name: "deldir missing", input: "deldir x\n", want: "folder not found: x"},
		{name: "readfile missing", input: "readfile x\n", want: "file not found: x"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestShell(t)
			ts.typeKeys(tc.input)
			if got := ts.row(1); got != tc.want {
				t.Fatalf("row 1=%q, want %q", got, tc.want)
			}
			if got := ts.row(2); got != ">" {
				t.Fatalf("row 2=%q, want prompt", got)
			}
			if ts.Cwd() != Root {
				t.Fatalf("cwd=%d, want root", ts.Cwd())
			}
			if !ts.logged(tc.want) {
				t.Fatalf("logs=%q, want an entry with %q", ts.logs, tc.want)
			}
		})
	}
}

func TestCurdir(t *testing.T) {
	ts := newTestShell(t)
	ts.typeKeys("curdir\n")
	if got := ts.row(1); got != "/" {
		t.Fatalf("root curdir=%q, want %q", got, "/")
	}

	ts = newTestShell(t)
	ts.typeKeys("mkdir a\ncd a\nmkdir b\ncd b\ncurdir\n")
	if got := ts.row(5); got != "/a/b" {
		t.Fatalf("curdir=%q, want %q", got, "/a/b")
	}

	ts.typeKeys("cd ..\ncd .\ncurdir\n")
	if got := ts.row(9); got != "/" {
		t.Fatalf("curdir after two parents=%q, want %q", got, "/")
	}
}

func TestDirtree(t *testing.T) {
	ts := newTestShell(t)
	ts.typeKeys("mkdir a\ncd a\nmkdir b\ncd .\nmkdir c\ndirtree\n")

	want := []string{"/a", "    /b", "/c", ">"}
	for i, w := range want {
		if got := ts.row(6 + i); got != w {
			t.Fatalf("row %d=%q, want %q", 6+i, got, w)
		}
	}
}

func TestFileRoundTrip(t *testing.T) {
	ts := newTestShell(t)
	ts.typeKeys("mkfile notes\n")
	if editing, _ := ts.Editing(); !editing {
		t.Fatalf("mkfile did not enter editing mode")
	}
	if got := ts.row(0); got != "" {
		t.Fatalf("row 0=%q after mkfile, want a cleared screen", got)
	}

	ts.typeKeys("hi\n\t")
	if editing, _ := ts.Editing(); editing {
		t.Fatalf("tab did not leave editing mode")
	}
	slot, err := ts.Namespace().FindFile(Root, "notes")
	if err != nil {
		t.Fatalf("FindFile: %v", err)
	}
	if n := ts.Namespace().File(slot).Lines; n != 1 {
		t.Fatalf("lines=%d, want 1", n)
	}

	ts.typeKeys("readfile notes\n")
	if got, want := ts.scr.Row(0), "hi"+strings.Repeat(" ", console.Width-2); got != want {
		t.Fatalf("row 0=%q, want %q", got, want)
	}
	if got := ts.row(1); got != ">" {
		t.Fatalf("row 1=%q, want prompt", got)
	}

	ts.typeKeys("ls\n")
	if got := ts.row(2); got != "notes" {
		t.Fatalf("ls=%q, want %q", got, "notes")
	}
}

func TestEditfileResetsLines(t *testing.T) {
	ts := newTestShell(t)
	ts.typeKeys("mkfile n\na\nb\n\t")
	slot, _ := ts.Namespace().FindFile(Root, "n")
	if got := ts.Namespace().File(slot).Lines; got != 2 {
		t.Fatalf("lines=%d, want 2", got)
	}

	ts.typeKeys("editfile n\nxy\b\t")
	if got := ts.Namespace().File(slot).Lines; got != 0 {
		t.Fatalf("lines=%d after editfile, want 0", got)
	}
	if got := ts.Namespace().File(slot).Content[0]; got != 'x' {
		t.Fatalf("content[0]=%q, want 'x'", got)
	}
	if got := ts.Namespace().File(slot).Content[1]; got != ' ' {
		t.Fatalf("content[1]=%q, want erased cell", got)
	}
}

func TestBackspace(t *testing.T) {
	ts := newTestShell(t)
	ts.typeKeys("\b\b")
	if got := ts.row(0); got != ">" {
		t.Fatalf("row 0=%q, backspace erased the prompt", got)
	}

	ts.typeKeys("echox\b hi\n")
	if got := ts.row(1); got != "hi" {
		t.Fatalf("echo=%q, want %q", got, "hi")
	}
}

func TestBackspaceAcrossWrappedLine(t *testing.T) {
	tcs := []struct {
		name    string
		typed   int
		erase   int
		wantLen int
		row0    string
		row1    string
	}{
		{name: "one glyph wrapped", typed: 79, erase: 3, wantLen: 76, row0: "> " + strings.Repeat("a", 76), row1: ""},
		{name: "full line", typed: LineCap, erase: 2, wantLen: LineCap - 2, row0: "> " + strings.Repeat("a", 78), row1: ""},
		{name: "stays on wrapped row", typed: LineCap, erase: 1, wantLen: LineCap - 1, row0: "> " + strings.Repeat("a", 78), row1: "a"},
		{name: "down to the prompt", typed: 79, erase: 85, wantLen: 0, row0: ">", row1: ""},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestShell(t)
			ts.typeKeys(strings.Repeat("a", tc.typed))
			ts.typeKeys(strings.Repeat("\b", tc.erase))

			if got := ts.line.Len(); got != tc.wantLen {
				t.Fatalf("line len=%d, want %d", got, tc.wantLen)
			}
			if got := ts.row(0); got != tc.row0 {
				t.Fatalf("row 0=%q, want %q", got, tc.row0)
			}
			if got := ts.row(1); got != tc.row1 {
				t.Fatalf("row 1=%q, want %q", got, tc.row1)
			}
		})
	}
}

func TestBackspaceAfterWrapRunsEditedLine(t *testing.T) {
	ts := newTestShell(t)
	ts.typeKeys("echo " + strings.Repeat("b", 74))
	ts.typeKeys(strings.Repeat("\b", 72) + "\n")
	if got := ts.row(1); got != "bb" {
		t.Fatalf("echo=%q, want %q", got, "bb")
	}
}

func TestBackspaceRightAligned(t *testing.T) {
	ts := newAlignedShell(t, console.AlignRight)
	ts.typeKeys("abc\b\b\b\b")
	if got := strings.TrimSpace(ts.scr.Row(0)); got != ">" {
		t.Fatalf("row 0=%q, want the prompt alone", got)
	}
	if got := ts.line.Len(); got != 0 {
		t.Fatalf("line len=%d, want 0", got)
	}

	ts.typeKeys(strings.Repeat("a", 79) + "\b\b\b")
	if got := ts.line.Len(); got != 76 {
		t.Fatalf("line len=%d after wrapping past the prompt, want 76", got)
	}
	if got := ts.scr.Row(0); !strings.HasSuffix(got, strings.Repeat("a", 76)) {
		t.Fatalf("row 0=%q, want the remaining line right-aligned", got)
	}

	ts.typeKeys("\n")
	if !ts.logged("command not found") {
		t.Fatalf("logs=%q, want the long word rejected", ts.logs)
	}
}

func TestLineFullDropsKeys(t *testing.T) {
	ts := newTestShell(t)
	ts.typeKeys(strings.Repeat("x", LineCap+1))
	if ts.line.Len() != LineCap {
		t.Fatalf("line len=%d, want %d", ts.line.Len(), LineCap)
	}
	if !ts.logged("buffer full") {
		t.Fatalf("logs=%q, want a buffer full entry", ts.logs)
	}
}

func TestTabAndArrowsIgnoredOnCommandLine(t *testing.T) {
	ts := newTestShell(t)
	ts.typeKeys("\t")
	ts.HandleKey(Key{Code: KeyUp})
	ts.HandleKey(Key{Code: KeyLeft})
	ts.typeKeys("ls\n")

	if editing, _ := ts.Editing(); editing {
		t.Fatalf("tab entered editing mode")
	}
	if got := ts.row(0); got != "> ls" {
		t.Fatalf("row 0=%q, want %q", got, "> ls")
	}
	if got := ts.row(1); got != ">" {
		t.Fatalf("row 1=%q, want prompt after empty ls", got)
	}
}

func TestDeldirFreesFiles(t *testing.T) {
	ts := newTestShell(t)
	ts.typeKeys("mkdir a\ncd a\nmkfile f\nx\t")
	ts.typeKeys("cd .\ndeldir a\n")
	if n := ts.Namespace().LiveFiles(); n != 0 {
		t.Fatalf("live files=%d, want 0", n)
	}
	if n := ts.Namespace().LiveDirs(); n != 1 {
		t.Fatalf("live dirs=%d, want 1", n)
	}
}

func TestHelpListsCommands(t *testing.T) {
	ts := newTestShell(t)
	ts.typeKeys("help\n")

	var screen strings.Builder
	for r := 0; r < console.Height; r++ {
		screen.WriteString(ts.row(r))
		screen.WriteByte('\n')
	}
	for _, name := range []string{"mkdir", "deldir", "curdir", "dirtree", "mkfile", "readfile", "editfile", "delfile", "ls", "cd"} {
		if !strings.Contains(screen.String(), name) {
			t.Fatalf("help output missing %q:\n%s", name, screen.String())
		}
	}
}
