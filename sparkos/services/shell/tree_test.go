package shell

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

type recorder struct {
	strings.Builder
}

func (r *recorder) Write(s string) { r.WriteString(s) }

func TestCreateChildResolves(t *testing.T) {
	ns := NewNamespace()

	slot, err := ns.CreateChild(Root, "docs")
	if err != nil {
		t.Fatalf("CreateChild: %v", err)
	}
	got, err := ns.ResolveChild(Root, "docs")
	if err != nil {
		t.Fatalf("ResolveChild: %v", err)
	}
	if got != slot {
		t.Fatalf("ResolveChild=%d, want %d", got, slot)
	}
	if p := ns.Dir(slot).Parent; p != Root {
		t.Fatalf("parent=%d, want %d", p, Root)
	}
	if n := ns.Dir(Root).NumChildren; n != 1 {
		t.Fatalf("root children=%d, want 1", n)
	}
}

func TestCreateChildErrors(t *testing.T) {
	ns := NewNamespace()
	if _, err := ns.CreateChild(Root, "docs"); err != nil {
		t.Fatalf("CreateChild: %v", err)
	}

	tcs := []struct {
		name string
		in   string
		want error
	}{
		{name: "duplicate", in: "docs", want: ErrAlreadyExists},
		{name: "too long", in: "abcdefghijk", want: ErrNameTooLong},
		{name: "empty", in: "", want: ErrNameEmpty},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			before := ns.LiveDirs()
			_, err := ns.CreateChild(Root, tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("CreateChild(%q) err=%v, want %v", tc.in, err, tc.want)
			}
			if after := ns.LiveDirs(); after != before {
				t.Fatalf("live dirs=%d after failed create, want %d", after, before)
			}
		})
	}
}

func TestNameAtCapacity(t *testing.T) {
	ns := NewNamespace()
	if _, err := ns.CreateChild(Root, "abcdefghij"); err != nil {
		t.Fatalf("CreateChild with %d byte name: %v", NameCap, err)
	}
	if _, err := ns.ResolveChild(Root, "abcdefghij"); err != nil {
		t.Fatalf("ResolveChild: %v", err)
	}
	if _, err := ns.ResolveChild(Root, "abcdefghijk"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ResolveChild with overlong name err=%v, want ErrNotFound", err)
	}
}

func TestDeleteChildNotEmpty(t *testing.T) {
	ns := NewNamespace()
	a, _ := ns.CreateChild(Root, "a")
	if _, err := ns.CreateChild(a, "b"); err != nil {
		t.Fatalf("CreateChild: %v", err)
	}

	if err := ns.DeleteChild(Root, "a"); !errors.Is(err, ErrNotEmpty) {
		t.Fatalf("DeleteChild err=%v, want ErrNotEmpty", err)
	}
	if err := ns.DeleteChild(a, "b"); err != nil {
		t.Fatalf("DeleteChild(b): %v", err)
	}
	if err := ns.DeleteChild(Root, "a"); err != nil {
		t.Fatalf("DeleteChild(a): %v", err)
	}
	if n := ns.LiveDirs(); n != 1 {
		t.Fatalf("live dirs=%d, want 1", n)
	}
	if err := ns.DeleteChild(Root, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second DeleteChild err=%v, want ErrNotFound", err)
	}
}

func TestSlotReuse(t *testing.T) {
	ns := NewNamespace()
	a, _ := ns.CreateChild(Root, "a")
	if _, err := ns.CreateChild(Root, "b"); err != nil {
		t.Fatalf("CreateChild: %v", err)
	}
	if err := ns.DeleteChild(Root, "a"); err != nil {
		t.Fatalf("DeleteChild: %v", err)
	}

	c, err := ns.CreateChild(Root, "c")
	if err != nil {
		t.Fatalf("CreateChild: %v", err)
	}
	if c != a {
		t.Fatalf("slot=%d, want reused slot %d", c, a)
	}
}

func TestChildCapacity(t *testing.T) {
	ns := NewNamespace()
	for i := 0; i < MaxChildren; i++ {
		if _, err := ns.CreateChild(Root, fmt.Sprintf("d%d", i)); err != nil {
			t.Fatalf("CreateChild #%d: %v", i, err)
		}
	}
	if _, err := ns.CreateChild(Root, "extra"); !errors.Is(err, ErrArenaExhausted) {
		t.Fatalf("CreateChild past %d children err=%v, want ErrArenaExhausted", MaxChildren, err)
	}
}

func TestDirArenaExhausted(t *testing.T) {
	ns := NewNamespace()
	cur := Root
	for i := 1; i < MaxDirs; i++ {
		next, err := ns.CreateChild(cur, fmt.Sprintf("d%d", i))
		if err != nil {
			t.Fatalf("CreateChild #%d: %v", i, err)
		}
		cur = next
	}
	if n := ns.LiveDirs(); n != MaxDirs {
		t.Fatalf("live dirs=%d, want %d", n, MaxDirs)
	}
	if _, err := ns.CreateChild(cur, "last"); !errors.Is(err, ErrArenaExhausted) {
		t.Fatalf("CreateChild err=%v, want ErrArenaExhausted", err)
	}
}

func TestChangeDirectory(t *testing.T) {
	ns := NewNamespace()
	a, _ := ns.CreateChild(Root, "a")

	tcs := []struct {
		name  string
		from  int
		token string
		want  int
		err   error
	}{
		{name: "child", from: Root, token: "a", want: a},
		{name: "dot", from: a, token: ".", want: Root},
		{name: "dotdot", from: a, token: "..", want: Root},
		{name: "root parent", from: Root, token: ".", want: Root},
		{name: "missing", from: Root, token: "nope", want: Root, err: ErrNotFound},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ns.ChangeDirectory(tc.from, tc.token)
			if !errors.Is(err, tc.err) {
				t.Fatalf("err=%v, want %v", err, tc.err)
			}
			if got != tc.want {
				t.Fatalf("slot=%d, want %d", got, tc.want)
			}
		})
	}
}

func TestPrintPathAndTree(t *testing.T) {
	ns := NewNamespace()
	a, _ := ns.CreateChild(Root, "a")
	b, _ := ns.CreateChild(a, "b")
	if _, err := ns.CreateChild(Root, "c"); err != nil {
		t.Fatalf("CreateChild: %v", err)
	}

	var path recorder
	ns.PrintPath(&path, b)
	if got := path.String(); got != "/a/b" {
		t.Fatalf("path=%q, want %q", got, "/a/b")
	}

	var root recorder
	ns.PrintPath(&root, Root)
	if got := root.String(); got != "" {
		t.Fatalf("root path=%q, want empty", got)
	}

	var tree recorder
	ns.PrintTree(&tree, Root, 0)
	want := "/a\n    /b\n/c\n"
	if got := tree.String(); got != want {
		t.Fatalf("tree=%q, want %q", got, want)
	}
}

func TestDanglingReferencePanics(t *testing.T) {
	ns := NewNamespace()
	defer func() {
		if recover() == nil {
			t.Fatalf("Dir on a free slot did not panic")
		}
	}()
	ns.Dir(5)
}

func TestParentCyclePanics(t *testing.T) {
	tcs := []struct {
		name string
		link func(ns *Namespace, a, b int)
		walk func(ns *Namespace, w stringWriter, a int)
	}{
		{
			name: "self parent",
			link: func(ns *Namespace, a, _ int) { ns.Dir(a).Parent = a },
			walk: func(ns *Namespace, w stringWriter, a int) { ns.PrintPath(w, a) },
		},
		{
			name: "ancestor parent",
			link: func(ns *Namespace, a, b int) { ns.Dir(a).Parent = b },
			walk: func(ns *Namespace, w stringWriter, a int) { ns.PrintPath(w, a) },
		},
		{
			name: "descendant child",
			link: func(ns *Namespace, a, b int) { ns.Dir(b).Children[0] = a },
			walk: func(ns *Namespace, w stringWriter, _ int) { ns.PrintTree(w, Root, 0) },
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			ns := NewNamespace()
			a, _ := ns.CreateChild(Root, "a")
			b, _ := ns.CreateChild(a, "b")
			tc.link(ns, a, b)

			defer func() {
				if recover() == nil {
					t.Fatal("walking a folder cycle did not panic")
				}
			}()
			var w recorder
			tc.walk(ns, &w, a)
		})
	}
}

func TestFiles(t *testing.T) {
	ns := NewNamespace()
	f, err := ns.CreateFile(Root, "notes")
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if got, err := ns.FindFile(Root, "notes"); err != nil || got != f {
		t.Fatalf("FindFile=(%d,%v), want (%d,nil)", got, err, f)
	}
	if _, err := ns.CreateFile(Root, "notes"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate CreateFile err=%v, want ErrAlreadyExists", err)
	}

	for i := 1; i < MaxDirFiles; i++ {
		if _, err := ns.CreateFile(Root, fmt.Sprintf("f%d", i)); err != nil {
			t.Fatalf("CreateFile #%d: %v", i, err)
		}
	}
	if _, err := ns.CreateFile(Root, "extra"); !errors.Is(err, ErrArenaExhausted) {
		t.Fatalf("CreateFile past %d files err=%v, want ErrArenaExhausted", MaxDirFiles, err)
	}

	var ls recorder
	if n := ns.ListFiles(&ls, Root); n != MaxDirFiles {
		t.Fatalf("ListFiles=%d, want %d", n, MaxDirFiles)
	}
	if got, want := ls.String(), "notes f1 f2 f3 f4"; got != want {
		t.Fatalf("ls=%q, want %q", got, want)
	}

	if err := ns.DeleteFile(Root, "notes"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := ns.FindFile(Root, "notes"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindFile after delete err=%v, want ErrNotFound", err)
	}
	if n := ns.LiveFiles(); n != MaxDirFiles-1 {
		t.Fatalf("live files=%d, want %d", n, MaxDirFiles-1)
	}
}

func TestDeleteChildFreesFiles(t *testing.T) {
	ns := NewNamespace()
	a, _ := ns.CreateChild(Root, "a")
	if _, err := ns.CreateFile(a, "f"); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if err := ns.DeleteChild(Root, "a"); err != nil {
		t.Fatalf("DeleteChild: %v", err)
	}
	if n := ns.LiveFiles(); n != 0 {
		t.Fatalf("live files=%d after deleting their folder, want 0", n)
	}
}
