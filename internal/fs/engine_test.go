package fs

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(DefaultRootName)
	t.Cleanup(func() {
		assert.NoError(t, e.Check(), "filesystem inconsistent after test")
	})
	return e
}

func treeStrings(lines []TreeLine) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.String())
	}
	return out
}

func TestLsKeepsCreationOrder(t *testing.T) {
	e := setupTestEngine(t)

	names := []string{"zeta", "alpha.txt", "mid", "b.go", "a"}
	for i, name := range names {
		if i%2 == 0 {
			require.NoError(t, e.Mkdir(name))
		} else {
			require.NoError(t, e.Touch(name))
		}
	}

	assert.Equal(t, names, e.Ls())
	// a second listing yields the same sequence
	assert.Equal(t, names, e.Ls())
}

func TestLsEmpty(t *testing.T) {
	e := setupTestEngine(t)
	assert.Empty(t, e.Ls())
}

func TestMkdirDuplicate(t *testing.T) {
	e := setupTestEngine(t)

	require.NoError(t, e.Mkdir("docs"))
	err := e.Mkdir("docs")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, []string{"docs"}, e.Ls())

	var fsErr *Error
	require.True(t, errors.As(err, &fsErr))
	assert.Equal(t, OpMkdir, fsErr.Op)
	assert.Equal(t, "/docs", fsErr.Path)
}

func TestTouchDuplicateAcrossTypes(t *testing.T) {
	e := setupTestEngine(t)

	require.NoError(t, e.Mkdir("notes"))
	assert.ErrorIs(t, e.Touch("notes"), ErrDuplicateName)

	require.NoError(t, e.Touch("todo.md"))
	assert.ErrorIs(t, e.Mkdir("todo.md"), ErrDuplicateName)

	assert.Equal(t, []string{"notes", "todo.md"}, e.Ls())
}

func TestInvalidNames(t *testing.T) {
	e := setupTestEngine(t)

	for _, name := range []string{"", ".", "..", "a/b", "/"} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, e.Mkdir(name), ErrInvalidName)
			assert.ErrorIs(t, e.Touch(name), ErrInvalidName)
			assert.ErrorIs(t, e.Rm(name), ErrInvalidName)
		})
	}
	assert.Empty(t, e.Ls())
}

func TestNamesWithSpaces(t *testing.T) {
	e := setupTestEngine(t)

	require.NoError(t, e.Mkdir("My Documents"))
	require.NoError(t, e.Cd("My Documents"))
	assert.Equal(t, "/My Documents", e.Pwd())
}

func TestCdRoundTrip(t *testing.T) {
	e := setupTestEngine(t)

	require.NoError(t, e.Mkdir("a"))
	require.NoError(t, e.Cd("a"))
	require.NoError(t, e.Mkdir("b"))

	before := e.Current()
	require.NoError(t, e.Cd("b"))
	require.NoError(t, e.Cd(".."))
	assert.Equal(t, before.ID, e.Current().ID)
	assert.Equal(t, "/a", e.Pwd())
}

func TestPwdNested(t *testing.T) {
	e := setupTestEngine(t)

	assert.Equal(t, "/", e.Pwd())
	require.NoError(t, e.Mkdir("a"))
	require.NoError(t, e.Cd("a"))
	require.NoError(t, e.Mkdir("b"))
	require.NoError(t, e.Cd("b"))
	assert.Equal(t, "/a/b", e.Pwd())
}

func TestCdIntoFile(t *testing.T) {
	e := setupTestEngine(t)

	require.NoError(t, e.Touch("readme.txt"))
	before := e.Tree()

	err := e.Cd("readme.txt")
	assert.ErrorIs(t, err, ErrNotADirectory)
	assert.Equal(t, "/", e.Pwd())
	assert.Equal(t, before, e.Tree())
	assert.Equal(t, []string{"readme.txt"}, e.Ls())
}

func TestCdParentAtRoot(t *testing.T) {
	e := setupTestEngine(t)

	err := e.Cd("..")
	assert.ErrorIs(t, err, ErrAlreadyAtRoot)
	assert.True(t, IsInformational(err))
	assert.Equal(t, "/", e.Pwd())
}

func TestCdMissing(t *testing.T) {
	e := setupTestEngine(t)

	require.NoError(t, e.Mkdir("a"))
	require.NoError(t, e.Cd("a"))

	err := e.Cd("NotExist")
	assert.ErrorIs(t, err, ErrNoSuchEntry)
	assert.Contains(t, err.Error(), "/a/NotExist")
	assert.Equal(t, "/a", e.Pwd())

	assert.ErrorIs(t, e.Cd(""), ErrInvalidName)
	assert.Equal(t, "/a", e.Pwd())
}

func TestCdToRoot(t *testing.T) {
	e := setupTestEngine(t)

	require.NoError(t, e.Mkdir("a"))
	require.NoError(t, e.Cd("a"))
	require.NoError(t, e.Mkdir("b"))
	require.NoError(t, e.Cd("b"))

	require.NoError(t, e.Cd("/"))
	assert.Equal(t, "/", e.Pwd())

	require.NoError(t, e.Cd("a/b"))
	require.NoError(t, e.Cd(DefaultRootName))
	assert.Equal(t, "/", e.Pwd())
}

func TestCdSegments(t *testing.T) {
	e := setupTestEngine(t)

	require.NoError(t, e.Mkdir("a"))
	require.NoError(t, e.Cd("a"))
	require.NoError(t, e.Mkdir("b"))
	require.NoError(t, e.Touch("f.txt"))
	require.NoError(t, e.Cd("b"))
	require.NoError(t, e.Mkdir("c"))
	require.NoError(t, e.Cd("/"))

	tests := []struct {
		name    string
		from    string
		target  string
		want    string
		wantErr error
	}{
		{name: "relative", from: "/", target: "a/b/c", want: "/a/b/c"},
		{name: "absolute", from: "/a/b/c", target: "/a/b", want: "/a/b"},
		{name: "trailing slash", from: "/", target: "a/b/", want: "/a/b"},
		{name: "dot segments", from: "/", target: "./a/./b", want: "/a/b"},
		{name: "parent segments", from: "/a/b/c", target: "../..", want: "/a"},
		{name: "parent past root", from: "/a", target: "../../..", want: "/"},
		{name: "missing middle", from: "/", target: "a/x/c", want: "/", wantErr: ErrNoSuchEntry},
		{name: "file in the middle", from: "/a/b", target: "/a/f.txt/c", want: "/a/b", wantErr: ErrNotADirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, e.Cd(tt.from))
			err := e.Cd(tt.target)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, e.Pwd())
		})
	}
}

func TestRmSubtree(t *testing.T) {
	e := setupTestEngine(t)

	require.NoError(t, e.Mkdir("keep"))
	require.NoError(t, e.Mkdir("gone"))
	require.NoError(t, e.Cd("gone"))
	require.NoError(t, e.Touch("deep.txt"))
	require.NoError(t, e.Mkdir("inner"))
	require.NoError(t, e.Cd("inner"))
	require.NoError(t, e.Touch("deeper.md"))
	require.NoError(t, e.Cd("/"))

	require.NoError(t, e.Rm("gone"))

	rendered := strings.Join(treeStrings(e.Tree()), "\n")
	for _, name := range []string{"gone", "deep.txt", "inner", "deeper.md"} {
		assert.NotContains(t, rendered, name)
	}
	assert.Equal(t, []string{"keep"}, e.Ls())
	assert.Empty(t, e.Entries("/gone"))
	assert.Empty(t, e.Entries("/gone/inner"))

	_, err := e.Stat("/gone/inner/deeper.md")
	assert.ErrorIs(t, err, ErrNoSuchEntry)
}

func TestRmMissing(t *testing.T) {
	e := setupTestEngine(t)

	require.NoError(t, e.Touch("a.txt"))
	err := e.Rm("b.txt")
	assert.ErrorIs(t, err, ErrNoSuchEntry)
	assert.Equal(t, []string{"a.txt"}, e.Ls())
}

func TestRmThenRecreate(t *testing.T) {
	e := setupTestEngine(t)

	require.NoError(t, e.Mkdir("tmp"))
	require.NoError(t, e.Rm("tmp"))
	require.NoError(t, e.Touch("tmp"))

	entry, err := e.Stat("/tmp")
	require.NoError(t, err)
	assert.Equal(t, TypeFile, entry.Type)
}

func TestTree(t *testing.T) {
	e := setupTestEngine(t)

	require.NoError(t, e.Mkdir("Documents"))
	require.NoError(t, e.Mkdir("Downloads"))
	require.NoError(t, e.Touch("readme.txt"))
	require.NoError(t, e.Cd("Documents"))
	require.NoError(t, e.Touch("report.docx"))
	require.NoError(t, e.Mkdir("Photos"))

	want := []string{
		"root/",
		"  Documents/",
		"    report.docx",
		"    Photos/",
		"  Downloads/",
		"  readme.txt",
	}
	assert.Equal(t, want, treeStrings(e.Tree()))

	lines := e.Tree()
	assert.Equal(t, KindDocument, lines[2].Kind)
	assert.Equal(t, TypeDirectory, lines[3].Type)
}

func TestEntriesFromRegistry(t *testing.T) {
	e := setupTestEngine(t)

	require.NoError(t, e.Mkdir("src"))
	require.NoError(t, e.Touch("main.go"))
	require.NoError(t, e.Cd("src"))
	require.NoError(t, e.Touch("lib.go"))

	root := e.Entries("/")
	require.Len(t, root, 2)
	assert.Equal(t, "src", root[0].Name)
	assert.Equal(t, "main.go", root[1].Name)
	assert.Equal(t, KindSource, root[1].Kind)

	src := e.Entries("/src")
	require.Len(t, src, 1)
	assert.Equal(t, "/src/lib.go", src[0].FullPath)
}

func TestStat(t *testing.T) {
	e := setupTestEngine(t)

	require.NoError(t, e.Mkdir("a"))
	require.NoError(t, e.Cd("a"))
	require.NoError(t, e.Touch("photo.png"))

	root, err := e.Stat("/")
	require.NoError(t, err)
	assert.Equal(t, DefaultRootName, root.Name)
	assert.Equal(t, 1, root.Children)

	dir, err := e.Stat("/a")
	require.NoError(t, err)
	assert.True(t, dir.IsDir())
	assert.Equal(t, "/", dir.Path)
	assert.Equal(t, 1, dir.Children)

	file, err := e.Stat("/a/photo.png")
	require.NoError(t, err)
	assert.Equal(t, KindImage, file.Kind)
	assert.Equal(t, "/a", file.Path)
}

func TestAtOperations(t *testing.T) {
	e := setupTestEngine(t)

	_, err := e.MkdirAt("/", "srv")
	require.NoError(t, err)
	entry, err := e.MkdirAt("/srv", "www")
	require.NoError(t, err)
	assert.Equal(t, "/srv/www", entry.FullPath)

	file, err := e.TouchAt("/srv/www", "index.html")
	require.NoError(t, err)
	assert.Equal(t, "/srv/www/index.html", file.FullPath)

	_, err = e.TouchAt("/srv/www/index.html", "x")
	assert.ErrorIs(t, err, ErrNotADirectory)

	_, err = e.MkdirAt("/missing", "x")
	assert.ErrorIs(t, err, ErrNoSuchEntry)

	entries, err := e.ListAt("/srv")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "www", entries[0].Name)

	// the current directory is still the root
	assert.Equal(t, "/", e.Pwd())

	require.NoError(t, e.RmAt("/srv", "www"))
	entries, err = e.ListAt("/srv")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRmAtRefusesCurrentDirectory(t *testing.T) {
	e := setupTestEngine(t)

	require.NoError(t, e.Mkdir("a"))
	require.NoError(t, e.Cd("a"))
	require.NoError(t, e.Mkdir("b"))
	require.NoError(t, e.Cd("b"))

	assert.ErrorIs(t, e.RmAt("/", "a"), ErrInUse)
	assert.ErrorIs(t, e.RmAt("/a", "b"), ErrInUse)
	assert.Equal(t, "/a/b", e.Pwd())
}

func TestRootName(t *testing.T) {
	e := NewEngine("home")
	assert.Equal(t, "home", e.RootName())
	assert.Equal(t, "/", e.Pwd())

	require.NoError(t, e.Mkdir("user"))
	require.NoError(t, e.Cd("user"))
	require.NoError(t, e.Cd("home"))
	assert.Equal(t, "/", e.Pwd())

	assert.Equal(t, DefaultRootName, NewEngine("").RootName())
	assert.Equal(t, DefaultRootName, NewEngine("a/b").RootName())
}

func TestErrorMessages(t *testing.T) {
	e := setupTestEngine(t)

	assert.EqualError(t, e.Mkdir(""), "mkdir: invalid name")
	require.NoError(t, e.Touch("x"))
	assert.EqualError(t, e.Touch("x"), "touch /x: name already exists")
	assert.EqualError(t, e.Cd("x"), "cd /x: not a directory")
	assert.EqualError(t, e.Rm("y"), "rm /y: no such file or directory")
}
