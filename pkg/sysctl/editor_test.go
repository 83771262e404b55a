package sysctl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/sysctlkit/internal/lens"
	"github.com/joshuapare/sysctlkit/pkg/types"
)

func parse(t *testing.T, src string) *Editor {
	t.Helper()
	tree, err := lens.Parse([]byte(src))
	require.NoError(t, err)
	return NewEditor(tree)
}

func render(e *Editor) string { return string(lens.Render(e.Tree())) }

func TestCreateAppends(t *testing.T) {
	e := parse(t, "")
	require.NoError(t, e.Create("kernel.panic", "10", "reboot after panic"))
	require.Equal(t, "# kernel.panic: reboot after panic\nkernel.panic = 10\n", render(e))
	require.True(t, e.Tree().Dirty())

	e = parse(t, "vm.swappiness=10")
	require.NoError(t, e.Create("kernel.panic", "10", ""))
	require.Equal(t, "vm.swappiness=10\nkernel.panic = 10\n", render(e))
}

func TestCreateExistingUpdatesInPlace(t *testing.T) {
	e := parse(t, "# kernel.panic: old\nkernel.panic = 5\nvm.a = 1\n")
	require.NoError(t, e.Create("kernel.panic", "10", "reboot"))
	require.Equal(t, "# kernel.panic: reboot\nkernel.panic = 10\nvm.a = 1\n", render(e))
	require.Len(t, e.Entries(), 2)

	// No comment given keeps the bound one.
	require.NoError(t, e.Create("kernel.panic", "20", ""))
	require.Equal(t, "# kernel.panic: reboot\nkernel.panic = 20\nvm.a = 1\n", render(e))

	e = parse(t, "vm.a = 1\n")
	require.NoError(t, e.Create("vm.a", "1", ""))
	require.False(t, e.Tree().Dirty())
}

func TestCreateIsReadBack(t *testing.T) {
	e := parse(t, "# tuning\nvm.swappiness = 10\n")
	require.NoError(t, e.Create("net.core.somaxconn", "4096", "listen backlog"))

	v, err := e.Read("net.core.somaxconn")
	require.NoError(t, err)
	require.Equal(t, "4096", v)
	require.Equal(t, "listen backlog", e.Comment("net.core.somaxconn"))

	// Survives a write and a fresh parse.
	again := parse(t, render(e))
	v, err = again.Read("net.core.somaxconn")
	require.NoError(t, err)
	require.Equal(t, "4096", v)
	require.Equal(t, "listen backlog", again.Comment("net.core.somaxconn"))
}

func TestCreateNextToDisabledMarker(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "marker with bound-comment prefix",
			src:  "# header\n#net.foo: disabled net.foo=1\nvm.x = 1\n",
			want: "# header\nnet.foo = 2\n#net.foo: disabled net.foo=1\nvm.x = 1\n",
		},
		{
			name: "commented directive",
			src:  "vm.x = 1\n# net.foo = 1\n# net.foo=3\n",
			want: "vm.x = 1\nnet.foo = 2\n# net.foo = 1\n# net.foo=3\n",
		},
		{
			name: "bare key",
			src:  ";net.foo\nvm.x = 1\n",
			want: "net.foo = 2\n;net.foo\nvm.x = 1\n",
		},
		{
			name: "longer keys are not markers",
			src:  "# net.foobar = 1\n# net.foo.bar = 1\n# net.foo_x = 1\n# xnet.foo = 1\n",
			want: "# net.foobar = 1\n# net.foo.bar = 1\n# net.foo_x = 1\n# xnet.foo = 1\nnet.foo = 2\n",
		},
		{
			name: "regexp metacharacters in key are literal",
			src:  "# netXfoo = 1\n",
			want: "# netXfoo = 1\nnet.foo = 2\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := parse(t, tt.src)
			require.NoError(t, e.Create("net.foo", "2", ""))
			require.Equal(t, tt.want, render(e))
		})
	}
}

func TestCreateWithCommentNextToMarker(t *testing.T) {
	e := parse(t, "# net.foo = 1\n")
	require.NoError(t, e.Create("net.foo", "2", "re-enabled"))
	require.Equal(t, "# net.foo: re-enabled\nnet.foo = 2\n# net.foo = 1\n", render(e))
	require.Equal(t, "re-enabled", e.Comment("net.foo"))
}

func TestSetValue(t *testing.T) {
	e := parse(t, "net.ipv4.ip_forward\t=  0 \n")
	created, err := e.SetValue("net.ipv4.ip_forward", "1")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, "net.ipv4.ip_forward\t=  1 \n", render(e))
}

func TestSetValueUnchangedStaysClean(t *testing.T) {
	e := parse(t, "a = 1\n")
	_, err := e.SetValue("a", "1")
	require.NoError(t, err)
	require.False(t, e.Tree().Dirty())
}

func TestSetValueDuplicates(t *testing.T) {
	e := parse(t, "a = 1\nb = 2\na=3\n")
	_, err := e.SetValue("a", "4")
	require.NoError(t, err)
	require.Equal(t, "a = 4\nb = 2\na=4\n", render(e))
}

func TestSetValueCreatesAbsent(t *testing.T) {
	e := parse(t, "# a = 0\nb = 2\n")
	created, err := e.SetValue("a", "1")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "a = 1\n# a = 0\nb = 2\n", render(e))
}

func TestReadMissing(t *testing.T) {
	e := parse(t, "# a = 1\n")
	require.False(t, e.Exists("a"))
	_, err := e.Read("a")
	require.True(t, errors.Is(err, types.ErrNotFound))
	require.Equal(t, "", e.Comment("a"))
}

func TestReadLastOccurrence(t *testing.T) {
	e := parse(t, "# a: first\na = 1\n# a: second\na = 2\n")
	v, err := e.Read("a")
	require.NoError(t, err)
	require.Equal(t, "2", v)
	require.Equal(t, "second", e.Comment("a"))
}

func TestCommentAdjacency(t *testing.T) {
	src := "# net.foo: stray\nvm.a = 1\n# unrelated\nnet.foo = 1\n"

	t.Run("read ignores non-adjacent and unprefixed comments", func(t *testing.T) {
		require.Equal(t, "", parse(t, src).Comment("net.foo"))
		require.Equal(t, "", parse(t, "# net.foo: x\n\nnet.foo = 1\n").Comment("net.foo"))
		require.Equal(t, "", parse(t, "# net.foobar: x\nnet.foo = 1\n").Comment("net.foo"))
		require.Equal(t, "", parse(t, "# net.foo: x\n").Comment("net.foo"))
	})

	t.Run("update inserts instead of touching neighbours", func(t *testing.T) {
		e := parse(t, src)
		require.NoError(t, e.SetComment("net.foo", "new"))
		require.Equal(t, "# net.foo: stray\nvm.a = 1\n# unrelated\n# net.foo: new\nnet.foo = 1\n", render(e))
	})

	t.Run("delete leaves non-adjacent comments", func(t *testing.T) {
		e := parse(t, src)
		require.Equal(t, 1, e.Delete("net.foo"))
		require.Equal(t, "# net.foo: stray\nvm.a = 1\n# unrelated\n", render(e))
	})

	t.Run("create leaves existing comments", func(t *testing.T) {
		e := parse(t, "# kernel.panic tuning below\nvm.a = 1\n")
		require.NoError(t, e.Create("kernel.panic", "10", "reboot"))
		require.Equal(t, "# kernel.panic tuning below\nvm.a = 1\n# kernel.panic: reboot\nkernel.panic = 10\n", render(e))
	})
}

func TestSetComment(t *testing.T) {
	e := parse(t, "#a: old text  \na = 1\n")

	require.NoError(t, e.SetComment("a", "new text"))
	require.Equal(t, "#a: new text  \na = 1\n", render(e), "marker and trailing layout are kept")
	require.Equal(t, "new text", e.Comment("a"))

	e.Tree().MarkClean()
	require.NoError(t, e.SetComment("a", "new text"))
	require.False(t, e.Tree().Dirty(), "same comment is not rewritten")

	require.NoError(t, e.SetComment("a", ""))
	require.Equal(t, "a = 1\n", render(e))
	require.Equal(t, "", e.Comment("a"))

	require.NoError(t, e.SetComment("a", ""), "clearing an absent comment is a no-op")

	err := e.SetComment("missing", "x")
	require.True(t, errors.Is(err, types.ErrNotFound))
}

func TestDelete(t *testing.T) {
	e := parse(t, "# top\n# a: one\na = 1\nb = 2\n# a: two\na = 3\n\nc = 4\n")
	require.Equal(t, 4, e.Delete("a"))
	require.False(t, e.Exists("a"))
	require.Empty(t, e.Tree().Match(commentFor("a")))
	require.Equal(t, "# top\nb = 2\n\nc = 4\n", render(e))

	e.Tree().MarkClean()
	require.Equal(t, 0, e.Delete("a"))
	require.False(t, e.Tree().Dirty())
}

func TestEntries(t *testing.T) {
	e := parse(t, "# header\n# b: second\nb = 2\n\na = 1\n# a: dup\na = 3\n")
	require.Equal(t, []types.Entry{
		{Name: "b", Value: "2", Comment: "second"},
		{Name: "a", Value: "1"},
		{Name: "a", Value: "3", Comment: "dup"},
	}, e.Entries())

	require.Empty(t, parse(t, "# only comments\n\n").Entries())
}

func TestValidate(t *testing.T) {
	e := parse(t, "")
	for _, key := range []string{"", "a b", "a=b", "#a", "-a", "a\nb"} {
		err := e.Create(key, "1", "")
		require.True(t, errors.Is(err, types.ErrSyntax), "key %q", key)
	}
	require.True(t, errors.Is(e.Create("a", "1\n2", ""), types.ErrSyntax))
	require.True(t, errors.Is(e.Create("a", "1", "two\nlines"), types.ErrSyntax))
	require.Equal(t, 0, e.Tree().Len())
}

func TestSameValue(t *testing.T) {
	require.True(t, SameValue("4096 16384 4194304", "4096\t16384\t4194304"))
	require.True(t, SameValue("1", "1"))
	require.False(t, SameValue("1", "0"))
	require.False(t, SameValue("", "0"))
}
