package lens

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/sysctlkit/pkg/ast"
	"github.com/joshuapare/sysctlkit/pkg/types"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single entry", "net.ipv4.ip_forward = 0\n"},
		{"tight separator", "vm.swappiness=10\n"},
		{"tabs and odd spacing", "\tkernel.printk\t =  4 4 1 7  \n"},
		{"comments and blanks", "# Kernel sysctl configuration\n\n;alt comment\n#\n   \nkernel.panic = 10\n"},
		{"indented comment", "   #  spaced   \n"},
		{"no trailing newline", "a = 1\nb = 2"},
		{"crlf", "a = 1\r\n# c\r\n\r\n"},
		{"ignore prefix", "-net.ipv6.conf.all.disable_ipv6 = 1\n"},
		{"empty value", "kernel.domainname =\n"},
		{"slash keys", "net/ipv4/conf/eth0.100/rp_filter = 1\n"},
		{"value with hash", "kernel.core_pattern = |/bin/dump %p #x\n"},
		{"utf8 bom", "\xEF\xBB\xBFa = 1\n"},
		{"lone cr at end", "a = 1\r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			require.False(t, tree.Dirty())
			require.Equal(t, tt.input, string(Render(tree)))
		})
	}
}

func TestRoundTripUTF16(t *testing.T) {
	le := []byte{0xFF, 0xFE, 'a', 0, ' ', 0, '=', 0, ' ', 0, '1', 0, '\n', 0}
	tree, err := Parse(le)
	require.NoError(t, err)
	require.Equal(t, EncodingUTF16LE, tree.Encoding)
	require.Equal(t, "1", tree.First(ast.EntryNamed("a")).Value)
	require.Equal(t, le, Render(tree))

	be := []byte{0xFE, 0xFF, 0, 'a', 0, '=', 0, '2', 0, '\n'}
	tree, err = Parse(be)
	require.NoError(t, err)
	require.Equal(t, EncodingUTF16BE, tree.Encoding)
	require.Equal(t, "2", tree.First(ast.EntryNamed("a")).Value)
	require.Equal(t, be, Render(tree))
}

func TestParseNodes(t *testing.T) {
	tree, err := Parse([]byte("# net.foo: disabled net.foo=1\n\n  kernel.printk = 4 4 1 7 \n-vm.x=1\n"))
	require.NoError(t, err)
	require.Equal(t, 4, tree.Len())

	c := tree.At(0)
	require.Equal(t, ast.KindComment, c.Kind)
	require.Equal(t, "net.foo: disabled net.foo=1", c.Text)
	require.Equal(t, "# ", c.Layout.Marker)

	require.Equal(t, ast.KindBlank, tree.At(1).Kind)

	e := tree.At(2)
	require.Equal(t, ast.KindEntry, e.Kind)
	require.Equal(t, "kernel.printk", e.Key)
	require.Equal(t, "4 4 1 7", e.Value)
	require.Equal(t, "  ", e.Layout.Indent)
	require.Equal(t, " = ", e.Layout.Sep)
	require.Equal(t, " ", e.Layout.Trailing)

	ignored := tree.At(3)
	require.Equal(t, "vm.x", ignored.Key)
	require.Equal(t, "-", ignored.Layout.Marker)
}

func TestSetKeepsLayout(t *testing.T) {
	tree, err := Parse([]byte("# header\n\tnet.ipv4.ip_forward\t=\t0  \nvm.swappiness = 60\n"))
	require.NoError(t, err)

	entry := tree.First(ast.EntryNamed("net.ipv4.ip_forward"))
	require.NoError(t, tree.Set(entry, "1"))
	require.Equal(t, "# header\n\tnet.ipv4.ip_forward\t=\t1  \nvm.swappiness = 60\n", string(Render(tree)))
}

func TestAppendUsesFileLineEnding(t *testing.T) {
	tree, err := Parse([]byte("a = 1\r\n"))
	require.NoError(t, err)
	tree.Append(ast.NewEntry("b", "2"))
	require.Equal(t, "a = 1\r\nb = 2\r\n", string(Render(tree)))
}

func TestAppendAfterTrailingCR(t *testing.T) {
	tree, err := Parse([]byte("a = 1\r"))
	require.NoError(t, err)
	tree.Append(ast.NewEntry("b", "2"))

	reparsed, err := Parse(Render(tree))
	require.NoError(t, err)
	require.Equal(t, 2, reparsed.Len())
	require.Equal(t, "1", reparsed.First(ast.EntryNamed("a")).Value)
	require.Equal(t, "2", reparsed.First(ast.EntryNamed("b")).Value)
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"missing equals", "# ok\nnet.ipv4.ip_forward 1\n", "line 2"},
		{"bare word", "kernel.panic\n", "line 1"},
		{"empty key", "= 1\n", "missing key"},
		{"lone prefix", "-\n", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			require.True(t, errors.Is(err, types.ErrSyntax))
			require.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLookup(t *testing.T) {
	l, err := Lookup(SysctlID)
	require.NoError(t, err)
	require.Same(t, Sysctl, l)
	require.True(t, l.AllowMissing)

	tree, err := l.Parse([]byte("a = 1\n"))
	require.NoError(t, err)
	require.Equal(t, "a = 1\n", string(l.Render(tree)))

	_, err = Lookup("Hosts.lns")
	require.True(t, errors.Is(err, types.ErrNotFound))
}
