package lens

import (
	"fmt"
	"strings"

	"github.com/joshuapare/sysctlkit/pkg/ast"
	"github.com/joshuapare/sysctlkit/pkg/types"
)

// Parse converts sysctl.conf bytes into a tree. Every byte of the input is
// captured in node payloads or layout, so Render(Parse(x)) == x.
func Parse(data []byte) (*ast.Tree, error) {
	text, enc, err := decodeInput(data)
	if err != nil {
		return nil, types.Errorf(types.ErrKindSyntax, err, "lens: decode input")
	}

	rest := string(text)
	nodes := make([]*ast.Node, 0, strings.Count(rest, "\n")+1)
	newline := ""
	for lineNo := 1; rest != ""; lineNo++ {
		var line, eol string
		if i := strings.IndexByte(rest, LF); i >= 0 {
			line, eol, rest = rest[:i], "\n", rest[i+1:]
		} else {
			line, rest = rest, ""
		}
		if strings.HasSuffix(line, "\r") {
			line = line[:len(line)-1]
			eol = "\r" + eol
		}
		if newline == "" && strings.HasSuffix(eol, "\n") {
			newline = eol
		}

		n, err := parseLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		n.Layout.EOL = eol
		nodes = append(nodes, n)
	}

	tree := ast.FromNodes(nodes)
	tree.Newline = newline
	tree.Encoding = enc
	return tree, nil
}

// parseLine classifies one line (without its ending) as blank, comment or entry.
func parseLine(line string, lineNo int) (*ast.Node, error) {
	body := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(body)]

	if body == "" {
		return &ast.Node{Kind: ast.KindBlank, Layout: ast.Layout{Indent: indent}}, nil
	}

	if body[0] == CommentPrefix || body[0] == AltCommentPrefix {
		afterMarker := strings.TrimLeft(body[1:], " \t")
		marker := body[:len(body)-len(afterMarker)]
		text := strings.TrimRight(afterMarker, " \t")
		return &ast.Node{
			Kind: ast.KindComment,
			Text: text,
			Layout: ast.Layout{
				Indent:   indent,
				Marker:   marker,
				Trailing: afterMarker[len(text):],
			},
		}, nil
	}

	return parseEntry(body, indent, lineNo)
}

func parseEntry(body, indent string, lineNo int) (*ast.Node, error) {
	prefix := ""
	if body[0] == IgnoreFailurePrefix {
		prefix, body = body[:1], body[1:]
	}

	keyEnd := strings.IndexAny(body, " \t=")
	if keyEnd < 0 {
		return nil, syntaxError(lineNo, "missing '=' after key %q", body)
	}
	key := body[:keyEnd]
	if key == "" {
		return nil, syntaxError(lineNo, "missing key before '='")
	}

	afterKey := body[keyEnd:]
	beforeEq := strings.TrimLeft(afterKey, " \t")
	if beforeEq == "" || beforeEq[0] != ValueAssignment {
		return nil, syntaxError(lineNo, "missing '=' after key %q", key)
	}
	valuePart := strings.TrimLeft(beforeEq[1:], " \t")
	sep := afterKey[:len(afterKey)-len(valuePart)]
	value := strings.TrimRight(valuePart, " \t")

	return &ast.Node{
		Kind:  ast.KindEntry,
		Key:   key,
		Value: value,
		Layout: ast.Layout{
			Indent:   indent,
			Marker:   prefix,
			Sep:      sep,
			Trailing: valuePart[len(value):],
		},
	}, nil
}

func syntaxError(lineNo int, format string, args ...any) error {
	return types.Errorf(types.ErrKindSyntax, nil, "lens: line %d: %s", lineNo, fmt.Sprintf(format, args...))
}
