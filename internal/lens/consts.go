package lens

const (
	// ============================================================================
	// Sysctl File Format Tokens
	// ============================================================================

	// CommentPrefix marks a comment line
	CommentPrefix = '#'

	// AltCommentPrefix is the alternate comment marker accepted by sysctl.d
	AltCommentPrefix = ';'

	// ValueAssignment separates keys from their values
	ValueAssignment = '='

	// IgnoreFailurePrefix on a key tells systemd-sysctl to ignore write failures
	IgnoreFailurePrefix = '-'

	// ============================================================================
	// Line Endings
	// ============================================================================

	// LF is the line feed character
	LF = '\n'

	// CR is the carriage return character
	CR = '\r'

	// ============================================================================
	// Encoding Names (stored on ast.Tree.Encoding)
	// ============================================================================

	// EncodingUTF8 is plain UTF-8 (or any ASCII-compatible bytes)
	EncodingUTF8 = ""

	// EncodingUTF8BOM is UTF-8 with a leading byte order mark
	EncodingUTF8BOM = "UTF-8-BOM"

	// EncodingUTF16LE is UTF-16 little-endian with BOM
	EncodingUTF16LE = "UTF-16LE"

	// EncodingUTF16BE is UTF-16 big-endian with BOM
	EncodingUTF16BE = "UTF-16BE"
)

var (
	// UTF8BOM is the byte order mark for UTF-8
	UTF8BOM = []byte{0xEF, 0xBB, 0xBF}

	// UTF16LEBOM is the byte order mark for UTF-16 little-endian
	UTF16LEBOM = []byte{0xFF, 0xFE}

	// UTF16BEBOM is the byte order mark for UTF-16 big-endian
	UTF16BEBOM = []byte{0xFE, 0xFF}
)
