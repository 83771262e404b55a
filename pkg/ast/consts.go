package ast

const (
	// DefaultSeparator is placed between key and value of entries created in memory.
	DefaultSeparator = " = "

	// DefaultCommentMarker starts comments created in memory.
	DefaultCommentMarker = "# "

	// LF is the default line ending for new nodes.
	LF = "\n"

	// CRLF is kept for files that use DOS line endings.
	CRLF = "\r\n"
)
