package rules

import "github.com/dshills/ninjalex/pkg/types"

// Line places a boundary immediately after every line feed. CRLF line
// endings work unchanged because the boundary follows the \n.
func Line(b0, b1, b2 byte) bool {
	_ = b0
	_ = b2
	return b1 == '\n'
}

// Ninja places a boundary after every line feed that is not escaped with
// '$', the ninja line continuation. "a $\n b" is one logical declaration.
// The lookahead byte is unused here; it exists so dialects that need to
// peek past the separator (for example to fold "\r\n" pairs) can do so.
func Ninja(b0, b1, b2 byte) bool {
	_ = b2
	return b1 == '\n' && b0 != '$'
}

var (
	_ types.SeparatorRule = Line
	_ types.SeparatorRule = Ninja
)
