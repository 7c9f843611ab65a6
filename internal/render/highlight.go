package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

const (
	highlightFormatter = "terminal256"
	highlightStyle     = "dracula"
)

// HighlightCode renders a code segment with ANSI colors for the given
// language tag. Unknown or absent tags fall back to chroma's plaintext
// lexer; any highlighting failure falls back to the undecorated source.
func HighlightCode(source, language string) string {
	var b strings.Builder
	if err := quick.Highlight(&b, source, language, highlightFormatter, highlightStyle); err != nil {
		return source
	}
	return b.String()
}
