package gui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// detailsStyle is the chroma style used for the details panel.
const detailsStyle = "monokai"

// colorizeJSON adds ANSI color codes to a JSON string for terminal display.
// Input chroma cannot tokenise is returned unchanged.
func colorizeJSON(jsonStr string) string {
	if jsonStr == "" {
		return ""
	}

	lexer := chroma.Coalesce(lexers.Get("json"))
	iterator, err := lexer.Tokenise(nil, jsonStr)
	if err != nil {
		return jsonStr
	}

	var out strings.Builder
	if err := formatters.TTY256.Format(&out, styles.Get(detailsStyle), iterator); err != nil {
		return jsonStr
	}
	return out.String()
}

// colorizeLine highlights a single line of indented JSON, as shown when the
// details panel is scrolled or filtered.
func colorizeLine(line string) string {
	return strings.TrimSuffix(colorizeJSON(line), "\n")
}
