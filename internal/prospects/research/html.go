package research

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// extractText pulls visible text out of an HTML document, skipping script
// and style blocks and collapsing runs of whitespace.
func extractText(r io.Reader) string {
	tok := html.NewTokenizer(r)

	var b strings.Builder
	skipDepth := 0

	for {
		switch tok.Next() {
		case html.ErrorToken:
			return collapseWhitespace(b.String())
		case html.StartTagToken:
			name, _ := tok.TagName()
			if skippableTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tok.TagName()
			if skippableTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tok.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func skippableTag(name string) bool {
	switch name {
	case "script", "style", "noscript", "svg":
		return true
	}
	return false
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
