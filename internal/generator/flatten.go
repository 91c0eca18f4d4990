package generator

import (
	"strings"
	"unicode"

	"github.com/example/scriptbinds-gen/internal/doctree"
)

// Flatten collapses a documentation paragraph into plain text. Text runs are
// kept in document order, hyperlinks are replaced by their target URL and
// other inline markup by its text. Several paragraphs are joined by a blank
// line. Only the trailing whitespace of the result is removed.
func Flatten(v doctree.Value) string {
	switch t := v.(type) {
	case doctree.List:
		paras := make([]string, 0, len(t))
		for _, item := range t {
			if s := Flatten(item); s != "" {
				paras = append(paras, s)
			}
		}
		return strings.Join(paras, "\n\n")
	default:
		var sb strings.Builder
		writeFlat(&sb, v)
		return strings.TrimRightFunc(sb.String(), unicode.IsSpace)
	}
}

func writeFlat(sb *strings.Builder, v doctree.Value) {
	switch t := v.(type) {
	case doctree.Scalar:
		sb.WriteString(string(t))
	case *doctree.Node:
		if t == nil {
			return
		}
		if t.Name == "ulink" {
			if url, ok := t.Attr("url"); ok {
				sb.WriteString(url)
				return
			}
		}
		for _, c := range t.Content() {
			writeFlat(sb, c)
		}
	case doctree.List:
		for _, item := range t {
			writeFlat(sb, item)
		}
	}
}
