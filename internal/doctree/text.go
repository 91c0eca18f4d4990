package doctree

import "strings"

// Text returns the character data under v in document order, ignoring all
// markup. Attribute values are not included.
func Text(v Value) string {
	var sb strings.Builder
	writeText(&sb, v)
	return sb.String()
}

func writeText(sb *strings.Builder, v Value) {
	switch t := v.(type) {
	case Scalar:
		sb.WriteString(string(t))
	case *Node:
		if t == nil {
			return
		}
		for _, c := range t.content {
			writeText(sb, c)
		}
	case List:
		for _, item := range t {
			writeText(sb, item)
		}
	}
}
