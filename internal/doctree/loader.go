package doctree

import (
	"io"
	"strings"

	"github.com/beevik/etree"
	"gitlab.com/tozd/go/errors"
)

// ErrNoRoot is returned for documents without a root element.
var ErrNoRoot = errors.Base("document has no root element")

// LoadFile reads and converts the XML document at path.
func LoadFile(path string) (*Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	n, err := fromDocument(doc)
	if err != nil {
		return nil, errors.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// Parse reads and converts an XML document from r.
func Parse(r io.Reader) (*Node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.Errorf("parsing document: %w", err)
	}
	return fromDocument(doc)
}

// ParseString is Parse for an in-memory document.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

// fromDocument wraps the root element in an unnamed node so that callers
// address it by its element name, e.g. Lookup(doc, "doxygenindex", "compound").
func fromDocument(doc *etree.Document) (*Node, error) {
	root := doc.Root()
	if root == nil {
		return nil, errors.WithStack(ErrNoRoot)
	}
	top := NewNode("")
	v := convert(root)
	top.Add(root.Tag, v)
	top.AppendContent(v)
	return top, nil
}

func convert(el *etree.Element) Value {
	if len(el.Attr) == 0 && !hasChildElements(el) {
		var sb strings.Builder
		for _, tok := range el.Child {
			if cd, ok := tok.(*etree.CharData); ok {
				sb.WriteString(cd.Data)
			}
		}
		return Scalar(sb.String())
	}

	n := NewNode(el.Tag)
	for _, a := range el.Attr {
		n.Add("@"+a.Key, Scalar(a.Value))
	}
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Element:
			child := convert(t)
			n.Add(t.Tag, child)
			if s, ok := child.(Scalar); ok {
				// keep the element name so flattening can still tell inline
				// markup apart from plain runs
				wrapped := NewNode(t.Tag)
				wrapped.Add("#text", s)
				wrapped.AppendContent(s)
				n.AppendContent(wrapped)
				continue
			}
			n.AppendContent(child)
		case *etree.CharData:
			n.AppendContent(Scalar(t.Data))
			if strings.TrimSpace(t.Data) != "" {
				n.Add("#text", Scalar(t.Data))
			}
		}
	}
	return n
}

func hasChildElements(el *etree.Element) bool {
	for _, tok := range el.Child {
		if _, ok := tok.(*etree.Element); ok {
			return true
		}
	}
	return false
}
