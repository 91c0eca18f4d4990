// Package doctree holds a loaded documentation document as a tree of tagged
// values. A field of the tree is a Scalar, a *Node or a List depending on what
// the source document contained, and callers switch on the concrete type at
// every access instead of assuming a shape.
package doctree

// Value is one of Scalar, *Node or List.
type Value interface {
	isValue()
}

// Scalar is the text of an element that carried no attributes and no child
// elements, or the value of an attribute.
type Scalar string

func (Scalar) isValue() {}

// List holds the values of an element name that occurred more than once under
// the same parent, in document order.
type List []Value

func (List) isValue() {}

// Node is an element with attributes or child elements.
//
// Fields are keyed the way xml2json keys them: "@name" for attributes, the
// child element name for child elements and "#text" for non-blank text runs.
// A key seen more than once holds a List. The mixed content (text runs and
// children) is also kept in document order for text flattening.
type Node struct {
	Name string

	keys    []string
	fields  map[string]Value
	content []Value
}

func (*Node) isValue() {}

// NewNode returns an empty node for the element name.
func NewNode(name string) *Node {
	return &Node{
		Name:   name,
		fields: make(map[string]Value),
	}
}

// Add stores v under key. A repeated key turns the field into a List.
func (n *Node) Add(key string, v Value) {
	existing, ok := n.fields[key]
	if !ok {
		n.keys = append(n.keys, key)
		n.fields[key] = v
		return
	}
	if l, ok := existing.(List); ok {
		n.fields[key] = append(l, v)
		return
	}
	n.fields[key] = List{existing, v}
}

// AppendContent records v as the next piece of mixed content.
func (n *Node) AppendContent(v Value) {
	n.content = append(n.content, v)
}

// Get returns the field stored under key.
func (n *Node) Get(key string) (Value, bool) {
	if n == nil {
		return nil, false
	}
	v, ok := n.fields[key]
	return v, ok
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Get("@" + name)
	if !ok {
		return "", false
	}
	s, ok := v.(Scalar)
	return string(s), ok
}

// Keys returns the field keys in first-occurrence order.
func (n *Node) Keys() []string {
	return append([]string(nil), n.keys...)
}

// Content returns the mixed content in document order.
func (n *Node) Content() []Value {
	return n.content
}

// Lookup follows path through nested nodes. It fails as soon as a step is not
// a *Node or the key is missing; a List half way down the path is a shape the
// caller has to resolve itself.
func Lookup(v Value, path ...string) (Value, bool) {
	cur := v
	for _, key := range path {
		n, ok := cur.(*Node)
		if !ok {
			return nil, false
		}
		if cur, ok = n.Get(key); !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

// Items returns v as a sequence: the elements of a List, a single-element
// slice for a Scalar or *Node, and nil for a missing value.
func Items(v Value) []Value {
	switch t := v.(type) {
	case nil:
		return nil
	case List:
		return t
	case *Node:
		if t == nil {
			return nil
		}
		return []Value{t}
	default:
		return []Value{t}
	}
}
