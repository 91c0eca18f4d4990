package generator

import (
	"bytes"
	"encoding/binary"
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Ordered is a string-keyed map that encodes its entries in insertion order.
type Ordered[V any] struct {
	keys  []string
	items map[string]V
}

// NewOrdered returns an empty Ordered map.
func NewOrdered[V any]() *Ordered[V] {
	return &Ordered[V]{items: make(map[string]V)}
}

// Set stores v under key. An existing key keeps its position and the return
// value reports that it was replaced.
func (o *Ordered[V]) Set(key string, v V) (replaced bool) {
	if _, ok := o.items[key]; ok {
		o.items[key] = v
		return true
	}
	o.keys = append(o.keys, key)
	o.items[key] = v
	return false
}

// Get returns the value stored under key.
func (o *Ordered[V]) Get(key string) (V, bool) {
	v, ok := o.items[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Ordered[V]) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of entries.
func (o *Ordered[V]) Len() int {
	return len(o.keys)
}

// MarshalJSON encodes the entries as a JSON object in insertion order.
func (o *Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encodeJSON(key)
		if err != nil {
			return nil, err
		}
		v, err := encodeJSON(o.items[key])
		if err != nil {
			return nil, errors.Errorf("encoding %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the entries as a YAML mapping in insertion order.
func (o *Ordered[V]) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range o.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(o.items[key]); err != nil {
			return nil, errors.Errorf("encoding %q: %w", key, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// MarshalCBOR encodes the entries as a CBOR map in insertion order.
func (o *Ordered[V]) MarshalCBOR() ([]byte, error) {
	buf := bytes.NewBuffer(cborMapHeader(len(o.keys)))
	for _, key := range o.keys {
		k, err := encMode.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := encMode.Marshal(o.items[key])
		if err != nil {
			return nil, errors.Errorf("encoding %q: %w", key, err)
		}
		buf.Write(k)
		buf.Write(v)
	}
	return buf.Bytes(), nil
}

type paramBody struct {
	Type        ScriptType `json:"type" yaml:"type" cbor:"type"`
	Description string     `json:"description" yaml:"description" cbor:"description"`
}

func (p Param) body() map[string]paramBody {
	return map[string]paramBody{p.Name: {Type: p.Type, Description: p.Description}}
}

// MarshalJSON encodes p as {"<name>": {"type": ..., "description": ...}}.
func (p Param) MarshalJSON() ([]byte, error) {
	return encodeJSON(p.body())
}

// MarshalYAML encodes p as a one-entry mapping keyed by its name.
func (p Param) MarshalYAML() (interface{}, error) {
	return p.body(), nil
}

// MarshalCBOR encodes p as a one-entry map keyed by its name.
func (p Param) MarshalCBOR() ([]byte, error) {
	return encMode.Marshal(p.body())
}

// encodeJSON is json.Marshal without HTML escaping; descriptions routinely
// contain '<', '>' and '&'.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// encMode encodes CBOR with Core Deterministic Encoding so the same
// descriptor always produces the same bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("generator: CBOR encoder initialization failed: " + err.Error())
	}
}

// cborMapHeader returns the initial bytes of a definite-length map (major
// type 5) holding n pairs.
func cborMapHeader(n int) []byte {
	const major = 5 << 5
	switch {
	case n < 24:
		return []byte{byte(major | n)}
	case n <= 0xff:
		return []byte{major | 24, byte(n)}
	case n <= 0xffff:
		b := []byte{major | 25, 0, 0}
		binary.BigEndian.PutUint16(b[1:], uint16(n))
		return b
	default:
		b := []byte{major | 26, 0, 0, 0, 0}
		binary.BigEndian.PutUint32(b[1:], uint32(n))
		return b
	}
}
