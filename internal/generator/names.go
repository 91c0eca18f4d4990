package generator

import "strings"

const (
	// EnginePrefix marks script bindings defined by the engine.
	EnginePrefix = "hexe::service::scripts::scriptbinds::ScriptBind_"
	// GamePrefix marks script bindings defined by the game.
	GamePrefix = "hexegame::scriptbinds::ScriptBind_"
	// DefaultSeparator ends the part of a qualified name that is stripped.
	DefaultSeparator = '_'
)

// DefaultPrefixes returns the recognized prefixes in match order.
func DefaultPrefixes() []string {
	return []string{EnginePrefix, GamePrefix}
}

// Normalizer turns qualified compound names into short names.
type Normalizer struct {
	prefixes  []string
	separator byte
}

// NewNormalizer returns a normalizer trying prefixes in order.
func NewNormalizer(prefixes []string, separator byte) *Normalizer {
	return &Normalizer{
		prefixes:  append([]string(nil), prefixes...),
		separator: separator,
	}
}

// Normalize strips the first recognized prefix from name together with
// everything up to and including the first separator at or after the prefix
// start. Without a separator only the prefix is removed. The second return
// value is false when name carries no recognized prefix.
func (n *Normalizer) Normalize(name string) (string, bool) {
	for _, prefix := range n.prefixes {
		if prefix == "" {
			continue
		}
		start := strings.Index(name, prefix)
		if start < 0 {
			continue
		}
		end := start + len(prefix)
		if sep := strings.IndexByte(name[start:], n.separator); sep >= 0 {
			end = start + sep + 1
		}
		return name[:start] + name[end:], true
	}
	return "", false
}
