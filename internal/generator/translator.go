package generator

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// TypeTranslator maps native type spellings to script types. It is not
// modified after construction.
type TypeTranslator struct {
	table map[string]ScriptType
}

// NewTypeTranslator returns a translator over a copy of table.
func NewTypeTranslator(table map[string]ScriptType) *TypeTranslator {
	t := &TypeTranslator{table: make(map[string]ScriptType, len(table))}
	for spelling, typ := range table {
		t.table[spelling] = typ
	}
	return t
}

// Translate returns the script type for the exact native spelling. Only
// surrounding whitespace is ignored; spellings are never inferred.
func (t *TypeTranslator) Translate(spelling string) (ScriptType, error) {
	spelling = strings.TrimSpace(spelling)
	if typ, ok := t.table[spelling]; ok {
		return typ, nil
	}
	return "", errors.Errorf("%w: %q", ErrUnknownType, spelling)
}

// Len returns the number of known spellings.
func (t *TypeTranslator) Len() int {
	return len(t.table)
}

// DefaultTypeTable returns a fresh copy of the built-in spelling table.
func DefaultTypeTable() map[string]ScriptType {
	return map[string]ScriptType{
		"const char *": TypeString,
		"const char*":  TypeString,

		"bool": TypeBoolean,

		"int":          TypeNumber,
		"unsigned int": TypeNumber,
		"float":        TypeNumber,
		"uint32_t":     TypeNumber,

		"ScriptHandle": TypePointer,

		"glm::vec2":        TypeTable,
		"const glm::vec2":  TypeTable,
		"glm::vec3":        TypeTable,
		"const glm::vec3":  TypeTable,
		"ScriptTable":      TypeTable,
		"SmartScriptTable": TypeTable,

		"hexe::gameplay::tile::TileCoord": TypeTable,
		"gameplay::tile::TileCoord":       TypeTable,
		"tile::TileCoord":                 TypeTable,
		"TileCoord":                       TypeTable,

		"hexe::component::Entity": TypeNumber,
		"component::Entity":       TypeNumber,
		"Entity":                  TypeNumber,

		"KeyCode":              TypeNumber,
		"input::KeyCode":       TypeNumber,
		"hexe::input::KeyCode": TypeNumber,
	}
}
