package generator

// ScriptType is the category a native type maps to on the scripting side.
type ScriptType string

const (
	TypeString  ScriptType = "string"
	TypeBoolean ScriptType = "boolean"
	TypeNumber  ScriptType = "number"
	TypePointer ScriptType = "pointer"
	TypeTable   ScriptType = "table"
	TypeNoValue ScriptType = "no-value"
)

// ScriptTypes lists every valid ScriptType.
func ScriptTypes() []ScriptType {
	return []ScriptType{TypeString, TypeBoolean, TypeNumber, TypePointer, TypeTable, TypeNoValue}
}

// Valid reports whether t is one of the known categories.
func (t ScriptType) Valid() bool {
	for _, known := range ScriptTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Descriptor is the generated document: every script binding keyed by its
// short name, in index order.
type Descriptor struct {
	ScriptBinds *Ordered[*Compound] `json:"scriptbinds" yaml:"scriptbinds" cbor:"scriptbinds"`
}

// Compound describes one script binding class.
type Compound struct {
	Description string            `json:"description" yaml:"description" cbor:"description"`
	Methods     *Ordered[*Method] `json:"methods" yaml:"methods" cbor:"methods"`
}

// Method describes one function exposed to scripts.
type Method struct {
	Description string  `json:"description" yaml:"description" cbor:"description"`
	Params      []Param `json:"params" yaml:"params" cbor:"params"`
	Ret         Return  `json:"ret" yaml:"ret" cbor:"ret"`
}

// Param is a single script-visible parameter. It is encoded as a one-entry
// object keyed by the parameter name so that params stays an ordered array.
type Param struct {
	Name        string
	Type        ScriptType
	Description string
}

// Return describes a method's return value.
type Return struct {
	Type        ScriptType `json:"type" yaml:"type" cbor:"type"`
	Description string     `json:"description" yaml:"description" cbor:"description"`
}

// CompoundRef is a script binding found in the index, scheduled for extraction.
type CompoundRef struct {
	ShortName string
	RefID     string
}

// NewDescriptor returns an empty descriptor.
func NewDescriptor() *Descriptor {
	return &Descriptor{ScriptBinds: NewOrdered[*Compound]()}
}

// NewCompound returns a compound with no description and no methods.
func NewCompound() *Compound {
	return &Compound{Methods: NewOrdered[*Method]()}
}

// NewMethod returns a method with no parameters and no return value.
func NewMethod() *Method {
	return &Method{
		Params: []Param{},
		Ret:    Return{Type: TypeNoValue},
	}
}
