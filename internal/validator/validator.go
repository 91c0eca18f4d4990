// Package validator checks the structure of a written scriptbinds document.
package validator

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"

	"github.com/fxamacker/cbor/v2"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/example/scriptbinds-gen/internal/generator"
)

// ErrInvalid is returned when a document does not have the scriptbinds shape.
var ErrInvalid = errors.Base("invalid scriptbinds document")

// Summary counts what a valid document contains.
type Summary struct {
	Compounds int
	Methods   int
	Params    int
}

var decMode cbor.DecMode

func init() {
	var err error
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]interface{}(nil)),
	}.DecMode()
	if err != nil {
		panic("validator: CBOR decoder initialization failed: " + err.Error())
	}
}

// ValidateFile reads a scriptbinds document and checks its structure. Files
// ending in .cbor are decoded as CBOR, everything else as YAML, which also
// covers JSON.
func ValidateFile(path string) (Summary, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Summary{}, errors.Errorf("reading %s: %w", path, err)
	}

	var doc map[string]interface{}
	if filepath.Ext(path) == ".cbor" {
		err = decMode.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return Summary{}, errors.Errorf("parsing %s: %w", path, err)
	}

	return Validate(doc)
}

// Validate checks a decoded scriptbinds document.
func Validate(doc map[string]interface{}) (Summary, error) {
	var summary Summary

	binds, ok := doc["scriptbinds"].(map[string]interface{})
	if !ok {
		return summary, errors.Errorf("%w: missing or invalid 'scriptbinds' field", ErrInvalid)
	}

	for _, name := range sortedKeys(binds) {
		methods, err := validateCompound(binds[name])
		if err != nil {
			return summary, errors.Errorf("%w: script bind %q: %v", ErrInvalid, name, err)
		}
		summary.Compounds++

		for _, methodName := range sortedKeys(methods) {
			params, err := validateMethod(methods[methodName])
			if err != nil {
				return summary, errors.Errorf("%w: method %s.%s: %v", ErrInvalid, name, methodName, err)
			}
			summary.Methods++
			summary.Params += params
		}
	}

	return summary, nil
}

func validateCompound(v interface{}) (map[string]interface{}, error) {
	compound, ok := v.(map[string]interface{})
	if !ok {
		return nil, errors.New("not an object")
	}
	if _, ok := compound["description"].(string); !ok {
		return nil, errors.New("missing or invalid 'description' field")
	}
	methods, ok := compound["methods"].(map[string]interface{})
	if !ok {
		return nil, errors.New("missing or invalid 'methods' field")
	}
	return methods, nil
}

func validateMethod(v interface{}) (int, error) {
	method, ok := v.(map[string]interface{})
	if !ok {
		return 0, errors.New("not an object")
	}
	if _, ok := method["description"].(string); !ok {
		return 0, errors.New("missing or invalid 'description' field")
	}

	params, ok := method["params"].([]interface{})
	if !ok {
		return 0, errors.New("missing or invalid 'params' field")
	}
	for i, p := range params {
		param, ok := p.(map[string]interface{})
		if !ok || len(param) != 1 {
			return 0, errors.Errorf("param %d: expected an object with a single entry", i)
		}
		for name, body := range param {
			if err := validateTyped(body); err != nil {
				return 0, errors.Errorf("param %d (%s): %w", i, name, err)
			}
		}
	}

	if err := validateTyped(method["ret"]); err != nil {
		return 0, errors.Errorf("ret: %w", err)
	}
	return len(params), nil
}

// validateTyped checks a {"type", "description"} object.
func validateTyped(v interface{}) error {
	body, ok := v.(map[string]interface{})
	if !ok {
		return errors.New("not an object")
	}
	typ, ok := body["type"].(string)
	if !ok {
		return errors.New("missing or invalid 'type' field")
	}
	if !generator.ScriptType(typ).Valid() {
		return errors.Errorf("unknown type %q", typ)
	}
	if _, ok := body["description"].(string); !ok {
		return errors.New("missing or invalid 'description' field")
	}
	return nil
}

func sortedKeys(m map[string]interface{}) []string {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
