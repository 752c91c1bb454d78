// Package drift detects schema drift in server payloads. The server has
// shipped with misspelled and renamed fields before (the quiz schedule
// being the famous one); the doctor command runs wire payloads through
// these checks so new drift is caught before it corrupts views.
package drift

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// Finding is one detected deviation of a payload from its schema.
type Finding struct {
	Schema string
	Detail string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Schema, f.Detail)
}

// Check validates raw JSON against the named wire schema and returns the
// deviations found. A payload that fails to parse yields a single
// finding; a clean payload yields none.
func Check(name string, raw json.RawMessage) ([]Finding, error) {
	def, ok := wireSchemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown wire schema: %q", name)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return []Finding{{Schema: name, Detail: "payload is not valid JSON: " + err.Error()}}, nil
	}

	compiled, err := compiled(name, def)
	if err != nil {
		return nil, err
	}

	if err := compiled.Validate(parsed); err != nil {
		return []Finding{{Schema: name, Detail: err.Error()}}, nil
	}
	return nil, nil
}

// CheckList validates each element of a JSON array payload.
func CheckList(name string, raw json.RawMessage) ([]Finding, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return []Finding{{Schema: name, Detail: "payload is not a JSON array: " + err.Error()}}, nil
	}

	var all []Finding
	for i, elem := range elems {
		findings, err := Check(name, elem)
		if err != nil {
			return nil, err
		}
		for _, f := range findings {
			f.Detail = fmt.Sprintf("element %d: %s", i, f.Detail)
			all = append(all, f)
		}
	}
	return all, nil
}

// compiled returns a cached compiled schema or compiles and caches it.
func compiled(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw
	// bytes. Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, s)
	return s, nil
}
