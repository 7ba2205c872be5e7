package annotations

import (
	"fmt"
)

// ParamType is the value type a marker parameter accepts
type ParamType int

const (
	StringType ParamType = iota
	BoolType
)

// ParamSpec describes one marker parameter
type ParamSpec struct {
	Type     ParamType
	Required bool
}

// Schema describes the accepted shape of one marker kind
type Schema struct {
	Kind       Kind
	MinArgs    int // required positional arguments
	MaxArgs    int // maximum positional arguments
	Parameters map[string]ParamSpec
}

// Registry holds the schemas of every known marker kind
type Registry struct {
	schemas map[Kind]Schema
}

// NewRegistry creates a registry pre-loaded with the built-in marker schemas
func NewRegistry() *Registry {
	r := &Registry{schemas: make(map[Kind]Schema)}
	r.Register(Schema{
		Kind: KindForward,
		Parameters: map[string]ParamSpec{
			"Wrapper":      {Type: StringType},
			"Constructors": {Type: BoolType},
		},
	})
	r.Register(Schema{
		Kind:       KindRecv,
		MinArgs:    1,
		MaxArgs:    1,
		Parameters: map[string]ParamSpec{},
	})
	return r
}

// Register adds or replaces a schema
func (r *Registry) Register(s Schema) {
	r.schemas[s.Kind] = s
}

// IsRegistered reports whether the kind has a schema
func (r *Registry) IsRegistered(kind Kind) bool {
	_, ok := r.schemas[kind]
	return ok
}

// Validate checks a parsed marker against its schema
func (r *Registry) Validate(m *Marker) error {
	schema, ok := r.schemas[m.Kind]
	if !ok {
		return fmt.Errorf("unknown marker kind %q", m.Kind)
	}

	if len(m.Args) < schema.MinArgs {
		return fmt.Errorf("marker %q requires %d argument(s), got %d", m.Kind, schema.MinArgs, len(m.Args))
	}
	if len(m.Args) > schema.MaxArgs {
		return fmt.Errorf("marker %q accepts at most %d argument(s), got %d", m.Kind, schema.MaxArgs, len(m.Args))
	}

	for name := range m.Parameters {
		if _, ok := schema.Parameters[name]; !ok {
			return fmt.Errorf("unknown parameter %q for marker %q", name, m.Kind)
		}
	}
	for name, spec := range schema.Parameters {
		if spec.Required {
			if _, ok := m.Parameters[name]; !ok {
				return fmt.Errorf("missing required parameter %q for marker %q", name, m.Kind)
			}
		}
	}
	return nil
}
