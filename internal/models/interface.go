package models

import (
	"fmt"

	"github.com/eithergen/eithergen/internal/errors"
)

// ReceiverKind describes how a forwarding method binds the sum value.
type ReceiverKind int

const (
	// ReceiverUnknown marks a method signature built without a receiver kind.
	// The validator rejects it; the source parser never produces it.
	ReceiverUnknown ReceiverKind = iota
	// ReceiverValue consumes the sum value (value receiver on the wrapper).
	ReceiverValue
	// ReceiverRef reads through the sum value (value receiver on the wrapper).
	ReceiverRef
	// ReceiverMut mutates through the sum value (pointer receiver on the
	// wrapper; mutation reaches the variant when it is a pointer type).
	ReceiverMut
)

// String returns the directive spelling of the receiver kind
func (k ReceiverKind) String() string {
	switch k {
	case ReceiverValue:
		return "value"
	case ReceiverRef:
		return "ref"
	case ReceiverMut:
		return "mut"
	default:
		return "unknown"
	}
}

// ParseReceiverKind parses the directive spelling used by //either::recv
func ParseReceiverKind(s string) (ReceiverKind, error) {
	switch s {
	case "value":
		return ReceiverValue, nil
	case "ref":
		return ReceiverRef, nil
	case "mut":
		return ReceiverMut, nil
	default:
		return ReceiverUnknown, fmt.Errorf("unknown receiver kind %q (expected value, ref, or mut)", s)
	}
}

// TypeReference is a parameter or result type exactly as spelled in the
// source, plus the identifier roots needed to detect references to the
// implementing type and the package qualifiers needed for import pruning.
type TypeReference struct {
	Expr   string   // verbatim spelling, e.g. "map[string]uuid.UUID"
	Idents []string // unqualified identifiers appearing in the type
	Quals  []string // package qualifiers appearing in the type
}

// Mentions reports whether the type spelling refers to the given name
func (t TypeReference) Mentions(name string) bool {
	for _, id := range t.Idents {
		if id == name {
			return true
		}
	}
	return false
}

// Parameter is one method parameter. Name is empty for unnamed parameters,
// which the validator rejects because forwarding needs a plain binding.
type Parameter struct {
	Name     string
	Type     TypeReference
	Variadic bool
	Location errors.SourceLocation
}

// MethodSignature is one interface method, in declaration order.
type MethodSignature struct {
	Name       string
	Doc        []string // doc comment lines verbatim, eithergen markers excluded
	Receiver   ReceiverKind
	TypeParams []string // method-level type parameters (never supported)
	Params     []Parameter
	Results    []TypeReference
	Location   errors.SourceLocation
}

// HasResults reports whether the forwarding body must return the call value
func (m *MethodSignature) HasResults() bool {
	return len(m.Results) > 0
}

// InterfaceItem is a non-method interface element: an embedded interface or
// a type-set term. These are the Go analog of associated items and are never
// supported.
type InterfaceItem struct {
	Expr     string
	Location errors.SourceLocation
}

// Import is one import of the source file declaring the interface.
type Import struct {
	Alias     string // explicit import name, empty when none
	Path      string
	Qualifier string // name the package is referred to by in this file
}

// InterfaceDefinition is the parsed form of one marked interface. It is
// built once per invocation, never mutated afterwards, and discarded after
// emission.
type InterfaceDefinition struct {
	Name         string
	Exported     bool
	Doc          []string // doc comment lines verbatim, eithergen markers excluded
	Wrapper      string   // generated wrapper type name, default Name+"Either"
	Constructors bool     // emit LeftX/RightX constructors
	TypeParams   []string // interface-level type parameters (never supported)
	Items        []InterfaceItem
	Methods      []MethodSignature
	PackageName  string
	FileName     string
	Imports      []Import
	Location     errors.SourceLocation
}

// Method returns the named method signature, or nil
func (d *InterfaceDefinition) Method(name string) *MethodSignature {
	for i := range d.Methods {
		if d.Methods[i].Name == name {
			return &d.Methods[i]
		}
	}
	return nil
}
