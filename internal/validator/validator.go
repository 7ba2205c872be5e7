package validator

import (
	"fmt"

	"github.com/eithergen/eithergen/internal/errors"
	"github.com/eithergen/eithergen/internal/models"
)

// Reserved type parameter names of the generated wrapper. Nothing a marked
// interface introduces may collide with them.
const (
	ReservedLeft  = "L"
	ReservedRight = "R"
)

// Validator checks a parsed interface against the supportability
// constraints. It is fail-fast: the first violation, in constraint
// precedence order and declaration order, is the only one reported. On
// success the definition is returned to the caller untouched; the validator
// never mutates its input.
type Validator struct{}

// New creates a new validator
func New() *Validator {
	return &Validator{}
}

// Validate returns nil when the interface is supportable, or the first
// violation found
func (v *Validator) Validate(def *models.InterfaceDefinition) error {
	// Interface-level constraints run before any method is inspected.
	if len(def.TypeParams) > 0 {
		return errors.Newf(errors.GenericInterfaceErrorCode,
			"interface %s declares type parameter %s; generic interfaces cannot be forwarded", def.Name, def.TypeParams[0]).
			WithLocation(def.Location).
			WithSuggestion("remove the type parameters or instantiate the interface before marking it")
	}

	if len(def.Items) > 0 {
		return errors.Newf(errors.AssociatedItemErrorCode,
			"interface %s contains non-method element %q; embedded interfaces and type-set terms cannot be forwarded", def.Name, def.Items[0].Expr).
			WithLocation(def.Items[0].Location).
			WithSuggestion("inline the embedded methods as plain signatures")
	}

	for i := range def.Methods {
		if err := v.validateMethod(def, &def.Methods[i]); err != nil {
			return err
		}
	}

	// The reserved-name rule has the lowest precedence, so the interface
	// name itself is checked only after every method has passed.
	if def.Name == ReservedLeft || def.Name == ReservedRight {
		return errors.Newf(errors.ReservedNameErrorCode,
			"interface name %s collides with a reserved wrapper type parameter", def.Name).
			WithLocation(def.Location)
	}

	return nil
}

func (v *Validator) validateMethod(def *models.InterfaceDefinition, method *models.MethodSignature) error {
	if len(method.TypeParams) > 0 {
		return errors.Newf(errors.GenericMethodErrorCode,
			"method %s.%s declares type parameter %s; generic methods cannot be forwarded", def.Name, method.Name, method.TypeParams[0]).
			WithLocation(method.Location)
	}

	if method.Receiver == models.ReceiverUnknown {
		return errors.Newf(errors.MissingReceiverErrorCode,
			"method %s.%s has no receiver kind", def.Name, method.Name).
			WithLocation(method.Location).
			WithSuggestion("set Receiver to value, ref, or mut")
	}

	for i := range method.Params {
		param := &method.Params[i]
		if param.Type.Mentions(def.Name) {
			return errors.Newf(errors.SelfInSignatureErrorCode,
				"parameter %s of %s.%s refers to the implementing type %s", describeParam(param, i), def.Name, method.Name, def.Name).
				WithLocation(param.Location).
				WithSuggestion("forwarded signatures cannot mention the interface outside receiver position")
		}
	}
	for _, result := range method.Results {
		if result.Mentions(def.Name) {
			return errors.Newf(errors.SelfInSignatureErrorCode,
				"result type %q of %s.%s refers to the implementing type %s", result.Expr, def.Name, method.Name, def.Name).
				WithLocation(method.Location).
				WithSuggestion("forwarded signatures cannot mention the interface outside receiver position")
		}
	}

	for i := range method.Params {
		param := &method.Params[i]
		if param.Name == "" || param.Name == "_" {
			return errors.Newf(errors.PatternParameterErrorCode,
				"parameter %d of %s.%s is not bound to a plain name; forwarding needs named parameters", i+1, def.Name, method.Name).
				WithLocation(param.Location).
				WithSuggestion("give every parameter an identifier name")
		}
	}

	for i := range method.Params {
		param := &method.Params[i]
		if param.Name == ReservedLeft || param.Name == ReservedRight {
			return errors.Newf(errors.ReservedNameErrorCode,
				"parameter %s of %s.%s collides with a reserved wrapper type parameter", param.Name, def.Name, method.Name).
				WithLocation(param.Location).
				WithSuggestion("rename the parameter; L and R name the wrapper's two sides")
		}
	}

	return nil
}

func describeParam(param *models.Parameter, index int) string {
	if param.Name != "" {
		return param.Name
	}
	return fmt.Sprintf("#%d", index+1)
}
