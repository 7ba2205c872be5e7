package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eithergen/eithergen/internal/errors"
	"github.com/eithergen/eithergen/internal/models"
	"github.com/eithergen/eithergen/internal/parser"
)

func intType() models.TypeReference {
	return models.TypeReference{Expr: "int", Idents: []string{"int"}}
}

func namedType(name string) models.TypeReference {
	return models.TypeReference{Expr: name, Idents: []string{name}}
}

func validDefinition() *models.InterfaceDefinition {
	return &models.InterfaceDefinition{
		Name:     "Shape",
		Exported: true,
		Wrapper:  "ShapeEither",
		Methods: []models.MethodSignature{
			{
				Name:     "Area",
				Receiver: models.ReceiverRef,
				Params:   []models.Parameter{{Name: "scale", Type: intType()}},
				Results:  []models.TypeReference{intType()},
			},
		},
	}
}

func TestValidate_AcceptsSupportedInterface(t *testing.T) {
	require.NoError(t, New().Validate(validDefinition()))
}

func TestValidate_GenericInterface(t *testing.T) {
	def := validDefinition()
	def.TypeParams = []string{"T"}

	err := New().Validate(def)
	require.Error(t, err)
	assert.Equal(t, errors.GenericInterfaceErrorCode, errors.CodeOf(err))
}

func TestValidate_NonMethodElement(t *testing.T) {
	def := validDefinition()
	def.Items = []models.InterfaceItem{{Expr: "io.Reader"}}

	err := New().Validate(def)
	require.Error(t, err)
	assert.Equal(t, errors.AssociatedItemErrorCode, errors.CodeOf(err))
}

func TestValidate_GenericMethod(t *testing.T) {
	def := validDefinition()
	def.Methods[0].TypeParams = []string{"T"}

	err := New().Validate(def)
	require.Error(t, err)
	assert.Equal(t, errors.GenericMethodErrorCode, errors.CodeOf(err))
}

func TestValidate_MissingReceiverKind(t *testing.T) {
	def := validDefinition()
	def.Methods[0].Receiver = models.ReceiverUnknown

	err := New().Validate(def)
	require.Error(t, err)
	assert.Equal(t, errors.MissingReceiverErrorCode, errors.CodeOf(err))
}

func TestValidate_SelfInParameter(t *testing.T) {
	def := validDefinition()
	def.Methods[0].Params[0].Type = namedType("Shape")

	err := New().Validate(def)
	require.Error(t, err)
	assert.Equal(t, errors.SelfInSignatureErrorCode, errors.CodeOf(err))
}

func TestValidate_SelfInResult(t *testing.T) {
	def := validDefinition()
	def.Methods[0].Results = []models.TypeReference{{
		Expr:   "[]Shape",
		Idents: []string{"Shape"},
	}}

	err := New().Validate(def)
	require.Error(t, err)
	assert.Equal(t, errors.SelfInSignatureErrorCode, errors.CodeOf(err))
}

func TestValidate_QualifiedNameIsNotSelf(t *testing.T) {
	// other.Shape lives in another package; only the unqualified name counts.
	def := validDefinition()
	def.Methods[0].Params[0].Type = models.TypeReference{
		Expr:  "other.Shape",
		Quals: []string{"other"},
	}

	require.NoError(t, New().Validate(def))
}

func TestValidate_UnnamedParameter(t *testing.T) {
	def := validDefinition()
	def.Methods[0].Params[0].Name = ""

	err := New().Validate(def)
	require.Error(t, err)
	assert.Equal(t, errors.PatternParameterErrorCode, errors.CodeOf(err))
}

func TestValidate_BlankParameter(t *testing.T) {
	def := validDefinition()
	def.Methods[0].Params[0].Name = "_"

	err := New().Validate(def)
	require.Error(t, err)
	assert.Equal(t, errors.PatternParameterErrorCode, errors.CodeOf(err))
}

func TestValidate_ReservedParameterName(t *testing.T) {
	for _, name := range []string{ReservedLeft, ReservedRight} {
		def := validDefinition()
		def.Methods[0].Params[0].Name = name

		err := New().Validate(def)
		require.Error(t, err, "parameter %s", name)
		assert.Equal(t, errors.ReservedNameErrorCode, errors.CodeOf(err))
	}
}

func TestValidate_ReservedInterfaceName(t *testing.T) {
	def := validDefinition()
	def.Name = "L"
	def.Methods[0].Params[0].Type = intType()

	err := New().Validate(def)
	require.Error(t, err)
	assert.Equal(t, errors.ReservedNameErrorCode, errors.CodeOf(err))
}

func TestValidate_InterfaceConstraintsPrecedeMethodConstraints(t *testing.T) {
	def := validDefinition()
	def.TypeParams = []string{"T"}
	def.Items = []models.InterfaceItem{{Expr: "io.Reader"}}
	def.Methods[0].Params[0].Name = ""

	err := New().Validate(def)
	require.Error(t, err)
	assert.Equal(t, errors.GenericInterfaceErrorCode, errors.CodeOf(err))
}

func TestValidate_SelfReferencePrecedesUnnamedParameter(t *testing.T) {
	// One parameter violates both rules; the self-reference check runs first.
	def := validDefinition()
	def.Methods[0].Params[0] = models.Parameter{Name: "", Type: namedType("Shape")}

	err := New().Validate(def)
	require.Error(t, err)
	assert.Equal(t, errors.SelfInSignatureErrorCode, errors.CodeOf(err))
}

func TestValidate_FirstMethodViolationWins(t *testing.T) {
	def := validDefinition()
	def.Methods = append(def.Methods, models.MethodSignature{
		Name:       "Later",
		Receiver:   models.ReceiverRef,
		TypeParams: []string{"T"},
	})
	def.Methods[0].Params[0].Name = "L"

	err := New().Validate(def)
	require.Error(t, err)
	// The first method's reserved-name violation is reported even though the
	// second method's generic-method violation has higher precedence.
	assert.Equal(t, errors.ReservedNameErrorCode, errors.CodeOf(err))
}

func TestValidate_ParsedSelfReference(t *testing.T) {
	source := `package demo

//either::forward
type Cloner interface {
	Clone() Cloner
}
`
	pkg, err := parser.NewParser().ParseSource("demo.go", source)
	require.NoError(t, err)
	require.Len(t, pkg.Interfaces, 1)

	err = New().Validate(pkg.Interfaces[0])
	require.Error(t, err)
	assert.Equal(t, errors.SelfInSignatureErrorCode, errors.CodeOf(err))
}

func TestValidate_ParsedReservedParameter(t *testing.T) {
	source := `package demo

//either::forward
type Mixer interface {
	Mix(L int, rhs int) int
}
`
	pkg, err := parser.NewParser().ParseSource("demo.go", source)
	require.NoError(t, err)

	err = New().Validate(pkg.Interfaces[0])
	require.Error(t, err)
	assert.Equal(t, errors.ReservedNameErrorCode, errors.CodeOf(err))
}

func TestValidate_ErrorsCarryLocations(t *testing.T) {
	def := validDefinition()
	def.Methods[0].Params[0].Name = "L"
	def.Methods[0].Params[0].Location = errors.SourceLocation{File: "shape.go", Line: 12, Column: 7}

	err := New().Validate(def)
	require.Error(t, err)

	genErr, ok := err.(errors.GenError)
	require.True(t, ok)
	assert.Equal(t, "shape.go", genErr.Location().File)
	assert.Equal(t, 12, genErr.Location().Line)
}
