package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReceiverKind(t *testing.T) {
	tests := []struct {
		input string
		want  ReceiverKind
		ok    bool
	}{
		{"value", ReceiverValue, true},
		{"ref", ReceiverRef, true},
		{"mut", ReceiverMut, true},
		{"pointer", ReceiverUnknown, false},
		{"", ReceiverUnknown, false},
	}

	for _, tt := range tests {
		kind, err := ParseReceiverKind(tt.input)
		if tt.ok {
			require.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.want, kind)
			assert.Equal(t, tt.input, kind.String())
		} else {
			assert.Error(t, err, "input %q", tt.input)
		}
	}
}

func TestTypeReference_Mentions(t *testing.T) {
	ref := TypeReference{
		Expr:   "map[string][]Shape",
		Idents: []string{"string", "Shape"},
	}
	assert.True(t, ref.Mentions("Shape"))
	assert.False(t, ref.Mentions("Other"))

	// Qualified names are tracked separately and never count as mentions.
	qualified := TypeReference{Expr: "pkg.Shape", Quals: []string{"pkg"}}
	assert.False(t, qualified.Mentions("Shape"))
}

func TestInterfaceDefinition_Method(t *testing.T) {
	def := &InterfaceDefinition{
		Methods: []MethodSignature{
			{Name: "Get"},
			{Name: "Put"},
		},
	}

	require.NotNil(t, def.Method("Put"))
	assert.Equal(t, "Put", def.Method("Put").Name)
	assert.Nil(t, def.Method("Delete"))
}

func TestMethodSignature_HasResults(t *testing.T) {
	with := MethodSignature{Results: []TypeReference{{Expr: "int"}}}
	without := MethodSignature{}

	assert.True(t, with.HasResults())
	assert.False(t, without.HasResults())
}
