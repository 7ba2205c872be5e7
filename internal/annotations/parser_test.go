package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eithergen/eithergen/internal/errors"
)

func testLocation() errors.SourceLocation {
	return errors.SourceLocation{File: "test.go", Line: 10, Column: 1}
}

func TestParse_BareForwardMarker(t *testing.T) {
	p := NewParser(NewRegistry())

	marker, err := p.Parse("//either::forward", testLocation())
	require.NoError(t, err)

	assert.Equal(t, KindForward, marker.Kind)
	assert.Empty(t, marker.Args)
	assert.Empty(t, marker.Parameters)
	assert.Equal(t, "test.go", marker.Location.File)
}

func TestParse_ForwardWithParameters(t *testing.T) {
	p := NewParser(NewRegistry())

	marker, err := p.Parse("//either::forward -Wrapper=StoreSum -Constructors=false", testLocation())
	require.NoError(t, err)

	assert.Equal(t, "StoreSum", marker.GetString("Wrapper", ""))
	assert.False(t, marker.GetBool("Constructors", true))
}

func TestParse_QuotedParameterValue(t *testing.T) {
	p := NewParser(NewRegistry())

	marker, err := p.Parse(`//either::forward -Wrapper="StoreSum"`, testLocation())
	require.NoError(t, err)

	assert.Equal(t, "StoreSum", marker.GetString("Wrapper", ""))
}

func TestParse_BareBoolParameterMeansTrue(t *testing.T) {
	p := NewParser(NewRegistry())

	marker, err := p.Parse("//either::forward -Constructors", testLocation())
	require.NoError(t, err)

	assert.True(t, marker.GetBool("Constructors", false))
}

func TestParse_RecvMarker(t *testing.T) {
	p := NewParser(NewRegistry())

	marker, err := p.Parse("//either::recv mut", testLocation())
	require.NoError(t, err)

	assert.Equal(t, KindRecv, marker.Kind)
	require.Len(t, marker.Args, 1)
	assert.Equal(t, "mut", marker.Args[0])
}

func TestParse_RecvRequiresArgument(t *testing.T) {
	p := NewParser(NewRegistry())

	_, err := p.Parse("//either::recv", testLocation())
	require.Error(t, err)
	assert.Equal(t, errors.AnnotationErrorCode, errors.CodeOf(err))
}

func TestParse_RecvRejectsExtraArguments(t *testing.T) {
	p := NewParser(NewRegistry())

	_, err := p.Parse("//either::recv mut value", testLocation())
	require.Error(t, err)
	assert.Equal(t, errors.AnnotationErrorCode, errors.CodeOf(err))
}

func TestParse_UnknownKindRejected(t *testing.T) {
	p := NewParser(NewRegistry())

	_, err := p.Parse("//either::frobnicate", testLocation())
	require.Error(t, err)
	assert.Equal(t, errors.AnnotationErrorCode, errors.CodeOf(err))
}

func TestParse_UnknownParameterRejected(t *testing.T) {
	p := NewParser(NewRegistry())

	_, err := p.Parse("//either::forward -Color=red", testLocation())
	require.Error(t, err)
	assert.Equal(t, errors.AnnotationErrorCode, errors.CodeOf(err))
}

func TestParse_DuplicateParameterRejected(t *testing.T) {
	p := NewParser(NewRegistry())

	_, err := p.Parse("//either::forward -Wrapper=A -Wrapper=B", testLocation())
	require.Error(t, err)
	assert.Equal(t, errors.ParseErrorCode, errors.CodeOf(err))
}

func TestParse_MalformedMarker(t *testing.T) {
	p := NewParser(NewRegistry())

	_, err := p.Parse("//either::", testLocation())
	require.Error(t, err)
	assert.Equal(t, errors.ParseErrorCode, errors.CodeOf(err))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		comment string
		kind    Kind
		ok      bool
	}{
		{"//either::forward", KindForward, true},
		{"// either::forward -Wrapper=X", KindForward, true},
		{"//either::recv mut", KindRecv, true},
		{"// plain comment", "", false},
		{"//either::", "", false},
		{"not a comment", "", false},
	}

	for _, tt := range tests {
		kind, ok := KindOf(tt.comment)
		assert.Equal(t, tt.ok, ok, "comment %q", tt.comment)
		assert.Equal(t, tt.kind, kind, "comment %q", tt.comment)
	}
}
