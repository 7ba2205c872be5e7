package annotations

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/eithergen/eithergen/internal/errors"
)

// markerAST is the participle grammar for one marker comment, e.g.
//
//	//either::forward -Wrapper=StoreSum -Constructors=false
//	//either::recv mut
type markerAST struct {
	Kind   string     `parser:"Comment Prefix Separator @Ident"`
	Args   []string   `parser:"@Ident*"`
	Params []paramAST `parser:"@@*"`
}

type paramAST struct {
	Name  string    `parser:"Dash @Ident"`
	Value *valueAST `parser:"(Equals @@)?"`
}

type valueAST struct {
	Str   *string `parser:"@String"`
	Ident *string `parser:"| @Ident"`
}

// Parser parses eithergen marker comments
type Parser struct {
	parser   *participle.Parser[markerAST]
	registry *Registry
}

// NewParser creates a marker parser backed by the given schema registry
func NewParser(registry *Registry) *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//`},
		{Name: "Separator", Pattern: `::`},
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Prefix", Pattern: `either`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Dash", Pattern: `-`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	p := participle.MustBuild[markerAST](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &Parser{
		parser:   p,
		registry: registry,
	}
}

// Parse parses a single marker comment line. The comment must satisfy
// IsMarker; anything else is a caller bug.
func (p *Parser) Parse(comment string, loc errors.SourceLocation) (*Marker, error) {
	ast, err := p.parser.ParseString(loc.File, strings.TrimSpace(comment))
	if err != nil {
		return nil, errors.Wrapf(errors.ParseErrorCode, err, "malformed eithergen marker %q", strings.TrimSpace(comment)).
			WithLocation(loc).
			WithSuggestion("markers look like //either::forward or //either::recv mut")
	}

	marker := &Marker{
		Kind:       Kind(ast.Kind),
		Args:       ast.Args,
		Parameters: make(map[string]string),
		Location:   loc,
		Raw:        comment,
	}

	for _, param := range ast.Params {
		value := ""
		if param.Value != nil {
			switch {
			case param.Value.Str != nil:
				unquoted, err := strconv.Unquote(*param.Value.Str)
				if err != nil {
					return nil, errors.Newf(errors.ParseErrorCode, "bad quoted value for parameter %q: %v", param.Name, err).
						WithLocation(loc)
				}
				value = unquoted
			case param.Value.Ident != nil:
				value = *param.Value.Ident
			}
		}
		if _, dup := marker.Parameters[param.Name]; dup {
			return nil, errors.Newf(errors.ParseErrorCode, "duplicate parameter %q", param.Name).
				WithLocation(loc)
		}
		marker.Parameters[param.Name] = value
	}

	if p.registry != nil {
		if err := p.registry.Validate(marker); err != nil {
			return nil, errors.Wrap(errors.AnnotationErrorCode, err.Error(), err).
				WithLocation(loc).
				WithContext("marker", marker.Raw)
		}
	}

	return marker, nil
}

// KindOf extracts the marker kind of a comment line without a full parse.
// It returns false when the line is not an eithergen marker at all.
func KindOf(comment string) (Kind, bool) {
	if !IsMarker(comment) {
		return "", false
	}
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "//"))
	text = strings.TrimPrefix(text, MarkerPrefix)
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", false
	}
	return Kind(fields[0]), true
}
