package templates

import (
	"strings"
	"text/template"

	"github.com/eithergen/eithergen/internal/errors"
	"github.com/eithergen/eithergen/internal/models"
)

// This package renders the forwarding implementation for validated
// interfaces. Any definition that reaches it is assumed valid; emission is a
// pure function of its input.

// interfaceTemplate renders the wrapper type, its constructors, and one
// forwarding method per signature. Every forwarding body is an exhaustive
// two-arm switch over the held side; there is no dispatch table anywhere.
const interfaceTemplate = `{{range .Doc}}{{.}}
{{end}}{{if .Doc}}//
{{end}}// {{.Wrapper}} holds one of two {{.Name}} implementations and forwards every
// call to whichever side it currently holds.
type {{.Wrapper}}[L, R {{.Name}}] mo.Either[L, R]
{{if .Constructors}}
// Left{{.Name}} wraps a left-side value in a {{.Wrapper}}.
func Left{{.Name}}[L, R {{.Name}}](v L) {{.Wrapper}}[L, R] {
	return {{.Wrapper}}[L, R](mo.Left[L, R](v))
}

// Right{{.Name}} wraps a right-side value in a {{.Wrapper}}.
func Right{{.Name}}[L, R {{.Name}}](v R) {{.Wrapper}}[L, R] {
	return {{.Wrapper}}[L, R](mo.Right[L, R](v))
}
{{end}}
{{- range .Methods}}
{{range .Doc}}{{.}}
{{end}}func ({{.Recv}} {{if .Mut}}*{{end}}{{.Wrapper}}[L, R]) {{.Name}}({{.ParamList}}){{.ResultList}} {
	switch {{.Val}} := mo.Either[L, R]({{if .Mut}}*{{end}}{{.Recv}}); {
	case {{.Val}}.IsLeft():
		{{.Return}}{{.Val}}.MustLeft().{{.Name}}({{.Args}})
	default:
		{{.Return}}{{.Val}}.MustRight().{{.Name}}({{.Args}})
	}
}

{{end}}`

// fileTemplate assembles the generated file: header, package clause, pruned
// imports, and one block per interface.
const fileTemplate = `{{.Header}}

package {{.PackageName}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)

{{range .Blocks}}{{.}}
{{end}}`

// FileData feeds fileTemplate
type FileData struct {
	Header      string
	PackageName string
	Imports     []models.Import
	Blocks      []string
}

type interfaceData struct {
	Doc          []string
	Name         string
	Wrapper      string
	Constructors bool
	Methods      []methodData
}

type methodData struct {
	Doc        []string
	Name       string
	Wrapper    string
	Mut        bool
	Recv       string // receiver binding, fresh w.r.t. parameter names
	Val        string // switch binding, fresh w.r.t. parameter names
	ParamList  string
	ResultList string
	Args       string
	Return     string // "return " when the method has results
}

// Emitter renders forwarding implementations
type Emitter struct {
	iface *template.Template
	file  *template.Template
}

// NewEmitter creates a new emitter
func NewEmitter() *Emitter {
	return &Emitter{
		iface: template.Must(template.New("interface").Parse(interfaceTemplate)),
		file:  template.Must(template.New("file").Parse(fileTemplate)),
	}
}

// EmitInterface renders the forwarding block for one validated interface
func (e *Emitter) EmitInterface(def *models.InterfaceDefinition) (string, error) {
	data := interfaceData{
		Doc:          def.Doc,
		Name:         def.Name,
		Wrapper:      def.Wrapper,
		Constructors: def.Constructors,
	}

	for i := range def.Methods {
		method := &def.Methods[i]

		taken := make(map[string]bool, len(method.Params))
		for _, p := range method.Params {
			taken[p.Name] = true
		}
		recv := freshName("e", taken)
		taken[recv] = true
		val := freshName("v", taken)

		ret := ""
		if method.HasResults() {
			ret = "return "
		}

		data.Methods = append(data.Methods, methodData{
			Doc:        method.Doc,
			Name:       method.Name,
			Wrapper:    def.Wrapper,
			Mut:        method.Receiver == models.ReceiverMut,
			Recv:       recv,
			Val:        val,
			ParamList:  FormatParamList(method.Params),
			ResultList: FormatResultList(method.Results),
			Args:       FormatCallArgs(method.Params),
			Return:     ret,
		})
	}

	var b strings.Builder
	if err := e.iface.Execute(&b, data); err != nil {
		return "", errors.Wrapf(errors.TemplateErrorCode, err, "failed to render interface %s", def.Name)
	}
	return b.String(), nil
}

// EmitFile renders the complete generated file body, unformatted
func (e *Emitter) EmitFile(data FileData) (string, error) {
	var b strings.Builder
	if err := e.file.Execute(&b, data); err != nil {
		return "", errors.Wrapf(errors.TemplateErrorCode, err, "failed to render file for package %s", data.PackageName)
	}
	return b.String(), nil
}
