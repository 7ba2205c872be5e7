package parser

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/eithergen/eithergen/internal/annotations"
	"github.com/eithergen/eithergen/internal/errors"
	"github.com/eithergen/eithergen/internal/models"
)

// Parser extracts marked interface declarations into the IR. It is purely
// structural: it records what was declared, in declaration order, with type
// spellings preserved verbatim, and leaves every supportability judgment to
// the validator.
type Parser struct {
	fileSet *token.FileSet
	markers *annotations.Parser
}

// NewParser creates a new interface parser
func NewParser() *Parser {
	return &Parser{
		fileSet: token.NewFileSet(),
		markers: annotations.NewParser(annotations.NewRegistry()),
	}
}

// ParseSource parses interfaces from a source string, mainly for tests
func (p *Parser) ParseSource(filename, source string) (*models.Package, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrapf(errors.ParseErrorCode, err, "failed to parse %s", filename)
	}

	defs, err := p.extractFromFile(file, filename)
	if err != nil {
		return nil, err
	}

	return &models.Package{
		Name:       file.Name.Name,
		Path:       path.Dir(filename),
		Interfaces: defs,
	}, nil
}

// ParseDirectory parses every non-test, non-generated Go file in one
// directory and collects the marked interfaces of its single package.
func (p *Parser) ParseDirectory(dir string) (*models.Package, error) {
	filter := func(fi fs.FileInfo) bool {
		name := fi.Name()
		return !strings.HasSuffix(name, "_test.go") && name != models.GeneratedFileName
	}

	pkgs, err := parser.ParseDir(p.fileSet, dir, filter, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrapf(errors.ParseErrorCode, err, "failed to parse directory %s", dir)
	}

	if len(pkgs) == 0 {
		return nil, errors.Newf(errors.ParseErrorCode, "no Go packages found in directory %s", dir)
	}
	if len(pkgs) > 1 {
		return nil, errors.Newf(errors.ParseErrorCode, "multiple packages found in directory %s", dir)
	}

	var pkg *ast.Package
	var packageName string
	for name, astPkg := range pkgs {
		pkg = astPkg
		packageName = name
	}

	metadata := &models.Package{
		Name: packageName,
		Path: dir,
	}

	// Map iteration order is random; walk files by name so interface order
	// is stable across runs.
	fileNames := make([]string, 0, len(pkg.Files))
	for name := range pkg.Files {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)

	for _, fileName := range fileNames {
		defs, err := p.extractFromFile(pkg.Files[fileName], fileName)
		if err != nil {
			return nil, err
		}
		metadata.Interfaces = append(metadata.Interfaces, defs...)
	}

	return metadata, nil
}

// extractFromFile walks one file's declarations for marked interfaces
func (p *Parser) extractFromFile(file *ast.File, fileName string) ([]*models.InterfaceDefinition, error) {
	imports := p.fileImports(file)

	var defs []*models.InterfaceDefinition
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			ifaceType, ok := typeSpec.Type.(*ast.InterfaceType)
			if !ok {
				continue
			}

			// Doc lives on the GenDecl for standalone declarations and on
			// the TypeSpec inside grouped type blocks.
			doc := typeSpec.Doc
			if doc == nil {
				doc = genDecl.Doc
			}

			marker, err := p.forwardMarker(doc, fileName)
			if err != nil {
				return nil, err
			}
			if marker == nil {
				continue
			}

			def, err := p.buildDefinition(file, typeSpec, ifaceType, doc, marker, fileName, imports)
			if err != nil {
				return nil, err
			}
			defs = append(defs, def)
		}
	}
	return defs, nil
}

// forwardMarker parses the //either::forward marker out of a doc comment,
// returning nil when the declaration is unmarked
func (p *Parser) forwardMarker(doc *ast.CommentGroup, fileName string) (*annotations.Marker, error) {
	if doc == nil {
		return nil, nil
	}
	for _, comment := range doc.List {
		kind, ok := annotations.KindOf(comment.Text)
		if !ok || kind != annotations.KindForward {
			continue
		}
		return p.markers.Parse(comment.Text, p.location(comment.Pos(), fileName))
	}
	return nil, nil
}

func (p *Parser) buildDefinition(file *ast.File, typeSpec *ast.TypeSpec, ifaceType *ast.InterfaceType,
	doc *ast.CommentGroup, marker *annotations.Marker, fileName string, imports []models.Import) (*models.InterfaceDefinition, error) {

	name := typeSpec.Name.Name
	def := &models.InterfaceDefinition{
		Name:         name,
		Exported:     ast.IsExported(name),
		Doc:          docLines(doc),
		Wrapper:      marker.GetString("Wrapper", name+"Either"),
		Constructors: marker.GetBool("Constructors", true),
		PackageName:  file.Name.Name,
		FileName:     fileName,
		Imports:      imports,
		Location:     p.location(typeSpec.Pos(), fileName),
	}

	if typeSpec.TypeParams != nil {
		for _, field := range typeSpec.TypeParams.List {
			for _, n := range field.Names {
				def.TypeParams = append(def.TypeParams, n.Name)
			}
		}
	}

	seen := make(map[string]bool)
	if ifaceType.Methods != nil {
		for _, field := range ifaceType.Methods.List {
			if len(field.Names) == 0 {
				// Embedded interface or type-set term.
				def.Items = append(def.Items, models.InterfaceItem{
					Expr:     p.exprString(field.Type),
					Location: p.location(field.Pos(), fileName),
				})
				continue
			}

			funcType, ok := field.Type.(*ast.FuncType)
			if !ok {
				continue
			}

			methodName := field.Names[0].Name
			if seen[methodName] {
				return nil, errors.Newf(errors.ParseErrorCode, "duplicate method %s in interface %s", methodName, name).
					WithLocation(p.location(field.Pos(), fileName))
			}
			seen[methodName] = true

			method, err := p.buildMethod(methodName, field, funcType, fileName)
			if err != nil {
				return nil, err
			}
			def.Methods = append(def.Methods, *method)
		}
	}

	return def, nil
}

func (p *Parser) buildMethod(name string, field *ast.Field, funcType *ast.FuncType, fileName string) (*models.MethodSignature, error) {
	method := &models.MethodSignature{
		Name:     name,
		Doc:      docLines(field.Doc),
		Receiver: models.ReceiverRef,
		Location: p.location(field.Pos(), fileName),
	}

	// A //either::recv directive in the method doc overrides the default
	// by-reference binding.
	if field.Doc != nil {
		for _, comment := range field.Doc.List {
			kind, ok := annotations.KindOf(comment.Text)
			if !ok || kind != annotations.KindRecv {
				continue
			}
			marker, err := p.markers.Parse(comment.Text, p.location(comment.Pos(), fileName))
			if err != nil {
				return nil, err
			}
			recv, err := models.ParseReceiverKind(marker.Args[0])
			if err != nil {
				return nil, errors.Wrap(errors.AnnotationErrorCode, err.Error(), err).
					WithLocation(marker.Location).
					WithContext("method", name)
			}
			method.Receiver = recv
		}
	}

	if funcType.TypeParams != nil {
		for _, tp := range funcType.TypeParams.List {
			for _, n := range tp.Names {
				method.TypeParams = append(method.TypeParams, n.Name)
			}
		}
	}

	if funcType.Params != nil {
		for _, param := range funcType.Params.List {
			typeExpr := param.Type
			variadic := false
			if ellipsis, ok := typeExpr.(*ast.Ellipsis); ok {
				variadic = true
				typeExpr = ellipsis.Elt
			}
			ref := p.typeRef(typeExpr)
			loc := p.location(param.Pos(), fileName)

			if len(param.Names) == 0 {
				method.Params = append(method.Params, models.Parameter{
					Type:     ref,
					Variadic: variadic,
					Location: loc,
				})
				continue
			}
			for _, n := range param.Names {
				method.Params = append(method.Params, models.Parameter{
					Name:     n.Name,
					Type:     ref,
					Variadic: variadic,
					Location: loc,
				})
			}
		}
	}

	if funcType.Results != nil {
		for _, result := range funcType.Results.List {
			ref := p.typeRef(result.Type)
			count := len(result.Names)
			if count == 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				method.Results = append(method.Results, ref)
			}
		}
	}

	return method, nil
}

// typeRef captures a type expression verbatim plus the names the validator
// and import pruning need
func (p *Parser) typeRef(expr ast.Expr) models.TypeReference {
	ref := models.TypeReference{Expr: p.exprString(expr)}
	ast.Inspect(expr, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.SelectorExpr:
			if ident, ok := node.X.(*ast.Ident); ok {
				ref.Quals = append(ref.Quals, ident.Name)
				// A qualified name lives in another package and can never
				// be the implementing type.
				return false
			}
		case *ast.Ident:
			ref.Idents = append(ref.Idents, node.Name)
		}
		return true
	})
	return ref
}

// exprString renders an expression exactly as the source spelled it
func (p *Parser) exprString(expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, p.fileSet, expr); err != nil {
		return ""
	}
	return buf.String()
}

func (p *Parser) location(pos token.Pos, fileName string) errors.SourceLocation {
	position := p.fileSet.Position(pos)
	return errors.SourceLocation{
		File:   fileName,
		Line:   position.Line,
		Column: position.Column,
	}
}

var versionSuffix = regexp.MustCompile(`^v[0-9]+$`)

// fileImports builds the import table of one source file. Dot and blank
// imports cannot qualify a signature type, so they are skipped.
func (p *Parser) fileImports(file *ast.File) []models.Import {
	var imports []models.Import
	for _, imp := range file.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		alias := ""
		if imp.Name != nil {
			alias = imp.Name.Name
		}
		if alias == "_" || alias == "." {
			continue
		}

		qualifier := alias
		if qualifier == "" {
			qualifier = path.Base(importPath)
			if versionSuffix.MatchString(qualifier) {
				qualifier = path.Base(path.Dir(importPath))
			}
		}

		imports = append(imports, models.Import{
			Alias:     alias,
			Path:      importPath,
			Qualifier: qualifier,
		})
	}
	return imports
}

// docLines returns the doc comment lines verbatim, with eithergen marker
// lines removed and trailing empty comment lines trimmed
func docLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	var lines []string
	for _, comment := range doc.List {
		if annotations.IsMarker(comment.Text) {
			continue
		}
		lines = append(lines, comment.Text)
	}
	for len(lines) > 0 && strings.TrimSpace(strings.TrimPrefix(lines[len(lines)-1], "//")) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
