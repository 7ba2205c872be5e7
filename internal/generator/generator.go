package generator

import (
	"path/filepath"
	"sort"

	"github.com/eithergen/eithergen/internal/errors"
	"github.com/eithergen/eithergen/internal/models"
	"github.com/eithergen/eithergen/internal/parser"
	"github.com/eithergen/eithergen/internal/templates"
	"github.com/eithergen/eithergen/internal/utils"
	"github.com/eithergen/eithergen/internal/validator"
)

// Pipeline is the generation driver: Parse → Validate → Emit, in that order,
// stopping at the first error from any stage. No partial output is ever
// produced; a package either gets a complete generated file or nothing.
type Pipeline struct {
	parser    *parser.Parser
	validator *validator.Validator
	emitter   *templates.Emitter
}

// NewPipeline creates a generation pipeline
func NewPipeline() *Pipeline {
	return &Pipeline{
		parser:    parser.NewParser(),
		validator: validator.New(),
		emitter:   templates.NewEmitter(),
	}
}

// GenerateSource runs the pipeline over a single source string, mainly for
// tests. Returns nil when the source has no marked interfaces.
func (p *Pipeline) GenerateSource(filename, source string) (*models.GeneratedFile, error) {
	pkg, err := p.parser.ParseSource(filename, source)
	if err != nil {
		return nil, err
	}
	return p.generate(pkg)
}

// GeneratePackage runs the pipeline over one directory. Returns nil when the
// package has no marked interfaces.
func (p *Pipeline) GeneratePackage(dir string) (*models.GeneratedFile, error) {
	pkg, err := p.parser.ParseDirectory(dir)
	if err != nil {
		return nil, err
	}
	return p.generate(pkg)
}

func (p *Pipeline) generate(pkg *models.Package) (*models.GeneratedFile, error) {
	if len(pkg.Interfaces) == 0 {
		return nil, nil
	}

	var blocks []string
	var names []string
	usedQuals := make(map[string]bool)
	sourceImports := make(map[string]models.Import) // keyed by import path

	for _, def := range pkg.Interfaces {
		if err := p.validator.Validate(def); err != nil {
			return nil, err
		}

		block, err := p.emitter.EmitInterface(def)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
		names = append(names, def.Name)

		for _, method := range def.Methods {
			for _, param := range method.Params {
				for _, q := range param.Type.Quals {
					usedQuals[q] = true
				}
			}
			for _, result := range method.Results {
				for _, q := range result.Quals {
					usedQuals[q] = true
				}
			}
		}
		for _, imp := range def.Imports {
			if _, ok := sourceImports[imp.Path]; !ok {
				sourceImports[imp.Path] = imp
			}
		}
	}

	// The generated file imports mo plus whichever source imports the
	// forwarded signatures actually reference.
	imports := []models.Import{{Path: models.EitherImportPath}}
	for _, imp := range sourceImports {
		if usedQuals[imp.Qualifier] {
			imports = append(imports, imp)
		}
	}
	sort.Slice(imports, func(i, j int) bool { return imports[i].Path < imports[j].Path })

	body, err := p.emitter.EmitFile(templates.FileData{
		Header:      models.GeneratedFileHeader,
		PackageName: pkg.Name,
		Imports:     imports,
		Blocks:      blocks,
	})
	if err != nil {
		return nil, err
	}

	formatted, err := utils.FormatGoCodeString(body)
	if err != nil {
		return nil, errors.Wrapf(errors.GenerationErrorCode, err, "generated code for package %s does not format", pkg.Name)
	}

	return &models.GeneratedFile{
		PackageName: pkg.Name,
		Path:        filepath.Join(pkg.Path, models.GeneratedFileName),
		Content:     []byte(formatted),
		Interfaces:  names,
	}, nil
}
