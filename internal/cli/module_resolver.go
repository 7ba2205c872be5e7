package cli

import (
	"fmt"

	"github.com/eithergen/eithergen/internal/models"
	"github.com/eithergen/eithergen/internal/utils"
)

// ModuleResolver locates the module the target packages belong to and checks
// that the generated code's one runtime dependency is available to it.
type ModuleResolver struct {
	gomod        *utils.GoModParser
	customModule string
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{
		gomod: utils.NewGoModParser(),
	}
}

// SetCustomModule bypasses go.mod detection
func (r *ModuleResolver) SetCustomModule(module string) {
	r.customModule = module
}

// Resolve returns the module path of the enclosing module and a warning
// message when something about the module setup will bite the user later.
// Resolution failures are soft: generation works without a module, the
// generated file just will not build until one exists.
func (r *ModuleResolver) Resolve(startDir string) (module string, warning string) {
	if r.customModule != "" {
		return r.customModule, ""
	}

	goModPath, err := r.gomod.FindGoModFile(startDir)
	if err != nil {
		return "", fmt.Sprintf("no go.mod found above %s; generated code imports %s and will not build without a module", startDir, models.EitherImportPath)
	}

	module, err = r.gomod.ParseModuleName(goModPath)
	if err != nil {
		return "", fmt.Sprintf("cannot read %s: %v", goModPath, err)
	}

	// The generated wrappers are defined over mo.Either; point it out now
	// rather than at the user's next build.
	if module != models.EitherImportPath {
		has, err := r.gomod.HasRequirement(goModPath, models.EitherImportPath)
		if err == nil && !has {
			return module, fmt.Sprintf("module %s does not require %s; run: go get %s", module, models.EitherImportPath, models.EitherImportPath)
		}
	}

	return module, ""
}
