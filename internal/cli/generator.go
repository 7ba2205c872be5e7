package cli

import (
	"bytes"
	"os"

	"github.com/eithergen/eithergen/internal/errors"
	"github.com/eithergen/eithergen/internal/generator"
	"github.com/eithergen/eithergen/internal/models"
	"github.com/eithergen/eithergen/internal/utils"
)

// Summary collects the statistics of one generation run
type Summary struct {
	PackagesScanned     int
	InterfacesGenerated int
	GeneratedFiles      []string
	FilesUpToDate       int
}

// Generator orchestrates one CLI run: scan directories, run the pipeline per
// package, write the results, and keep the user informed.
type Generator struct {
	pipeline    *generator.Pipeline
	scanner     *DirectoryScanner
	resolver    *ModuleResolver
	diagnostics *utils.DiagnosticSystem
	summary     Summary
}

// NewGenerator creates a CLI generator reporting through the given
// diagnostic system
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		pipeline:    generator.NewPipeline(),
		scanner:     NewDirectoryScanner(),
		resolver:    NewModuleResolver(),
		diagnostics: diagnostics,
	}
}

// SetCustomModule overrides go.mod module detection
func (g *Generator) SetCustomModule(module string) {
	g.resolver.SetCustomModule(module)
}

// GetSummary returns the statistics of the last Generate call
func (g *Generator) GetSummary() Summary {
	return g.summary
}

// Generate processes every package under the given directory arguments.
// Generation is fail-fast: the first parse or validation error stops the run;
// files already written for earlier packages stay in place.
func (g *Generator) Generate(args []string) error {
	g.summary = Summary{}

	dirs, err := g.scanner.ScanDirectories(args)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		g.diagnostics.Warn("no Go packages found under %v", args)
		return nil
	}

	if module, warn := g.resolver.Resolve(dirs[0]); warn != "" {
		g.diagnostics.Warn("%s", warn)
	} else if module != "" {
		g.diagnostics.Verbose("target module: %s", module)
	}

	for _, dir := range dirs {
		g.summary.PackagesScanned++
		g.diagnostics.Debug("scanning %s", dir)

		file, err := g.pipeline.GeneratePackage(dir)
		if err != nil {
			return err
		}
		if file == nil {
			continue
		}

		g.summary.InterfacesGenerated += len(file.Interfaces)

		wrote, err := g.writeFile(file)
		if err != nil {
			return err
		}
		if wrote {
			g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, file.Path)
			g.diagnostics.Verbose("wrote %s (%d interface(s))", file.Path, len(file.Interfaces))
		} else {
			g.summary.FilesUpToDate++
			g.diagnostics.Verbose("%s is up to date", file.Path)
		}
	}

	return nil
}

// writeFile writes the generated file, skipping the write when the on-disk
// content already matches
func (g *Generator) writeFile(file *models.GeneratedFile) (bool, error) {
	if existing, err := os.ReadFile(file.Path); err == nil && bytes.Equal(existing, file.Content) {
		return false, nil
	}
	if err := os.WriteFile(file.Path, file.Content, 0644); err != nil {
		return false, errors.Wrapf(errors.FileSystemErrorCode, err, "failed to write %s", file.Path)
	}
	return true, nil
}
