package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/eithergen/eithergen/internal/cli"
	"github.com/eithergen/eithergen/internal/utils"
)

func main() {
	var (
		moduleFlag  = flag.String("module", "", "Custom module path (defaults to go.mod module)")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		cleanFlag   = flag.Bool("clean", false, "Delete generated either_gen.go files from the specified directories")
		verifyFlag  = flag.Bool("verify", false, "Type-check the rewritten packages after generation")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "eithergen — forwarding-implementation generator\n")
		fmt.Fprintf(os.Stderr, "Scans directories for interfaces marked //either::forward and generates an\n")
		fmt.Fprintf(os.Stderr, "implementation of each over the two-variant mo.Either sum type.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nDirectory Patterns:\n")
		fmt.Fprintf(os.Stderr, "  ./...              Scan current directory and all subdirectories recursively\n")
		fmt.Fprintf(os.Stderr, "  ./internal/...     Scan internal directory and all its subdirectories\n")
		fmt.Fprintf(os.Stderr, "  ./pkg/store        Scan only the specific directory (no recursion)\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                       # Generate for everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -verify ./internal/...      # Generate, then type-check the result\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -clean ./...                # Delete all generated files\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	diagnostics.Section("eithergen")

	if *cleanFlag {
		diagnostics.StartProgress("Cleaning generated files")

		cleaner := cli.NewCleaner()
		removed, err := cleaner.CleanGeneratedFiles(args)
		if err != nil {
			diagnostics.EndProgress(false, "")
			diagnostics.Error("Clean failed: %v", err)
			os.Exit(1)
		}

		diagnostics.EndProgress(true, fmt.Sprintf("%d file(s) removed", len(removed)))
		for _, path := range removed {
			diagnostics.List("%s", path)
		}
		return
	}

	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(args, ", "))
		if *moduleFlag != "" {
			diagnostics.List("Custom module: %s", *moduleFlag)
		}
	}

	generator := cli.NewGenerator(diagnostics)
	if *moduleFlag != "" {
		generator.SetCustomModule(*moduleFlag)
	}

	diagnostics.StartProgress("Generating forwarding implementations")
	if err := generator.Generate(args); err != nil {
		diagnostics.EndProgress(false, "")
		diagnostics.Error("Generation failed: %v", err)
		os.Exit(1)
	}
	diagnostics.EndProgress(true, "")

	if *verifyFlag {
		diagnostics.StartProgress("Type-checking rewritten packages")
		verifier := cli.NewVerifier()
		if err := verifier.VerifyPatterns(args); err != nil {
			diagnostics.EndProgress(false, "")
			diagnostics.Error("Verification failed: %v", err)
			os.Exit(1)
		}
		diagnostics.EndProgress(true, "")
	}

	summary := generator.GetSummary()
	diagnostics.Summary("Generation Complete!", map[string]interface{}{
		"Packages scanned":     summary.PackagesScanned,
		"Interfaces forwarded": summary.InterfacesGenerated,
		"Files written":        len(summary.GeneratedFiles),
		"Files up to date":     summary.FilesUpToDate,
	})

	if *verboseFlag && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}
}
