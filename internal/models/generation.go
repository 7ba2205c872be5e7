package models

// GeneratedFileName is the fixed name of the file written next to marked
// interfaces, one per package.
const GeneratedFileName = "either_gen.go"

// GeneratedFileHeader is the first line of every generated file. The cleaner
// refuses to delete files that do not start with it.
const GeneratedFileHeader = "// Code generated by eithergen. DO NOT EDIT."

// EitherImportPath is the module providing the external two-variant sum type
// every generated wrapper is defined over.
const EitherImportPath = "github.com/samber/mo"

// Package is the parse result for one directory: every marked interface in
// declaration order, across all non-generated, non-test files.
type Package struct {
	Name       string
	Path       string
	Interfaces []*InterfaceDefinition
}

// GeneratedFile is the final artifact for one package: the forwarding
// implementations of every marked interface, merged into a single file.
type GeneratedFile struct {
	PackageName string
	Path        string
	Content     []byte
	Interfaces  []string // names of the interfaces covered, in order
}
