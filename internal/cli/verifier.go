package cli

import (
	"fmt"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/eithergen/eithergen/internal/errors"
)

// Verifier type-checks the rewritten packages after generation, catching the
// class of mistakes a pure-text emitter cannot see (an implementor whose
// method set no longer matches the interface, a signature type that moved).
type Verifier struct{}

// NewVerifier creates a new verifier
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyPatterns loads the given package patterns (as passed on the command
// line, e.g. "./...") through the go/packages driver and returns an error
// describing every package that fails to type-check
func (v *Verifier) VerifyPatterns(patterns []string) error {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return errors.Wrapf(errors.GenerationErrorCode, err, "failed to load packages for verification")
	}
	if len(pkgs) == 0 {
		return errors.Newf(errors.GenerationErrorCode, "no packages matched %v", patterns)
	}

	var broken []string
	for _, pkg := range pkgs {
		if len(pkg.Errors) == 0 {
			continue
		}
		details := make([]string, 0, len(pkg.Errors))
		for _, pkgErr := range pkg.Errors {
			details = append(details, pkgErr.Error())
		}
		broken = append(broken, fmt.Sprintf("%s:\n  %s", pkg.PkgPath, strings.Join(details, "\n  ")))
	}

	if len(broken) > 0 {
		return errors.Newf(errors.GenerationErrorCode, "generated code does not type-check:\n%s", strings.Join(broken, "\n")).
			WithSuggestion("re-run with -clean and regenerate, or fix the reported source types")
	}
	return nil
}
