package templates

import (
	"fmt"
	"strings"

	"github.com/eithergen/eithergen/internal/models"
)

// FormatParamList renders a method's parameter list with the original type
// spellings, e.g. "id uuid.UUID, parts ...string"
func FormatParamList(params []models.Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		typ := p.Type.Expr
		if p.Variadic {
			typ = "..." + typ
		}
		parts = append(parts, p.Name+" "+typ)
	}
	return strings.Join(parts, ", ")
}

// FormatResultList renders a method's result list, with the leading space
// the signature needs: "", " int", or " (int, error)"
func FormatResultList(results []models.TypeReference) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return " " + results[0].Expr
	default:
		parts := make([]string, 0, len(results))
		for _, r := range results {
			parts = append(parts, r.Expr)
		}
		return " (" + strings.Join(parts, ", ") + ")"
	}
}

// FormatCallArgs renders the forwarded argument list, unchanged and in
// order, with variadic expansion: "id, parts..."
func FormatCallArgs(params []models.Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		arg := p.Name
		if p.Variadic {
			arg += "..."
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, ", ")
}

// freshName returns base when it is unused, otherwise base with the first
// free numeric suffix. Keeps generated bindings from shadowing parameters.
func freshName(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
}
