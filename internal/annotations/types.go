package annotations

import (
	"strconv"
	"strings"

	"github.com/eithergen/eithergen/internal/errors"
)

// MarkerPrefix is the comment prefix that identifies eithergen markers
const MarkerPrefix = "either::"

// Kind identifies a marker kind
type Kind string

const (
	// KindForward marks an interface for forwarding generation:
	//   //either::forward [-Wrapper=Name] [-Constructors=false]
	KindForward Kind = "forward"
	// KindRecv sets the receiver kind of one interface method:
	//   //either::recv value|ref|mut
	KindRecv Kind = "recv"
)

// Marker is one parsed eithergen marker comment
type Marker struct {
	Kind       Kind
	Args       []string          // positional arguments
	Parameters map[string]string // -Name=Value pairs
	Location   errors.SourceLocation
	Raw        string
}

// GetString returns a string parameter, or the default when absent
func (m *Marker) GetString(name, def string) string {
	if v, ok := m.Parameters[name]; ok {
		return v
	}
	return def
}

// GetBool returns a boolean parameter, or the default when absent or
// unparsable. A bare -Flag means true.
func (m *Marker) GetBool(name string, def bool) bool {
	v, ok := m.Parameters[name]
	if !ok {
		return def
	}
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// IsMarker reports whether a comment line is an eithergen marker
func IsMarker(comment string) bool {
	text := strings.TrimSpace(comment)
	if !strings.HasPrefix(text, "//") {
		return false
	}
	text = strings.TrimSpace(strings.TrimPrefix(text, "//"))
	return strings.HasPrefix(text, MarkerPrefix)
}
