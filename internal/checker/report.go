package checker

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tidelex/internal/types"
)

// FormatReport renders diagnostics the way the editor's compile dialog
// shows them. An empty list reports success for name.
func FormatReport(name string, errs []types.SyntaxError) string {
	var sb strings.Builder
	if len(errs) == 0 {
		fmt.Fprintf(&sb, "%s: no syntax errors found\n", name)
		return sb.String()
	}

	if HasBlocking(errs) {
		sb.WriteString("Compilation failed due to syntax errors:\n\n")
	} else {
		sb.WriteString("Style suggestions:\n\n")
	}
	for _, e := range errs {
		fmt.Fprintf(&sb, "Line %d: %s\n", e.Line, e.Message)
	}
	if HasBlocking(errs) {
		sb.WriteString("\nPlease fix these errors before compiling.\n")
	}
	return sb.String()
}

// Summary counts blocking errors and advisory suggestions.
func Summary(errs []types.SyntaxError) (blocking, advisory int) {
	for _, e := range errs {
		if e.Kind.Advisory() {
			advisory++
		} else {
			blocking++
		}
	}
	return blocking, advisory
}
