package errors

import (
	"fmt"
	"strings"
)

// Frame is one level of an inclusion chain. Paths are already relative to
// the project root when the frame is built.
type Frame struct {
	IncluderPath string
	IncluderLine int
	Description  string
	IncludeePath string
}

// Backtrace is an inclusion chain ordered innermost include first.
type Backtrace []Frame

// String renders the backtrace block shared by the missing-file and
// circular-include messages.
func (b Backtrace) String() string {
	var builder strings.Builder

	builder.WriteString("  Backtrace (innermost include first):")
	for i, frame := range b {
		fmt.Fprintf(&builder, "\n    Level %d:", i)
		builder.WriteString("\n      Includer:")
		fmt.Fprintf(&builder, "\n        Location: %s:%d", frame.IncluderPath, frame.IncluderLine)
		fmt.Fprintf(&builder, "\n        Include description: %s", frame.Description)
		builder.WriteString("\n      Includee:")
		fmt.Fprintf(&builder, "\n        File path: %s", frame.IncludeePath)
	}

	return builder.String()
}

// Levels returns the number of levels in the trace.
func (b Backtrace) Levels() int {
	return len(b)
}
