package include

import (
	"fmt"
	"path/filepath"
)

// BeginGenerated returns the marker opening a generated file.
func BeginGenerated(operation, source string) string {
	return fmt.Sprintf("<!-- >>>>>> BEGIN GENERATED FILE (%s): SOURCE %s -->\n", operation, source)
}

// EndGenerated returns the marker closing a generated file.
func EndGenerated(operation, source string) string {
	return fmt.Sprintf("<!-- <<<<<< END GENERATED FILE (%s): SOURCE %s -->\n", operation, source)
}

// BeginIncluded returns the marker opening a markdown-treated inclusion.
func BeginIncluded(treatment Treatment, source string) string {
	return fmt.Sprintf("<!-- >>>>>> BEGIN INCLUDED FILE (%s): SOURCE %s -->\n", treatment, source)
}

// EndIncluded returns the marker closing a markdown-treated inclusion.
func EndIncluded(treatment Treatment, source string) string {
	return fmt.Sprintf("<!-- <<<<<< END INCLUDED FILE (%s): SOURCE %s -->\n", treatment, source)
}

// RenderBlock wraps includee lines for the non-recursive treatments. Lines
// must already carry their terminators. Markdown and page TOC treatments
// are handled by the engine and return lines unchanged.
func RenderBlock(treatment Treatment, citedPath string, lines []string) []string {
	var open, close []string

	switch treatment.Kind {
	case TreatmentComment:
		open = []string{"<!--\n"}
		close = []string{"-->\n"}
	case TreatmentPre:
		open = []string{"<pre>\n"}
		close = []string{"</pre>\n"}
	case TreatmentCode:
		open = []string{
			fmt.Sprintf("```%s```:\n", filepath.Base(citedPath)),
			fmt.Sprintf("```%s\n", treatment.Language),
		}
		close = []string{"```\n"}
	default:
		return lines
	}

	out := make([]string, 0, len(open)+len(lines)+len(close))
	out = append(out, open...)
	out = append(out, lines...)
	out = append(out, close...)

	return out
}
