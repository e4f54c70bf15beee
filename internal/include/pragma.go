package include

import (
	"regexp"
	"strings"
)

// pragmaPattern matches a whole line of the form @[label](path). Pragmas
// sharing a line with other text are deliberately not recognized.
var pragmaPattern = regexp.MustCompile(`^@\[([^\]]+)\]\(([^)]+)\)$`)

// Pragma is a recognized inclusion directive.
type Pragma struct {
	Label string
	Path  string
}

// ScanLine reports whether line is an inclusion pragma and, if so, returns
// its treatment label and cited path. A trailing line terminator is ignored.
func ScanLine(line string) (Pragma, bool) {
	m := pragmaPattern.FindStringSubmatch(trimEOL(line))
	if m == nil {
		return Pragma{}, false
	}

	return Pragma{Label: m[1], Path: m[2]}, true
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// TreatmentKind selects how an includee is rendered.
type TreatmentKind int

const (
	TreatmentMarkdown TreatmentKind = iota
	TreatmentComment
	TreatmentPre
	TreatmentCode
	TreatmentPageTOC
)

// String returns the string representation of the TreatmentKind
func (k TreatmentKind) String() string {
	switch k {
	case TreatmentMarkdown:
		return "markdown"
	case TreatmentComment:
		return "comment"
	case TreatmentPre:
		return "pre"
	case TreatmentCode:
		return "code"
	case TreatmentPageTOC:
		return "page_toc"
	default:
		return "unknown"
	}
}

// Treatment is a parsed pragma label. Language is only meaningful for
// TreatmentCode, where the empty string means a generic fenced block.
type Treatment struct {
	Kind     TreatmentKind
	Language string

	// Deprecated is set when the label used the old "verbatim" spelling.
	Deprecated bool
}

// ParseTreatment maps a pragma label to a Treatment. Reserved words may be
// written bare or with a leading colon; any other label is a fence language
// tag and is kept verbatim.
func ParseTreatment(label string) Treatment {
	switch strings.TrimPrefix(label, ":") {
	case "markdown":
		return Treatment{Kind: TreatmentMarkdown}
	case "verbatim":
		return Treatment{Kind: TreatmentMarkdown, Deprecated: true}
	case "comment":
		return Treatment{Kind: TreatmentComment}
	case "pre":
		return Treatment{Kind: TreatmentPre}
	case "code_block":
		return Treatment{Kind: TreatmentCode}
	case "page_toc":
		return Treatment{Kind: TreatmentPageTOC}
	default:
		return Treatment{Kind: TreatmentCode, Language: label}
	}
}

// String returns the name used for the treatment in output markers.
func (t Treatment) String() string {
	if t.Kind == TreatmentCode {
		if t.Language == "" {
			return "code_block"
		}
		return t.Language
	}

	return t.Kind.String()
}
