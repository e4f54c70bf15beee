package include

import (
	"github.com/conneroisu/mdinclude/internal/errors"
)

// Inclusion is one pragma occurrence being processed. It is never mutated
// after construction.
type Inclusion struct {
	// Description is the pragma line as written, without its terminator.
	Description  string
	IncluderPath string
	IncluderLine int
	CitedPath    string
	ResolvedPath string
	Treatment    Treatment
}

// NewInclusion builds the record for a pragma found at line (1-based) of
// includer. ResolvedPath is computed here and only here.
func NewInclusion(r Resolver, includer string, line int, description string, pragma Pragma) *Inclusion {
	return &Inclusion{
		Description:  description,
		IncluderPath: r.Abs(includer),
		IncluderLine: line,
		CitedPath:    pragma.Path,
		ResolvedPath: r.Resolve(includer, pragma.Path),
		Treatment:    ParseTreatment(pragma.Label),
	}
}

func (inc *Inclusion) frame(r Resolver) errors.Frame {
	return errors.Frame{
		IncluderPath: r.Rel(inc.IncluderPath),
		IncluderLine: inc.IncluderLine,
		Description:  inc.Description,
		IncludeePath: r.Rel(inc.ResolvedPath),
	}
}
