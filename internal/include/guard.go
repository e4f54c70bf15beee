package include

import (
	"github.com/conneroisu/mdinclude/internal/errors"
)

// Stack holds the chain of markdown inclusions currently being expanded,
// innermost last. No two entries share a canonical path, and none shares
// the canonical path of the template at the root of the expansion.
type Stack struct {
	resolver  Resolver
	root      string
	entries   []*Inclusion
	canonical []string
}

// NewStack creates an empty inclusion stack for an expansion of template.
// The template takes part in cycle detection but never appears in a
// backtrace. An empty template disables the root check.
func NewStack(r Resolver, template string) *Stack {
	s := &Stack{resolver: r}
	if template != "" {
		s.root, _ = r.Canonicalize(template)
	}

	return s
}

// CheckAndPush pushes inc unless its file is already being expanded, in
// which case it returns a CircularInclude error whose backtrace ends with
// inc and leaves the stack unchanged.
func (s *Stack) CheckAndPush(inc *Inclusion) error {
	canonical, ok := s.resolver.Canonicalize(inc.ResolvedPath)
	if ok {
		if canonical == s.root {
			return errors.NewCircularInclude(s.Backtrace(inc))
		}
		for _, existing := range s.canonical {
			if existing != "" && existing == canonical {
				return errors.NewCircularInclude(s.Backtrace(inc))
			}
		}
	}

	s.entries = append(s.entries, inc)
	s.canonical = append(s.canonical, canonical)

	return nil
}

// Pop removes the innermost inclusion.
func (s *Stack) Pop() {
	if len(s.entries) == 0 {
		return
	}

	s.entries = s.entries[:len(s.entries)-1]
	s.canonical = s.canonical[:len(s.canonical)-1]
}

// Len returns the stack depth.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Backtrace returns the stack, plus any extra inclusions appended as if
// pushed, innermost first.
func (s *Stack) Backtrace(extra ...*Inclusion) errors.Backtrace {
	chain := make([]*Inclusion, 0, len(s.entries)+len(extra))
	chain = append(chain, s.entries...)
	chain = append(chain, extra...)

	trace := make(errors.Backtrace, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		trace = append(trace, chain[i].frame(s.resolver))
	}

	return trace
}
