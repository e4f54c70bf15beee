//go:build property
// +build property

package include

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/conneroisu/mdinclude/internal/config"
	"github.com/conneroisu/mdinclude/internal/errors"
	"github.com/conneroisu/mdinclude/internal/testutils"
)

// TestPragmaProperties checks the line scanner against generated input.
func TestPragmaProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("well-formed pragma lines round trip", prop.ForAll(
		func(label, path string) bool {
			p, ok := ScanLine(fmt.Sprintf("@[%s](%s)\n", label, path))
			return ok && p.Label == label && p.Path == path
		},
		gen.RegexMatch(`^:?[a-z_+]{1,12}$`),
		gen.RegexMatch(`^[a-zA-Z0-9_./ -]{1,30}$`),
	))

	properties.Property("text around a pragma disables it", prop.ForAll(
		func(prefix, suffix string) bool {
			if prefix == "" && suffix == "" {
				return true
			}
			_, ok := ScanLine(prefix + "@[markdown](body.md)" + suffix + "\n")
			return !ok
		},
		gen.RegexMatch(`^[a-z ]{0,5}$`),
		gen.RegexMatch(`^[a-z ]{0,5}$`),
	))

	properties.Property("every label has a treatment", prop.ForAll(
		func(label string) bool {
			tr := ParseTreatment(label)
			if tr.Kind == TreatmentCode && tr.Language != "" {
				return tr.Language == label
			}
			return tr.String() != "unknown"
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// TestExpansionProperties checks whole expansions over generated documents.
func TestExpansionProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("documents without pragmas pass through", prop.ForAll(
		func(words []string) bool {
			root := testutils.CreateTempProject(t)
			content := strings.Join(words, "\n") + "\n"
			testutils.WriteFile(t, root, "t.md", content)

			engine := NewEngine(root, config.Options{Pristine: true}, nil)
			text, err := engine.Render(context.Background(), "t.md")
			return err == nil && text == content
		},
		gen.SliceOfN(8, gen.RegexMatch(`^[a-zA-Z #*-]{0,20}$`)),
	))

	properties.Property("a chain closing on any level is circular", prop.ForAll(
		func(depth, back int) bool {
			back = back % depth
			root := testutils.CreateTempProject(t)

			for i := 0; i < depth; i++ {
				next := i + 1
				if i == depth-1 {
					next = back
				}
				testutils.WriteFile(t, root, fmt.Sprintf("f%d.md", i),
					fmt.Sprintf("line\n@[markdown](f%d.md)\n", next))
			}

			engine := NewEngine(root, config.Options{}, nil)
			_, err := engine.Render(context.Background(), "f0.md")

			return errors.IsCircularInclude(err) &&
				len(errors.BacktraceOf(err)) == depth
		},
		gen.IntRange(1, 6),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
