//go:build property

package toc

import (
	"strings"
	"testing"
	"unicode"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestAnchorProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("anchors on a page are unique", prop.ForAll(
		func(titles []string) bool {
			gen := NewAnchorGenerator()
			seen := make(map[string]bool, len(titles))
			for _, title := range titles {
				anchor := gen.Anchor(title)
				if seen[anchor] {
					return false
				}
				seen[anchor] = true
			}
			return true
		},
		gen.SliceOf(gen.OneConstOf("Usage", "usage", "Usage-1", "Install", "A b", "a-b")),
	))

	properties.Property("slugs hold no spaces or upper case", prop.ForAll(
		func(title string) bool {
			slug := Slug(title)
			return !strings.ContainsAny(slug, " \t") &&
				strings.IndexFunc(slug, unicode.IsUpper) < 0
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
