// Package toc builds heading-based tables of contents for markdown pages.
//
// Headings come from the gomarkdown block parser, so headings inside
// fenced code, HTML comments and <pre> blocks are not reported. Anchors
// follow the GitHub convention: lowercase, punctuation dropped, spaces
// turned into hyphens, and repeated anchors suffixed with -1, -2, ...
package toc

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Heading is one heading found on a page.
type Heading struct {
	Level  int
	Title  string
	Anchor string
}

// AnchorGenerator hands out unique anchors for one page.
type AnchorGenerator struct {
	lower cases.Caser
	seen  map[string]int
}

// NewAnchorGenerator creates a generator with no anchors issued yet.
func NewAnchorGenerator() *AnchorGenerator {
	return &AnchorGenerator{
		lower: cases.Lower(language.Und),
		seen:  make(map[string]int),
	}
}

// Anchor returns the anchor for title, suffixed if it was issued before.
func (g *AnchorGenerator) Anchor(title string) string {
	base := slug(g.lower, title)

	n, dup := g.seen[base]
	g.seen[base] = n + 1
	if !dup {
		return base
	}

	return fmt.Sprintf("%s-%d", base, n)
}

// Slug converts a heading title to its anchor without de-duplication.
func Slug(title string) string {
	return slug(cases.Lower(language.Und), title)
}

func slug(lower cases.Caser, title string) string {
	var builder strings.Builder

	for _, r := range lower.String(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			builder.WriteRune(r)
		case r == ' ':
			builder.WriteRune('-')
		}
	}

	return builder.String()
}

// splitMark is written between the lines of a page to find where a table
// of contents sits once the page has been parsed.
const splitMark = "MDINCLUDEPAGETOCSPLITPOINT"

// ParseHeadings collects the headings in lines, which may carry their line
// terminators.
func ParseHeadings(lines []string) []Heading {
	return parse(lines, -1)
}

// ParseHeadingsAfter collects the headings that start at or after line at.
// Anchors are issued across the whole page, so a heading before at still
// claims its anchor.
func ParseHeadingsAfter(lines []string, at int) []Heading {
	if at < 0 {
		at = 0
	}
	if at > len(lines) {
		at = len(lines)
	}

	return parse(lines, at)
}

func parse(lines []string, at int) []Heading {
	var source strings.Builder
	for i, line := range lines {
		if i == at {
			source.WriteString(splitMark + "\n\n")
		}
		source.WriteString(line)
	}
	if at == len(lines) {
		source.WriteString("\n\n" + splitMark + "\n")
	}

	text := strings.ReplaceAll(source.String(), "\r\n", "\n")
	extensions := (parser.CommonExtensions | parser.LaxHTMLBlocks) &^ parser.HeadingIDs
	doc := markdown.Parse([]byte(text), parser.NewWithExtensions(extensions))

	gen := NewAnchorGenerator()
	headings := make([]Heading, 0)
	passed := at < 0

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}

		if heading, ok := node.(*ast.Heading); ok {
			title := headingText(heading)
			anchor := gen.Anchor(title)
			if passed {
				headings = append(headings, Heading{Level: heading.Level, Title: title, Anchor: anchor})
			}
			return ast.SkipChildren
		}

		if leaf := node.AsLeaf(); leaf != nil && bytes.Contains(leaf.Literal, []byte(splitMark)) {
			passed = true
		}

		return ast.GoToNext
	})

	return headings
}

// headingText joins the literal text of a heading, dropping inline markup.
func headingText(heading *ast.Heading) string {
	var builder strings.Builder

	ast.WalkFunc(heading, func(node ast.Node, entering bool) ast.WalkStatus {
		switch n := node.(type) {
		case *ast.Text:
			builder.Write(n.Literal)
		case *ast.Code:
			builder.Write(n.Literal)
		}
		return ast.GoToNext
	})

	return strings.TrimSpace(builder.String())
}

// Render formats headings as a nested bullet list, one line per heading
// with its terminator. Nesting is relative to the shallowest heading.
func Render(headings []Heading) []string {
	if len(headings) == 0 {
		return nil
	}

	minLevel := headings[0].Level
	for _, h := range headings {
		if h.Level < minLevel {
			minLevel = h.Level
		}
	}

	out := make([]string, 0, len(headings))
	for _, h := range headings {
		indent := strings.Repeat("  ", h.Level-minLevel)
		out = append(out, fmt.Sprintf("%s- [%s](#%s)\n", indent, h.Title, h.Anchor))
	}

	return out
}

// Build returns the rendered table of contents for lines.
func Build(lines []string) []string {
	return Render(ParseHeadings(lines))
}
