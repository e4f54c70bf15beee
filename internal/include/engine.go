package include

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/conneroisu/mdinclude/internal/config"
	"github.com/conneroisu/mdinclude/internal/errors"
	"github.com/conneroisu/mdinclude/internal/logging"
	"github.com/conneroisu/mdinclude/internal/toc"
)

// OperationInclude names the include operation in generated-file markers.
const OperationInclude = "include"

// Engine expands include pragmas. It holds only immutable settings; the
// output buffer and inclusion stack of an expansion are created per call
// and passed down the recursion explicitly.
type Engine struct {
	resolver Resolver
	options  config.Options
	logger   logging.Logger
}

// NewEngine creates an engine resolving relative paths against root.
func NewEngine(root string, options config.Options, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	return &Engine{
		resolver: NewResolver(root),
		options:  options,
		logger:   logger.WithComponent("include"),
	}
}

// Resolver returns the path resolver used by the engine.
func (e *Engine) Resolver() Resolver {
	return e.resolver
}

// Expand renders templatePath and writes the result to outputPath in a
// single atomic write. Nothing is written when expansion fails.
func (e *Engine) Expand(ctx context.Context, templatePath, outputPath string) (string, error) {
	text, err := e.Render(ctx, templatePath)
	if err != nil {
		return "", err
	}

	if err := atomic.WriteFile(e.resolver.Abs(outputPath), strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("failed to write output %s: %w", outputPath, err)
	}

	e.logger.Debug(ctx, "Wrote expanded document", "template", templatePath, "output", outputPath)

	return text, nil
}

// Render expands templatePath in memory and returns the merged document.
func (e *Engine) Render(ctx context.Context, templatePath string) (string, error) {
	absTemplate := e.resolver.Abs(templatePath)

	lines, err := readLines(absTemplate)
	if err != nil {
		return "", errors.NewUnreadableTemplate(templatePath, err)
	}

	source := e.resolver.Rel(absTemplate)
	doc := newDocument()
	stack := NewStack(e.resolver, absTemplate)

	if !e.options.Pristine {
		doc.append(BeginGenerated(OperationInclude, source))
	}

	if err := e.expandLines(ctx, absTemplate, lines, doc, stack); err != nil {
		return "", err
	}

	if !e.options.Pristine {
		doc.terminate()
		doc.append(EndGenerated(OperationInclude, source))
	}

	return doc.String(), nil
}

// expandLines scans one document, appending pass-through lines and the
// rendering of every pragma to doc.
func (e *Engine) expandLines(ctx context.Context, includer string, lines []string, doc *document, stack *Stack) error {
	for i, line := range lines {
		pragma, ok := ScanLine(line)
		if !ok {
			doc.append(line)
			continue
		}

		inc := NewInclusion(e.resolver, includer, i+1, trimEOL(line), pragma)
		if inc.Treatment.Deprecated {
			e.logger.Warn(ctx, nil, "Treatment 'verbatim' is deprecated, use 'markdown'",
				"location", fmt.Sprintf("%s:%d", e.resolver.Rel(includer), inc.IncluderLine))
		}

		if err := e.include(ctx, inc, doc, stack); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) include(ctx context.Context, inc *Inclusion, doc *document, stack *Stack) error {
	switch inc.Treatment.Kind {
	case TreatmentPageTOC:
		if !doc.markTOC(inc.CitedPath) {
			e.logger.Warn(ctx, nil, "Ignoring additional page TOC pragma",
				"location", fmt.Sprintf("%s:%d", e.resolver.Rel(inc.IncluderPath), inc.IncluderLine))
		}
		return nil

	case TreatmentMarkdown:
		if err := stack.CheckAndPush(inc); err != nil {
			return err
		}
		defer stack.Pop()

		lines, err := e.readIncludee(ctx, inc, stack.Backtrace())
		if err != nil {
			return err
		}

		if !e.options.Pristine {
			doc.append(BeginIncluded(inc.Treatment, inc.CitedPath))
		}
		if err := e.expandLines(ctx, inc.ResolvedPath, lines, doc, stack); err != nil {
			return err
		}
		if !e.options.Pristine {
			doc.append(EndIncluded(inc.Treatment, inc.CitedPath))
		}
		return nil

	default:
		lines, err := e.readIncludee(ctx, inc, stack.Backtrace(inc))
		if err != nil {
			return err
		}

		doc.append(RenderBlock(inc.Treatment, inc.CitedPath, lines)...)
		return nil
	}
}

// readIncludee reads the cited file. A final line without a terminator is
// reported and terminated so following output starts on its own line.
func (e *Engine) readIncludee(ctx context.Context, inc *Inclusion, trace errors.Backtrace) ([]string, error) {
	lines, err := readLines(inc.ResolvedPath)
	if err != nil {
		return nil, errors.NewUnreadableIncludee(trace, err)
	}

	if n := len(lines); n > 0 && !strings.HasSuffix(lines[n-1], "\n") {
		e.logger.Warn(ctx, nil, "Last line of included file has no line terminator",
			"includee", e.resolver.Rel(inc.ResolvedPath),
			"location", fmt.Sprintf("%s:%d", e.resolver.Rel(inc.IncluderPath), inc.IncluderLine))
		lines[n-1] += "\n"
	}

	return lines, nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return SplitLines(string(data)), nil
}

// SplitLines splits text into lines that keep their terminators. A final
// line without a terminator is kept as is.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// document is the output buffer shared by every level of one expansion.
type document struct {
	lines    []string
	tocAt    int
	tocTitle string
}

func newDocument() *document {
	return &document{tocAt: -1}
}

func (d *document) append(lines ...string) {
	d.lines = append(d.lines, lines...)
}

// terminate ends an unterminated last line so a marker can follow it.
func (d *document) terminate() {
	if n := len(d.lines); n > 0 && !strings.HasSuffix(d.lines[n-1], "\n") {
		d.lines[n-1] += "\n"
	}
}

// markTOC records where the page TOC goes. Only the first call wins.
func (d *document) markTOC(title string) bool {
	if d.tocAt >= 0 {
		return false
	}

	d.tocAt = len(d.lines)
	d.tocTitle = title

	return true
}

func (d *document) String() string {
	if d.tocAt < 0 {
		return strings.Join(d.lines, "")
	}

	page := make([]string, 0, len(d.lines)+1)
	page = append(page, d.lines[:d.tocAt]...)
	page = append(page, d.tocTitle+"\n")
	page = append(page, d.lines[d.tocAt:]...)

	// Headings before the TOC still take part in anchor numbering.
	split := d.tocAt + 1
	entries := toc.Render(toc.ParseHeadingsAfter(page, split))

	out := make([]string, 0, len(page)+len(entries))
	out = append(out, page[:split]...)
	out = append(out, entries...)
	out = append(out, page[split:]...)

	return strings.Join(out, "")
}
