// Package images rewrites relative image references in a markdown document
// into absolute raw.githubusercontent.com URLs, so the document renders the
// same wherever it is published.
//
// Only image references that occupy a whole line are rewritten:
//
//	![alt](relative/path.png)
//	![alt](relative/path.png | width=200 align=right)
//
// The second form, with attributes after a bar, becomes an <img> tag.
package images

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/conneroisu/mdinclude/internal/config"
	"github.com/conneroisu/mdinclude/internal/errors"
	"github.com/conneroisu/mdinclude/internal/include"
	"github.com/conneroisu/mdinclude/internal/logging"
)

// OperationResolveImageURLs names the operation in generated-file markers.
const OperationResolveImageURLs = "resolve_image_urls"

const rawHost = "https://raw.githubusercontent.com"

var imagePattern = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)|]+?)[ \t]*(?:\|[ \t]*([^)]*?)[ \t]*)?\)$`)

// Reference is an image reference found on a line.
type Reference struct {
	Alt        string
	Source     string
	Attributes []Attribute
}

// Attribute is one key=value pair after the bar.
type Attribute struct {
	Key   string
	Value string
}

// ScanLine reports whether line is a whole-line image reference.
func ScanLine(line string) (Reference, bool) {
	line = strings.TrimRight(line, "\r\n")

	m := imagePattern.FindStringSubmatch(line)
	if m == nil {
		return Reference{}, false
	}

	return Reference{
		Alt:        m[1],
		Source:     m[2],
		Attributes: parseAttributes(m[3]),
	}, true
}

func parseAttributes(s string) []Attribute {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}

	attrs := make([]Attribute, 0, len(fields))
	for _, field := range fields {
		key, value, _ := strings.Cut(field, "=")
		attrs = append(attrs, Attribute{Key: key, Value: strings.Trim(value, `"'`)})
	}

	return attrs
}

// Resolver rewrites image references against one repository.
type Resolver struct {
	paths   include.Resolver
	user    string
	repo    string
	branch  string
	options config.Options
	logger  logging.Logger
}

// NewResolver creates a resolver for the repository named in cfg. The
// repository user and name are required.
func NewResolver(root string, cfg config.ImagesConfig, options config.Options, logger logging.Logger) (*Resolver, error) {
	var missing []string
	if cfg.RepoUser == "" {
		missing = append(missing, "images.repo_user")
	}
	if cfg.RepoName == "" {
		missing = append(missing, "images.repo_name")
	}
	if len(missing) > 0 {
		return nil, errors.NewMissingConfiguration(OperationResolveImageURLs, missing...)
	}

	if logger == nil {
		logger = logging.NewNopLogger()
	}

	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}

	return &Resolver{
		paths:   include.NewResolver(root),
		user:    cfg.RepoUser,
		repo:    cfg.RepoName,
		branch:  branch,
		options: options,
		logger:  logger.WithComponent("images"),
	}, nil
}

// Resolve rewrites inputPath and writes the result to outputPath
// atomically.
func (r *Resolver) Resolve(ctx context.Context, inputPath, outputPath string) (string, error) {
	text, err := r.Render(ctx, inputPath)
	if err != nil {
		return "", err
	}

	if err := atomic.WriteFile(r.paths.Abs(outputPath), strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("failed to write output %s: %w", outputPath, err)
	}

	return text, nil
}

// Render rewrites inputPath in memory.
func (r *Resolver) Render(ctx context.Context, inputPath string) (string, error) {
	abs := r.paths.Abs(inputPath)

	data, err := os.ReadFile(abs)
	if err != nil {
		return "", errors.NewUnreadableTemplate(inputPath, err)
	}

	lines := include.SplitLines(string(data))
	source := r.paths.Rel(abs)

	var builder strings.Builder
	if !r.options.Pristine {
		builder.WriteString(include.BeginGenerated(OperationResolveImageURLs, source))
	}

	for i, line := range lines {
		builder.WriteString(r.rewriteLine(ctx, abs, i+1, line))
	}

	if !r.options.Pristine {
		if n := len(lines); n > 0 && !strings.HasSuffix(lines[n-1], "\n") {
			builder.WriteString("\n")
		}
		builder.WriteString(include.EndGenerated(OperationResolveImageURLs, source))
	}

	return builder.String(), nil
}

func (r *Resolver) rewriteLine(ctx context.Context, document string, lineNo int, line string) string {
	ref, ok := ScanLine(line)
	if !ok || isAbsoluteURL(ref.Source) {
		return line
	}

	target := r.paths.Resolve(document, ref.Source)
	// A leading slash is relative to the repository root, as on GitHub.
	if strings.HasPrefix(ref.Source, "/") {
		target = r.paths.Abs(strings.TrimPrefix(ref.Source, "/"))
	}
	rel := r.paths.Rel(target)
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		r.logger.Warn(ctx, nil, "Image lies outside the repository, leaving it unchanged",
			"image", ref.Source,
			"location", fmt.Sprintf("%s:%d", r.paths.Rel(document), lineNo))
		return line
	}

	eol := line[len(strings.TrimRight(line, "\r\n")):]

	return r.render(ref, r.URL(rel)) + eol
}

// URL returns the raw content URL of a root-relative path.
func (r *Resolver) URL(rel string) string {
	u := url.URL{Path: "/" + strings.Join([]string{r.user, r.repo, r.branch, filepath.ToSlash(rel)}, "/")}
	return rawHost + u.EscapedPath()
}

func (r *Resolver) render(ref Reference, src string) string {
	if len(ref.Attributes) == 0 {
		return fmt.Sprintf("![%s](%s)", ref.Alt, src)
	}

	var builder strings.Builder
	builder.WriteString(`<img src="` + html.EscapeString(src) + `"`)
	builder.WriteString(` alt="` + html.EscapeString(ref.Alt) + `"`)
	for _, attr := range ref.Attributes {
		builder.WriteString(fmt.Sprintf(` %s="%s"`, html.EscapeString(attr.Key), html.EscapeString(attr.Value)))
	}
	builder.WriteString(">")

	return builder.String()
}

func isAbsoluteURL(src string) bool {
	if strings.HasPrefix(src, "//") {
		return true
	}

	u, err := url.Parse(src)
	return err == nil && u.Scheme != ""
}
