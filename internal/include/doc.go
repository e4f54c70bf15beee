// Package include expands inclusion pragmas in markdown templates.
//
// A pragma is a line consisting solely of
//
//	@[label](path)
//
// The label selects the treatment of the cited file:
//
//   - markdown, :markdown: the file is inserted and expanded recursively
//   - verbatim, :verbatim: deprecated spelling of markdown
//   - comment, :comment: wrapped in an HTML comment
//   - pre, :pre: wrapped in a <pre> element
//   - code_block, :code_block: fenced code block without a language
//   - page_toc, :page_toc: a table of contents for the rest of the page,
//     with the path slot used as its title line
//   - anything else: fenced code block tagged with the label
//
// Relative paths are resolved against the directory of the file containing
// the pragma. Only markdown treatments recurse, so only they can form a
// cycle; cycles are detected on canonical paths, with the template itself
// as the root of every chain.
//
// Unless the engine runs in pristine mode, the output is framed by
// generated-file markers and every markdown inclusion by included-file
// markers. Expansion either succeeds completely or leaves the output file
// untouched.
package include
