// Every command loads the same configuration before it runs.
//
// # Available Commands
//
//   - expand: Expand a template, or every configured job
//   - check: Fail with a unified diff when a generated file is stale
//   - toc: Print a table of contents for a markdown file
//   - images: Point relative image references at raw GitHub URLs
//   - watch: Re-expand configured jobs when their sources change
//   - config: Write, validate or show the configuration
//   - version: Show build information
//
// # Command Examples
//
//	// Expand one template
//	mdinclude expand README.template.md README.md
//
//	// Expand without marker comments
//	mdinclude expand --pristine docs/guide.src.md docs/guide.md
//
//	// Verify committed outputs in CI
//	mdinclude check
//
//	// Re-expand every job while editing
//	mdinclude watch --verbose
package cmd
