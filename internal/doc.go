// Package internal contains the implementation packages for mdinclude.
//
// # Package Organization
//
//   - include: pragma scanning, path resolution, cycle detection and the
//     expansion engine
//   - toc: heading extraction and table-of-contents rendering
//   - images: rewriting of relative image references to raw GitHub URLs
//   - config: Viper-backed configuration with validation
//   - errors: the closed set of expansion failures and their backtraces
//   - logging: structured logging on top of log/slog
//   - watcher: debounced file system monitoring
//   - version: build information
//   - testutils: fixtures shared by the tests
//
// # Inter-Package Communication
//
// The include engine depends only on config.Options, errors and logging.
// The command layer loads a config.Config, builds a logger from it and
// hands both to the engine, the image resolver and the watcher. The page
// TOC pragma is rendered by the engine through the toc package.
//
// # Testing Strategy
//
//   - Table-driven unit tests with testify
//   - Fixture projects under t.TempDir via testutils
//   - Property tests with gopter, behind the "property" build tag
package internal
