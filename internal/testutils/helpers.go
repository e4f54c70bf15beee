// Package testutils holds fixtures shared by the package tests.
package testutils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conneroisu/mdinclude/internal/logging"
)

// CreateTempProject creates a temporary project root. The returned path has
// symlinks resolved so tests can compare it with canonical paths.
func CreateTempProject(t *testing.T) string {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	return root
}

// WriteFile writes content to name under dir, creating parent directories,
// and returns the absolute path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

// WriteFiles writes every name/content pair under dir.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
}

// ReadFile returns the content of path, failing the test if it is missing.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

// LogEntry is one call captured by RecordingLogger.
type LogEntry struct {
	Level  logging.LogLevel
	Msg    string
	Err    error
	Fields map[string]interface{}
}

// RecordingLogger is a logging.Logger that keeps every entry in memory.
type RecordingLogger struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	fields  map[string]interface{}
}

// NewRecordingLogger creates an empty recording logger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{
		mu:      &sync.Mutex{},
		entries: &[]LogEntry{},
		fields:  map[string]interface{}{},
	}
}

func (r *RecordingLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	r.record(logging.LevelDebug, nil, msg, fields)
}

func (r *RecordingLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	r.record(logging.LevelInfo, nil, msg, fields)
}

func (r *RecordingLogger) Warn(ctx context.Context, err error, msg string, fields ...interface{}) {
	r.record(logging.LevelWarn, err, msg, fields)
}

func (r *RecordingLogger) Error(ctx context.Context, err error, msg string, fields ...interface{}) {
	r.record(logging.LevelError, err, msg, fields)
}

func (r *RecordingLogger) With(fields ...interface{}) logging.Logger {
	merged := make(map[string]interface{}, len(r.fields)+len(fields)/2)
	for k, v := range r.fields {
		merged[k] = v
	}
	addFields(merged, fields)

	return &RecordingLogger{mu: r.mu, entries: r.entries, fields: merged}
}

func (r *RecordingLogger) WithComponent(component string) logging.Logger {
	return r.With("component", component)
}

// Entries returns a copy of the captured entries.
func (r *RecordingLogger) Entries() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]LogEntry, len(*r.entries))
	copy(out, *r.entries)

	return out
}

// Warnings returns the captured warnings.
func (r *RecordingLogger) Warnings() []LogEntry {
	var out []LogEntry
	for _, entry := range r.Entries() {
		if entry.Level == logging.LevelWarn {
			out = append(out, entry)
		}
	}

	return out
}

func (r *RecordingLogger) record(level logging.LogLevel, err error, msg string, fields []interface{}) {
	all := make(map[string]interface{}, len(r.fields)+len(fields)/2)
	for k, v := range r.fields {
		all[k] = v
	}
	addFields(all, fields)

	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, LogEntry{Level: level, Msg: msg, Err: err, Fields: all})
}

func addFields(dst map[string]interface{}, fields []interface{}) {
	for i := 0; i+1 < len(fields); i += 2 {
		dst[fmt.Sprint(fields[i])] = fields[i+1]
	}
}
