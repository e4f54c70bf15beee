package testutils

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/mdinclude/internal/logging"
)

func TestCreateTempProject(t *testing.T) {
	projectDir := CreateTempProject(t)

	assert.DirExists(t, projectDir)
	resolved, err := filepath.EvalSymlinks(projectDir)
	require.NoError(t, err)
	assert.Equal(t, projectDir, resolved)
}

func TestWriteFileCreatesParents(t *testing.T) {
	projectDir := CreateTempProject(t)

	path := WriteFile(t, projectDir, "docs/nested/page.md", "# Page\n")

	assert.Equal(t, filepath.Join(projectDir, "docs", "nested", "page.md"), path)
	assert.Equal(t, "# Page\n", ReadFile(t, path))
}

func TestWriteFiles(t *testing.T) {
	projectDir := CreateTempProject(t)

	WriteFiles(t, projectDir, map[string]string{
		"a.md":     "a\n",
		"sub/b.md": "b\n",
	})

	assert.Equal(t, "a\n", ReadFile(t, filepath.Join(projectDir, "a.md")))
	assert.Equal(t, "b\n", ReadFile(t, filepath.Join(projectDir, "sub", "b.md")))
}

func TestRecordingLogger(t *testing.T) {
	rec := NewRecordingLogger()
	var logger logging.Logger = rec

	child := logger.WithComponent("include").With("template", "intro.md")
	child.Info(context.Background(), "starting")
	child.Warn(context.Background(), errors.New("eh"), "careful", "line", 3)

	entries := rec.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "include", entries[1].Fields["component"])
	assert.Equal(t, "intro.md", entries[1].Fields["template"])
	assert.Equal(t, 3, entries[1].Fields["line"])

	warnings := rec.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "careful", warnings[0].Msg)
	assert.EqualError(t, warnings[0].Err, "eh")
}
