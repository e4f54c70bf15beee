package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/mdinclude/internal/config"
	"github.com/conneroisu/mdinclude/internal/errors"
	"github.com/conneroisu/mdinclude/internal/include"
	"github.com/conneroisu/mdinclude/internal/testutils"
)

// setupProject creates a project root holding files and points a fresh
// global Viper at it.
func setupProject(t *testing.T, files map[string]string) string {
	t.Helper()

	root := testutils.CreateTempProject(t)
	testutils.WriteFiles(t, root, files)

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("root", root)
	viper.Set("log.level", "error")

	return root
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	return cmd, &out
}

func setJobs(jobs ...[2]string) {
	list := make([]map[string]interface{}, 0, len(jobs))
	for _, job := range jobs {
		list = append(list, map[string]interface{}{"template": job[0], "output": job[1]})
	}
	viper.Set("jobs", list)
}

func TestExpandCommand(t *testing.T) {
	root := setupProject(t, map[string]string{
		"intro.md": "@[markdown](body.md)\n",
		"body.md":  "Hello\n",
	})
	viper.Set("pristine", true)

	cmd, out := newTestCommand()
	require.NoError(t, runExpand(cmd, []string{"intro.md", "README.md"}))

	assert.Equal(t, "Hello\n", testutils.ReadFile(t, filepath.Join(root, "README.md")))
	assert.Contains(t, out.String(), "Expanded intro.md -> README.md")
}

func TestExpandCommandRunsJobs(t *testing.T) {
	root := setupProject(t, map[string]string{
		"a.src.md": "A\n",
		"b.src.md": "@[go](main.go)\n",
		"main.go":  "package main\n",
	})
	setJobs([2]string{"a.src.md", "a.md"}, [2]string{"b.src.md", "out/b.md"})

	cmd, _ := newTestCommand()
	require.NoError(t, runExpand(cmd, nil))

	assert.Contains(t, testutils.ReadFile(t, filepath.Join(root, "a.md")), "BEGIN GENERATED FILE (include): SOURCE a.src.md")
	assert.Contains(t, testutils.ReadFile(t, filepath.Join(root, "out", "b.md")), "```main.go```:\n```go\npackage main\n```\n")
}

func TestExpandCommandErrors(t *testing.T) {
	t.Run("no jobs", func(t *testing.T) {
		setupProject(t, nil)

		cmd, _ := newTestCommand()
		err := runExpand(cmd, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no jobs configured")
	})

	t.Run("one argument", func(t *testing.T) {
		assert.Error(t, expandCmd.Args(expandCmd, []string{"only.md"}))
		assert.NoError(t, expandCmd.Args(expandCmd, []string{"t.md", "o.md"}))
		assert.NoError(t, expandCmd.Args(expandCmd, nil))
	})

	t.Run("unknown option", func(t *testing.T) {
		setupProject(t, map[string]string{"t.md": "x\n"})
		viper.Set("verbose", true)

		cmd, _ := newTestCommand()
		err := runExpand(cmd, []string{"t.md", "o.md"})
		require.Error(t, err)
		assert.True(t, errors.IsUnrecognizedOption(err))
	})

	t.Run("missing include", func(t *testing.T) {
		root := setupProject(t, map[string]string{"t.md": "@[markdown](gone.md)\n"})

		cmd, _ := newTestCommand()
		err := runExpand(cmd, []string{"t.md", "o.md"})
		require.Error(t, err)
		assert.True(t, errors.IsUnreadableInput(err))
		assert.NoFileExists(t, filepath.Join(root, "o.md"))
	})
}

func TestCheckCommand(t *testing.T) {
	root := setupProject(t, map[string]string{
		"t.md":    "@[markdown](body.md)\n",
		"body.md": "new text\n",
		"out.md":  "old text\n",
	})
	viper.Set("pristine", true)
	setJobs([2]string{"t.md", "out.md"})
	checkQuiet = false

	cmd, out := newTestCommand()
	err := runCheck(cmd, nil)
	require.ErrorIs(t, err, errStale)

	assert.Contains(t, out.String(), "--- a/out.md")
	assert.Contains(t, out.String(), "+++ b/out.md")
	assert.Contains(t, out.String(), "-old text")
	assert.Contains(t, out.String(), "+new text")
	assert.Equal(t, "old text\n", testutils.ReadFile(t, filepath.Join(root, "out.md")))

	testutils.WriteFile(t, root, "out.md", "new text\n")

	cmd, out = newTestCommand()
	require.NoError(t, runCheck(cmd, nil))
	assert.Contains(t, out.String(), "1 generated file(s) up to date")
}

func TestCheckCommandMissingOutput(t *testing.T) {
	setupProject(t, map[string]string{"t.md": "text\n"})
	checkQuiet = true
	defer func() { checkQuiet = false }()

	cmd, out := newTestCommand()
	err := runCheck(cmd, []string{"t.md", "never-written.md"})
	require.ErrorIs(t, err, errStale)
	assert.NotContains(t, out.String(), "+++")
}

func TestJobOutputsAreSlashSeparated(t *testing.T) {
	root := t.TempDir()
	jobs := []config.Job{
		{Template: "a.src.md", Output: "a.md"},
		{Template: "b.src.md", Output: filepath.Join("docs", "out", "b.md")},
		{Template: "c.src.md", Output: filepath.Join(root, "nested", "c.md")},
	}

	assert.Equal(t, []string{"a.md", "docs/out/b.md", "nested/c.md"},
		jobOutputs(include.NewResolver(root), jobs))
}

func TestTOCCommand(t *testing.T) {
	setupProject(t, map[string]string{
		"doc.md": "# Title\n## Install\n### Linux\n## Usage\n",
	})

	tocMinLevel = 2
	defer func() { tocMinLevel = 1 }()

	cmd, out := newTestCommand()
	require.NoError(t, runTOC(cmd, []string{"doc.md"}))
	assert.Equal(t, "- [Install](#install)\n  - [Linux](#linux)\n- [Usage](#usage)\n", out.String())
}

func TestImagesCommand(t *testing.T) {
	root := setupProject(t, map[string]string{"README.src.md": "![Logo](img/logo.png)\n"})
	viper.Set("pristine", true)

	cmd, _ := newTestCommand()
	err := runImages(cmd, []string{"README.src.md", "README.md"})
	require.Error(t, err)
	assert.True(t, errors.IsMissingRequiredConfiguration(err))

	imagesUser, imagesRepo = "octo", "docs"
	defer func() { imagesUser, imagesRepo = "", "" }()

	require.NoError(t, runImages(cmd, []string{"README.src.md", "README.md"}))
	assert.Equal(t, "![Logo](https://raw.githubusercontent.com/octo/docs/main/img/logo.png)\n",
		testutils.ReadFile(t, filepath.Join(root, "README.md")))
}

func TestConfigInitAndValidate(t *testing.T) {
	root := setupProject(t, nil)
	chdir(t, root)

	configOutput = defaultConfigFile
	configForce = false
	configFile = ""
	configStrict = false

	cmd, out := newTestCommand()
	require.NoError(t, runConfigInit(cmd, nil))
	assert.FileExists(t, filepath.Join(root, defaultConfigFile))
	assert.Contains(t, testutils.ReadFile(t, filepath.Join(root, defaultConfigFile)), "debounce: 300ms")

	err := runConfigInit(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out.Reset()
	require.NoError(t, runConfigValidate(cmd, nil))
	assert.Contains(t, out.String(), "Configuration is valid")
}

func TestConfigValidateReportsProblems(t *testing.T) {
	root := setupProject(t, map[string]string{
		"bad.yml": "jobs:\n  - template: README.md\n    output: README.md\nlog:\n  format: xml\n",
	})
	chdir(t, root)

	configFile = "bad.yml"
	defer func() { configFile = "" }()

	cmd, out := newTestCommand()
	err := runConfigValidate(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, out.String(), "jobs[0].output")
	assert.Contains(t, out.String(), "log.format")
}

func TestConfigShow(t *testing.T) {
	setupProject(t, nil)
	viper.Set("images.repo_user", "octo")

	cmd, out := newTestCommand()
	require.NoError(t, runConfigShow(cmd, nil))

	assert.Contains(t, out.String(), "repo_user: octo")
	assert.Contains(t, out.String(), "branch: main")
	assert.Contains(t, out.String(), "**/*.md")
}

func TestVersionCommand(t *testing.T) {
	cmd, out := newTestCommand()
	cmd.Flags().Bool("detailed", false, "")

	versionFormat = "text"
	require.NoError(t, runVersionCommand(cmd, nil))
	assert.Contains(t, out.String(), "mdinclude ")

	out.Reset()
	versionFormat = "yaml"
	defer func() { versionFormat = "text" }()
	require.NoError(t, runVersionCommand(cmd, nil))
	assert.Contains(t, out.String(), "go_version:")

	versionFormat = "xml"
	assert.Error(t, runVersionCommand(cmd, nil))
}

// chdir changes the working directory to dir for the duration of the test,
// restoring the previous directory on cleanup (equivalent of Go 1.24 t.Chdir).
func chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
