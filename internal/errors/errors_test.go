package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var twoLevels = Backtrace{
	{IncluderPath: "docs/b.md", IncluderLine: 4, Description: "@[markdown](../a.md)", IncludeePath: "a.md"},
	{IncluderPath: "a.md", IncluderLine: 1, Description: "@[markdown](docs/b.md)", IncludeePath: "docs/b.md"},
}

func TestBacktraceString(t *testing.T) {
	expected := "  Backtrace (innermost include first):\n" +
		"    Level 0:\n" +
		"      Includer:\n" +
		"        Location: docs/b.md:4\n" +
		"        Include description: @[markdown](../a.md)\n" +
		"      Includee:\n" +
		"        File path: a.md\n" +
		"    Level 1:\n" +
		"      Includer:\n" +
		"        Location: a.md:1\n" +
		"        Include description: @[markdown](docs/b.md)\n" +
		"      Includee:\n" +
		"        File path: docs/b.md"

	assert.Equal(t, expected, twoLevels.String())
	assert.Equal(t, 2, twoLevels.Levels())
	assert.Equal(t, "  Backtrace (innermost include first):", Backtrace{}.String())
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "unreadable template",
			err:      NewUnreadableTemplate("docs/README.src.md", os.ErrNotExist),
			expected: "Could not read input file.\n  \"docs/README.src.md\"",
		},
		{
			name:     "unreadable includee",
			err:      NewUnreadableIncludee(twoLevels, os.ErrNotExist),
			expected: "Could not read include file,\n" + twoLevels.String(),
		},
		{
			name:     "circular",
			err:      NewCircularInclude(twoLevels),
			expected: "Includes are circular:\n" + twoLevels.String(),
		},
		{
			name:     "missing configuration",
			err:      NewMissingConfiguration("resolve_image_urls", "images.repo_user", "images.repo_name"),
			expected: "resolve_image_urls requires configuration: images.repo_user, images.repo_name",
		},
		{
			name:     "unrecognized option",
			err:      NewUnrecognizedOption("verbose"),
			expected: "unrecognized option: verbose",
		},
		{
			name:     "unknown kind",
			err:      &Error{Kind: "other"},
			expected: "other error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestUnreadableIncludeeCitesInnermostPath(t *testing.T) {
	err := NewUnreadableIncludee(twoLevels, os.ErrNotExist)
	assert.Equal(t, "a.md", err.Path)
	assert.Empty(t, NewUnreadableIncludee(nil, os.ErrNotExist).Path)
}

func TestErrorsIsMatchesKind(t *testing.T) {
	wrapped := fmt.Errorf("expanding README: %w", NewCircularInclude(twoLevels))

	assert.ErrorIs(t, wrapped, ErrCircularInclude)
	assert.NotErrorIs(t, wrapped, ErrUnreadableInput)
	assert.True(t, IsCircularInclude(wrapped))
	assert.False(t, IsUnreadableInput(wrapped))
	assert.Equal(t, KindCircularInclude, KindOf(wrapped))
	assert.Equal(t, twoLevels, BacktraceOf(wrapped))
}

func TestErrorUnwrapsCause(t *testing.T) {
	err := NewUnreadableTemplate("x.md", os.ErrPermission)

	assert.ErrorIs(t, err, os.ErrPermission)
	assert.ErrorIs(t, err, ErrUnreadableInput)
	assert.Nil(t, NewCircularInclude(nil).Unwrap())
}

func TestHelpersOnForeignErrors(t *testing.T) {
	plain := errors.New("boom")

	assert.Equal(t, Kind(""), KindOf(plain))
	assert.Nil(t, BacktraceOf(plain))
	assert.False(t, IsMissingRequiredConfiguration(plain))
	assert.False(t, IsUnrecognizedOption(nil))
}

func TestKindHelpers(t *testing.T) {
	assert.True(t, IsMissingRequiredConfiguration(NewMissingConfiguration("op", "k")))
	assert.True(t, IsUnrecognizedOption(NewUnrecognizedOption("k")))

	var target *Error
	require.ErrorAs(t, fmt.Errorf("wrap: %w", NewUnrecognizedOption("k")), &target)
	assert.Equal(t, []string{"k"}, target.Keys)
}
