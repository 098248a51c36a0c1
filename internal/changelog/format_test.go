package changelog

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapText(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text     string
		maxWidth int
		want     string
	}{
		"short text untouched": {
			text:     "fits on one line",
			maxWidth: 40,
			want:     "fits on one line",
		},
		"breaks at last space": {
			text:     "alpha beta gamma",
			maxWidth: 12,
			want:     "alpha beta\n    gamma",
		},
		"no space forces hard break": {
			text:     "abcdefghij",
			maxWidth: 4,
			want:     "abcd\n    efgh\n    ij",
		},
		"zero width disables wrapping": {
			text:     "anything at all",
			maxWidth: 0,
			want:     "anything at all",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, wrapText(tt.text, tt.maxWidth, "    "))
		})
	}
}

func TestWrapText_MultibyteStaysValidUTF8(t *testing.T) {
	t.Parallel()

	// A hard break inside an unbroken run of multibyte characters must
	// land on a rune boundary, never inside one.
	text := strings.Repeat("ü", 10) + strings.Repeat("日", 10)
	wrapped := wrapText(text, 7, "  ")

	assert.True(t, utf8.ValidString(wrapped))
	for _, line := range strings.Split(wrapped, "\n") {
		line = strings.TrimPrefix(line, "  ")
		assert.LessOrEqual(t, utf8.RuneCountInString(line), 7)
	}
	assert.Equal(t, text, strings.ReplaceAll(strings.ReplaceAll(wrapped, "\n", ""), "  ", ""))
}

func TestFormatEntries_Plain(t *testing.T) {
	t.Parallel()

	c := &Changelog{
		Title:      "Demo",
		Repository: "r",
		Versions: map[string]Release{
			"1.0.0": {Tag: "v1.0.0", Date: "2025-01-01"},
		},
	}
	entries := []Entry{
		{Text: "Fresh thing", Category: "added", Version: "unreleased"},
		{Text: "Old fix", Category: "fixed", Version: "1.0.0"},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatEntries(c, entries, &buf, FormatOptions{Plain: true, MaxWidth: 80}))
	out := buf.String()

	assert.Contains(t, out, "## Unreleased")
	assert.Contains(t, out, "### Added")
	assert.Contains(t, out, "  - Fresh thing")
	assert.Contains(t, out, "## 1.0.0 (2025-01-01)")
	assert.Contains(t, out, "  - Old fix")
}
