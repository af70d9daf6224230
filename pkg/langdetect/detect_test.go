package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/novelint/pkg/langdetect"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    langdetect.Format
	}{
		{"markdown", "chapter01.md", "# 第一章\n", langdetect.FormatMarkdown},
		{"markdown long extension", "chapter01.markdown", "本文", langdetect.FormatMarkdown},
		{"plain text", "chapter01.txt", "　本文", langdetect.FormatText},
		{"no extension", "MANUSCRIPT", "　本文", langdetect.FormatText},
		{"binary", "cover.txt", "\x00\x01\x02", langdetect.FormatBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.DetectFormat(tt.path, []byte(tt.content)))
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, ok := langdetect.ParseFormat("text")
	assert.True(t, ok)
	assert.Equal(t, langdetect.FormatText, f)

	_, ok = langdetect.ParseFormat("auto")
	assert.False(t, ok)

	assert.Equal(t, "Markdown", langdetect.FormatMarkdown.Language())
	assert.Equal(t, "Text", langdetect.FormatText.Language())
}
