package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/lint"
	"github.com/yaklabco/novelint/pkg/novel"
	"github.com/yaklabco/novelint/pkg/parser/goldmark"
	"github.com/yaklabco/novelint/pkg/parser/plaintext"
)

func TestParagraphs_Markdown(t *testing.T) {
	t.Parallel()

	content := "本文\n\n> 引用\n\n- 項目\n\n# 見出し\n\n```\nコード\n```\n"

	snapshot, err := goldmark.New(string(config.FlavorCommonMark)).Parse(context.Background(), "a.md", []byte(content))
	require.NoError(t, err)

	got := lint.Paragraphs(snapshot)
	want := []novel.Paragraph{
		{Text: "本文", Offset: 0},
		{Text: "引用", Offset: len("本文\n\n> "), Quoted: true},
		{Text: "項目", Offset: len("本文\n\n> 引用\n\n- ")},
	}
	assert.Equal(t, want, got)
}

func TestParagraphs_MultiLine(t *testing.T) {
	t.Parallel()

	content := "　一行目\n二行目\n"

	snapshot, err := goldmark.New(string(config.FlavorCommonMark)).Parse(context.Background(), "a.md", []byte(content))
	require.NoError(t, err)

	got := lint.Paragraphs(snapshot)
	require.Len(t, got, 1)
	assert.Equal(t, "　一行目\n二行目", got[0].Text)
}

func TestParagraphs_PlainText(t *testing.T) {
	t.Parallel()

	content := "　一段落目\n\n「二段落目」\n　\n三段落目"

	snapshot, err := plaintext.New().Parse(context.Background(), "a.txt", []byte(content))
	require.NoError(t, err)

	got := lint.Paragraphs(snapshot)
	require.Len(t, got, 3)
	assert.Equal(t, "「二段落目」", got[1].Text)
	assert.Equal(t, len("　一段落目\n\n"), got[1].Offset)
	assert.Equal(t, "三段落目", got[2].Text)
	for _, p := range got {
		assert.False(t, p.Quoted)
	}
}

func TestParagraphs_NilFile(t *testing.T) {
	t.Parallel()

	assert.Nil(t, lint.Paragraphs(nil))
}
