package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/lint"
	"github.com/yaklabco/novelint/pkg/lint/rules"
	"github.com/yaklabco/novelint/pkg/parser"
	"github.com/yaklabco/novelint/pkg/runner"
)

func newRunner() *runner.Runner {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	engine := lint.NewEngine(parser.New(string(config.FlavorCommonMark), string(config.SyntaxAuto)), registry)
	return runner.New(lint.NewPipeline(engine))
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestNew(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(lint.NewEngine(nil, lint.NewRegistry()))
	assert.Same(t, pipeline, runner.New(pipeline).Pipeline)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: root,
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasIssues())
}

func TestRunner_Run_Lint(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"clean.md":      "　吾輩は猫である。\n",
		"issues.txt":    "本文…\n　何？あれ\n",
		"sub/dashes.md": "　あ―\n",
	})

	for _, jobs := range []int{1, 4} {
		result, err := newRunner().Run(context.Background(), runner.Options{
			WorkingDir: root,
			Jobs:       jobs,
			Config:     config.NewConfig(),
		})
		require.NoError(t, err)

		require.Len(t, result.Files, 3)
		assert.Equal(t, filepath.Join(root, "clean.md"), result.Files[0].Path)
		assert.Equal(t, filepath.Join(root, "issues.txt"), result.Files[1].Path)
		assert.Equal(t, filepath.Join(root, "sub", "dashes.md"), result.Files[2].Path)

		stats := result.Stats
		assert.Equal(t, 3, stats.FilesDiscovered)
		assert.Equal(t, 3, stats.FilesProcessed)
		assert.Equal(t, 2, stats.FilesWithIssues)
		assert.Equal(t, 4, stats.DiagnosticsTotal)
		assert.Equal(t, 4, stats.DiagnosticsFixable)
		assert.Equal(t, 4, stats.DiagnosticsBySeverity[config.SeverityWarning])
		assert.Equal(t, map[string]int{"NS001": 1, "NS002": 1, "NS003": 1, "NS004": 1}, stats.DiagnosticsByRule)
		assert.True(t, result.HasIssues())
		assert.False(t, result.HasFailures())
		assert.Zero(t, stats.FilesModified)
	}
}

func TestRunner_Run_Fix(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"a.txt": "本文…\n",
		"b.md":  "　あ―\n",
	})

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.NoBackups = true

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Config: cfg})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.FilesModified)
	assert.Equal(t, 3, result.Stats.DiagnosticsFixed)
	assert.Zero(t, result.Stats.DiagnosticsTotal)

	a, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "　本文……\n", string(a))

	b, err := os.ReadFile(filepath.Join(root, "b.md"))
	require.NoError(t, err)
	assert.Equal(t, "　あ――\n", string(b))
}

func TestRunner_Run_SeverityError(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"a.md": "本文\n"})

	cfg := config.NewConfig()
	cfg.SeverityDefault = string(config.SeverityError)

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Config: cfg})
	require.NoError(t, err)
	assert.True(t, result.HasFailures())
}

func TestRunner_Run_FileError(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"ok.md":     "　本文\n",
		"binary.md": "abc\x00def",
	})

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Config: config.NewConfig()})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.True(t, result.HasErrors())
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesProcessed)

	failed := result.Files[0]
	assert.Equal(t, filepath.Join(root, "binary.md"), failed.Path)
	require.ErrorIs(t, failed.Error, lint.ErrParseFailure)
	assert.Nil(t, failed.Result)
}

func TestRunner_Run_MissingPath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	_, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: root,
		Paths:      []string{"gone.md"},
		Config:     config.NewConfig(),
	})
	require.ErrorIs(t, err, runner.ErrNoPathMatch)
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"a.md": "本文\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: root, Config: config.NewConfig()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Extensions = []string{".txt"}
	cfg.Ignore = []string{"drafts/**"}
	cfg.Jobs = 3

	opts := runner.OptionsFromConfig(cfg, []string{"book"})
	assert.Equal(t, []string{"book"}, opts.Paths)
	assert.Equal(t, []string{".txt"}, opts.Extensions)
	assert.Equal(t, []string{"drafts/**"}, opts.ExcludeGlobs)
	assert.Equal(t, 3, opts.Jobs)
	assert.Same(t, cfg, opts.Config)
}

func TestNewResult(t *testing.T) {
	t.Parallel()

	pipeline := newRunner().Pipeline
	pr, err := pipeline.ProcessContent(context.Background(), "stdin.txt",
		[]byte("　彼は言った。。\n"), config.NewConfig(), lint.DefaultPipelineOptions())
	require.NoError(t, err)

	result := runner.NewResult(
		runner.FileOutcome{Path: "stdin.txt", Result: pr},
		runner.FileOutcome{Path: "broken.txt", Error: lint.ErrParseFailure},
	)

	assert.Len(t, result.Files, 2)
	assert.Equal(t, 2, result.Stats.FilesDiscovered)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.DiagnosticsByRule["NS005"])
	assert.True(t, result.HasIssues())
	assert.True(t, result.HasErrors())
}
