package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/novelint/internal/logging"
	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/fix"
	"github.com/yaklabco/novelint/pkg/fsutil"
)

// DefaultFixPasses is the number of lint-and-fix rounds run per file.
// A fix can expose a new violation (appending "…" to an odd run next to
// another run, say); further rounds are opt-in through --fix-passes.
const DefaultFixPasses = 1

// Pipeline error types for categorization.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineResult is the outcome of running one file through the pipeline.
type PipelineResult struct {
	// FileResult holds the diagnostics of the last lint pass.
	*FileResult

	Path string

	// OriginalInfo is the file state before processing (nil for content
	// passed in memory).
	OriginalInfo *fsutil.FileInfo

	// Modified is true if fixes changed the content.
	Modified bool

	// ModifiedContent is the fixed content, nil if nothing changed.
	ModifiedContent []byte

	// Diff is set in dry-run mode.
	Diff *fix.Diff

	// Skipped is true if the file was left alone, with SkipReason saying why.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool

	// FixPasses counts the passes that applied edits.
	FixPasses int

	TotalEditsApplied int
}

// Summary returns a short human-readable status.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls pipeline behavior.
type PipelineOptions struct {
	Fix    bool
	DryRun bool
	Backup fsutil.BackupConfig

	// StrictRaceDetection compares content hashes, not just size and mtime,
	// before writing.
	StrictRaceDetection bool

	// MaxFixPasses bounds the lint-and-fix rounds; 0 means DefaultFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions returns lint-only options.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
		MaxFixPasses:        DefaultFixPasses,
	}
}

// Pipeline lints a file and, when asked, fixes it safely.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a pipeline around engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile runs the pipeline for a file on disk:
//  1. read and hash the file;
//  2. lint, and in fix mode apply the accepted edits in memory, for up to
//     MaxFixPasses rounds;
//  3. in dry-run mode, produce a diff and stop;
//  4. skip the file if it changed on disk meanwhile;
//  5. write a backup if enabled;
//  6. replace the file atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, original, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || opts.DryRun {
		return result, nil
	}

	modified, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, err
	}
	if modified {
		result.Skipped = true
		result.SkipReason = fsutil.ErrFileModified.Error()
		logging.FromContext(ctx).Warn("not writing fixes", logging.FieldPath, path, logging.FieldError, fsutil.ErrFileModified)
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	logging.FromContext(ctx).Debug("wrote fixes",
		logging.FieldPath, path,
		logging.FieldEdits, result.TotalEditsApplied,
		logging.FieldFixPasses, result.FixPasses)

	return result, nil
}

// ProcessContent runs the lint-and-fix rounds over in-memory content. It
// never touches the file system; in dry-run mode it attaches a diff.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	original []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	passes := opts.MaxFixPasses
	if passes <= 0 {
		passes = DefaultFixPasses
	}

	content := original
	for pass := 0; ; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		fileResult, err := p.Engine.LintFile(ctx, path, content, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		result.FileResult = fileResult

		if !opts.Fix || len(fileResult.Edits) == 0 || pass == passes {
			break
		}

		content = fix.ApplyEdits(content, fileResult.Edits)
		result.FixPasses++
		result.TotalEditsApplied += len(fileResult.Edits)
		result.Modified = true
	}

	if !result.Modified {
		return result, nil
	}

	result.ModifiedContent = content
	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, original, content)
	}

	return result, nil
}

func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	check := fsutil.CheckModifiedQuick
	if strict {
		check = fsutil.CheckModified
	}

	modified, err := check(ctx, info)
	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return modified, nil
}

// categorizeError wraps an error with the matching pipeline error type.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure)
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	mode, ok := fsutil.ParseBackupMode(cfg.Backups.Mode)
	if !ok {
		mode = fsutil.BackupModeSidecar
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    mode,
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:                 cfg.Fix,
		DryRun:              cfg.DryRun,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
		MaxFixPasses:        cfg.FixPasses,
	}
}
