package lint

import (
	"context"

	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/mdast"
	"github.com/yaklabco/novelint/pkg/novel"
)

// RuleContext provides all context needed by a rule to perform linting.
//
// RuleContext stores context.Context as a field (Ctx). It is a short-lived
// parameter object created per rule invocation, which keeps the Rule
// interface to a single Apply method.
type RuleContext struct {
	Ctx context.Context

	// File is the parsed FileSnapshot.
	File *mdast.FileSnapshot

	// Root is the AST root node (convenience alias for File.Root).
	Root *mdast.Node

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Style holds the resolved style options shared by every rule of a run.
	Style novel.Options

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry

	paragraphs *paragraphCache
}

// NewRuleContext creates a RuleContext for the given file and configuration.
// Style is resolved from cfg against the default registry; the engine
// replaces it with the options it resolved once for the run.
func NewRuleContext(
	ctx context.Context,
	file *mdast.FileSnapshot,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	var root *mdast.Node
	if file != nil {
		root = file.Root
	}

	return &RuleContext{
		Ctx:        ctx,
		File:       file,
		Root:       root,
		Config:     cfg,
		RuleConfig: ruleCfg,
		Style:      StyleOptions(cfg, DefaultRegistry),
		paragraphs: newParagraphCache(file),
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Paragraphs returns the file's paragraphs. The slice is shared between
// rules and must not be modified.
func (rc *RuleContext) Paragraphs() []novel.Paragraph {
	if rc.paragraphs == nil {
		rc.paragraphs = newParagraphCache(rc.File)
	}
	return rc.paragraphs.get()
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}
