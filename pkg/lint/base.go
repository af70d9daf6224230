package lint

import "github.com/yaklabco/novelint/pkg/config"

// BaseRule provides the metadata half of the Rule interface. Embed it in
// rule implementations and supply Apply.
type BaseRule struct {
	id      string
	name    string
	desc    string
	tags    []string
	fixable bool
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, tags []string, fixable bool) BaseRule {
	return BaseRule{
		id:      id,
		name:    name,
		desc:    desc,
		tags:    tags,
		fixable: fixable,
	}
}

func (r *BaseRule) ID() string          { return r.id }
func (r *BaseRule) Name() string        { return r.name }
func (r *BaseRule) Description() string { return r.desc }
func (r *BaseRule) Tags() []string      { return r.tags }
func (r *BaseRule) CanFix() bool        { return r.fixable }

// DefaultEnabled returns true; every style rule is on unless configured off.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns warning.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}

// Apply reports nothing. Concrete rules override it.
func (r *BaseRule) Apply(_ *RuleContext) ([]Diagnostic, error) {
	return nil, nil
}
