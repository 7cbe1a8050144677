package entity

import (
	"fmt"
	"sort"
)

const (
	KeyObjective       = "objective"
	KeyTarget          = "target"
	KeyPreviousResults = "previous_results"
	KeyScanType        = "scan_type"
	KeyVulnerabilities = "vulnerabilities"
	KeyFindings        = "findings"
	KeyReportDate      = "report_date"
	KeyRunID           = "run_id"
)

// ContextView is the read-only side of a WorkflowContext handed to Think.
type ContextView interface {
	Get(key string) (any, bool)
	Keys() []string
	Snapshot() map[string]any
}

// WorkflowContext is the additive key/value accumulator shared by the stages
// of one run. Keys can be added or overwritten but never removed.
type WorkflowContext struct {
	values map[string]any
}

var _ ContextView = (*WorkflowContext)(nil)

func NewWorkflowContext(seed map[string]any) *WorkflowContext {
	c := &WorkflowContext{values: make(map[string]any, len(seed)+4)}
	c.Merge(seed)
	return c
}

func (c *WorkflowContext) Set(key string, value any) {
	c.values[key] = value
}

func (c *WorkflowContext) Merge(values map[string]any) {
	for k, v := range values {
		c.values[k] = v
	}
}

func (c *WorkflowContext) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Keys returns the keys in sorted order.
func (c *WorkflowContext) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *WorkflowContext) Len() int {
	return len(c.values)
}

// Snapshot returns a shallow copy of the current values.
func (c *WorkflowContext) Snapshot() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// StringValue reads a string key. A missing key yields def; a present value
// of another type is an error.
func StringValue(view ContextView, key, def string) (string, error) {
	v, ok := view.Get(key)
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("context key %q: expected string, got %T", key, v)
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// StringList reads a list of strings, accepting []string or []any of strings.
func StringList(view ContextView, key string) ([]string, error) {
	v, ok := view.Get(key)
	if !ok || v == nil {
		return nil, nil
	}
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("context key %q: item %d: expected string, got %T", key, i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("context key %q: expected list, got %T", key, v)
	}
}
