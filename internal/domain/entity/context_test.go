package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowContextIsAdditive(t *testing.T) {
	wctx := NewWorkflowContext(map[string]any{KeyTarget: "example.com"})
	wctx.Merge(map[string]any{KeyObjective: "assess", KeyTarget: "example.org"})
	wctx.Set(AgentRoleRecon.OutputKey(), "done")

	assert.Equal(t, []string{KeyObjective, "recon_output", KeyTarget}, wctx.Keys())
	assert.Equal(t, 3, wctx.Len())

	snap := wctx.Snapshot()
	snap[KeyTarget] = "mutated"
	v, _ := wctx.Get(KeyTarget)
	assert.Equal(t, "example.org", v)
}

func TestStringValue(t *testing.T) {
	wctx := NewWorkflowContext(map[string]any{"s": "value", "empty": "", "n": 3})

	s, err := StringValue(wctx, "s", "def")
	require.NoError(t, err)
	assert.Equal(t, "value", s)

	s, err = StringValue(wctx, "missing", "def")
	require.NoError(t, err)
	assert.Equal(t, "def", s)

	s, err = StringValue(wctx, "empty", "def")
	require.NoError(t, err)
	assert.Equal(t, "def", s)

	_, err = StringValue(wctx, "n", "def")
	assert.Error(t, err)
}

func TestStringList(t *testing.T) {
	wctx := NewWorkflowContext(map[string]any{
		"typed":   []string{"sqli", "xss"},
		"generic": []any{"rce"},
		"mixed":   []any{"rce", 1},
		"scalar":  "sqli",
	})

	list, err := StringList(wctx, "typed")
	require.NoError(t, err)
	assert.Equal(t, []string{"sqli", "xss"}, list)

	list, err = StringList(wctx, "generic")
	require.NoError(t, err)
	assert.Equal(t, []string{"rce"}, list)

	list, err = StringList(wctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, list)

	_, err = StringList(wctx, "mixed")
	assert.Error(t, err)
	_, err = StringList(wctx, "scalar")
	assert.Error(t, err)
}
