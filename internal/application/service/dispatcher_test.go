package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"redcalibur/internal/domain/entity"
	"redcalibur/internal/infrastructure/logger"
)

type mockTool struct {
	mock.Mock
	name entity.ToolName
}

func (m *mockTool) Name() entity.ToolName { return m.name }
func (m *mockTool) Description() string   { return "mock" }

func (m *mockTool) Invoke(ctx context.Context, params entity.Params, view entity.ContextView) (*entity.ToolResult, error) {
	args := m.Called(params.Format())
	res, _ := args.Get(0).(*entity.ToolResult)
	return res, args.Error(1)
}

func newDispatcher(cfg DispatcherConfig, tools ...*mockTool) *ToolDispatcher {
	registry := NewToolRegistry()
	for _, tool := range tools {
		registry.Register(tool)
	}
	return NewToolDispatcher(registry, logger.NewNop(), cfg)
}

func whoisAction() entity.AgentAction {
	return entity.AgentAction{
		Tool:       entity.ToolWhois,
		Parameters: entity.NewParams("target", "example.com", "verbose", true),
	}
}

func TestDispatcherRoutesByName(t *testing.T) {
	whois := &mockTool{name: entity.ToolWhois}
	whois.On("Invoke", "target=example.com verbose=true").
		Return(&entity.ToolResult{Success: true, Message: "ok"}, nil).Once()
	nmap := &mockTool{name: entity.ToolNmap}

	d := newDispatcher(DispatcherConfig{}, whois, nmap)
	result, err := d.Invoke(context.Background(), whoisAction(), entity.NewWorkflowContext(nil))

	require.NoError(t, err)
	assert.Equal(t, "ok", result.Message)
	whois.AssertExpectations(t)
	nmap.AssertNotCalled(t, "Invoke", mock.Anything)
}

func TestDispatcherUnknownTool(t *testing.T) {
	d := newDispatcher(DispatcherConfig{})

	_, err := d.Invoke(context.Background(), whoisAction(), entity.NewWorkflowContext(nil))
	assert.ErrorIs(t, err, entity.ErrUnknownTool)
}

func TestDispatcherWrapsToolError(t *testing.T) {
	cause := errors.New("timeout")
	whois := &mockTool{name: entity.ToolWhois}
	whois.On("Invoke", mock.Anything).Return(nil, cause)

	d := newDispatcher(DispatcherConfig{}, whois)
	_, err := d.Invoke(context.Background(), whoisAction(), entity.NewWorkflowContext(nil))

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "tool whois")
}

func TestDispatcherRejectsNilResult(t *testing.T) {
	whois := &mockTool{name: entity.ToolWhois}
	whois.On("Invoke", mock.Anything).Return(nil, nil)

	d := newDispatcher(DispatcherConfig{}, whois)
	_, err := d.Invoke(context.Background(), whoisAction(), entity.NewWorkflowContext(nil))
	assert.Error(t, err)
}

func TestDispatcherPacing(t *testing.T) {
	whois := &mockTool{name: entity.ToolWhois}
	whois.On("Invoke", mock.Anything).Return(&entity.ToolResult{Success: true}, nil)

	d := newDispatcher(DispatcherConfig{RequestDelay: 50 * time.Millisecond, Burst: 1}, whois)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := d.Invoke(context.Background(), whoisAction(), entity.NewWorkflowContext(nil))
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestDispatcherWaitCancelled(t *testing.T) {
	whois := &mockTool{name: entity.ToolWhois}
	whois.On("Invoke", mock.Anything).Return(&entity.ToolResult{Success: true}, nil)

	d := newDispatcher(DispatcherConfig{RequestDelay: time.Hour, Burst: 1}, whois)
	_, err := d.Invoke(context.Background(), whoisAction(), entity.NewWorkflowContext(nil))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = d.Invoke(ctx, whoisAction(), entity.NewWorkflowContext(nil))
	assert.Error(t, err)
	whois.AssertNumberOfCalls(t, "Invoke", 1)
}
