package testutil

import (
	"context"

	"github.com/arthur-debert/subpack/pkg/rsync"
	"github.com/stretchr/testify/mock"
)

// MockExecutor is a testify mock implementing rsync.Executor
type MockExecutor struct {
	mock.Mock
}

// Execute records the call and returns the configured exit code and error
func (m *MockExecutor) Execute(ctx context.Context, cmd rsync.Command) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

// Commands returns every command the mock was called with
func (m *MockExecutor) Commands() []rsync.Command {
	var cmds []rsync.Command
	for _, call := range m.Calls {
		if call.Method == "Execute" {
			cmds = append(cmds, call.Arguments.Get(1).(rsync.Command))
		}
	}
	return cmds
}
