package plugin

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/memscope/internal/ctxlog"
	"github.com/vk/memscope/internal/treegrid"
)

// ExecutionError reports a failure inside a plugin's analysis logic, with
// the underlying cause preserved for diagnostics.
type ExecutionError struct {
	Plugin string
	Err    error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("plugin %q failed during execution: %v", e.Plugin, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Execute invokes the constructed plugin's analysis logic exactly once.
// There is no retry and no suppression: a failure surfaces as an
// ExecutionError wrapping the cause, and no partial result grid is returned.
func Execute(ctx context.Context, def *Definition, instance Plugin) (*treegrid.TreeGrid, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Executing plugin.", "plugin", def.Name)

	grid, err := instance.Run(ctx)
	if err != nil {
		return nil, &ExecutionError{Plugin: def.Name, Err: err}
	}
	if grid == nil {
		return nil, &ExecutionError{Plugin: def.Name, Err: errors.New("plugin returned no result grid")}
	}
	logger.Debug("Plugin execution finished.", "plugin", def.Name, "rows", grid.RowCount())
	return grid, nil
}
