package logging

import "context"

type contextKey string

const (
	commandKey contextKey = "command"
	listKey    contextKey = "list"
)

// WithCommand adds the name of the running command to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// WithList adds the task list an operation targets to the context.
func WithList(ctx context.Context, list string) context.Context {
	return context.WithValue(ctx, listKey, list)
}

// GetCommand retrieves the command name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if v, ok := ctx.Value(commandKey).(string); ok {
		return v
	}
	return ""
}

// GetList retrieves the task list from the context.
// Returns empty string if not present.
func GetList(ctx context.Context) string {
	if v, ok := ctx.Value(listKey).(string); ok {
		return v
	}
	return ""
}
