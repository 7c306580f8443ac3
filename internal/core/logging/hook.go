package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts the command and list from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if command := GetCommand(ctx); command != "" {
		e.Str("command", command)
	}

	if list := GetList(ctx); list != "" {
		e.Str("list", list)
	}
}
