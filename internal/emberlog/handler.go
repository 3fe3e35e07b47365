package emberlog

import (
	"context"
	"log/slog"
)

// stageHandler wraps a slog.Handler the same way reusee-tai's Handler
// wraps one for spans: Handle reads ctx for a tag and adds it to the
// record before delegating, every other slog.Handler method (Enabled,
// WithAttrs, WithGroup) passes straight through via the embedded field.
type stageHandler struct {
	slog.Handler
}

func (h *stageHandler) Handle(ctx context.Context, record slog.Record) error {
	if stage, ok := stageOf(ctx); ok {
		record.Add("stage", string(stage))
	}
	return h.Handler.Handle(ctx, record)
}
