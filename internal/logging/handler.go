// Package logging provides a custom slog handler that mirrors WARN and ERROR
// level records into the activity_logs table so operational problems show up
// in the admin panel's activity view.
package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
)

// ActivityLogHandler is a slog.Handler that wraps another handler and also
// writes WARN and ERROR level logs to the activity log.
type ActivityLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level // Minimum level to mirror (default: WARN)
}

// NewActivityLogHandler creates a handler that wraps the given handler.
// Logs at WARN level and above are written to both the wrapped handler and
// the activity log.
func NewActivityLogHandler(inner slog.Handler, db *sql.DB) *ActivityLogHandler {
	return &ActivityLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *ActivityLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *ActivityLogHandler) Handle(ctx context.Context, r slog.Record) error {
	// Always forward to the inner handler first
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.writeToActivityLog(r)
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *ActivityLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ActivityLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *ActivityLogHandler) WithGroup(name string) slog.Handler {
	return &ActivityLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
	}
}

// writeToActivityLog writes a log record to the activity log. A background
// context is used so the entry lands even when the request context is
// already cancelled.
func (h *ActivityLogHandler) writeToActivityLog(r slog.Record) {
	action := model.ActionSystemWarning
	if r.Level >= slog.LevelError {
		action = model.ActionSystemError
	}

	_ = h.queries.CreateActivityLog(context.Background(), store.CreateActivityLogParams{
		Action:      action,
		Description: r.Message + attrSuffix(r),
		CreatedAt:   r.Time,
	})
}

// attrSuffix renders record attributes as a compact "key=value" list.
func attrSuffix(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return ""
	}

	var sb strings.Builder
	r.Attrs(func(a slog.Attr) bool {
		sb.WriteString(" ")
		sb.WriteString(a.Key)
		sb.WriteString("=")
		sb.WriteString(a.Value.String())
		return true
	})
	return sb.String()
}
