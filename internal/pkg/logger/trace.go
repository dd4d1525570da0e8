package logger

import (
	"context"
	log "log/slog"
)

type ctxKey string

const (
	// TraceIDKey gin.Context 与日志中的 trace_id 字段名
	TraceIDKey = "trace_id"
	// UserEmailKey 当前登录用户邮箱
	UserEmailKey = "user_email"

	traceCtxKey ctxKey = TraceIDKey
	emailCtxKey ctxKey = UserEmailKey
)

// WithTraceID 将 trace_id 写入 ctx
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceCtxKey, traceID)
}

// TraceID 读取 ctx 中的 trace_id
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceCtxKey).(string)
	return id
}

// WithUserEmail 将当前用户写入 ctx，便于日志关联操作人
func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailCtxKey, email)
}

// UserEmail 读取 ctx 中的当前用户邮箱
func UserEmail(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	email, _ := ctx.Value(emailCtxKey).(string)
	return email
}

// ContextHandler 包装器，用于从 ctx 中提取 trace_id 与操作人
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(traceCtxKey).(string); ok && traceID != "" {
			r.AddAttrs(log.String(TraceIDKey, traceID))
		}
		if email, ok := ctx.Value(emailCtxKey).(string); ok && email != "" {
			r.AddAttrs(log.String(UserEmailKey, email))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &ContextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) log.Handler {
	return &ContextHandler{h.Handler.WithGroup(name)}
}
