package bootstrap

import (
	"context"
	"time"
)

// AuditLog is one operational lifecycle event (startup, shutdown).
type AuditLog struct {
	At      time.Time
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
