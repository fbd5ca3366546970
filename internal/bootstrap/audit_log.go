package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger receives lifecycle events that must survive even when the
// regular request log is sampled away.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
