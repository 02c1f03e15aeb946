package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger merekod peristiwa peringkat proses (mula, henti) di luar
// aliran log permintaan biasa.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
