package ports

import "context"

// Notifier dispatches fire-and-forget workflow notifications. Failures must
// never block a case decision; adapters log and swallow them.
type Notifier interface {
	Notify(ctx context.Context, eventType string, payload map[string]interface{}) error
}
