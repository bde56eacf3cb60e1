package msgraph

import (
	"context"
	"log"
)

// Notifier simulates Power-Automate workflow triggers. Dispatch is
// fire-and-forget: the caller logs failures and moves on, so this adapter
// never blocks a decision.
type Notifier struct {
	// workflows maps event types to the configured flow endpoints. Unknown
	// events are dropped with a warning rather than failing the case.
	workflows map[string]string
}

// NewNotifier creates a notification dispatcher with the default workflow
// bindings.
func NewNotifier() *Notifier {
	return &Notifier{
		workflows: map[string]string{
			"customer_notification": "flows/customer-notification",
			"repair_order_approval": "flows/repair-approval",
			"batch_completion":      "flows/batch-completion",
		},
	}
}

// Notify triggers the named workflow with the given payload.
func (n *Notifier) Notify(ctx context.Context, eventType string, payload map[string]interface{}) error {
	flow, ok := n.workflows[eventType]
	if !ok {
		log.Printf("[PowerAutomate] no workflow bound for event %q, dropping", eventType)
		return nil
	}
	log.Printf("[PowerAutomate] triggered %s (%d payload fields)", flow, len(payload))
	return nil
}
