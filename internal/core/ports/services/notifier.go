package services

import "context"

// Notifier fans mutations out to interested real-time consumers. It is
// strictly best-effort: implementations swallow and log failures, and callers
// never check the outcome.
type Notifier interface {
	// Publish sends payload (JSON-marshalled) on the channel for kind.
	Publish(ctx context.Context, kind string, payload any)
}
