package services

import (
	"context"

	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
)

// noopNotifier satisfies the Notifier port when no broker is configured.
type noopNotifier struct{}

// NewNoopNotifier returns a Notifier that discards every event.
func NewNoopNotifier() portssvc.Notifier {
	return noopNotifier{}
}

func (noopNotifier) Publish(ctx context.Context, kind string, payload any) {}
