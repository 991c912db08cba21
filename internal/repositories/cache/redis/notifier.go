package redis

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
	"github.com/plantaohub/plantao_backend/internal/middleware"
)

// channelPrefix namespaces the pub/sub channels so several applications can
// share one Redis.
const channelPrefix = "plantao:"

// Notifier fans mutation events out over Redis pub/sub. Publishing is
// strictly best-effort; failures are logged and dropped.
type Notifier struct {
	client *redis.Client
}

// NewNotifier creates a Notifier over an existing client.
func NewNotifier(client *redis.Client) *Notifier {
	return &Notifier{client: client}
}

var _ portssvc.Notifier = (*Notifier)(nil)

func (n *Notifier) Publish(ctx context.Context, kind string, payload any) {
	logger := middleware.GetLoggerFromCtx(ctx)

	message, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal notification payload", slog.String("kind", kind), slog.String("error", err.Error()))
		return
	}
	if err := n.client.Publish(ctx, channelPrefix+kind, message).Err(); err != nil {
		logger.Warn("Failed to publish notification", slog.String("kind", kind), slog.String("error", err.Error()))
	}
}
