package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channel is the Redis pub/sub channel notifications are published on. The
// gateway forwards it to connected clients as SSE.
const Channel = "shortlist.notifications"

// RedisNotifier publishes notifications to Redis.
type RedisNotifier struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewRedisNotifier returns a Notifier publishing on Channel.
func NewRedisNotifier(rdb *redis.Client, logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, logger: logger}
}

// Notify publishes the notification. Publish failures are logged and dropped.
func (n *RedisNotifier) Notify(ctx context.Context, title, message string, severity Severity) {
	payload, _ := json.Marshal(Notification{Title: title, Message: message, Severity: severity})
	if err := n.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		n.logger.Warn("publish notification failed",
			zap.String("title", title),
			zap.Error(err),
		)
	}
}

// LogNotifier is the fallback Notifier when Redis is not configured: it only
// writes the notification to the service log.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier returns a log-only Notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification at a level matching its severity.
func (n *LogNotifier) Notify(ctx context.Context, title, message string, severity Severity) {
	fields := []zap.Field{
		zap.String("title", title),
		zap.String("message", message),
	}
	if severity == SeverityDestructive {
		n.logger.Warn("notification", fields...)
		return
	}
	n.logger.Info("notification", fields...)
}
