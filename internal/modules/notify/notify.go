// Package notify delivers user-facing outcome messages. Presenting them
// is the client's job; this package only fans them out.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mx-space/formcraft/internal/pkg/redis"
	"go.uber.org/zap"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Event is one notification.
type Event struct {
	Kind    Kind           `json:"kind"`
	Message string         `json:"message"`
	FormID  string         `json:"form_id,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	At      time.Time      `json:"at"`
}

// Notifier delivers events. Delivery failures are reported but never
// undo the operation that produced the event.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// LogNotifier writes events to the application log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notify")}
}

func (n *LogNotifier) Notify(_ context.Context, e Event) error {
	fields := []zap.Field{zap.String("kind", string(e.Kind)), zap.String("message", e.Message)}
	if e.FormID != "" {
		fields = append(fields, zap.String("form", e.FormID))
	}
	if e.Kind == KindError {
		n.logger.Warn("notification", fields...)
	} else {
		n.logger.Info("notification", fields...)
	}
	return nil
}

// RedisNotifier publishes events as JSON on a pub/sub channel.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

func (n *RedisNotifier) Notify(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return n.client.Publish(ctx, n.channel, payload)
}

// Multi sends every event to each notifier in turn.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Success builds a success event stamped with the current time.
func Success(message string) Event {
	return Event{Kind: KindSuccess, Message: message, At: time.Now()}
}

// Failure builds an error event stamped with the current time.
func Failure(message string) Event {
	return Event{Kind: KindError, Message: message, At: time.Now()}
}
