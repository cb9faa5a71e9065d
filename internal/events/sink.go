// Package events provides the fire-and-forget event sink game
// operations publish to. Emission is observability only; failures are
// logged by callers and never affect outcomes.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/crawlforge/dungeon-api/internal/errors"
	redisclient "github.com/crawlforge/dungeon-api/internal/redis"
)

//go:generate mockgen -destination=mock/mock_sink.go -package=eventsmock github.com/crawlforge/dungeon-api/internal/events Sink

// Event names published by the game core
const (
	EventDungeonGenerated = "dungeon.generated"
	EventGameStarted      = "game.started"
	EventGameDeleted      = "game.deleted"
	EventHeroMoved        = "hero.moved"
	EventRoomChanged      = "room.changed"
	EventFightStarted     = "fight.started"
	EventFightEnded       = "fight.ended"
)

// Sink accepts structured events for publication
type Sink interface {
	Emit(ctx context.Context, name string, payload interface{}) error
}

// envelope is the wire form events are published in
type envelope struct {
	Name    string      `json:"name"`
	At      int64       `json:"at"`
	Payload interface{} `json:"payload,omitempty"`
}

// RedisPublisher publishes events to a Redis pub/sub channel
type RedisPublisher struct {
	client  redisclient.Client
	channel string
}

// NewRedisPublisher creates a publisher on the given channel
func NewRedisPublisher(client redisclient.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Emit publishes the event as a JSON envelope
func (p *RedisPublisher) Emit(ctx context.Context, name string, payload interface{}) error {
	data, err := json.Marshal(envelope{
		Name:    name,
		At:      time.Now().Unix(),
		Payload: payload,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to marshal event %s", name)
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return errors.Wrapf(err, "failed to publish event %s", name)
	}

	return nil
}

// NopSink discards all events, for tests and local runs without a broker
type NopSink struct{}

// Emit discards the event
func (NopSink) Emit(ctx context.Context, name string, payload interface{}) error {
	return nil
}
