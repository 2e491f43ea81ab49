package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Topics broadcast by the visit/procedure lifecycle
const (
	TopicQueueUpdate     = "queue:update"
	TopicEmergencyActive = "emergency:active"
	TopicQueueRefresh    = "doctor:queue-refresh"
)

// RoomDisplay is the shared waiting-area display room
const RoomDisplay = "display"

// DoctorRoom returns the room name scoped to one doctor's screens
func DoctorRoom(doctorID uuid.UUID) string {
	return "doctor:" + doctorID.String()
}

// Notifier delivers best-effort live UI events. No acknowledgement, no
// replay; clients reconcile via the regular fetch endpoints.
type Notifier interface {
	Broadcast(ctx context.Context, topic string, payload interface{})
	BroadcastToRoom(ctx context.Context, room, topic string, payload interface{})
}

// Redis channel prefixes for pub/sub fan-out
const (
	redisGlobalChannelPrefix = "clinic:events:"
	redisRoomChannelPrefix   = "clinic:room:"
)

// RedisNotifier publishes lifecycle events on Redis pub/sub channels so
// every frontend gateway instance can relay them to its own websocket
// or SSE clients.
type RedisNotifier struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewRedisNotifier(redisClient *redis.Client, log *logrus.Logger) *RedisNotifier {
	return &RedisNotifier{redisClient: redisClient, log: log}
}

func (n *RedisNotifier) Broadcast(ctx context.Context, topic string, payload interface{}) {
	n.publish(ctx, redisGlobalChannelPrefix+topic, topic, payload)
}

func (n *RedisNotifier) BroadcastToRoom(ctx context.Context, room, topic string, payload interface{}) {
	channel := fmt.Sprintf("%s%s:%s", redisRoomChannelPrefix, room, topic)
	n.publish(ctx, channel, topic, payload)
}

func (n *RedisNotifier) publish(ctx context.Context, channel, topic string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		n.log.Warnf("Failed to marshal %s event: %+v", topic, err)
		return
	}
	if err := n.redisClient.Publish(ctx, channel, body).Err(); err != nil {
		// Best effort only; the queue state stays authoritative in the DB.
		n.log.Warnf("Failed to publish %s to %s: %+v", topic, channel, err)
	}
}

// MultiNotifier fans one event out to several sinks.
type MultiNotifier []Notifier

func (m MultiNotifier) Broadcast(ctx context.Context, topic string, payload interface{}) {
	for _, n := range m {
		n.Broadcast(ctx, topic, payload)
	}
}

func (m MultiNotifier) BroadcastToRoom(ctx context.Context, room, topic string, payload interface{}) {
	for _, n := range m {
		n.BroadcastToRoom(ctx, room, topic, payload)
	}
}
