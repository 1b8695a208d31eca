// Package notify pushes change events to display clients. Playlist and
// schedule mutations publish to per-entity MQTT topics and invalidate the
// redis-cached manifest ETag so polling displays re-fetch instead of getting
// 304s. Both transports are optional; a nil Notifier is a no-op.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Notifier fans mutation events out to whatever transports are configured.
type Notifier struct {
	mqtt mqtt.Client
	rdb  *redis.Client
}

// New builds a notifier; either client may be nil.
func New(mqttClient mqtt.Client, rdb *redis.Client) *Notifier {
	return &Notifier{mqtt: mqttClient, rdb: rdb}
}

// ConnectMQTT dials the broker and returns a connected client.
func ConnectMQTT(brokerURL, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to MQTT broker: %w", token.Error())
	}
	return client, nil
}

// ManifestETagKey is the redis key caching a playlist manifest's ETag.
func ManifestETagKey(playlistID string) string {
	return fmt.Sprintf("playlist:%s:etag", playlistID)
}

type event struct {
	Event     string `json:"event"`
	Entity    string `json:"entity"`
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
}

// PlaylistChanged invalidates the playlist's manifest ETag and publishes the
// change to its display topic.
func (n *Notifier) PlaylistChanged(ctx context.Context, playlistID string) {
	if n == nil {
		return
	}
	if n.rdb != nil {
		if err := n.rdb.Del(ctx, ManifestETagKey(playlistID)).Err(); err != nil {
			log.Warn().Err(err).Str("playlist_id", playlistID).Msg("failed to invalidate manifest ETag")
		}
	}
	n.publish("displays/playlists/"+playlistID, event{
		Event:     "playlist-updated",
		Entity:    "playlist",
		ID:        playlistID,
		Timestamp: time.Now().Unix(),
	})
}

// ScheduleChanged publishes a schedule change to the shared schedule topic.
func (n *Notifier) ScheduleChanged(ctx context.Context, scheduleID string) {
	if n == nil {
		return
	}
	n.publish("displays/schedules", event{
		Event:     "schedule-updated",
		Entity:    "schedule",
		ID:        scheduleID,
		Timestamp: time.Now().Unix(),
	})
}

func (n *Notifier) publish(topic string, ev event) {
	if n.mqtt == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	token := n.mqtt.Publish(topic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Warn().Err(token.Error()).Str("topic", topic).Msg("failed to publish change event")
	}
}

// Close disconnects the underlying transports.
func (n *Notifier) Close() {
	if n == nil {
		return
	}
	if n.mqtt != nil {
		n.mqtt.Disconnect(250)
	}
	if n.rdb != nil {
		_ = n.rdb.Close()
	}
}
