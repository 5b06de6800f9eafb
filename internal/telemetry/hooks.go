package telemetry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"attrpicker/internal/debug"

	"github.com/segmentio/kafka-go"
)

// DebugHook writes events to the debug log.
func DebugHook() Hook {
	return HookFunc(func(_ context.Context, event Event) error {
		keys := make([]string, 0, len(event.Properties))
		for k := range event.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, event.Properties[k]))
		}
		debug.Logf("[telemetry] %s %s %s", event.Name, event.ID, strings.Join(parts, " "))
		return nil
	})
}

const eventsSchema = `
CREATE TABLE IF NOT EXISTS events (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	properties  TEXT NOT NULL DEFAULT '{}',
	occurred_at TEXT NOT NULL
);
`

// SQLiteHook appends events to an events table.
type SQLiteHook struct {
	db *sql.DB
}

// NewSQLiteHook creates the events table when missing.
func NewSQLiteHook(ctx context.Context, db *sql.DB) (*SQLiteHook, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlite hook: nil database")
	}
	if _, err := db.ExecContext(ctx, eventsSchema); err != nil {
		return nil, fmt.Errorf("create events table: %w", err)
	}
	return &SQLiteHook{db: db}, nil
}

// Notify inserts the event.
func (h *SQLiteHook) Notify(ctx context.Context, event Event) error {
	props, err := json.Marshal(event.Properties)
	if err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}
	if event.Properties == nil {
		props = []byte("{}")
	}
	_, err = h.db.ExecContext(ctx,
		`INSERT INTO events (id, name, properties, occurred_at) VALUES (?, ?, ?, ?)`,
		event.ID, event.Name, string(props), event.OccurredAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Count returns how many events named name were stored. An empty name
// counts all events.
func (h *SQLiteHook) Count(ctx context.Context, name string) (int, error) {
	var n int
	var err error
	if name == "" {
		err = h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	} else {
		err = h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE name = ?`, name).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// MessageWriter is the part of *kafka.Writer the Kafka hook uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaHook publishes events as JSON messages keyed by event name.
type KafkaHook struct {
	writer MessageWriter
}

// NewKafkaWriter returns an async writer for topic on brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(_ []kafka.Message, err error) {
			if err != nil {
				debug.Logf("[telemetry] kafka delivery failed: %v", err)
			}
		},
	}
}

// NewKafkaHook wraps w.
func NewKafkaHook(w MessageWriter) *KafkaHook {
	return &KafkaHook{writer: w}
}

// Notify enqueues the event.
func (h *KafkaHook) Notify(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.Name),
		Value: payload,
		Time:  event.OccurredAt,
	}
	if err := h.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Close flushes and closes the writer.
func (h *KafkaHook) Close() error {
	if h == nil || h.writer == nil {
		return nil
	}
	return h.writer.Close()
}
