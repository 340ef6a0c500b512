// Package kafka ingests outbound messages published to the outbox topic
// and stores them as pending for the scheduler to send.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	domain "github.com/oggyb/zensend-gateway/internal/domain/message"
)

// storeBackoff is how long the consumer waits before retrying a failed store.
const storeBackoff = 2 * time.Second

// OutboundMessage is the JSON payload producers publish to the outbox topic.
type OutboundMessage struct {
	Originator          string   `json:"originator"`
	Body                string   `json:"body"`
	Numbers             []string `json:"numbers"`
	OriginatorType      string   `json:"originatorType,omitempty"`
	TimeToLiveInMinutes int      `json:"timeToLiveInMinutes,omitempty"`
	Encoding            string   `json:"encoding,omitempty"`
}

func (m OutboundMessage) draft() domain.Draft {
	return domain.Draft{
		Originator:          m.Originator,
		Body:                m.Body,
		Numbers:             m.Numbers,
		OriginatorType:      m.OriginatorType,
		TimeToLiveInMinutes: m.TimeToLiveInMinutes,
		Encoding:            m.Encoding,
	}
}

// Queuer stores a draft as a pending message.
type Queuer interface {
	Queue(ctx context.Context, d domain.Draft) (*domain.Message, error)
}

// Reader is the subset of *kafka.Reader the consumer uses.
type Reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Consumer commits an offset only once the record is stored or found to be
// invalid, so a stored message is never lost and a bad one never blocks the topic.
type Consumer struct {
	reader Reader
	queue  Queuer
	log    *zap.Logger
}

// NewReader builds a group reader with explicit commits.
func NewReader(brokers []string, topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       1 << 20, // 1 MiB
		CommitInterval: 0,       // explicit commits only
		StartOffset:    kafkago.LastOffset,
	})
}

func NewConsumer(reader Reader, queue Queuer, log *zap.Logger) *Consumer {
	if log == nil {
		log = zap.L()
	}
	return &Consumer{
		reader: reader,
		queue:  queue,
		log:    log.With(zap.String("component", "outbox_consumer")),
	}
}

// Run blocks, consuming records until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	c.log.Info("[Outbox] Consuming")

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetch: %w", err)
		}

		if err := c.handle(ctx, m); err != nil {
			// Only cancellation ends handle without storing; leave the record uncommitted.
			return nil
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.log.Warn("[Outbox] Commit failed, record may be redelivered",
				zap.Int64("offset", m.Offset),
				zap.Error(err),
			)
		}
	}
}

// handle stores one record, retrying storage failures until ctx is done.
// Undecodable or invalid records are logged and skipped.
func (c *Consumer) handle(ctx context.Context, m kafkago.Message) error {
	out, err := Decode(m.Value)
	if err != nil {
		c.log.Warn("[Outbox] Dropping undecodable record", zap.Int64("offset", m.Offset), zap.Error(err))
		return nil
	}

	for {
		msg, err := c.queue.Queue(ctx, out.draft())
		switch {
		case err == nil:
			c.log.Info("[Outbox] Queued message",
				zap.String("id", msg.ID.String()),
				zap.Int64("offset", m.Offset),
			)
			return nil
		case domain.IsValidationError(err):
			c.log.Warn("[Outbox] Dropping invalid message", zap.Int64("offset", m.Offset), zap.Error(err))
			return nil
		}

		c.log.Error("[Outbox] Store failed, retrying", zap.Int64("offset", m.Offset), zap.Error(err))

		select {
		case <-time.After(storeBackoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close releases the reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

// Decode parses an outbox record.
func Decode(value []byte) (OutboundMessage, error) {
	var out OutboundMessage
	if len(value) == 0 {
		return out, errors.New("empty record")
	}
	if err := json.Unmarshal(value, &out); err != nil {
		return out, fmt.Errorf("unmarshal: %w", err)
	}
	return out, nil
}
