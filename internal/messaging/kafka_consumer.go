package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/bet-analytics-service/internal/models"
	"github.com/cypherlabdev/bet-analytics-service/internal/service"
)

// errUnroutable marks messages that can never be processed no matter how
// often they are redelivered.
var errUnroutable = errors.New("message carries no event id")

// KafkaConsumer consumes ledger-change notifications and triggers recomputation
type KafkaConsumer struct {
	reader    *kafka.Reader
	refresher service.Refresher
	logger    zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "ledger_changes"
	GroupID string   // e.g., "bet-analytics"
}

// NewKafkaConsumer creates a new Kafka consumer
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	refresher service.Refresher,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1e3,  // 1KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: 1000, // Commit every 1 second
	})

	return &KafkaConsumer{
		reader:    reader,
		refresher: refresher,
		logger:    logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping Kafka consumer")
			return c.reader.Close()

		default:
			// Read message
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if err == context.Canceled {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			// Process message
			if err := c.processMessage(ctx, msg); err != nil {
				if !errors.Is(err, errUnroutable) {
					c.logger.Error().
						Err(err).
						Int64("offset", msg.Offset).
						Str("key", string(msg.Key)).
						Msg("failed to process message")
					// Don't commit if processing failed; redelivery retries it
					continue
				}

				// Redelivery cannot fix a message with no event id, so
				// commit past it.
				c.logger.Warn().
					Int64("offset", msg.Offset).
					Msg("skipping unroutable message")
			}

			// Commit message
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage handles a single ledger-change notification. The payload is
// untrusted beyond routing: whatever it claims changed, the refresher
// re-derives everything from the authoritative store.
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	eventID := eventIDFrom(msg)
	if eventID == "" {
		return fmt.Errorf("offset %d: %w", msg.Offset, errUnroutable)
	}

	c.logger.Debug().
		Str("event_id", eventID).
		Int64("offset", msg.Offset).
		Msg("processing ledger change")

	if err := c.refresher.Refresh(ctx, eventID); err != nil {
		return fmt.Errorf("failed to refresh analytics for event %s: %w", eventID, err)
	}

	c.logger.Info().
		Str("event_id", eventID).
		Msg("refreshed analytics from ledger change")

	return nil
}

// eventIDFrom extracts the event id from the message key, falling back to the
// payload's event_id field for producers that leave the key empty
func eventIDFrom(msg kafka.Message) string {
	if len(msg.Key) > 0 {
		return string(msg.Key)
	}

	var change models.LedgerChangeEvent
	if err := json.Unmarshal(msg.Value, &change); err != nil {
		return ""
	}
	return change.EventID
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
