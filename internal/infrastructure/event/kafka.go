package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neardukaan/backend/internal/domain/shared"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter is the subset of *kafka.Writer the handler needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaHandler forwards events to a Kafka topic as JSON. The message key is
// the aggregate id so that one customer's events land on one partition.
type KafkaHandler struct {
	writer       MessageWriter
	eventTypes   []string
	writeTimeout time.Duration
	logger       *zap.Logger
}

// writerBatchTimeout bounds how long a publish waits for a batch to fill.
// Each recorded transaction is one message, so the library default of 1s
// would be added to every request.
const writerBatchTimeout = 10 * time.Millisecond

// NewKafkaWriter builds a writer for topic on brokers.
func NewKafkaWriter(brokers []string, topic string, writeTimeout time.Duration) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: writerBatchTimeout,
		WriteTimeout: writeTimeout,
		RequiredAcks: kafka.RequireOne,
	}
}

// NewKafkaHandler creates a handler writing eventTypes through writer.
func NewKafkaHandler(writer MessageWriter, writeTimeout time.Duration, logger *zap.Logger, eventTypes ...string) *KafkaHandler {
	return &KafkaHandler{
		writer:       writer,
		eventTypes:   eventTypes,
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// EventTypes implements shared.EventHandler
func (h *KafkaHandler) EventTypes() []string {
	return h.eventTypes
}

// Handle implements shared.EventHandler
func (h *KafkaHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.EventType(), err)
	}

	if h.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.writeTimeout)
		defer cancel()
	}

	msg := kafka.Message{
		Key:   []byte(event.AggregateID().String()),
		Value: payload,
		Time:  event.OccurredAt(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType())},
			{Key: "event_id", Value: []byte(event.EventID().String())},
			{Key: "shop_id", Value: []byte(event.ShopID())},
		},
	}
	if err := h.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s: %w", event.EventType(), err)
	}

	h.logger.Debug("Event published to Kafka",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
	)
	return nil
}

// Close flushes and closes the writer
func (h *KafkaHandler) Close() error {
	return h.writer.Close()
}

var _ shared.EventHandler = (*KafkaHandler)(nil)
