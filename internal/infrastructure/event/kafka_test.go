package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/neardukaan/backend/internal/domain/ledger"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockMessageWriter struct {
	mock.Mock
}

func (m *MockMessageWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockMessageWriter) Close() error {
	return m.Called().Error(0)
}

func recordedEvent(t *testing.T) *ledger.TransactionRecorded {
	t.Helper()
	tx, err := ledger.NewTransaction("shop-a", uuid.New(), ledger.KindCredit, decimal.NewFromInt(100), nil, "", time.Now().UTC())
	require.NoError(t, err)
	return ledger.NewTransactionRecorded(tx, decimal.NewFromInt(100), decimal.NewFromInt(100))
}

func TestKafkaHandler_Handle(t *testing.T) {
	writer := new(MockMessageWriter)
	handler := NewKafkaHandler(writer, time.Second, zap.NewNop(), ledger.EventTypeTransactionRecorded)
	event := recordedEvent(t)

	var sent []kafka.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]kafka.Message) }).
		Return(nil)

	require.NoError(t, handler.Handle(context.Background(), event))
	require.Len(t, sent, 1)

	msg := sent[0]
	assert.Equal(t, event.CustomerID, string(msg.Key))
	assert.Contains(t, msg.Headers, kafka.Header{Key: "event_type", Value: []byte(ledger.EventTypeTransactionRecorded)})
	assert.Contains(t, msg.Headers, kafka.Header{Key: "shop_id", Value: []byte("shop-a")})

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, event.TransactionID, body["transaction_id"])
	assert.Equal(t, "credit", body["kind"])
	assert.Equal(t, "shop-a", body["shop_id"])

	assert.Equal(t, []string{ledger.EventTypeTransactionRecorded}, handler.EventTypes())
	writer.AssertExpectations(t)
}

func TestKafkaHandler_WriteErrorIsReturned(t *testing.T) {
	writer := new(MockMessageWriter)
	handler := NewKafkaHandler(writer, 0, zap.NewNop())
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("no brokers"))

	err := handler.Handle(context.Background(), recordedEvent(t))
	assert.ErrorContains(t, err, "no brokers")
}

func TestKafkaHandler_ViaBus(t *testing.T) {
	writer := new(MockMessageWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("no brokers"))
	writer.On("Close").Return(nil)

	bus := NewBus(zap.NewNop())
	handler := NewKafkaHandler(writer, time.Second, zap.NewNop(), ledger.EventTypeTransactionRecorded)
	bus.Subscribe(handler)

	// broker failure is swallowed by the bus
	assert.NoError(t, bus.Publish(context.Background(), recordedEvent(t)))
	assert.NoError(t, handler.Close())
	writer.AssertNumberOfCalls(t, "WriteMessages", 1)
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092"}, "transaction_recorded", 5*time.Second)
	assert.Equal(t, "transaction_recorded", w.Topic)
	assert.Equal(t, 5*time.Second, w.WriteTimeout)
	assert.Equal(t, 10*time.Millisecond, w.BatchTimeout)
	assert.False(t, w.Async)
}
