package tradepublisher

import (
	"context"
	"encoding/json"

	orderbookv1 "github.com/muhammadchandra19/session-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/session-matcher/pkg/config"
	"github.com/muhammadchandra19/session-matcher/pkg/errors"
	"github.com/muhammadchandra19/session-matcher/pkg/logger"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
)

const (
	eventTypeTrade      = "trade"
	eventTypeUnexecuted = "unexecuted"
)

// Event is the wire form of a sink record published to Kafka.
type Event struct {
	EventID     string `json:"eventID"`
	Type        string `json:"type"`
	BuyOrderID  string `json:"buyOrderID,omitempty"`
	SellOrderID string `json:"sellOrderID,omitempty"`
	OrderID     string `json:"orderID,omitempty"`
	Quantity    int64  `json:"quantity"`
	Price       string `json:"price,omitempty"`
}

// Publisher is a Kafka sink publishing trade and residual events.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

// NewPublisher creates a new Kafka publisher for the session's trade events.
func NewPublisher(cfg config.KafkaConfig, log logger.Interface) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// Trade publishes one executed trade.
func (p *Publisher) Trade(ctx context.Context, trade *orderbookv1.Trade) error {
	event := Event{
		EventID:     ulid.Make().String(),
		Type:        eventTypeTrade,
		BuyOrderID:  trade.BuyOrderID,
		SellOrderID: trade.SellOrderID,
		Quantity:    trade.Quantity,
		Price:       trade.Price.StringFixed(2),
	}
	return p.publish(ctx, event)
}

// Unexecuted publishes one residual record.
func (p *Publisher) Unexecuted(ctx context.Context, residual *orderbookv1.Residual) error {
	event := Event{
		EventID:  ulid.Make().String(),
		Type:     eventTypeUnexecuted,
		OrderID:  residual.OrderID,
		Quantity: residual.Quantity,
	}
	return p.publish(ctx, event)
}

// Close flushes and closes the Kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}

func (p *Publisher) publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return errors.NewTracer(errors.TradePublishError.String()).Wrap(err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: value,
	}
	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "eventID", Value: event.EventID},
			logger.Field{Key: "type", Value: event.Type},
			logger.Field{Key: "action", Value: "publish_trade_event"},
		)
		return errors.NewTracer(errors.TradePublishError.String()).Wrap(err)
	}
	return nil
}
