package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// Event is the JSON envelope written to the game events topic.
type Event struct {
	Type      string      `json:"type"`
	GameID    string      `json:"gameId"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"ts"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes game events. A Producer without a writer drops every
// event, which is how Kafka is switched off.
type Producer struct {
	writer  messageWriter
	timeout time.Duration
}

func NewProducer(cfg *config.Config) *Producer {
	if !cfg.KafkaEnabled {
		log.Println("[KAFKA] Disabled, game events will not be published")
		return &Producer{}
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBroker),
		Topic:    cfg.KafkaTopic,
		Balancer: &kafka.LeastBytes{},
	}

	log.Printf("[KAFKA] Producer initialized for topic %s", cfg.KafkaTopic)
	return &Producer{writer: writer, timeout: 2 * time.Second}
}

func (p *Producer) Publish(ctx context.Context, eventType, gameID string, data interface{}) error {
	if p == nil || p.writer == nil {
		return nil
	}

	eventBytes, err := json.Marshal(Event{
		Type:      eventType,
		GameID:    gameID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(gameID),
		Value: eventBytes,
	})
	if err != nil {
		return errors.Wrapf(err, "produce %s event", eventType)
	}
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
