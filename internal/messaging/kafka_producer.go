package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fixhub/repair-service/internal/models"
	"github.com/segmentio/kafka-go"
)

type KafkaProducer interface {
	PublishServiceTicketEvent(ctx context.Context, event *models.ServiceTicketEvent) error
	PublishInventoryEvent(ctx context.Context, event *models.InventoryEvent) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Snappy,
	}

	return &kafkaProducer{
		writer: writer,
	}
}

func (p *kafkaProducer) PublishServiceTicketEvent(ctx context.Context, event *models.ServiceTicketEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal service ticket event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(event.SerialNumber),
		Value: eventJSON,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	return p.write(ctx, message)
}

func (p *kafkaProducer) PublishInventoryEvent(ctx context.Context, event *models.InventoryEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.ItemID, 10)),
		Value: eventJSON,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	return p.write(ctx, message)
}

func (p *kafkaProducer) write(ctx context.Context, message kafka.Message) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write event to kafka: %w", err)
	}

	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}
