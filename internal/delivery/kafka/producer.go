package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"shoeshop/configs"
	"shoeshop/internal/domain"
)

var errUnknownType = errors.New("unknown event type")

type messageProducer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Flush(timeoutMs int) int
	Close()
}

type Producer struct {
	producer     messageProducer
	topic        string
	flushTimeout int
	log          *slog.Logger
}

func NewProducer(cfg configs.KafkaConfig, log *slog.Logger) (*Producer, error) {
	conf := &kafka.ConfigMap{
		"bootstrap.servers": cfg.BootstrapServers,
	}
	p, err := kafka.NewProducer(conf)
	if err != nil {
		return nil, fmt.Errorf("error creating the producer - %w", err)
	}
	return newProducer(p, cfg.Topic, cfg.FlushTimeout, log), nil
}

func newProducer(p messageProducer, topic string, flushTimeout int, log *slog.Logger) *Producer {
	return &Producer{producer: p, topic: topic, flushTimeout: flushTimeout, log: log}
}

// Produce sends one message and waits for the delivery report.
func (p *Producer) Produce(ctx context.Context, message []byte, topic, key string) error {
	kafkaMsg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Value: message,
		Key:   []byte(key),
	}
	kafkaChan := make(chan kafka.Event, 1)
	if err := p.producer.Produce(kafkaMsg, kafkaChan); err != nil {
		return fmt.Errorf("error sending message to kafka: %w", err)
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting for kafka delivery: %w", ctx.Err())
	case e := <-kafkaChan:
		switch ev := e.(type) {
		case kafka.Error:
			return fmt.Errorf("error while sending message to kafka: %w", ev)
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				return fmt.Errorf("error while sending message to kafka: %w", ev.TopicPartition.Error)
			}
			return nil
		default:
			return errUnknownType
		}
	}
}

// PublishRestock publishes the event keyed by shoe so events of one shoe stay ordered.
func (p *Producer) PublishRestock(ctx context.Context, event domain.RestockEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal restock event: %w", err)
	}
	if err := p.Produce(ctx, payload, p.topic, event.ShoeID); err != nil {
		return err
	}
	p.log.Info("Restock event published",
		"restock_id", event.RestockID,
		"shoe_id", event.ShoeID,
		"topic", p.topic,
	)
	return nil
}

func (p *Producer) Close() {
	p.producer.Flush(p.flushTimeout)
	p.producer.Close()
}
