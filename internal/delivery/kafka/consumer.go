package kafka

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/sirupsen/logrus"

	"shoeshop/configs"
	"shoeshop/pkg/prometheus"
)

const (
	pollTimeout     = 500 * time.Millisecond
	redeliveryDelay = 5 * time.Second
)

type Handler interface {
	HandleMessage(message []byte, topic kafka.TopicPartition, cn int) error
}

type messageConsumer interface {
	ReadMessage(timeout time.Duration) (*kafka.Message, error)
	StoreMessage(m *kafka.Message) ([]kafka.TopicPartition, error)
	Seek(partition kafka.TopicPartition, ignoredTimeoutMs int) error
	Commit() ([]kafka.TopicPartition, error)
	Close() error
}

type Consumer struct {
	consumer        messageConsumer
	handler         Handler
	log             *logrus.Logger
	stop            atomic.Bool
	started         atomic.Bool
	done            chan struct{}
	quit            chan struct{}
	redeliveryDelay time.Duration
	consumerNumber  int
}

func NewConsumer(cfg configs.KafkaConfig, handler Handler, consumerNumber int, log *logrus.Logger) (*Consumer,
	error) {

	config := &kafka.ConfigMap{
		"bootstrap.servers":        cfg.BootstrapServers,
		"group.id":                 cfg.ConsumerGroup,
		"session.timeout.ms":       cfg.SessionTimeoutMs,
		"enable.auto.offset.store": false,
		"enable.auto.commit":       true,
		"auto.commit.interval.ms":  cfg.AutoCommitIntervalMs,
		"auto.offset.reset":        cfg.AutoOffsetReset,
	}

	c, err := kafka.NewConsumer(config)
	if err != nil {
		return nil, fmt.Errorf("error creating consumer: %w", err)
	}
	if err = c.Subscribe(cfg.Topic, nil); err != nil {
		return nil, fmt.Errorf("error subscribing to topic: %w", err)
	}
	return newConsumer(c, handler, consumerNumber, log), nil
}

func newConsumer(c messageConsumer, handler Handler, consumerNumber int, log *logrus.Logger) *Consumer {
	return &Consumer{
		consumer:        c,
		handler:         handler,
		log:             log,
		done:            make(chan struct{}),
		quit:            make(chan struct{}),
		redeliveryDelay: redeliveryDelay,
		consumerNumber:  consumerNumber,
	}
}

// Start polls until Stop is called. Offsets are stored only for handled messages,
// a failed message is sought back and read again after redeliveryDelay.
func (c *Consumer) Start() {
	c.started.Store(true)
	defer close(c.done)
	c.log.Infof("consumer %d started", c.consumerNumber)
	for !c.stop.Load() {
		kafkaMsg, err := c.consumer.ReadMessage(pollTimeout)
		if err != nil {
			var kErr kafka.Error
			if errors.As(err, &kErr) && kErr.Code() == kafka.ErrTimedOut {
				continue
			}
			c.log.Errorf("error reading message from kafka %v", err)
			continue
		}
		if kafkaMsg == nil {
			continue
		}
		c.process(kafkaMsg)
	}
}

func (c *Consumer) process(kafkaMsg *kafka.Message) {
	topic := ""
	if kafkaMsg.TopicPartition.Topic != nil {
		topic = *kafkaMsg.TopicPartition.Topic
	}

	if err := c.handler.HandleMessage(kafkaMsg.Value, kafkaMsg.TopicPartition, c.consumerNumber); err != nil {
		prometheus.KafkaMessagesProcessed.WithLabelValues(topic, "redelivered").Inc()
		c.log.WithFields(logrus.Fields{
			"consumer":  c.consumerNumber,
			"partition": kafkaMsg.TopicPartition.Partition,
			"offset":    kafkaMsg.TopicPartition.Offset,
		}).Errorf("error handling message from kafka %v", err)
		c.redeliver(kafkaMsg.TopicPartition)
		return
	}
	if _, err := c.consumer.StoreMessage(kafkaMsg); err != nil {
		c.log.Errorf("error storing message to kafka %v", err)
		return
	}
	prometheus.KafkaMessagesProcessed.WithLabelValues(topic, "success").Inc()
}

// redeliver rewinds the partition to the failed offset so later offsets are not
// stored past it, then waits before the next read.
func (c *Consumer) redeliver(tp kafka.TopicPartition) {
	if err := c.consumer.Seek(tp, 0); err != nil {
		c.log.Errorf("error seeking back to offset %v: %v", tp.Offset, err)
	}
	select {
	case <-time.After(c.redeliveryDelay):
	case <-c.quit:
	}
}

// Stop ends the poll loop, commits stored offsets and closes the consumer.
func (c *Consumer) Stop() error {
	if !c.stop.CompareAndSwap(false, true) {
		return nil
	}
	close(c.quit)
	if c.started.Load() {
		<-c.done
	}
	if _, err := c.consumer.Commit(); err != nil {
		var kErr kafka.Error
		if !errors.As(err, &kErr) || kErr.Code() != kafka.ErrNoOffset {
			_ = c.consumer.Close()
			return err
		}
	}
	c.log.Info("Commited offset")
	return c.consumer.Close()
}
