package kafkaHandler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/sirupsen/logrus"

	"shoeshop/internal/domain"
)

const handleTimeout = 30 * time.Second

type notifier interface {
	NotifySupplier(ctx context.Context, event domain.RestockEvent) error
}

// RestockHandler turns restock events into supplier e-mails.
type RestockHandler struct {
	notifier notifier
	log      *logrus.Logger
}

func NewRestockHandler(notifier notifier, log *logrus.Logger) *RestockHandler {
	return &RestockHandler{notifier: notifier, log: log}
}

// HandleMessage returns nil for events that can never succeed so their offset is stored.
func (h *RestockHandler) HandleMessage(message []byte, topic kafka.TopicPartition, cn int) error {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	log := h.log.WithFields(logrus.Fields{
		"consumer":  cn,
		"partition": topic.Partition,
		"offset":    topic.Offset,
	})

	var event domain.RestockEvent
	if err := json.Unmarshal(message, &event); err != nil {
		log.Errorf("failed to parse restock event: %v", err)
		return nil
	}
	if err := event.Validate(); err != nil {
		log.Errorf("invalid restock event %s: %v", event.RestockID, err)
		return nil
	}

	if err := h.notifier.NotifySupplier(ctx, event); err != nil {
		return fmt.Errorf("failed to handle restock event %s: %w", event.RestockID, err)
	}

	log.Infof("Successfully processed restock %s", event.RestockID)
	return nil
}
