package kafka

import (
	"context"
	log "log/slog"

	"Folio/internal/api/config"
	"Folio/internal/pkg/es"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// ConsumerManager 管理 Kafka 消费者
type ConsumerManager struct {
	topic          string
	contentGroup   sarama.ConsumerGroup
	contentHandler sarama.ConsumerGroupHandler
}

func NewConsumerManager(cfg config.KafkaConfig, contentES es.ContentRepo) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg)

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaCfg)
	if err != nil {
		return nil, errors.Wrap(err, "create content consumer group")
	}

	return &ConsumerManager{
		topic:          cfg.Topic,
		contentGroup:   group,
		contentHandler: NewContentHandler(contentES),
	}, nil
}

// Start 阻塞消费直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		for err := range m.contentGroup.Errors() {
			log.Error("content consumer error", "err", err)
		}
	}()

	go func() {
		log.Info("Content consumer started", "topic", m.topic)
		for {
			if err := m.contentGroup.Consume(ctx, []string{m.topic}, m.contentHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.contentGroup.Close(); err != nil {
		log.Error("Failed to close content consumer", "err", err)
	}
	return nil
}
