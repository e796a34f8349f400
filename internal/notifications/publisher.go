package notifications

import (
	"context"
	"fmt"

	"stepperslife/internal/shared/config"
	"stepperslife/pkg/logger"
)

// Publisher delivers seating events to the rest of the platform
type Publisher interface {
	Publish(ctx context.Context, event SeatingEvent) error
	Close() error
}

// NewPublisher builds the publisher selected by BROKER
func NewPublisher(cfg config.BrokerConfig, log *logger.Logger) (Publisher, error) {
	switch cfg.Type {
	case "kafka":
		producerCfg := DefaultKafkaProducerConfig()
		producerCfg.Brokers = cfg.KafkaBrokers
		producerCfg.Topic = cfg.KafkaTopic
		return NewKafkaPublisher(producerCfg, log)
	case "rabbitmq", "amqp":
		return NewRabbitPublisher(cfg.RabbitURL, cfg.RabbitExchange, log)
	case "", "none", "noop":
		return NewNoopPublisher(), nil
	default:
		return nil, fmt.Errorf("unknown broker type %q", cfg.Type)
	}
}

// Notify publishes event and only logs a failure; a seat change has already
// been committed by the time it is announced.
func Notify(ctx context.Context, p Publisher, log *logger.Logger, event SeatingEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		log.ErrorWithContext(ctx, "failed to publish seating event", err, map[string]interface{}{
			"type":     string(event.Type),
			"chart_id": event.ChartID,
		})
	}
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, SeatingEvent) error { return nil }

func (noopPublisher) Close() error { return nil }
