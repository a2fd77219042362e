package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/config"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
)

const (
	// SampleQueue carries raw location messages from the API to the tracker worker.
	SampleQueue = "location_samples"
	// DispatchExchange fans enriched tracking events out to dispatcher views,
	// routed by contractor.
	DispatchExchange = "dispatch_events"
)

// DeclareSampleQueue declares the durable sample queue on a channel.
func DeclareSampleQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		SampleQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	return err
}

// AMQPPublisher implements EventPublisher on a topic exchange.
type AMQPPublisher struct {
	cfg *config.Config
	ch  *amqp.Channel
}

func NewAMQPPublisher(cfg *config.Config, ch *amqp.Channel) (*AMQPPublisher, error) {
	if err := ch.ExchangeDeclare(
		DispatchExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return nil, err
	}

	return &AMQPPublisher{cfg: cfg, ch: ch}, nil
}

func (p *AMQPPublisher) PublishEvent(ctx context.Context, event *domain.TrackingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	routingKey := fmt.Sprintf("contractor.%s.job.%d", event.ContractorID, event.JobID)

	return p.ch.PublishWithContext(
		ctx,
		DispatchExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// PublishSample enqueues a raw location message for the tracker worker.
func PublishSample(ctx context.Context, cfg *config.Config, ch *amqp.Channel, msg *domain.LocationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return ch.PublishWithContext(
		ctx,
		"",
		SampleQueue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
