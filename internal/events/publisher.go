package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

const DefaultExchange = "plan_updates"

type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends JSON updates to a RabbitMQ topic exchange. A channel is
// opened per message since amqp channels must not be shared between
// goroutines.
type Publisher struct {
	exchange string
	open     func() (channel, error)
	close    func() error
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	defer ch.Close()
	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete when unused
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &Publisher{
		exchange: exchange,
		open: func() (channel, error) {
			return conn.Channel()
		},
		close: conn.Close,
	}, nil
}

// Publish sends update to the exchange. amqp publishes are not
// cancellable, so ctx is only checked before the channel is opened.
func (p *Publisher) Publish(ctx context.Context, routingKey string, update map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	ch, err := p.open()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *Publisher) Close() error {
	return p.close()
}
