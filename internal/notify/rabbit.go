package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	FallbackEvent = "catalog.fallback"

	// NotificationTTL drops notices nobody consumed in time; a stale
	// "using sample data" toast is worse than none.
	NotificationTTL = time.Minute

	appID = "newswire"
)

var ErrRabbitConfig = errors.New("notify: rabbitmq exchange and routing key are required")

type NotificationMessage struct {
	Event        string       `json:"event"`
	Timestamp    time.Time    `json:"timestamp"`
	Notification Notification `json:"notification"`
}

// Channel is the subset of *amqp.Channel used by RabbitNotifier.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp.Publishing,
	) error
	Close() error
}

// RabbitNotifier publishes notifications to a topic exchange so that any
// connected front end can surface them.
type RabbitNotifier struct {
	conn       *amqp.Connection
	ch         Channel
	exchange   string
	routingKey string
	logger     *log.Logger
	now        func() time.Time
}

func NewRabbitNotifier(uri, exchange, routingKey string, logger *log.Logger) (*RabbitNotifier, error) {
	if exchange == "" || routingKey == "" {
		return nil, ErrRabbitConfig
	}

	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("notify: dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("notify: open channel: %w", err)
	}

	n, err := newRabbitNotifier(ch, exchange, routingKey, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	n.conn = conn
	return n, nil
}

// newRabbitNotifier declares the exchange on ch and takes ownership of it.
func newRabbitNotifier(ch Channel, exchange, routingKey string, logger *log.Logger) (*RabbitNotifier, error) {
	if logger == nil {
		logger = log.Default()
	}

	// durable topic exchange: consumers bind with patterns such as "catalog.#"
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("notify: declare exchange %q: %w", exchange, err)
	}

	logger.Printf("notify: publishing notifications to %s/%s", exchange, routingKey)
	return &RabbitNotifier{
		ch:         ch,
		exchange:   exchange,
		routingKey: routingKey,
		logger:     logger,
		now:        time.Now,
	}, nil
}

func (p *RabbitNotifier) Close() error {
	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

func (p *RabbitNotifier) Notify(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := p.now().UTC()
	body, err := json.Marshal(NotificationMessage{
		Event:        FallbackEvent,
		Timestamp:    now,
		Notification: n,
	})
	if err != nil {
		return err
	}

	err = p.ch.PublishWithContext(
		ctx,
		p.exchange,
		p.routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Transient,
			Expiration:   strconv.FormatInt(NotificationTTL.Milliseconds(), 10),
			Timestamp:    now,
			Type:         FallbackEvent,
			AppId:        appID,
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	p.logger.Printf("notify: published %q to %s/%s", n.Title, p.exchange, p.routingKey)
	return nil
}
