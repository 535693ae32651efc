// Package notify publishes order events to RabbitMQ.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xtremepizzaria/storefront/internal/domains/orders/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/ports"
)

// Exchange is the durable fanout exchange order events are published to.
const Exchange = "order_status_fanout"

// Channel is the subset of *amqp.Channel the notifier publishes through.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// message is the wire body of every published event.
type message struct {
	Event string       `json:"event"`
	Data  domain.Event `json:"data"`
}

// AMQPNotifier publishes each event as one persistent JSON message.
type AMQPNotifier struct {
	mu     sync.Mutex
	conn   *amqp.Connection
	ch     Channel
	source string
	now    func() time.Time
}

var _ ports.Notifier = (*AMQPNotifier)(nil)

// Dial connects to url and declares the fanout exchange.
func Dial(url, source string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(Exchange, "fanout", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare %s: %w", Exchange, err)
	}
	n := NewAMQPNotifier(ch, source)
	n.conn = conn
	return n, nil
}

// NewAMQPNotifier publishes through an already declared channel.
func NewAMQPNotifier(ch Channel, source string) *AMQPNotifier {
	return &AMQPNotifier{ch: ch, source: source, now: time.Now}
}

func (n *AMQPNotifier) Publish(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(message{Event: event.EventName(), Data: event})
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.EventName(), err)
	}

	pub := amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		Type:          event.EventName(),
		CorrelationId: orderID(event),
		Timestamp:     n.now().UTC(),
		Headers: amqp.Table{
			"x-source": n.source,
		},
		Body: body,
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.ch.PublishWithContext(ctx, Exchange, "", false, false, pub); err != nil {
		return fmt.Errorf("publish %s: %w", event.EventName(), err)
	}
	return nil
}

// Close releases the channel and connection.
func (n *AMQPNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	var err error
	if n.ch != nil {
		err = n.ch.Close()
	}
	if n.conn != nil {
		if cerr := n.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func orderID(event domain.Event) string {
	switch e := event.(type) {
	case domain.OrderPlaced:
		return e.OrderID
	case domain.OrderStatusChanged:
		return e.OrderID
	default:
		return ""
	}
}

// Noop discards events.
type Noop struct{}

func (Noop) Publish(context.Context, domain.Event) error { return nil }

var _ ports.Notifier = Noop{}
