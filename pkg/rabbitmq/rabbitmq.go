package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"voice-orders/pkg/config"
	"voice-orders/pkg/logger"
	"voice-orders/pkg/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OrdersExchange is the fanout exchange carrying order change events to
// every connected dashboard session.
const OrdersExchange = "orders_fanout"

type RabbitMQ struct {
	Conn    *amqp.Connection
	Channel *amqp.Channel
	Logger  *logger.Logger
}

func ConnectRabbitMQ(cfg *config.RabbitMQConfig, log *logger.Logger) (*RabbitMQ, error) {
	connStr := fmt.Sprintf("amqp://%s:%s@%s:%d/",
		cfg.User, cfg.Password, cfg.Host, cfg.Port)

	conn, err := amqp.Dial(connStr)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	err = channel.ExchangeDeclare(
		OrdersExchange, // name
		"fanout",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		conn.Close()
		return nil, err
	}

	log.Info("startup", "rabbitmq_connected", "Connected to RabbitMQ")
	return &RabbitMQ{
		Conn:    conn,
		Channel: channel,
		Logger:  log,
	}, nil
}

func (r *RabbitMQ) Close() {
	if r.Channel != nil {
		r.Channel.Close()
	}
	if r.Conn != nil {
		r.Conn.Close()
	}
}

// PublishOrderEvent fans one order change out to all subscribed dashboard
// sessions. Delivery is transient: a dashboard that is not connected has
// no use for the event later.
func (r *RabbitMQ) PublishOrderEvent(event models.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = r.Channel.PublishWithContext(ctx,
		OrdersExchange, // exchange
		"",             // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	r.Logger.Debug("", "order_event_published",
		fmt.Sprintf("Order event published: %s %s", event.Type, event.Record.ID))
	return nil
}

// ConsumeOrderEvents binds a server-named exclusive queue to the fanout
// exchange and returns its delivery stream. Each caller gets its own queue
// and therefore its own copy of every event.
func (r *RabbitMQ) ConsumeOrderEvents() (<-chan amqp.Delivery, error) {
	q, err := r.Channel.QueueDeclare(
		"",    // name (let server generate)
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = r.Channel.QueueBind(
		q.Name,         // queue name
		"",             // routing key
		OrdersExchange, // exchange
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	deliveries, err := r.Channel.Consume(
		q.Name, // queue
		"",     // consumer
		true,   // auto-ack
		false,  // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming messages: %w", err)
	}

	return deliveries, nil
}
