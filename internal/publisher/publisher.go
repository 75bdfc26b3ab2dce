// Package publisher pushes domain events to RabbitMQ. Errors are
// logged and returned so handlers can ignore failures without
// interrupting the request flow.
package publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cabin-reservation/internal/queue"
)

// PublishReservationConfirmed publishes to the reservation.confirmed
// queue. Messages are marked persistent so they survive broker
// restarts.
func PublishReservationConfirmed(ctx context.Context, event queue.ReservationConfirmedEvent) error {
	return publish(ctx, queue.ReservationConfirmedQueue, event)
}

// PublishClientRegistered publishes to the client.registered queue.
func PublishClientRegistered(ctx context.Context, event queue.ClientRegisteredEvent) error {
	return publish(ctx, queue.ClientRegisteredQueue, event)
}

func publish(ctx context.Context, queueName string, event any) error {
	conn, err := amqp.Dial(queue.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
