// Package events publishes appointment audit events to RabbitMQ so other
// services (notifications, reporting) can react to bookings.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
)

// Message is the JSON body published for every event.
type Message struct {
	Action      string    `json:"action"`
	Entity      string    `json:"entity"`
	EntityID    *uint     `json:"entityId,omitempty"`
	GymCenterID uint      `json:"gymCenterId"`
	UserID      *uint     `json:"userId,omitempty"`
	Metadata    any       `json:"metadata,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func NewMessage(ev audit.Event) Message {
	return Message{
		Action:      ev.Action,
		Entity:      ev.Entity,
		EntityID:    ev.EntityID,
		GymCenterID: ev.GymCenterID,
		UserID:      ev.UserID,
		Metadata:    ev.Metadata,
		OccurredAt:  ev.OccurredAt,
	}
}

// Publisher is an audit.Sink writing to one durable queue. The connection is
// opened lazily and re-dialled after a failure.
type Publisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url, queue string) *Publisher {
	return &Publisher{url: url, queue: queue}
}

func (p *Publisher) Record(ctx context.Context, ev audit.Event) error {
	body, err := json.Marshal(NewMessage(ev))
	if err != nil {
		return fmt.Errorf("events: marshal: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.OccurredAt,
			Type:         ev.Action,
			Body:         body,
		},
	)
	if err != nil {
		p.reset()
		return fmt.Errorf("events: publish: %w", err)
	}
	return nil
}

// channel returns an open channel, dialling and declaring the queue if
// needed. Callers hold p.mu.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("events: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events: channel: %w", err)
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("events: declare %s: %w", p.queue, err)
	}

	log.Printf("events: publishing to queue %s", p.queue)
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
}
