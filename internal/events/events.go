package events

import (
	"time"

	EventBus "github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

// Domain event topics
const (
	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"
	TicketCreated  = "ticket.created"
	TicketDeleted  = "ticket.deleted"
)

var Topics = []string{ProductCreated, ProductUpdated, ProductDeleted, TicketCreated, TicketDeleted}

// Event is the envelope delivered to subscribers
type Event struct {
	Topic      string      `json:"topic"`
	ResourceID string      `json:"resourceId"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload,omitempty"`
}

// Notifier is implemented by anything services can emit events to
type Notifier interface {
	Notify(topic, resourceID string, payload interface{})
}

// Bus is an in-process asynchronous event bus
type Bus struct {
	bus EventBus.Bus
}

func NewBus() *Bus {
	return &Bus{bus: EventBus.New()}
}

// Notify publishes an event; subscribers run asynchronously.
func (b *Bus) Notify(topic, resourceID string, payload interface{}) {
	b.bus.Publish(topic, Event{
		Topic:      topic,
		ResourceID: resourceID,
		OccurredAt: time.Now(),
		Payload:    payload,
	})
}

// Subscribe registers fn for topic. Events for one subscriber are delivered in order.
func (b *Bus) Subscribe(topic string, fn func(Event)) error {
	return b.bus.SubscribeAsync(topic, fn, true)
}

// SubscribeAll registers fn for every domain topic. With ordered unset, calls may
// overlap and publishers never wait on a slow subscriber.
func (b *Bus) SubscribeAll(fn func(Event), ordered bool) error {
	for _, topic := range Topics {
		if err := b.bus.SubscribeAsync(topic, fn, ordered); err != nil {
			return err
		}
	}
	return nil
}

// Wait blocks until all async subscribers have finished
func (b *Bus) Wait() {
	b.bus.WaitAsync()
}

// LogSubscriber writes every event to the debug log
func LogSubscriber(evt Event) {
	zap.L().Debug("domain event",
		zap.String("namespace", "events"),
		zap.String("topic", evt.Topic),
		zap.String("resource_id", evt.ResourceID),
	)
}
