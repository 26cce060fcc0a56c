package services

import "fmt"

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event describes one committed catalog mutation.
type Event struct {
	Type   string `json:"type"`
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     uint   `json:"id"`
}

func NewEvent(entity, action string, id uint) Event {
	return Event{
		Type:   fmt.Sprintf("%s.%s", entity, action),
		Entity: entity,
		Action: action,
		ID:     id,
	}
}

type Publisher interface {
	Publish(Event)
}

type PublisherFunc func(Event)

func (f PublisherFunc) Publish(e Event) {
	f(e)
}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}

// Publishers fans an event out to every publisher in order.
type Publishers []Publisher

func (ps Publishers) Publish(e Event) {
	for _, p := range ps {
		p.Publish(e)
	}
}
