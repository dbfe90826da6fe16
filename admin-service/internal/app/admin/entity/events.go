package entity

import "time"

type EventAction string

const (
	ActionCreated EventAction = "CREATED"
	ActionUpdated EventAction = "UPDATED"
	ActionDeleted EventAction = "DELETED"
)

// Event - событие изменения сущности для Kafka (топик admin_events)
// EventType формируется как <KIND>_<ACTION>, например PRODUCT_DELETED
type Event struct {
	EventType string    `json:"event_type"`
	Entity    Kind      `json:"entity"`
	EntityID  int64     `json:"entity_id"`
	Cascaded  []Ref     `json:"cascaded,omitempty"` // дочерние записи, удалённые каскадом
	Timestamp time.Time `json:"timestamp"`
}

func NewEvent(kind Kind, action EventAction, id int64, at time.Time) Event {
	return Event{
		EventType: kind.EventPrefix() + "_" + string(action),
		Entity:    kind,
		EntityID:  id,
		Timestamp: at,
	}
}
