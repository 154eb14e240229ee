package mq

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

// Person lifecycle actions carried by an event's routing key.
const (
	ActionCreated = "PersonCreated"
	ActionUpdated = "PersonUpdated"
	ActionDeleted = "PersonDeleted"
	ActionUnknown = "Unknown"
)

// RoutingKeys are the person lifecycle routing keys, one per write method.
var RoutingKeys = []string{
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

type Event struct {
	Id       uuid.UUID      `json:"event_id"`
	TS       time.Time      `json:"time_stamp"`
	Method   string         `json:"event_action"`
	PersonID uint64         `json:"person_id"`
	Payload  map[string]any `json:"person_payload"`
}

func NewEvent(method string, personID uint64, payload map[string]any) Event {
	return Event{
		Id:       uuid.New(),
		TS:       time.Now().UTC(),
		Method:   method,
		PersonID: personID,
		Payload:  payload,
	}
}

// Action names what happened to the person for a routing key.
func Action(routingKey string) string {
	switch routingKey {
	case http.MethodPost:
		return ActionCreated
	case http.MethodPut, http.MethodPatch:
		return ActionUpdated
	case http.MethodDelete:
		return ActionDeleted
	}
	return ActionUnknown
}

// headers lets consumers route or filter without decoding the body.
func (e Event) headers() amqp091.Table {
	return amqp091.Table{
		"person_id": int64(e.PersonID),
		"action":    Action(e.Method),
	}
}
