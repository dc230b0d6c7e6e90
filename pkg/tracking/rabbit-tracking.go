package tracking

import (
	"log"
	"net/http"

	"github.com/matst80/slask-catalog/pkg/messaging"
	"github.com/matst80/slask-catalog/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventSession uint16 = 0
	EventFilter  uint16 = 2
)

type connection interface {
	messaging.Connection
	Close() error
}

var dial = func(url string) (connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

type RabbitTracking struct {
	prefix     string
	connection connection
	send       func(data any) error
}

func NewRabbitTracking(url, prefix string) (*RabbitTracking, error) {
	ret := &RabbitTracking{
		prefix: prefix,
	}
	if err := ret.connect(url); err != nil {
		return nil, err
	}
	ret.send = func(data any) error {
		return messaging.SendChange(ret.connection, ret.prefix, messaging.TrackingTopic, data)
	}
	return ret, nil
}

func (t *RabbitTracking) connect(url string) error {
	conn, err := dial(url)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer ch.Close()
	if err = messaging.DefineTopic(ch, t.prefix, messaging.TrackingTopic); err != nil {
		_ = conn.Close()
		return err
	}
	t.connection = conn
	return nil
}

func (t *RabbitTracking) Close() error {
	if t.connection == nil {
		return nil
	}
	return t.connection.Close()
}

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

type FilterEventData struct {
	*BaseEvent
	Generation uint64          `json:"generation"`
	Query      string          `json:"query,omitempty"`
	Changed    types.Dimension `json:"changed,omitempty"`
	Visible    int             `json:"noi"`
	Total      int             `json:"total"`
}

// TrackSession reports a new session. r is nil for sessions that did not
// start from a request, like the browse client.
func (t *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	if r == nil {
		if err := t.send(Session{BaseEvent: &BaseEvent{Event: EventSession, SessionId: sessionId, Context: "browse"}}); err != nil {
			log.Println("Error sending session event: ", err)
		}
		return
	}
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}

	err := t.send(Session{
		BaseEvent:    &BaseEvent{Event: EventSession, SessionId: sessionId, Context: "catalog"},
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           ip,
		PragmaHeader: r.Header.Get("Pragma"),
	})
	if err != nil {
		log.Println("Error sending session event: ", err)
	}
}

func (t *RabbitTracking) TrackFilter(event types.FilterEvent) {
	err := t.send(&FilterEventData{
		BaseEvent:  &BaseEvent{Event: EventFilter, SessionId: event.SessionId, Context: "catalog"},
		Generation: event.Generation,
		Query:      event.State.String(),
		Changed:    event.Changed,
		Visible:    event.Visible,
		Total:      event.Total,
	})
	if err != nil {
		log.Println("Error sending filter event: ", err)
	}
}
