package messaging

import (
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type fakeConsumer struct {
	recordingChannel
	deliveries chan amqp.Delivery
	closed     chan struct{}
}

func (f *fakeConsumer) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	return amqp.Queue{Name: "amq.gen-1"}, nil
}

func (f *fakeConsumer) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}

func (f *fakeConsumer) Close() error {
	close(f.closed)
	return nil
}

type ackRecorder struct {
	mu    sync.Mutex
	acks  []uint64
	nacks []uint64
}

func (a *ackRecorder) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acks = append(a.acks, tag)
	return nil
}

func (a *ackRecorder) Nack(tag uint64, multiple, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacks = append(a.nacks, tag)
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func TestListenToTopic(t *testing.T) {
	ch := &fakeConsumer{
		deliveries: make(chan amqp.Delivery, 2),
		closed:     make(chan struct{}),
	}
	acks := &ackRecorder{}
	var bodies []string
	err := ListenToTopic(ch, "catalog", CatalogTopic, func(body []byte) error {
		bodies = append(bodies, string(body))
		if string(body) == "bad" {
			return errors.New("bad message")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(ch.bindings) != 1 || ch.bindings[0] != "amq.gen-1<-catalog_catalog_change" {
		t.Errorf("Unexpected bindings %v", ch.bindings)
	}

	ch.deliveries <- amqp.Delivery{Acknowledger: acks, DeliveryTag: 1, Body: []byte("bad")}
	ch.deliveries <- amqp.Delivery{Acknowledger: acks, DeliveryTag: 2, Body: []byte("ok")}
	close(ch.deliveries)

	select {
	case <-ch.closed:
	case <-time.After(time.Second):
		t.Fatal("listener did not close the channel")
	}
	if len(bodies) != 2 {
		t.Fatalf("Expected both messages handled, got %v", bodies)
	}
	acks.mu.Lock()
	defer acks.mu.Unlock()
	if len(acks.nacks) != 1 || acks.nacks[0] != 1 {
		t.Errorf("Unexpected nacks %v", acks.nacks)
	}
	if len(acks.acks) != 1 || acks.acks[0] != 2 {
		t.Errorf("Unexpected acks %v", acks.acks)
	}
}
