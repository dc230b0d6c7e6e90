package messaging

import (
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer is the part of *amqp.Channel used for listening.
type Consumer interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// DeclareBindAndConsume binds an exclusive queue to the topic exchange so
// every listener gets its own copy of each message.
func DeclareBindAndConsume(ch Consumer, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := GetName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	if err = ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		return nil, err
	}
	return ch.Consume(q.Name, "", false, false, false, false, nil)
}

// ListenToTopic calls handle with the body of each message. Messages are
// acked when handle succeeds; a failing message is logged, nacked without
// requeue and the listener keeps going.
func ListenToTopic(ch Consumer, prefix string, topic ChangeTopic, handle func(body []byte) error) error {
	msgs, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}
	go func() {
		defer ch.Close()
		for d := range msgs {
			if err := handle(d.Body); err != nil {
				log.Printf("Error processing %s message: %v", topic, err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}()
	return nil
}
