package messaging

import (
	"fmt"

	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the part of *amqp.Channel used for publishing.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// DefineExchange declares the topic exchange only, for topics that are
// consumed through exclusive queues (see ListenToTopic).
func DefineExchange(ch Channel, prefix string, topic ChangeTopic) error {
	return ch.ExchangeDeclare(
		GetName(prefix, topic), // name
		"topic",                // type
		true,                   // durable
		false,                  // auto-delete
		false,                  // internal
		false,                  // noWait
		nil,                    // arguments
	)
}

// DefineTopic declares the exchange and a durable queue with the same name
// bound to it, so events are kept until a consumer picks them up.
func DefineTopic(ch Channel, prefix string, topic ChangeTopic) error {
	name := GetName(prefix, topic)
	if err := DefineExchange(ch, prefix, topic); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(
		name,  // name of the queue
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // noWait
		nil,   // arguments
	); err != nil {
		return err
	}
	return ch.QueueBind(name, name, name, false, nil)
}

func GetName(prefix string, topic ChangeTopic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}

func Send[V any](ch Channel, prefix string, topic ChangeTopic, data V) error {
	bytes, err := jsoncompat.Marshal(data)
	if err != nil {
		return err
	}
	name := GetName(prefix, topic)
	return ch.Publish(
		name,
		name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        bytes,
		},
	)
}

// Connection is the part of *amqp.Connection used for publishing.
type Connection interface {
	Channel() (*amqp.Channel, error)
}

// SendChange publishes data on a short lived channel of c.
func SendChange[V any](c Connection, prefix string, topic ChangeTopic, data V) error {
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return Send(ch, prefix, topic, data)
}
