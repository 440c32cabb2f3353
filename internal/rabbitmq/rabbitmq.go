package rabbitmq

import (
	"context"
	"errors"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

type MQConn struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func Dial(uri string) (*MQConn, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, errors.New("rabbitmq uri is required")
	}

	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &MQConn{
		conn: conn,
		channel: ch,
	}, nil
}

func (m *MQConn) Publish(queue string, data []byte) error {
	if _, err := m.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	return m.channel.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body: data,
	})
}

func (m *MQConn) Close() error {
	if m.channel != nil {
		_ = m.channel.Close()
	}
	if m.conn != nil {
		return m.conn.Close()
	}
	return nil
}
