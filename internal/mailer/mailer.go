package mailer

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/student-manager/backend/internal/config"
	"github.com/sysu-ecnc-dev/student-manager/backend/internal/domain"
)

// QueueName 是发件队列的名字，api 进程发布，cmd/mail 消费。
const QueueName = "email_queue"

type Queue struct {
	cfg     *config.Config
	channel *amqp.Channel
}

func NewQueue(cfg *config.Config, channel *amqp.Channel) *Queue {
	return &Queue{
		cfg:     cfg,
		channel: channel,
	}
}

func (q *Queue) Publish(msg *domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(q.cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return q.channel.PublishWithContext(
		ctx,
		"",
		QueueName,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
