// Package notify публикует доменные события в обменник уведомлений.
package notify

import (
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/eklimchuk/assistant-marketplace/internal/lib/rabbitmq"
)

// Publisher издатель событий поверх канала RabbitMQ.
// Nil-канал превращает публикацию в no-op: сервис поднимается
// и без брокера, события при этом теряются.
type Publisher struct {
	ch  *amqp.Channel
	log *slog.Logger
}

// New создает новый экземпляр Publisher.
func New(ch *amqp.Channel, log *slog.Logger) *Publisher {
	return &Publisher{ch: ch, log: log}
}

// Publish отправляет событие в обменник уведомлений.
func (p *Publisher) Publish(routingKey string, message any) error {
	if p.ch == nil {
		p.log.Debug("event publisher disabled, dropping message",
			slog.String("routing_key", routingKey))
		return nil
	}
	return rabbitmq.PublishMessage(p.ch, rabbitmq.Exchange, routingKey, message)
}
