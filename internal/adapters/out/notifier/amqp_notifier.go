package notifier

import (
	"context"
	"encoding/json"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/config"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AmqpNotifier публикует уведомления о новых записях в очередь
// Доставку дальше (email, мессенджер) делает внешний потребитель очереди
// Для движка это fire-and-forget: ошибку публикации обрабатывает вызывающий как мягкую
type AmqpNotifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  out.LoggerPort
}

func NewAmqpNotifier(cfg *config.Config, logger out.LoggerPort) (*AmqpNotifier, error) {
	if !cfg.Notifier.Enabled {
		logger.Info("notifier.disabled", out.LogFields{
			"message": "Notifier is disabled, booking notifications will not be sent",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.Notifier.AmqpURI)
	if err != nil {
		logger.Error("notifier.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.Notifier.AmqpURI,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("notifier.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	_, err = channel.QueueDeclare(
		cfg.Notifier.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		logger.Error("notifier.queue_declare.failed", out.LogFields{
			"error": err.Error(),
			"queue": cfg.Notifier.Queue,
		})
		return nil, err
	}

	return &AmqpNotifier{
		conn:    conn,
		channel: channel,
		queue:   cfg.Notifier.Queue,
		logger:  logger.WithModule("AmqpNotifier"),
	}, nil
}

func (n *AmqpNotifier) NotifyNewAppointment(ctx context.Context, notification out.NewAppointmentNotification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	err = n.channel.PublishWithContext(ctx,
		"",      // exchange
		n.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		n.logger.Error("notifier.publish.failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}

	n.logger.Debug("notifier.publish.success", out.LogFields{
		"queue": n.queue,
		"date":  notification.Date,
		"time":  notification.Time,
	})

	return nil
}

func (n *AmqpNotifier) Close() error {
	if err := n.channel.Close(); err != nil {
		return err
	}
	return n.conn.Close()
}
