package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ArnavMhatre/vtcalapp/internal/config"
	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
	"github.com/ArnavMhatre/vtcalapp/internal/core/ports/in"
	"github.com/ArnavMhatre/vtcalapp/internal/core/ports/out"
)

// EventListener принимает пакеты занятий из очереди и отправляет
// их в календарь асинхронно, минуя HTTP-слой
type EventListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.TimetableUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

// SubmitEventsMessage - тело сообщения очереди
type SubmitEventsMessage struct {
	Events []domain.Occurrence `json:"events"`
}

func NewEventListener(useCase in.TimetableUseCase, cfg *config.Config, logger out.LoggerPort) (*EventListener, error) {
	if !cfg.RabbitMq.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMq.AmqpUri)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMq.AmqpUri,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &EventListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *EventListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMq.QueueConfig.EventsQueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMq.QueueConfig.EventsQueueBind,
		l.cfg.RabbitMq.QueueConfig.EventsQueueExchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go l.consumeLoop(ctx, msgs)

	return nil
}

func (l *EventListener) consumeLoop(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			// Библиотека закрывает канал при потере соединения
			if !ok {
				l.logger.Error("rabbitmq.consume.channel_closed", out.LogFields{
					"queue": l.cfg.RabbitMq.QueueConfig.EventsQueueName,
				})
				return
			}

			if err := l.processMessage(ctx, msg); err != nil {
				l.logger.Error("rabbitmq.message.process_failed", out.LogFields{
					"error": err.Error(),
				})
				// Нечитаемое сообщение не станет читаемым при повторной
				// доставке, поэтому не возвращаем его в очередь
				msg.Nack(false, false)
				continue
			}
			msg.Ack(false)
		}
	}
}

func (l *EventListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	var message SubmitEventsMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		return err
	}

	l.logger.Info("rabbitmq.message.received", out.LogFields{
		"eventsCount": len(message.Events),
	})

	// Частичный неуспех не повод для requeue:
	// результат по каждому событию уже зафиксирован в отчете
	report := l.useCase.SubmitEvents(ctx, message.Events)

	l.logger.Info("rabbitmq.message.processed", out.LogFields{
		"created": report.Created,
		"total":   len(report.Results),
	})

	return nil
}

func (l *EventListener) Stop() error {
	if l.channel != nil {
		if err := l.channel.Close(); err != nil {
			return err
		}
	}
	if l.conn != nil {
		return l.conn.Close()
	}
	return nil
}
