package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Metrics счётчик опубликованных событий
type Metrics interface {
	IncEventPublished(routingKey, result string)
}

// RabbitMQPublisher публикует события записей в topic exchange
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   Logger
	metrics  Metrics
	mu       sync.Mutex
}

// NewRabbitMQPublisher подключается к брокеру и объявляет exchange
func NewRabbitMQPublisher(url, exchange string, logger Logger, metrics Metrics) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	logger.Info("RabbitMQ publisher connected (exchange=%s)", exchange)

	return &RabbitMQPublisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

// Publish отправляет событие; routing key совпадает с типом события
func (p *RabbitMQPublisher) Publish(ctx context.Context, eventType string, appointment *domain.Appointment) error {
	msg := NewMessage(eventType, appointment, time.Now())
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		p.exchange, // exchange
		eventType,  // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.ID.String(),
			Type:         eventType,
			Timestamp:    msg.OccurredAt,
			Body:         payload,
		},
	)
	if err != nil {
		p.recordResult(eventType, "error")
		return fmt.Errorf("%w: %s: %v", ErrPublish, eventType, err)
	}

	p.recordResult(eventType, "ok")
	p.logger.Debug("Event %s published for appointment %d (message_id=%s)", eventType, appointment.ID, msg.ID)

	return nil
}

// Close закрывает канал и соединение
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Warn("Error closing RabbitMQ channel: %v", err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return err
		}
	}

	p.logger.Info("RabbitMQ publisher closed")
	return nil
}

func (p *RabbitMQPublisher) recordResult(routingKey, result string) {
	if p.metrics != nil {
		p.metrics.IncEventPublished(routingKey, result)
	}
}

// NoopPublisher используется, когда брокер выключен
type NoopPublisher struct {
	logger Logger
}

func NewNoopPublisher(logger Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

// Publish только пишет событие в лог
func (p *NoopPublisher) Publish(_ context.Context, eventType string, appointment *domain.Appointment) error {
	p.logger.Debug("noop publish %s for appointment %d", eventType, appointment.ID)
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
