// Package queue publica eventos de dominio en RabbitMQ.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/application/ports"
	"github.com/jhoicas/DailyBooks-api/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

// PayrollQueue cola durable de gastos de nómina generados automáticamente.
const PayrollQueue = "payroll.expense.created"

var (
	_ ports.PayrollPublisher = (*AMQPPublisher)(nil)
	_ ports.PayrollPublisher = NoopPublisher{}
)

// AMQPPublisher abre una conexión por publicación (un evento por turno cerrado).
type AMQPPublisher struct {
	url string
	log *logger.Logger
}

// NewAMQPPublisher crea el publicador para la URL del broker.
func NewAMQPPublisher(url string, log *logger.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, log: logger.OrNop(log).Component("payroll-queue")}
}

// PublishPayroll publica el evento como mensaje persistente en PayrollQueue.
func (p *AMQPPublisher) PublishPayroll(ctx context.Context, ev ports.PayrollEvent) error {
	msg, err := buildPublishing(ev, time.Now().UTC())
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: dial falló")
		return fmt.Errorf("amqp dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(PayrollQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("amqp queue declare: %w", err)
	}
	if err := ch.PublishWithContext(ctx, "", PayrollQueue, false, false, msg); err != nil {
		return fmt.Errorf("amqp publish: %w", err)
	}
	p.log.Debug().Str("transaction_id", ev.TransactionID).Str("shop_id", ev.ShopID).Msg("evento de nómina publicado")
	return nil
}

func buildPublishing(ev ports.PayrollEvent, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal payroll event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.TransactionID,
		Timestamp:    now,
		Type:         PayrollQueue,
		Body:         body,
	}, nil
}

// NoopPublisher descarta los eventos (sin broker configurado).
type NoopPublisher struct{}

func (NoopPublisher) PublishPayroll(context.Context, ports.PayrollEvent) error { return nil }
