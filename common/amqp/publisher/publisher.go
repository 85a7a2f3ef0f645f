package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type DeliveryMode uint8

const (
	Transient  DeliveryMode = 1
	Persistent DeliveryMode = 2
)

type Marshal func(any) ([]byte, error)

type Config struct {
	Exchange    string
	RoutingKey  string
	Marshal     Marshal
	ContentType string
}

// Channel is the subset of connection.Channel used for publishing.
type Channel interface {
	Publish(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Publisher[T any] interface {
	SendMessage(ctx context.Context, message *T, mode DeliveryMode) error
}

type publisher[T any] struct {
	cfg *Config
	ch  Channel
	l   zerolog.Logger
	now func() time.Time
}

func New[T any](ch Channel, config *Config) Publisher[T] {
	if config.Marshal == nil {
		config.Marshal = json.Marshal
	}
	if config.ContentType == "" {
		config.ContentType = "application/json"
	}
	return &publisher[T]{
		cfg: config,
		ch:  ch,
		now: time.Now,
		l: log.With().
			Str("domain", "amqp").
			Str("type", "publisher").
			Type("message", *new(T)).
			Str("exchange", config.Exchange).
			Str("routing-key", config.RoutingKey).
			Logger(),
	}
}

func (p *publisher[T]) SendMessage(ctx context.Context, message *T, mode DeliveryMode) error {
	body, err := p.cfg.Marshal(message)
	if err != nil {
		p.l.Error().Err(err).Msg("failed to marshal message")
		return errors.Wrap(err, "marshal message")
	}
	msg := amqp.Publishing{
		DeliveryMode: uint8(mode),
		ContentType:  p.cfg.ContentType,
		Timestamp:    p.now(),
		Body:         body,
	}
	if err := p.ch.Publish(ctx, p.cfg.Exchange, p.cfg.RoutingKey, false, false, msg); err != nil {
		p.l.Error().Err(err).Msg("failed to send message")
		return errors.Wrap(err, "send message")
	}
	p.l.Debug().Int("bytes", len(body)).Msg("message sent")
	return nil
}
