package connection

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrConnAlreadyClosed    = errors.New("connection is already closed")
	ErrChannelAlreadyClosed = errors.New("channel is already closed")
)

// Connection redials the broker whenever the underlying connection drops,
// until Close is called or the context passed to NewConnection is done.
type Connection struct {
	l                zerolog.Logger
	uri              string
	opts             amqp.Config
	reconnectTimeout time.Duration

	m      sync.RWMutex
	conn   *amqp.Connection
	closed atomic.Bool
	cancel context.CancelFunc
}

func NewConnection(
	ctx context.Context,
	uri string,
	opts amqp.Config,
	reconnectTimeout time.Duration,
) (*Connection, error) {
	c, err := amqp.DialConfig(uri, opts)
	if err != nil {
		return nil, errors.Wrap(err, "dial amqp connection")
	}
	ctx, cancel := context.WithCancel(ctx)
	conn := &Connection{
		uri:              uri,
		opts:             opts,
		conn:             c,
		cancel:           cancel,
		reconnectTimeout: reconnectTimeout,
		l: log.With().
			Str("domain", "amqp").
			Str("type", "connection").
			Logger(),
	}
	go conn.watch(ctx)
	return conn, nil
}

func (c *Connection) Connection() *amqp.Connection {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.conn
}

func (c *Connection) Close() error {
	if c.closed.Swap(true) {
		return ErrConnAlreadyClosed
	}
	c.cancel()
	if err := c.Connection().Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return errors.Wrap(err, "close amqp connection")
	}
	return nil
}

func (c *Connection) watch(ctx context.Context) {
	for {
		notify := c.Connection().NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-ctx.Done():
			return
		case err, ok := <-notify:
			if !ok || c.closed.Load() {
				return
			}
			c.l.Warn().Err(err).Msg("connection lost, reconnecting")
		}
		conn, ok := retry(ctx, c.l, c.reconnectTimeout, func() (*amqp.Connection, error) {
			return amqp.DialConfig(c.uri, c.opts)
		})
		if !ok {
			return
		}
		c.m.Lock()
		c.conn = conn
		c.m.Unlock()
		c.l.Info().Msg("connection restored")
	}
}

// Channel reopens itself on the current connection whenever it is closed by
// the broker.
type Channel struct {
	l    zerolog.Logger
	conn *Connection

	m      sync.RWMutex
	ch     *amqp.Channel
	closed atomic.Bool
	cancel context.CancelFunc
}

func (c *Connection) Channel(ctx context.Context) (*Channel, error) {
	if c.closed.Load() {
		return nil, ErrConnAlreadyClosed
	}
	amqpCh, err := c.Connection().Channel()
	if err != nil {
		return nil, errors.Wrap(err, "open amqp channel")
	}
	ctx, cancel := context.WithCancel(ctx)
	ch := &Channel{
		ch:     amqpCh,
		conn:   c,
		cancel: cancel,
		l: log.With().
			Str("domain", "amqp").
			Str("type", "channel").
			Logger(),
	}
	go ch.watch(ctx)
	return ch, nil
}

func (ch *Channel) Channel() *amqp.Channel {
	ch.m.RLock()
	defer ch.m.RUnlock()
	return ch.ch
}

func (ch *Channel) IsClosed() bool {
	return ch.closed.Load()
}

func (ch *Channel) Close() error {
	if ch.closed.Swap(true) {
		return ErrChannelAlreadyClosed
	}
	ch.cancel()
	if err := ch.Channel().Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return errors.Wrap(err, "close amqp channel")
	}
	return nil
}

func (ch *Channel) Publish(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if ch.closed.Load() {
		return ErrChannelAlreadyClosed
	}
	if err := ch.Channel().PublishWithContext(ctx, exchange, key, mandatory, immediate, msg); err != nil {
		return errors.Wrap(err, "publish")
	}
	return nil
}

func (ch *Channel) watch(ctx context.Context) {
	for {
		notify := ch.Channel().NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-ctx.Done():
			return
		case err, ok := <-notify:
			if ch.closed.Load() {
				return
			}
			if ok {
				ch.l.Warn().Err(err).Msg("channel closed by broker, reopening")
			}
		}
		amqpCh, ok := retry(ctx, ch.l, ch.conn.reconnectTimeout, func() (*amqp.Channel, error) {
			return ch.conn.Connection().Channel()
		})
		if !ok {
			return
		}
		ch.m.Lock()
		ch.ch = amqpCh
		ch.m.Unlock()
		ch.l.Info().Msg("channel reopened")
	}
}

// retry calls open until it succeeds, waiting timeout between attempts. It
// gives up when ctx is done.
func retry[T any](ctx context.Context, l zerolog.Logger, timeout time.Duration, open func() (T, error)) (T, bool) {
	timer := time.NewTimer(0)
	defer timer.Stop()
	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			var zero T
			return zero, false
		case <-timer.C:
		}
		v, err := open()
		if err == nil {
			return v, true
		}
		l.Warn().Err(err).Int("attempt", attempt).Msg("reconnect failed")
		timer.Reset(timeout)
	}
}
