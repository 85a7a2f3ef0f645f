package connection

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	v, ok := retry(context.Background(), zerolog.Nop(), time.Millisecond, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("refused")
		}
		return 42, nil
	})
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, ok := retry(ctx, zerolog.Nop(), 5*time.Millisecond, func() (string, error) {
		return "", errors.New("refused")
	})
	assert.False(t, ok)
}

func TestNewConnection_DialError(t *testing.T) {
	_, err := NewConnection(context.Background(), "amqp://127.0.0.1:1/", amqp.Config{}, time.Millisecond)
	assert.Error(t, err)
}
