package amqp

import (
	"time"

	"github.com/ykhdr/crack-hash/common/amqp/publisher"
)

type Config struct {
	URI              string        `kdl:"uri"`
	Username         string        `kdl:"username"`
	Password         string        `kdl:"password"`
	ReconnectTimeout time.Duration `kdl:"reconnect-timeout"`
	Exchange         string        `kdl:"exchange"`
	RoutingKey       string        `kdl:"routing-key"`
}

func DefaultConfig() *Config {
	return &Config{
		ReconnectTimeout: 5 * time.Second,
		RoutingKey:       "bench.results",
	}
}

func (c *Config) Enabled() bool {
	return c != nil && c.URI != ""
}

func (c *Config) PublisherConfig(marshal publisher.Marshal, contentType string) *publisher.Config {
	return &publisher.Config{
		Exchange:    c.Exchange,
		RoutingKey:  c.RoutingKey,
		Marshal:     marshal,
		ContentType: contentType,
	}
}
