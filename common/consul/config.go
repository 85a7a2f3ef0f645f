package consul

import (
	"fmt"
	"strings"

	"github.com/hashicorp/consul/api"
)

type HealthConfig struct {
	Interval string `kdl:"interval"`
	Timeout  string `kdl:"timeout"`
	// Http is either a full URL or a path on the registered service.
	Http string `kdl:"http"`
}

func (c *HealthConfig) toApiConfig(address string, port int) *api.AgentServiceCheck {
	if c == nil {
		return nil
	}
	check := c.Http
	if strings.HasPrefix(check, "/") {
		check = fmt.Sprintf("http://%s:%d%s", address, port, check)
	}
	return &api.AgentServiceCheck{
		HTTP:     check,
		Timeout:  c.Timeout,
		Interval: c.Interval,
	}
}

type Config struct {
	Address string        `kdl:"address"`
	Health  *HealthConfig `kdl:"health"`
}

func DefaultConfig() *Config {
	return &Config{
		Address: "127.0.0.1:8500",
		Health: &HealthConfig{
			Interval: "5s",
			Timeout:  "2s",
			Http:     "/api/health",
		},
	}
}

func (c *Config) toApiConfig() *api.Config {
	cfg := api.DefaultConfig()
	cfg.Address = c.Address
	return cfg
}
