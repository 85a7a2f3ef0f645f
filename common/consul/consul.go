package consul

import (
	"fmt"

	"github.com/hashicorp/consul/api"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Registrar announces a service to the consul agent and withdraws it.
type Registrar interface {
	RegisterService(serviceName, address string, port int) (string, error)
	DeregisterService(serviceId string) error
}

type agent interface {
	ServiceRegister(reg *api.AgentServiceRegistration) error
	ServiceDeregister(serviceId string) error
}

type client struct {
	l     zerolog.Logger
	cfg   *Config
	agent agent
}

func NewClient(cfg *Config) (Registrar, error) {
	cl, err := api.NewClient(cfg.toApiConfig())
	if err != nil {
		return nil, errors.Wrap(err, "create consul client")
	}
	return newClient(cfg, cl.Agent()), nil
}

func newClient(cfg *Config, a agent) *client {
	return &client{
		cfg:   cfg,
		agent: a,
		l: log.With().
			Str("domain", "consul").
			Str("agent", cfg.Address).
			Logger(),
	}
}

func ServiceId(address string, port int) string {
	return fmt.Sprintf("%s:%d", address, port)
}

func (c *client) RegisterService(serviceName, address string, port int) (string, error) {
	serviceId := ServiceId(address, port)
	registrationReq := &api.AgentServiceRegistration{
		ID:      serviceId,
		Name:    serviceName,
		Address: address,
		Port:    port,
		Check:   c.cfg.Health.toApiConfig(address, port),
	}
	if err := c.agent.ServiceRegister(registrationReq); err != nil {
		return "", errors.Wrapf(err, "register service %s", serviceId)
	}
	c.l.Info().Str("service", serviceName).Str("id", serviceId).Msg("service registered")
	return serviceId, nil
}

func (c *client) DeregisterService(serviceId string) error {
	if err := c.agent.ServiceDeregister(serviceId); err != nil {
		return errors.Wrapf(err, "deregister service %s", serviceId)
	}
	c.l.Info().Str("id", serviceId).Msg("service deregistered")
	return nil
}
