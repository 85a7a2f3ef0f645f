package net

import (
	"net"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestAdvertisedHost_Explicit(t *testing.T) {
	for _, host := range []string{"127.0.0.1", "10.1.2.3", "status.local"} {
		got, err := AdvertisedHost(host)
		assert.NoError(t, err)
		assert.Equal(t, host, got)
	}
}

func TestAdvertisedHost_Wildcard(t *testing.T) {
	for _, host := range []string{"", "0.0.0.0", "::"} {
		got, err := AdvertisedHost(host)
		if err != nil {
			assert.True(t, errors.Is(err, ErrNoValidNetworkInterfaceFound), "got %v", err)
			continue
		}
		ip := net.ParseIP(got)
		if assert.NotNil(t, ip) {
			assert.NotNil(t, ip.To4())
			assert.False(t, ip.IsLoopback())
		}
	}
}
