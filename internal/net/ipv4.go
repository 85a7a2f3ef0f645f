package net

import (
	"net"

	"github.com/pkg/errors"
)

type IPv4Addr string

var ErrNoValidNetworkInterfaceFound = errors.New("no valid network interface found")

// FindAvailableIPv4Addr returns the first IPv4 address of an interface that
// is up and not a loopback.
func FindAvailableIPv4Addr() (IPv4Addr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", errors.Wrap(err, "list network interfaces")
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			return "", errors.Wrapf(err, "list addresses of %s", iface.Name)
		}
		for _, addr := range addrs {
			if ipNet, ok := addr.(*net.IPNet); ok {
				if ip4 := ipNet.IP.To4(); ip4 != nil {
					return IPv4Addr(ip4.String()), nil
				}
			}
		}
	}
	return "", ErrNoValidNetworkInterfaceFound
}

// AdvertisedHost returns host unless it is empty or a wildcard, in which
// case an interface address is looked up.
func AdvertisedHost(host string) (string, error) {
	if host != "" {
		if ip := net.ParseIP(host); ip == nil || !ip.IsUnspecified() {
			return host, nil
		}
	}
	addr, err := FindAvailableIPv4Addr()
	if err != nil {
		return "", err
	}
	return string(addr), nil
}
