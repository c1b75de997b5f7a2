// Package netutil holds small network helpers for clients.
package netutil

import (
	"errors"
	"net"
)

var ErrNoAddress = errors.New("no suitable network interface found")

// GetLocalIP returns the first IPv4 address of an up, non-loopback interface.
// Clients send it in X-Real-IP so servers can apply a trusted subnet.
func GetLocalIP() (string, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}

		addresses, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addresses {
			if ip := ipv4(addr); ip != nil {
				return ip.String(), nil
			}
		}
	}

	return "", ErrNoAddress
}

func ipv4(addr net.Addr) net.IP {
	var ip net.IP
	switch v := addr.(type) {
	case *net.IPNet:
		ip = v.IP
	case *net.IPAddr:
		ip = v.IP
	}
	if ip == nil || ip.IsLoopback() {
		return nil
	}
	return ip.To4()
}
