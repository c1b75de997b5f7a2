package netutil

import (
	"net"
	"testing"
)

func TestIPv4(t *testing.T) {
	tests := []struct {
		name string
		addr net.Addr
		want string
	}{
		{name: "ipnet v4", addr: &net.IPNet{IP: net.ParseIP("192.168.1.10"), Mask: net.CIDRMask(24, 32)}, want: "192.168.1.10"},
		{name: "ipaddr v4", addr: &net.IPAddr{IP: net.ParseIP("10.0.0.2")}, want: "10.0.0.2"},
		{name: "loopback", addr: &net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(8, 32)}, want: ""},
		{name: "ipv6", addr: &net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ipv4(tt.addr)
			if tt.want == "" {
				if got != nil {
					t.Errorf("expected nil, got %s", got)
				}
				return
			}
			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
