package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/grandcat/zeroconf"
)

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantName string
		wantIP   string
		wantPort int
	}{
		{
			name: "server with IPv4",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "skyreg on kiosk-3"},
				HostName:      "kiosk-3.local.",
				Port:          8090,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.4.16")},
				Text:          []string{"path=/ws", "version=1.0.0"},
			},
			wantName: "skyreg on kiosk-3",
			wantIP:   "192.168.4.16",
			wantPort: 8090,
		},
		{
			name: "IPv6 only server",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "lab"},
				HostName:      "lab.local.",
				Port:          9000,
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
			},
			wantName: "lab",
			wantIP:   "fe80::1",
			wantPort: 9000,
		},
		{
			name: "both families prefers IPv4",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "desk"},
				HostName:      "desk.local.",
				Port:          8090,
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.5")},
				AddrIPv6:      []net.IP{net.ParseIP("fe80::2")},
			},
			wantName: "desk",
			wantIP:   "10.0.0.5",
			wantPort: 8090,
		},
		{
			name: "no instance name",
			entry: &zeroconf.ServiceEntry{
				HostName: "anon.local.",
				Port:     8090,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.6")},
			},
			wantNil: true,
		},
		{
			name: "no address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "ghost"},
				Port:          8090,
			},
			wantNil: true,
		},
		{
			name: "no port",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "portless"},
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.7")},
			},
			wantNil: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if inst != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", inst)
				}
				return
			}
			if inst == nil {
				t.Fatal("parseServiceEntry() = nil, want instance")
			}

			if inst.Name != tt.wantName {
				t.Errorf("inst.Name = %v, want %v", inst.Name, tt.wantName)
			}
			if inst.IP != tt.wantIP {
				t.Errorf("inst.IP = %v, want %v", inst.IP, tt.wantIP)
			}
			if inst.Port != tt.wantPort {
				t.Errorf("inst.Port = %v, want %v", inst.Port, tt.wantPort)
			}
			if time.Since(inst.DiscoveredAt) > time.Second {
				t.Errorf("inst.DiscoveredAt is not recent: %v", inst.DiscoveredAt)
			}
		})
	}
}

func TestParseTXT(t *testing.T) {
	got := parseTXT([]string{"path=/ws", "version=1.0", "flag", "eq=a=b"})
	want := map[string]string{
		"path":    "/ws",
		"version": "1.0",
		"flag":    "",
		"eq":      "a=b",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseTXT() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}

func TestAdvertisement_NilShutdown(t *testing.T) {
	var adv *Advertisement
	adv.Shutdown() // must not panic
}

// Note: live advertise/browse round trips need multicast and are not run
// as unit tests.
