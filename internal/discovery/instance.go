package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Instance represents a skyreg session server found on the network
type Instance struct {
	// Name is the mDNS instance name (e.g., "skyreg on kiosk-3")
	Name string

	// Host is the mDNS hostname (e.g., "kiosk-3.local.")
	Host string

	// IP is the address to connect to, IPv4 when available
	IP string

	// Port is the session server port
	Port int

	// Metadata contains the TXT record data
	// Common fields: "version=1.2.0", "path=/ws"
	Metadata map[string]string

	// DiscoveredAt is when the instance was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the instance
func (i *Instance) String() string {
	return fmt.Sprintf("%s (%s) at %s", i.Name, i.Host, net.JoinHostPort(i.IP, strconv.Itoa(i.Port)))
}

// SessionURL returns the websocket URL a renderer connects to
func (i *Instance) SessionURL() string {
	path := i.GetMetadata("path")
	if path == "" {
		path = DefaultSessionPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("ws://%s%s", net.JoinHostPort(i.IP, strconv.Itoa(i.Port)), path)
}

// Version returns the advertised server version, or "" when absent
func (i *Instance) Version() string {
	return i.GetMetadata("version")
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (i *Instance) GetMetadata(key string) string {
	if i.Metadata == nil {
		return ""
	}
	return i.Metadata[key]
}
