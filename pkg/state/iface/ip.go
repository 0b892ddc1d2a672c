package iface

import (
	"net"
	"strconv"
)

// IPAddress is a single configured address with its prefix length.
type IPAddress struct {
	IP           string `yaml:"ip" json:"ip"`
	PrefixLength int    `yaml:"prefix-length" json:"prefix-length"`
}

// IPConfig is the shared shape of the ipv4/ipv6 sections of an interface.
// Matches spec §3's networking surface: static addresses, DHCP on/off,
// auto-route, auto-table.
type IPConfig struct {
	Enabled   bool        `yaml:"enabled" json:"enabled"`
	Dhcp      bool        `yaml:"dhcp,omitempty" json:"dhcp,omitempty"`
	Autoconf  bool        `yaml:"autoconf,omitempty" json:"autoconf,omitempty"`
	AutoRoute bool        `yaml:"auto-route-metric,omitempty" json:"auto-route-metric,omitempty"`
	AutoTable bool        `yaml:"auto-table-id,omitempty" json:"auto-table-id,omitempty"`
	Addresses []IPAddress `yaml:"address,omitempty" json:"address,omitempty"`
}

// dropLinkLocal removes IPv6 link-local addresses, which a kernel query
// always reports on an up interface regardless of what was configured and
// which desired state never lists explicitly — left in, they would fail
// every IPv6 verify() by value-equality (nispor's show.rs precedent).
func (c *IPConfig) dropLinkLocal() {
	kept := c.Addresses[:0]
	for _, addr := range c.Addresses {
		if ip := net.ParseIP(addr.IP); ip != nil && ip.IsLinkLocalUnicast() {
			continue
		}
		kept = append(kept, addr)
	}
	c.Addresses = kept
}

// equalAddresses compares two address sets ignoring order.
func equalAddresses(a, b []IPAddress) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, addr := range a {
		seen[addr.IP+"/"+strconv.Itoa(addr.PrefixLength)]++
	}
	for _, addr := range b {
		key := addr.IP + "/" + strconv.Itoa(addr.PrefixLength)
		if seen[key] == 0 {
			return false
		}
		seen[key]--
	}
	return true
}

// Equal reports value-equality between two IP configs, modulo the
// address-set ordering nmstate's verify() tolerates.
func (c IPConfig) Equal(other IPConfig, isIPv6 bool) bool {
	if c.Enabled != other.Enabled {
		return false
	}
	if !c.Enabled {
		return true
	}
	if c.Dhcp != other.Dhcp || c.Autoconf != other.Autoconf {
		return false
	}
	if c.Dhcp || c.Autoconf {
		return true
	}
	return equalAddresses(c.Addresses, other.Addresses)
}
