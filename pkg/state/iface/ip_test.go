package iface

import "testing"

func TestIPConfig_DropLinkLocalRemovesOnlyLinkLocal(t *testing.T) {
	c := IPConfig{
		Enabled: true,
		Addresses: []IPAddress{
			{IP: "2001:db8::1", PrefixLength: 64},
			{IP: "fe80::1", PrefixLength: 64},
			{IP: "fe80::abcd:1234:5678:9", PrefixLength: 64},
		},
	}
	c.dropLinkLocal()

	if len(c.Addresses) != 1 || c.Addresses[0].IP != "2001:db8::1" {
		t.Errorf("expected only the global address to survive, got %v", c.Addresses)
	}
}

func TestIPConfig_DropLinkLocalNoopWithoutLinkLocal(t *testing.T) {
	c := IPConfig{
		Enabled:   true,
		Addresses: []IPAddress{{IP: "10.0.0.1", PrefixLength: 24}},
	}
	c.dropLinkLocal()

	if len(c.Addresses) != 1 {
		t.Errorf("expected ipv4 address left untouched, got %v", c.Addresses)
	}
}

func TestInterfaces_NormalizeCurrentStripsLinkLocalAcrossTable(t *testing.T) {
	t0 := NewInterfaces()
	eth := NewEthernet("eth0")
	eth.IPv6 = IPConfig{
		Enabled:   true,
		Addresses: []IPAddress{{IP: "2001:db8::1", PrefixLength: 64}, {IP: "fe80::1", PrefixLength: 64}},
	}
	t0.Push(eth)

	t0.NormalizeCurrent()

	got, _ := t0.Get("eth0", TypeEthernet)
	addrs := got.Base().IPv6.Addresses
	if len(addrs) != 1 || addrs[0].IP != "2001:db8::1" {
		t.Errorf("expected link-local stripped from eth0's ipv6 addresses, got %v", addrs)
	}
}
