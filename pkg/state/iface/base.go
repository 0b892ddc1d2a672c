package iface

import (
	"strings"

	"github.com/corenetic/netstate/pkg/state/netroute"
)

// BaseInterface is embedded by every variant and exposes the fields common
// to all interface types (spec §3): identity, lifecycle, topology,
// networking and bookkeeping.
type BaseInterface struct {
	Name        string `yaml:"name" json:"name"`
	Type        Type   `yaml:"type,omitempty" json:"type,omitempty"`
	ProfileName string `yaml:"profile-name,omitempty" json:"profile-name,omitempty"`
	Identifier  Identifier

	State State `yaml:"state,omitempty" json:"state,omitempty"`

	Controller     string `yaml:"-" json:"-"`
	ControllerType Type   `yaml:"-" json:"-"`

	IPv4 IPConfig `yaml:"ipv4,omitempty" json:"ipv4,omitempty"`
	IPv6 IPConfig `yaml:"ipv6,omitempty" json:"ipv6,omitempty"`

	MACAddress          string `yaml:"mac-address,omitempty" json:"mac-address,omitempty"`
	PermanentMACAddress string `yaml:"-" json:"-"`
	CopyMACFrom         string `yaml:"copy-mac-from,omitempty" json:"copy-mac-from,omitempty"`

	Routes []netroute.Route      `yaml:"-" json:"-"`
	Rules  []netroute.RouteRule  `yaml:"-" json:"-"`

	// DNSv4Owner/DNSv6Owner mark this interface as the one carrying the
	// resolver configuration for that family, NetworkManager-style (spec
	// §4.5 "DNS folding"). Bookkeeping only: the values themselves live on
	// NetworkState.DNS; these flags say which interface's profile the
	// backend should attach them to, and are cleared on the interface that
	// loses ownership.
	DNSv4Owner bool `yaml:"-" json:"-"`
	DNSv6Owner bool `yaml:"-" json:"-"`

	UpPriority uint32 `yaml:"-" json:"-"`
}

// upPriorityRoot is the starting priority for a controller with no known
// ports yet; children bubble their priority down below it as the resolver
// converges (spec §4.2).
const upPriorityRoot = ^uint32(0) / 2

// NewBaseInterface returns a BaseInterface with its bookkeeping defaults
// set: root priority, Up state.
func NewBaseInterface(name string, t Type) BaseInterface {
	return BaseInterface{
		Name:       name,
		Type:       t,
		State:      StateUp,
		UpPriority: upPriorityRoot,
	}
}

func (b BaseInterface) IsUp() bool     { return b.State == StateUp }
func (b BaseInterface) IsDown() bool   { return b.State == StateDown }
func (b BaseInterface) IsAbsent() bool { return b.State == StateAbsent }
func (b BaseInterface) IsIgnore() bool { return b.State == StateIgnore }

func (b BaseInterface) IsUserspace() bool { return b.Type.IsUserspace() }

// normalizeMAC uppercases for value-equality comparisons (spec §3's
// verify() normalization note).
func normalizeMAC(mac string) string {
	return strings.ToUpper(strings.TrimSpace(mac))
}

// Update performs the structural merge of spec §3's update(other): fields
// present (non-zero) in other overwrite self. Variants call this for their
// embedded BaseInterface and then merge their own type-specific fields.
func (b *BaseInterface) Update(other BaseInterface) {
	if other.ProfileName != "" {
		b.ProfileName = other.ProfileName
	}
	if other.State != "" {
		b.State = other.State
	}
	if other.Identifier.Kind != "" {
		b.Identifier = other.Identifier
	}
	if other.IPv4.Enabled || len(other.IPv4.Addresses) > 0 {
		b.IPv4 = other.IPv4
	}
	if other.IPv6.Enabled || len(other.IPv6.Addresses) > 0 {
		b.IPv6 = other.IPv6
	}
	if other.MACAddress != "" {
		b.MACAddress = other.MACAddress
	}
	if other.CopyMACFrom != "" {
		b.CopyMACFrom = other.CopyMACFrom
	}
	if other.Routes != nil {
		b.Routes = other.Routes
	}
	if other.Rules != nil {
		b.Rules = other.Rules
	}
}

// CloneNameTypeOnly returns a stub carrying only Name, Type and State, used by the
// orphan cascade and route-folding stub synthesis in spec §4.5.
func (b BaseInterface) CloneNameTypeOnly() BaseInterface {
	return BaseInterface{Name: b.Name, Type: b.Type, State: b.State}
}
