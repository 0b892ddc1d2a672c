// Package iface holds the polymorphic interface data model: the tagged
// variant over {Ethernet, Veth, Bond, LinuxBridge, OvsBridge, OvsInterface,
// Vlan, Vxlan, Dummy, Loopback, MacVlan, MacVtap, Vrf, InfiniBand, Hsr,
// MacSec, Xfrm, IpVlan, Unknown}, the BaseInterface every variant embeds, and
// the capability surface (is_controller, ports, verify, update, ...) the
// reconciler dispatches through.
//
// Grounded on rust/src/lib/ifaces/inter_ifaces.rs and the teacher's
// per-table files in pkg/ovndb (one file per concept, doc-comment-heavy
// headers, terse method bodies).
package iface

// Type is the tagged variant discriminator.
type Type string

const (
	TypeEthernet    Type = "ethernet"
	TypeVeth        Type = "veth"
	TypeBond        Type = "bond"
	TypeLinuxBridge Type = "linux-bridge"
	TypeOvsBridge   Type = "ovs-bridge"
	TypeOvsInterface Type = "ovs-interface"
	TypeVlan        Type = "vlan"
	TypeVxlan       Type = "vxlan"
	TypeDummy       Type = "dummy"
	TypeLoopback    Type = "loopback"
	TypeMacVlan     Type = "mac-vlan"
	TypeMacVtap     Type = "mac-vtap"
	TypeVrf         Type = "vrf"
	TypeInfiniBand  Type = "infiniband"
	TypeHsr         Type = "hsr"
	TypeMacSec      Type = "macsec"
	TypeXfrm        Type = "xfrm"
	TypeIpVlan      Type = "ipvlan"
	TypeUnknown     Type = "unknown"
)

// IsUserspace reports whether interfaces of this type live in the
// user-space namespace of the interface table (§3 invariant 1).
func (t Type) IsUserspace() bool {
	switch t {
	case TypeOvsBridge, TypeOvsInterface:
		return true
	default:
		return false
	}
}

// State is the interface lifecycle state.
type State string

const (
	StateUp     State = "up"
	StateDown   State = "down"
	StateAbsent State = "absent"
	StateIgnore State = "ignore"
)

// IdentifierKind selects how an interface is matched against current state:
// by name, or by its (typically permanent) MAC address. Grounded on
// rust/src/lib/unit_tests/identifier.rs.
type IdentifierKind string

const (
	IdentifierName IdentifierKind = "name"
	IdentifierMAC  IdentifierKind = "mac-address"
)

// Identifier captures the optional alternate-identity fields nmstate
// supports alongside Name: identify an interface by MAC address instead of
// (or in addition to) its name, so renamed interfaces can still be matched.
type Identifier struct {
	Kind       IdentifierKind `yaml:"-" json:"-"`
	MACAddress string         `yaml:"mac-address,omitempty" json:"mac-address,omitempty"`
}

// Match reports whether candidate (drawn from current state) matches this
// identifier. Permanent MAC is preferred over runtime MAC, mirroring the
// copy-mac-from preference order in spec §4.4.
func (id Identifier) Match(name string, candidate Interface) bool {
	if id.Kind != IdentifierMAC || id.MACAddress == "" {
		return candidate.Name() == name
	}
	base := candidate.Base()
	if base.PermanentMACAddress != "" {
		return normalizeMAC(base.PermanentMACAddress) == normalizeMAC(id.MACAddress)
	}
	return normalizeMAC(base.MACAddress) == normalizeMAC(id.MACAddress)
}

// copyMacAllowed lists the variant types §4.4 permits copy-mac-from on.
var copyMacAllowed = map[Type]bool{
	TypeBond:        true,
	TypeLinuxBridge: true,
	TypeOvsInterface: true,
}

// CopyMacAllowed reports whether t may carry a copy-mac-from directive.
func CopyMacAllowed(t Type) bool {
	return copyMacAllowed[t]
}
