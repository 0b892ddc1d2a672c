package iface

import (
	"fmt"

	"github.com/corenetic/netstate/pkg/nmerror"
)

// Interface is the capability surface the reconciler, table and verifier
// dispatch through (spec §3 "Interface capability surface"). Every variant
// implements it directly rather than through a shared base-class method
// set — the per-variant files in this package compose behavior out of
// BaseInterface plus their own fields, never inheritance.
type Interface interface {
	Name() string
	IfaceType() Type
	Base() *BaseInterface

	IsController() bool
	IsUserspace() bool
	IsVirtual() bool
	IsAbsent() bool
	IsUp() bool
	IsDown() bool

	// Ports returns the ordered port names for controller interfaces; nil
	// for non-controllers.
	Ports() []string
	// Parent returns the name of the interface this one is a child of
	// (VLAN/VXLAN base, MACsec/IPVLAN/MacVlan/MacVtap parent device), or ""
	// for interfaces with no parent.
	Parent() string
	// RemovePort drops name from this controller's port list, a no-op for
	// non-controllers.
	RemovePort(name string)

	// Update performs the structural merge described in spec §3.
	Update(other Interface)
	// Validate checks internal consistency, e.g. bond mode vs port count.
	Validate() error
	// Verify compares self (desired) against cur (current), returning a
	// VerificationError on mismatch.
	Verify(cur Interface) error
	// PreEditCleanup normalizes the record before handing it to a backend.
	PreEditCleanup()

	// Clone returns a deep copy usable as a mutation target.
	Clone() Interface
	// CloneNameTypeOnly returns a stub carrying only name/type/state, used
	// for orphan-cascade and route-folding stub synthesis (spec §4.5).
	CloneNameTypeOnly() Interface
}

// baseOnly is embedded by variants with no port/parent concept (Ethernet,
// Dummy, Loopback, Vrf's members, ...), supplying the capability methods
// that are always the same for a non-controller, non-child interface.
type baseOnly struct{}

func (baseOnly) IsController() bool  { return false }
func (baseOnly) Ports() []string     { return nil }
func (baseOnly) Parent() string      { return "" }
func (baseOnly) RemovePort(string)   {}

// newVerificationError is a small helper shared by variant Verify methods.
func newVerificationError(name, format string, args ...interface{}) error {
	return nmerror.NewVerificationError(name, format, args...)
}

// newInvalidArgumentError is the Validate()-side counterpart: it reports
// input that is self-inconsistent (spec §7) and must be rejected before the
// host is ever touched, as distinct from a VerificationError, which only
// makes sense once desire has been compared against current.
func newInvalidArgumentError(name, format string, args ...interface{}) error {
	return nmerror.NewInvalidArgument("%s: %s", name, fmt.Sprintf(format, args...))
}
