package iface

import "dario.cat/mergo"

// BondMode is the bonding policy; only the modes that constrain port count
// are enumerated, the rest pass through as opaque strings.
type BondMode string

const (
	BondModeActiveBackup BondMode = "active-backup"
	BondMode8023ad        BondMode = "802.3ad"
	BondModeBalanceRR     BondMode = "balance-rr"
)

// Bond is a Linux bonding device: a controller over 1+ Ethernet ports.
type Bond struct {
	BaseInterface
	controllerBase

	Mode    BondMode          `yaml:"mode,omitempty" json:"mode,omitempty"`
	Options map[string]string `yaml:"options,omitempty" json:"options,omitempty"`
}

func NewBond(name string, ports []string) *Bond {
	b := &Bond{BaseInterface: NewBaseInterface(name, TypeBond)}
	b.PortNames = ports
	return b
}

func (b *Bond) Name() string         { return b.BaseInterface.Name }
func (b *Bond) IfaceType() Type      { return TypeBond }
func (b *Bond) Base() *BaseInterface { return &b.BaseInterface }
func (b *Bond) IsVirtual() bool      { return true }

func (b *Bond) Update(other Interface) {
	o, ok := other.(*Bond)
	if !ok {
		return
	}
	b.BaseInterface.Update(o.BaseInterface)
	if len(o.PortNames) > 0 {
		b.PortNames = o.PortNames
	}
	if o.Mode != "" {
		b.Mode = o.Mode
	}
	if len(o.Options) > 0 {
		_ = mergo.Merge(&b.Options, o.Options, mergo.WithOverride)
	}
}

// Validate enforces mode/port-count invariants (spec §3's BaseInterface
// note: "bond mode ↔ port count").
func (b *Bond) Validate() error {
	switch b.Mode {
	case BondModeActiveBackup, BondMode8023ad, BondModeBalanceRR:
		if len(b.PortNames) == 0 {
			return newInvalidArgumentError(b.Name(), "bond mode %s requires at least one port", b.Mode)
		}
	}
	return nil
}

func (b *Bond) Verify(cur Interface) error {
	c, ok := cur.(*Bond)
	if !ok {
		return newVerificationError(b.Name(), "current interface is not Bond")
	}
	if err := verifyBaseNetworking(b.Name(), b.BaseInterface, c.BaseInterface); err != nil {
		return err
	}
	if b.Mode != "" && b.Mode != c.Mode {
		return newVerificationError(b.Name(), "bond mode mismatch: desired %s, current %s", b.Mode, c.Mode)
	}
	return nil
}

func (b *Bond) PreEditCleanup() {
	b.MACAddress = normalizeMAC(b.MACAddress)
}

func (b *Bond) Clone() Interface {
	cp := *b
	cp.PortNames = append([]string(nil), b.PortNames...)
	return &cp
}

func (b *Bond) CloneNameTypeOnly() Interface {
	return &Bond{BaseInterface: b.BaseInterface.CloneNameTypeOnly()}
}
