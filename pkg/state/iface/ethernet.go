// Ethernet is a physical NIC. It carries the optional SR-IOV VF
// configuration the reconciler's verify step treats specially: every VF
// must resolve to a kernel device name before a desired state verifies
// (spec §4.7).
package iface

// VF describes one SR-IOV virtual function requested on a PF.
type VF struct {
	ID          int    `yaml:"id" json:"id"`
	MACAddress  string `yaml:"mac-address,omitempty" json:"mac-address,omitempty"`
	SpoofCheck  bool   `yaml:"spoof-check,omitempty" json:"spoof-check,omitempty"`
	Trust       bool   `yaml:"trust,omitempty" json:"trust,omitempty"`
	MinTxRate   int    `yaml:"min-tx-rate,omitempty" json:"min-tx-rate,omitempty"`
	MaxTxRate   int    `yaml:"max-tx-rate,omitempty" json:"max-tx-rate,omitempty"`
	IfaceName   string `yaml:"-" json:"-"` // resolved kernel device name, filled from current state
}

// SRIOVConfig is the optional sriov section of an Ethernet interface.
type SRIOVConfig struct {
	TotalVFs int  `yaml:"total-vfs,omitempty" json:"total-vfs,omitempty"`
	VFs      []VF `yaml:"vfs,omitempty" json:"vfs,omitempty"`
}

// Ethernet is a physical (or SR-IOV PF/VF) kernel network device.
type Ethernet struct {
	BaseInterface
	baseOnly

	SRIOV *SRIOVConfig `yaml:"sr-iov,omitempty" json:"sr-iov,omitempty"`
}

func NewEthernet(name string) *Ethernet {
	base := NewBaseInterface(name, TypeEthernet)
	return &Ethernet{BaseInterface: base}
}

func (e *Ethernet) Name() string         { return e.BaseInterface.Name }
func (e *Ethernet) IfaceType() Type      { return TypeEthernet }
func (e *Ethernet) Base() *BaseInterface { return &e.BaseInterface }
func (e *Ethernet) IsVirtual() bool      { return false }

// SRIOVEnabled reports whether this PF has SR-IOV VFs requested.
func (e *Ethernet) SRIOVEnabled() bool {
	return e.SRIOV != nil && e.SRIOV.TotalVFs > 0
}

func (e *Ethernet) Update(other Interface) {
	o, ok := other.(*Ethernet)
	if !ok {
		return
	}
	e.BaseInterface.Update(o.BaseInterface)
	if o.SRIOV != nil {
		e.SRIOV = o.SRIOV
	}
}

func (e *Ethernet) Validate() error {
	if e.SRIOV == nil {
		return nil
	}
	for _, vf := range e.SRIOV.VFs {
		if vf.ID < 0 || vf.ID >= e.SRIOV.TotalVFs {
			return newInvalidArgumentError(e.Name(), "vf id %d out of range for total-vfs %d", vf.ID, e.SRIOV.TotalVFs)
		}
	}
	return nil
}

func (e *Ethernet) Verify(cur Interface) error {
	c, ok := cur.(*Ethernet)
	if !ok {
		return newVerificationError(e.Name(), "current interface is not Ethernet")
	}
	if err := verifyBaseNetworking(e.Name(), e.BaseInterface, c.BaseInterface); err != nil {
		return err
	}
	return nil
}

// VerifySRIOV checks that every requested VF resolved to a kernel device
// name and that the device exists in current state's VF bookkeeping. This
// is invoked separately from Verify by pkg/verify, mirroring spec §4.7's
// "for Ethernet with SR-IOV, also verify every VF has a resolved kernel
// name and that VF kernel device exists".
func (e *Ethernet) VerifySRIOV(resolvedNames map[int]string) error {
	if !e.SRIOVEnabled() {
		return nil
	}
	for _, vf := range e.SRIOV.VFs {
		name, ok := resolvedNames[vf.ID]
		if !ok || name == "" {
			return newVerificationError(e.Name(), "vf %d has no resolved kernel device name", vf.ID)
		}
	}
	return nil
}

func (e *Ethernet) PreEditCleanup() {
	e.MACAddress = normalizeMAC(e.MACAddress)
}

func (e *Ethernet) Clone() Interface {
	cp := *e
	if e.SRIOV != nil {
		s := *e.SRIOV
		s.VFs = append([]VF(nil), e.SRIOV.VFs...)
		cp.SRIOV = &s
	}
	return &cp
}

func (e *Ethernet) CloneNameTypeOnly() Interface {
	return &Ethernet{BaseInterface: e.BaseInterface.CloneNameTypeOnly()}
}

// verifyBaseNetworking is shared by every variant's Verify: MAC, IPv4/IPv6.
func verifyBaseNetworking(name string, desire, current BaseInterface) error {
	if desire.MACAddress != "" && normalizeMAC(desire.MACAddress) != normalizeMAC(current.MACAddress) {
		return newVerificationError(name, "mac address mismatch: desired %s, current %s", desire.MACAddress, current.MACAddress)
	}
	if !desire.IPv4.Equal(current.IPv4, false) {
		return newVerificationError(name, "ipv4 configuration mismatch")
	}
	if !desire.IPv6.Equal(current.IPv6, true) {
		return newVerificationError(name, "ipv6 configuration mismatch")
	}
	return nil
}
