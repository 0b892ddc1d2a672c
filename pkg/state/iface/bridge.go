package iface

// LinuxBridge is a kernel bridge device: a controller over 0+ ports.
type LinuxBridge struct {
	BaseInterface
	controllerBase

	StpEnabled bool `yaml:"stp,omitempty" json:"stp,omitempty"`
}

func NewLinuxBridge(name string, ports []string) *LinuxBridge {
	b := &LinuxBridge{BaseInterface: NewBaseInterface(name, TypeLinuxBridge)}
	b.PortNames = ports
	return b
}

func (b *LinuxBridge) Name() string         { return b.BaseInterface.Name }
func (b *LinuxBridge) IfaceType() Type      { return TypeLinuxBridge }
func (b *LinuxBridge) Base() *BaseInterface { return &b.BaseInterface }
func (b *LinuxBridge) IsVirtual() bool      { return true }

func (b *LinuxBridge) Update(other Interface) {
	o, ok := other.(*LinuxBridge)
	if !ok {
		return
	}
	b.BaseInterface.Update(o.BaseInterface)
	if len(o.PortNames) > 0 {
		b.PortNames = o.PortNames
	}
	if o.StpEnabled {
		b.StpEnabled = o.StpEnabled
	}
}

func (b *LinuxBridge) Validate() error { return nil }

func (b *LinuxBridge) Verify(cur Interface) error {
	c, ok := cur.(*LinuxBridge)
	if !ok {
		return newVerificationError(b.Name(), "current interface is not LinuxBridge")
	}
	return verifyBaseNetworking(b.Name(), b.BaseInterface, c.BaseInterface)
}

func (b *LinuxBridge) PreEditCleanup() { b.MACAddress = normalizeMAC(b.MACAddress) }

func (b *LinuxBridge) Clone() Interface {
	cp := *b
	cp.PortNames = append([]string(nil), b.PortNames...)
	return &cp
}

func (b *LinuxBridge) CloneNameTypeOnly() Interface {
	return &LinuxBridge{BaseInterface: b.BaseInterface.CloneNameTypeOnly()}
}

// OvsBridge is a pure user-space OVS bridge: a controller whose ports may
// in turn be OvsInterface records (spec §3 "user-space interfaces").
// Each non-bond port implicitly owns a synthetic ovs-port; that expansion
// happens in pkg/reconcile (spec §8 S4, SPEC_FULL.md §4 OVS internal
// interface/port pairing).
type OvsBridge struct {
	BaseInterface
	controllerBase

	DatapathType string `yaml:"datapath-type,omitempty" json:"datapath-type,omitempty"`
}

func NewOvsBridge(name string, ports []string) *OvsBridge {
	b := &OvsBridge{BaseInterface: NewBaseInterface(name, TypeOvsBridge)}
	b.PortNames = ports
	return b
}

func (b *OvsBridge) Name() string         { return b.BaseInterface.Name }
func (b *OvsBridge) IfaceType() Type      { return TypeOvsBridge }
func (b *OvsBridge) Base() *BaseInterface { return &b.BaseInterface }
func (b *OvsBridge) IsVirtual() bool      { return true }

func (b *OvsBridge) Update(other Interface) {
	o, ok := other.(*OvsBridge)
	if !ok {
		return
	}
	b.BaseInterface.Update(o.BaseInterface)
	if len(o.PortNames) > 0 {
		b.PortNames = o.PortNames
	}
	if o.DatapathType != "" {
		b.DatapathType = o.DatapathType
	}
}

func (b *OvsBridge) Validate() error { return nil }

func (b *OvsBridge) Verify(cur Interface) error {
	c, ok := cur.(*OvsBridge)
	if !ok {
		return newVerificationError(b.Name(), "current interface is not OvsBridge")
	}
	return verifyBaseNetworking(b.Name(), b.BaseInterface, c.BaseInterface)
}

func (b *OvsBridge) PreEditCleanup() {}

func (b *OvsBridge) Clone() Interface {
	cp := *b
	cp.PortNames = append([]string(nil), b.PortNames...)
	return &cp
}

func (b *OvsBridge) CloneNameTypeOnly() Interface {
	return &OvsBridge{BaseInterface: b.BaseInterface.CloneNameTypeOnly()}
}
