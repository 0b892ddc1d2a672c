package iface

// Vlan is a kernel 802.1Q VLAN sub-interface; its Parent is the base
// device it tags traffic on top of.
type Vlan struct {
	BaseInterface
	childBase

	VlanID uint16 `yaml:"id" json:"id"`
}

func NewVlan(name, parent string, id uint16) *Vlan {
	v := &Vlan{BaseInterface: NewBaseInterface(name, TypeVlan), VlanID: id}
	v.ParentName = parent
	return v
}

func (v *Vlan) Name() string         { return v.BaseInterface.Name }
func (v *Vlan) IfaceType() Type      { return TypeVlan }
func (v *Vlan) Base() *BaseInterface { return &v.BaseInterface }
func (v *Vlan) IsVirtual() bool      { return true }

func (v *Vlan) Update(other Interface) {
	o, ok := other.(*Vlan)
	if !ok {
		return
	}
	v.BaseInterface.Update(o.BaseInterface)
	if o.ParentName != "" {
		v.ParentName = o.ParentName
	}
	if o.VlanID != 0 {
		v.VlanID = o.VlanID
	}
}

func (v *Vlan) Validate() error {
	if v.ParentName == "" {
		return newInvalidArgumentError(v.Name(), "vlan requires a base interface")
	}
	return nil
}

func (v *Vlan) Verify(cur Interface) error {
	c, ok := cur.(*Vlan)
	if !ok {
		return newVerificationError(v.Name(), "current interface is not Vlan")
	}
	if v.VlanID != c.VlanID {
		return newVerificationError(v.Name(), "vlan id mismatch: desired %d, current %d", v.VlanID, c.VlanID)
	}
	return verifyBaseNetworking(v.Name(), v.BaseInterface, c.BaseInterface)
}

func (v *Vlan) PreEditCleanup() { v.MACAddress = normalizeMAC(v.MACAddress) }

func (v *Vlan) Clone() Interface {
	cp := *v
	return &cp
}

func (v *Vlan) CloneNameTypeOnly() Interface {
	return &Vlan{BaseInterface: v.BaseInterface.CloneNameTypeOnly()}
}

// Vxlan is a VXLAN tunnel interface; Parent is the underlying device its
// tunnel traffic egresses through (may be empty for routed VXLAN).
type Vxlan struct {
	BaseInterface
	childBase

	VNI        uint32 `yaml:"id" json:"id"`
	Destination string `yaml:"remote,omitempty" json:"remote,omitempty"`
	DstPort    uint16 `yaml:"destination-port,omitempty" json:"destination-port,omitempty"`
}

func NewVxlan(name, parent string, vni uint32) *Vxlan {
	v := &Vxlan{BaseInterface: NewBaseInterface(name, TypeVxlan), VNI: vni}
	v.ParentName = parent
	return v
}

func (v *Vxlan) Name() string         { return v.BaseInterface.Name }
func (v *Vxlan) IfaceType() Type      { return TypeVxlan }
func (v *Vxlan) Base() *BaseInterface { return &v.BaseInterface }
func (v *Vxlan) IsVirtual() bool      { return true }

func (v *Vxlan) Update(other Interface) {
	o, ok := other.(*Vxlan)
	if !ok {
		return
	}
	v.BaseInterface.Update(o.BaseInterface)
	if o.ParentName != "" {
		v.ParentName = o.ParentName
	}
	if o.VNI != 0 {
		v.VNI = o.VNI
	}
	if o.Destination != "" {
		v.Destination = o.Destination
	}
	if o.DstPort != 0 {
		v.DstPort = o.DstPort
	}
}

func (v *Vxlan) Validate() error { return nil }

func (v *Vxlan) Verify(cur Interface) error {
	c, ok := cur.(*Vxlan)
	if !ok {
		return newVerificationError(v.Name(), "current interface is not Vxlan")
	}
	if v.VNI != c.VNI {
		return newVerificationError(v.Name(), "vni mismatch: desired %d, current %d", v.VNI, c.VNI)
	}
	return verifyBaseNetworking(v.Name(), v.BaseInterface, c.BaseInterface)
}

func (v *Vxlan) PreEditCleanup() {}

func (v *Vxlan) Clone() Interface {
	cp := *v
	return &cp
}

func (v *Vxlan) CloneNameTypeOnly() Interface {
	return &Vxlan{BaseInterface: v.BaseInterface.CloneNameTypeOnly()}
}
