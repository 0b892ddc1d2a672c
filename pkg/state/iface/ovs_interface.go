package iface

// OvsInterface is a user-space OVS interface: internal, system, patch, or
// one of the tunnel types. Its synthetic ovs-port pairing (spec §8 S4) is
// handled by the reconciler, not here.
type OvsInterface struct {
	BaseInterface
	baseOnly

	PatchPeer  string `yaml:"patch-peer,omitempty" json:"patch-peer,omitempty"`
	OvsIfaceType string `yaml:"ovs-iface-type,omitempty" json:"ovs-iface-type,omitempty"`
}

func NewOvsInterface(name string) *OvsInterface {
	return &OvsInterface{BaseInterface: NewBaseInterface(name, TypeOvsInterface)}
}

func (i *OvsInterface) Name() string         { return i.BaseInterface.Name }
func (i *OvsInterface) IfaceType() Type      { return TypeOvsInterface }
func (i *OvsInterface) Base() *BaseInterface { return &i.BaseInterface }
func (i *OvsInterface) IsVirtual() bool      { return true }

func (i *OvsInterface) Update(other Interface) {
	o, ok := other.(*OvsInterface)
	if !ok {
		return
	}
	i.BaseInterface.Update(o.BaseInterface)
	if o.PatchPeer != "" {
		i.PatchPeer = o.PatchPeer
	}
	if o.OvsIfaceType != "" {
		i.OvsIfaceType = o.OvsIfaceType
	}
}

func (i *OvsInterface) Validate() error { return nil }

func (i *OvsInterface) Verify(cur Interface) error {
	c, ok := cur.(*OvsInterface)
	if !ok {
		return newVerificationError(i.Name(), "current interface is not OvsInterface")
	}
	return verifyBaseNetworking(i.Name(), i.BaseInterface, c.BaseInterface)
}

func (i *OvsInterface) PreEditCleanup() {}

func (i *OvsInterface) Clone() Interface {
	cp := *i
	return &cp
}

func (i *OvsInterface) CloneNameTypeOnly() Interface {
	return &OvsInterface{BaseInterface: i.BaseInterface.CloneNameTypeOnly()}
}

// IsInternal reports whether this is the "internal" OVS interface type that
// implicitly owns a synthetic ovs-port on its bridge.
func (i *OvsInterface) IsInternal() bool {
	return i.OvsIfaceType == "" || i.OvsIfaceType == "internal"
}
