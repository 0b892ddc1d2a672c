package iface

// controllerBase is embedded by every variant that owns an ordered list of
// ports: Bond, LinuxBridge, OvsBridge, Vrf. It supplies Ports/RemovePort and
// the IsController capability; the owning variant still embeds BaseInterface
// separately and implements the rest of Interface itself.
type controllerBase struct {
	PortNames []string `yaml:"port,omitempty" json:"port,omitempty"`
}

func (c controllerBase) IsController() bool { return true }

func (c controllerBase) Ports() []string {
	out := make([]string, len(c.PortNames))
	copy(out, c.PortNames)
	return out
}

func (c *controllerBase) RemovePort(name string) {
	out := c.PortNames[:0]
	for _, p := range c.PortNames {
		if p != name {
			out = append(out, p)
		}
	}
	c.PortNames = out
}

func (c controllerBase) Parent() string { return "" }

// childBase is embedded by variants that are children of another
// interface: Vlan/Vxlan (base device), MacVlan/MacVtap/IpVlan (base
// interface), MACsec (parent), InfiniBand (base pkey interface).
type childBase struct {
	ParentName string `yaml:"base-iface,omitempty" json:"base-iface,omitempty"`
}

func (c childBase) IsController() bool { return false }
func (c childBase) Ports() []string    { return nil }
func (c *childBase) RemovePort(string) {}
func (c childBase) Parent() string     { return c.ParentName }
