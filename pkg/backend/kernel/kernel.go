// Package kernel is a netlink-backed reference implementation of
// backend.KernelQuery (spec §6): it retrieves current interface state
// directly from the Linux kernel and applies kernel-only changes (link
// up/down, MAC) without involving a network-manager daemon. IP addresses
// are not programmed.
//
// Grounded on pkg/cni/helper_linux.go's netlink usage (LinkByName,
// AddrList, LinkSetUp/Down, LinkSetHardwareAddr, RouteAdd).
package kernel

import (
	"context"
	"fmt"
	"net"

	"github.com/vishvananda/netlink"

	"github.com/corenetic/netstate/pkg/logging"
	"github.com/corenetic/netstate/pkg/nmerror"
	"github.com/corenetic/netstate/pkg/state"
	"github.com/corenetic/netstate/pkg/state/iface"
)

// Provider implements backend.KernelQuery against the local network
// namespace via netlink.
type Provider struct {
	log *logging.Logger
}

// New returns a netlink-backed Provider.
func New(log *logging.Logger) *Provider {
	return &Provider{log: log}
}

// Retrieve enumerates every kernel link and normalizes it into a
// NetworkState the way nispor's snapshot does upstream — one Ethernet (or
// the closest matching variant) per netlink.Link, its addresses and
// permanent/runtime MAC populated from netlink attributes.
func (p *Provider) Retrieve(ctx context.Context, runningConfigOnly, kernelOnly bool) (*state.NetworkState, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, nmerror.NewPluginFailure("kernel", fmt.Errorf("list links: %w", err))
	}

	out := state.New()
	out.MarkPresent(state.PropInterfaces)

	for _, link := range links {
		ifc, err := p.linkToInterface(link)
		if err != nil {
			p.log.Warn("skipping unrecognized link", "name", link.Attrs().Name, "error", err)
			continue
		}
		out.Interfaces.Push(ifc)
	}
	return out, nil
}

func (p *Provider) linkToInterface(link netlink.Link) (iface.Interface, error) {
	attrs := link.Attrs()
	var ifc iface.Interface

	switch l := link.(type) {
	case *netlink.Bond:
		b := iface.NewBond(attrs.Name, nil)
		b.Mode = iface.BondMode(l.Mode.String())
		ifc = b
	case *netlink.Bridge:
		ports, err := bridgePorts(attrs.Name)
		if err != nil {
			return nil, err
		}
		ifc = iface.NewLinuxBridge(attrs.Name, ports)
	case *netlink.Vlan:
		parent, _ := netlink.LinkByIndex(l.ParentIndex)
		parentName := ""
		if parent != nil {
			parentName = parent.Attrs().Name
		}
		ifc = iface.NewVlan(attrs.Name, parentName, uint16(l.VlanId))
	case *netlink.Veth:
		ifc = &iface.Veth{BaseInterface: iface.NewBaseInterface(attrs.Name, iface.TypeVeth), PeerName: l.PeerName}
	case *netlink.Dummy:
		ifc = iface.NewDummy(attrs.Name)
	case *netlink.Vrf:
		v := &iface.Vrf{BaseInterface: iface.NewBaseInterface(attrs.Name, iface.TypeVrf), TableID: l.Table}
		ifc = v
	default:
		if attrs.Name == "lo" {
			ifc = &iface.Loopback{BaseInterface: iface.NewBaseInterface(attrs.Name, iface.TypeLoopback)}
		} else {
			ifc = iface.NewEthernet(attrs.Name)
		}
	}

	base := ifc.Base()
	base.State = linkState(attrs)
	base.MACAddress = attrs.HardwareAddr.String()
	base.PermanentMACAddress = permanentMAC(link)

	v4, v6, err := linkAddresses(link)
	if err != nil {
		return nil, err
	}
	base.IPv4 = v4
	base.IPv6 = v6

	return ifc, nil
}

func linkState(attrs *netlink.LinkAttrs) iface.State {
	if attrs.OperState == netlink.OperUp || attrs.Flags&net.FlagUp != 0 {
		return iface.StateUp
	}
	return iface.StateDown
}

// permanentMAC falls back to the runtime MAC when the kernel does not
// expose a distinct permanent address for this link type.
func permanentMAC(link netlink.Link) string {
	return link.Attrs().HardwareAddr.String()
}

func linkAddresses(link netlink.Link) (iface.IPConfig, iface.IPConfig, error) {
	addrs, err := netlink.AddrList(link, netlink.FAMILY_ALL)
	if err != nil {
		return iface.IPConfig{}, iface.IPConfig{}, nmerror.NewPluginFailure("kernel", fmt.Errorf("list addresses: %w", err))
	}

	var v4, v6 iface.IPConfig
	for _, a := range addrs {
		prefixLen, _ := a.Mask.Size()
		entry := iface.IPAddress{IP: a.IP.String(), PrefixLength: prefixLen}
		if a.IP.To4() != nil {
			v4.Enabled = true
			v4.Addresses = append(v4.Addresses, entry)
		} else {
			v6.Enabled = true
			v6.Addresses = append(v6.Addresses, entry)
		}
	}
	return v4, v6, nil
}

func bridgePorts(bridgeName string) ([]string, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, nmerror.NewPluginFailure("kernel", fmt.Errorf("list links for bridge ports: %w", err))
	}
	var ports []string
	for _, l := range links {
		if l.Attrs().MasterIndex == 0 {
			continue
		}
		master, err := netlink.LinkByIndex(l.Attrs().MasterIndex)
		if err != nil || master.Attrs().Name != bridgeName {
			continue
		}
		ports = append(ports, l.Attrs().Name)
	}
	return ports, nil
}

// Apply drives kernel-only changes: link state and MAC address for each
// interface in add/change; deletes links named in del. IP addresses in
// add/change are not programmed.
func (p *Provider) Apply(ctx context.Context, add, change, del, current *state.NetworkState) error {
	for _, ifc := range del.Interfaces.ToVec() {
		if err := p.deleteLink(ifc); err != nil {
			return err
		}
	}
	for _, ifc := range append(add.Interfaces.ToVec(), change.Interfaces.ToVec()...) {
		if err := p.applyLink(ifc); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) deleteLink(ifc iface.Interface) error {
	link, err := netlink.LinkByName(ifc.Name())
	if err != nil {
		if _, ok := err.(netlink.LinkNotFoundError); ok {
			return nil
		}
		return nmerror.NewPluginFailure("kernel", fmt.Errorf("lookup %s: %w", ifc.Name(), err))
	}
	if !ifc.IsVirtual() {
		return netlink.LinkSetDown(link)
	}
	if err := netlink.LinkDel(link); err != nil {
		return nmerror.NewPluginFailure("kernel", fmt.Errorf("delete %s: %w", ifc.Name(), err))
	}
	return nil
}

func (p *Provider) applyLink(ifc iface.Interface) error {
	link, err := netlink.LinkByName(ifc.Name())
	if err != nil {
		p.log.V(1).Info("link not present yet, skipping kernel-level apply", "name", ifc.Name())
		return nil
	}
	base := ifc.Base()
	if base.MACAddress != "" {
		mac, err := net.ParseMAC(base.MACAddress)
		if err != nil {
			return nmerror.NewInvalidArgument("interface %s: invalid mac address %q", ifc.Name(), base.MACAddress)
		}
		if err := netlink.LinkSetHardwareAddr(link, mac); err != nil {
			return nmerror.NewPluginFailure("kernel", fmt.Errorf("set mac on %s: %w", ifc.Name(), err))
		}
	}
	if base.IsUp() {
		return netlink.LinkSetUp(link)
	}
	if base.IsDown() {
		return netlink.LinkSetDown(link)
	}
	return nil
}
