// Package reconcile computes the (add, change, delete) triple a desired
// NetworkState expands into against current state (spec §4.5): interface
// classification, DHCP-transition preservation, orphan cascade, and
// route/rule/DNS folding.
//
// Grounded on rust/src/lib/ifaces/inter_ifaces.rs's gen_diff_ifaces and
// SPEC_FULL.md §4's OVS internal-interface/port pairing supplement.
package reconcile

import (
	"fmt"

	"github.com/corenetic/netstate/pkg/logging"
	"github.com/corenetic/netstate/pkg/nmerror"
	"github.com/corenetic/netstate/pkg/state"
	"github.com/corenetic/netstate/pkg/state/dns"
	"github.com/corenetic/netstate/pkg/state/iface"
	"github.com/corenetic/netstate/pkg/state/netroute"
)

// ChangeSet is the triple a Diff produces.
type ChangeSet struct {
	Add    *state.NetworkState
	Change *state.NetworkState
	Delete *state.NetworkState
}

// Diff classifies every interface in desire against current, folds in
// route/rule/DNS changes, and expands OVS internal-interface/ovs-port
// pairing. desire must already have Unknown-typed interfaces resolved
// (pkg/resolve.Unknown) and copy-mac-from applied (pkg/resolve.CopyMAC).
func Diff(log *logging.Logger, desire, current *state.NetworkState) (*ChangeSet, error) {
	cs := &ChangeSet{Add: state.New(), Change: state.New(), Delete: state.New()}
	cs.Add.MarkPresent(state.PropInterfaces)
	cs.Change.MarkPresent(state.PropInterfaces)
	cs.Delete.MarkPresent(state.PropInterfaces)

	if err := classifyInterfaces(desire.Interfaces, current.Interfaces, cs); err != nil {
		return nil, err
	}
	cascadeOrphans(current.Interfaces, cs)
	expandOvsPortPairing(current.Interfaces, cs)

	if desire.Present(state.PropRoutes) || current.Present(state.PropRoutes) {
		if err := foldRoutes(log, desire.Routes, current.Routes, current.Interfaces, cs); err != nil {
			return nil, err
		}
		cs.Change.MarkPresent(state.PropRoutes)
	}
	if desire.Present(state.PropRules) {
		if err := foldRules(desire.Rules, desire.Routes, current.Routes, cs); err != nil {
			return nil, err
		}
	}
	if desire.Present(state.PropDNS) {
		foldDNS(log, desire, current, cs)
	}

	return cs, nil
}

func classifyInterfaces(desire, current *iface.Interfaces, cs *ChangeSet) error {
	for _, d := range desire.ToVec() {
		base := d.Base()

		switch {
		case base.IsAbsent():
			matches := matchCurrent(current, d.Name(), d.IfaceType())
			for _, m := range matches {
				stub := m.CloneNameTypeOnly()
				stub.Base().State = iface.StateAbsent
				cs.Delete.Interfaces.Push(stub)
			}

		case base.IsUp():
			if err := d.Validate(); err != nil {
				return err
			}
			if cur, ok := current.Get(d.Name(), iface.TypeUnknown); ok {
				merged := cur.Clone()
				merged.Update(d)
				applyDHCPTransition(merged, cur)
				merged.PreEditCleanup()
				cs.Change.Interfaces.Push(merged)
			} else {
				d.PreEditCleanup()
				cs.Add.Interfaces.Push(d)
			}

		case base.IsDown():
			cs.Change.Interfaces.Push(d)
		}
	}
	return nil
}

func matchCurrent(current *iface.Interfaces, name string, typ iface.Type) []iface.Interface {
	if typ == iface.TypeUnknown {
		var out []iface.Interface
		for _, c := range current.ToVec() {
			if c.Name() == name {
				out = append(out, c)
			}
		}
		return out
	}
	if c, ok := current.Get(name, typ); ok {
		return []iface.Interface{c}
	}
	return nil
}

// applyDHCPTransition copies current's dynamic addresses into merged as
// static when desire disables DHCP on a previously-DHCP interface with no
// static addresses of its own (spec §4.5, §8 property 4).
func applyDHCPTransition(merged, cur iface.Interface) {
	mb, cb := merged.Base(), cur.Base()
	if cb.IPv4.Dhcp && !mb.IPv4.Dhcp && len(mb.IPv4.Addresses) == 0 {
		mb.IPv4.Addresses = cb.IPv4.Addresses
	}
	if cb.IPv6.Dhcp && !mb.IPv6.Dhcp && len(mb.IPv6.Addresses) == 0 {
		mb.IPv6.Addresses = cb.IPv6.Addresses
	}
}

// cascadeOrphans appends an absent stub for every current interface whose
// controller is already in the delete set and which is not itself already
// scheduled for deletion (spec §4.5 "Orphan cascade").
func cascadeOrphans(current *iface.Interfaces, cs *ChangeSet) {
	deleted := map[string]bool{}
	for _, d := range cs.Delete.Interfaces.ToVec() {
		deleted[d.Name()] = true
	}

	for _, cur := range current.ToVec() {
		owner := ownerName(cur)
		if owner == "" || !deleted[owner] || deleted[cur.Name()] {
			continue
		}
		stub := cur.CloneNameTypeOnly()
		stub.Base().State = iface.StateAbsent
		cs.Delete.Interfaces.Push(stub)
		deleted[cur.Name()] = true
	}
}

func ownerName(ifc iface.Interface) string {
	if p := ifc.Parent(); p != "" {
		return p
	}
	return ifc.Base().Controller
}

// expandOvsPortPairing ensures every absent OVS-internal interface also
// removes its synthetic ovs-port profile on the owning bridge (spec §8
// scenario S4, SPEC_FULL.md §4 OVS internal-interface/port pairing).
func expandOvsPortPairing(current *iface.Interfaces, cs *ChangeSet) {
	for _, d := range cs.Delete.Interfaces.ToVec() {
		cur, ok := current.Get(d.Name(), iface.TypeOvsInterface)
		if !ok {
			continue
		}
		ovsIfc, ok := cur.(*iface.OvsInterface)
		if !ok || !ovsIfc.IsInternal() {
			continue
		}
		portStub := iface.NewUnknown(fmt.Sprintf("%s-port", d.Name()))
		portStub.Base().State = iface.StateAbsent
		cs.Delete.Interfaces.Push(portStub)
	}
}

func foldRoutes(log *logging.Logger, desire, current *netroute.Set, currentIfaces *iface.Interfaces, cs *ChangeSet) error {
	changed := netroute.DiffByInterface(desireRoutes(desire), currentRoutes(current))
	for ifaceName, routes := range changed {
		if target, ok := cs.Add.Interfaces.Get(ifaceName, iface.TypeUnknown); ok {
			attachRoutes(target, routes, currentIfaces)
			continue
		}
		if target, ok := cs.Change.Interfaces.Get(ifaceName, iface.TypeUnknown); ok {
			attachRoutes(target, routes, currentIfaces)
			continue
		}
		if cur, ok := currentIfaces.Get(ifaceName, iface.TypeUnknown); ok {
			stub := cur.CloneNameTypeOnly()
			attachRoutes(stub, routes, currentIfaces)
			cs.Change.Interfaces.Push(stub)
			continue
		}
		// No owning interface anywhere: warn and drop, per spec §4.5.
		log.Warn("dropping routes with no owning interface", "interface", ifaceName, "routes", len(routes))
	}
	return nil
}

func desireRoutes(s *netroute.Set) []netroute.Route {
	if s == nil {
		return nil
	}
	return s.Config
}

func currentRoutes(s *netroute.Set) []netroute.Route {
	if s == nil {
		return nil
	}
	if len(s.Running) > 0 {
		return s.Running
	}
	return s.Config
}

func attachRoutes(target iface.Interface, routes []netroute.Route, currentIfaces *iface.Interfaces) {
	base := target.Base()
	base.Routes = routes
	if cur, ok := currentIfaces.Get(target.Name(), iface.TypeUnknown); ok {
		cb := cur.Base()
		if !base.IPv4.Enabled && len(base.IPv4.Addresses) == 0 {
			base.IPv4 = cb.IPv4
		}
		if !base.IPv6.Enabled && len(base.IPv6.Addresses) == 0 {
			base.IPv6 = cb.IPv6
		}
	}
}

func foldRules(rules *netroute.RuleSet, desireRoutesSet, currentRoutesSet *netroute.Set, cs *ChangeSet) error {
	if rules == nil {
		return nil
	}
	for _, rule := range rules.Config {
		owner := findRouteOwner(rule.TableID, desireRoutesSet, currentRoutesSet)
		if owner == "" {
			return nmerror.NewInvalidArgument(
				"route table %d for route rule is not defined by any routes", rule.TableID)
		}
		if target, ok := cs.Change.Interfaces.Get(owner, iface.TypeUnknown); ok {
			target.Base().Rules = append(target.Base().Rules, rule)
			continue
		}
		if target, ok := cs.Add.Interfaces.Get(owner, iface.TypeUnknown); ok {
			target.Base().Rules = append(target.Base().Rules, rule)
		}
	}
	cs.Change.MarkPresent(state.PropRules)
	return nil
}

func findRouteOwner(tableID int, desireRoutes, currentRoutesSet *netroute.Set) string {
	for _, r := range desireRoutes.Config {
		if r.TableID == tableID && r.NextHopInterface != "" {
			return r.NextHopInterface
		}
	}
	for _, r := range currentRoutes(currentRoutesSet) {
		if r.TableID == tableID && r.NextHopInterface != "" {
			return r.NextHopInterface
		}
	}
	return ""
}

// foldDNS merges current DNS into desire's, skips if unchanged, otherwise
// re-selects the v4/v6 owner interfaces, purges the DNS-owner flag from
// whichever interfaces held it before, and sets it on the new owners (spec
// §4.5 "DNS folding"). Owner interfaces are the ones carrying the default
// route for each family, matching NetworkManager's convention of attaching
// resolver configuration to the profile that owns the default gateway.
func foldDNS(log *logging.Logger, desire, current *state.NetworkState, cs *ChangeSet) {
	merged, changed := dns.Merge(desire.DNS, current.DNS)
	if !changed {
		return
	}
	cs.Change.DNS = merged
	cs.Change.MarkPresent(state.PropDNS)

	prevV4, prevV6 := curDNSOwners(current.Interfaces)

	purge := desire.DNS != nil && desire.DNS.Config != nil && desire.DNS.Config.IsPurge
	var newV4, newV6 string
	if !purge {
		newV4, newV6 = reselectDNSOwners(desire.Routes, current.Routes)
	}

	for _, name := range prevV4 {
		if name == newV4 {
			continue
		}
		if target := dnsFoldTarget(name, cs, current.Interfaces); target != nil {
			target.Base().DNSv4Owner = false
		}
	}
	for _, name := range prevV6 {
		if name == newV6 {
			continue
		}
		if target := dnsFoldTarget(name, cs, current.Interfaces); target != nil {
			target.Base().DNSv6Owner = false
		}
	}
	if newV4 != "" {
		if target := dnsFoldTarget(newV4, cs, current.Interfaces); target != nil {
			target.Base().DNSv4Owner = true
		}
	}
	if newV6 != "" {
		if target := dnsFoldTarget(newV6, cs, current.Interfaces); target != nil {
			target.Base().DNSv6Owner = true
		}
	}

	log.Info("dns configuration changed", "servers", merged.Config.Servers,
		"ipv4-owner", newV4, "ipv6-owner", newV6)
}

// curDNSOwners returns the names of interfaces current state already marks
// as the v4/v6 DNS owner, so foldDNS can purge them if ownership moves.
func curDNSOwners(current *iface.Interfaces) (v4 []string, v6 []string) {
	for _, ifc := range current.ToVec() {
		b := ifc.Base()
		if b.DNSv4Owner {
			v4 = append(v4, ifc.Name())
		}
		if b.DNSv6Owner {
			v6 = append(v6, ifc.Name())
		}
	}
	return v4, v6
}

// reselectDNSOwners picks the v4/v6 interface whose default route (0.0.0.0/0,
// ::/0) makes it the natural DNS owner, preferring desire's routes and
// falling back to current's when desire leaves a family's routing untouched.
func reselectDNSOwners(desireRoutesSet, currentRoutesSet *netroute.Set) (v4, v6 string) {
	v4 = defaultRouteOwner(desireRoutes(desireRoutesSet), false)
	if v4 == "" {
		v4 = defaultRouteOwner(currentRoutes(currentRoutesSet), false)
	}
	v6 = defaultRouteOwner(desireRoutes(desireRoutesSet), true)
	if v6 == "" {
		v6 = defaultRouteOwner(currentRoutes(currentRoutesSet), true)
	}
	return v4, v6
}

func defaultRouteOwner(routes []netroute.Route, isV6 bool) string {
	want := "0.0.0.0/0"
	if isV6 {
		want = "::/0"
	}
	for _, r := range routes {
		if r.Destination == want && r.NextHopInterface != "" {
			return r.NextHopInterface
		}
	}
	return ""
}

// dnsFoldTarget returns the changeset entry (or a fresh current-backed stub
// pushed into cs.Change) that DNS ownership bookkeeping should be set on,
// mirroring attachRoutes' target-resolution order.
func dnsFoldTarget(name string, cs *ChangeSet, current *iface.Interfaces) iface.Interface {
	if target, ok := cs.Add.Interfaces.Get(name, iface.TypeUnknown); ok {
		return target
	}
	if target, ok := cs.Change.Interfaces.Get(name, iface.TypeUnknown); ok {
		return target
	}
	if cur, ok := current.Get(name, iface.TypeUnknown); ok {
		stub := cur.CloneNameTypeOnly()
		stub.Base().DNSv4Owner = cur.Base().DNSv4Owner
		stub.Base().DNSv6Owner = cur.Base().DNSv6Owner
		cs.Change.Interfaces.Push(stub)
		return stub
	}
	return nil
}
