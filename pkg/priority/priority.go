// Package priority assigns each interface in a table an up_priority so
// that controllers always resolve before their ports (spec §4.2).
//
// Grounded on the bounded fixpoint loop in rust/src/lib/ifaces/
// inter_ifaces.rs (set_priority), reworked as a pure function over
// iface.Interfaces rather than a mutating method, matching the teacher's
// preference for small free functions over god-objects in pkg/allocator.
package priority

import (
	"github.com/corenetic/netstate/pkg/nmerror"
	"github.com/corenetic/netstate/pkg/state/iface"
)

// maxPasses is spec §4.2's "at most four fixpoint passes" — enough for
// bridge-over-bond-over-vlan-over-ethernet nesting.
const maxPasses = 4

// Resolve assigns up_priority to every interface in t. It walks insertion
// order up to maxPasses times; on the pass where no priority changes it
// returns successfully. Deeper nesting than four controller layers fails
// with InvalidArgument, advising the caller to order controllers before
// ports in the input document.
func Resolve(t *iface.Interfaces) error {
	order := t.InsertionOrder()

	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for _, name := range order {
			ifc, ok := t.Get(name, iface.TypeUnknown)
			if !ok || !ifc.IsController() {
				continue
			}
			minPortPriority, anyKnown := minKnownPortPriority(t, ifc.Ports())
			if !anyKnown {
				continue
			}
			candidate := minPortPriority - 1
			base := ifc.Base()
			if candidate < base.UpPriority {
				base.UpPriority = candidate
				changed = true
			}
		}
		if !changed {
			return nil
		}
	}

	if !converged(t) {
		return nmerror.NewInvalidArgument(
			"controller/port nesting exceeds four levels; order controllers before their ports in the input document")
	}
	return nil
}

func minKnownPortPriority(t *iface.Interfaces, ports []string) (uint32, bool) {
	var min uint32
	found := false
	for _, port := range ports {
		portIfc, ok := t.Get(port, iface.TypeUnknown)
		if !ok {
			continue
		}
		p := portIfc.Base().UpPriority
		if !found || p < min {
			min = p
			found = true
		}
	}
	return min, found
}

// converged reports whether every controller/port pair in t now satisfies
// priority(controller) < priority(port) — the invariant the resolver
// exists to establish (spec §8 property 3).
func converged(t *iface.Interfaces) bool {
	for _, ifc := range t.ToVec() {
		if !ifc.IsController() {
			continue
		}
		cp := ifc.Base().UpPriority
		for _, port := range ifc.Ports() {
			portIfc, ok := t.Get(port, iface.TypeUnknown)
			if !ok {
				continue
			}
			if cp >= portIfc.Base().UpPriority {
				return false
			}
		}
	}
	return true
}
