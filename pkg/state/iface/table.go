package iface

import "sort"

// key identifies an interface by (name, type) in the user-space namespace.
type key struct {
	name string
	typ  Type
}

// Interfaces is the store of spec §4.1: kernel-namespace interfaces are
// addressable by name alone, user-space interfaces by (name, type), and a
// single insertion-order vector threads both for tie-breaking in the
// up-priority resolver (pkg/priority).
type Interfaces struct {
	kernel   map[string]Interface
	user     map[key]Interface
	inserted []key
}

// NewInterfaces returns an empty table.
func NewInterfaces() *Interfaces {
	return &Interfaces{
		kernel: make(map[string]Interface),
		user:   make(map[key]Interface),
	}
}

func (t *Interfaces) namespaceKey(ifc Interface) key {
	if ifc.IsUserspace() {
		return key{name: ifc.Name(), typ: ifc.IfaceType()}
	}
	return key{name: ifc.Name()}
}

// Push inserts ifc, replacing any existing record with the same identity.
func (t *Interfaces) Push(ifc Interface) {
	k := t.namespaceKey(ifc)
	if ifc.IsUserspace() {
		if _, exists := t.user[k]; !exists {
			t.inserted = append(t.inserted, k)
		}
		t.user[k] = ifc
		return
	}
	if _, exists := t.kernel[k.name]; !exists {
		t.inserted = append(t.inserted, k)
	}
	t.kernel[k.name] = ifc
}

// Get looks up an interface by name and type. When typ is TypeUnknown it
// searches the kernel namespace first, then scans the user namespace —
// matching spec §4.1's "get() when type is Unknown searches the kernel map
// first, then scans the user map".
func (t *Interfaces) Get(name string, typ Type) (Interface, bool) {
	if typ == TypeUnknown {
		if ifc, ok := t.kernel[name]; ok {
			return ifc, true
		}
		for k, ifc := range t.user {
			if k.name == name {
				return ifc, true
			}
		}
		return nil, false
	}
	if typ.IsUserspace() {
		ifc, ok := t.user[key{name: name, typ: typ}]
		return ifc, ok
	}
	ifc, ok := t.kernel[name]
	return ifc, ok
}

// GetMut is type-strict: unlike Get it never falls back to a namespace scan
// when typ is Unknown, since a caller holding a mutable reference must know
// exactly which record it intends to mutate.
func (t *Interfaces) GetMut(name string, typ Type) (Interface, bool) {
	if typ.IsUserspace() {
		ifc, ok := t.user[key{name: name, typ: typ}]
		return ifc, ok
	}
	ifc, ok := t.kernel[name]
	return ifc, ok
}

// Update merges every interface in other into t: existing records have
// Update(other) called on them, new identities are pushed.
func (t *Interfaces) Update(other *Interfaces) {
	for _, ifc := range other.ToVec() {
		if existing, ok := t.GetMut(ifc.Name(), ifc.IfaceType()); ok {
			existing.Update(ifc)
			continue
		}
		t.Push(ifc)
	}
}

// ToVec returns the deterministic ordered view: primarily by up_priority
// ascending, secondarily alphabetic by name (spec §4.1).
func (t *Interfaces) ToVec() []Interface {
	out := make([]Interface, 0, len(t.kernel)+len(t.user))
	for _, ifc := range t.kernel {
		out = append(out, ifc)
	}
	for _, ifc := range t.user {
		out = append(out, ifc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Base().UpPriority, out[j].Base().UpPriority
		if pi != pj {
			return pi < pj
		}
		return out[i].Name() < out[j].Name()
	})
	return out
}

// InsertionOrder returns the interface names in the order they were
// first pushed, consumed by the up-priority resolver to break ties beyond
// four nesting levels.
func (t *Interfaces) InsertionOrder() []string {
	out := make([]string, 0, len(t.inserted))
	for _, k := range t.inserted {
		out = append(out, k.name)
	}
	return out
}

// RemoveUnknownTypePort drops, from every controller's port list, any port
// name that does not resolve to a known interface in current — spec §4.1's
// remove_unknown_type_port, used after §4.3 resolution leaves some
// references dangling (e.g. a port that was deleted out-of-band). Returns
// the names actually removed, for PruneDanglingChildren to cascade on.
func (t *Interfaces) RemoveUnknownTypePort(current *Interfaces) []string {
	var removed []string
	for _, ifc := range t.ToVec() {
		if !ifc.IsController() {
			continue
		}
		for _, port := range ifc.Ports() {
			if _, ok := current.Get(port, TypeUnknown); !ok {
				ifc.RemovePort(port)
				removed = append(removed, port)
			}
		}
	}
	return removed
}

// PruneDanglingChildren removes, from t, every interface whose Parent()
// names a removed name — e.g. a VLAN/VXLAN child of a port that was just
// dropped from its bond/bridge by RemoveUnknownTypePort (spec §4.1
// supplement, grounded on inter_ifaces.rs's remove_port cascading into
// dependent child interfaces).
func (t *Interfaces) PruneDanglingChildren(removed []string) {
	gone := make(map[string]bool, len(removed))
	for _, name := range removed {
		gone[name] = true
	}
	for _, ifc := range t.ToVec() {
		if parent := ifc.Parent(); parent != "" && gone[parent] {
			t.removeExact(ifc)
		}
	}
}

func (t *Interfaces) removeExact(ifc Interface) {
	k := t.namespaceKey(ifc)
	if ifc.IsUserspace() {
		delete(t.user, k)
	} else {
		delete(t.kernel, k.name)
	}
}

// NormalizeCurrent strips IPv6 link-local addresses from every interface in
// t, in place. Meant to run once over a freshly kernel-queried current
// state before it is diffed or verified against desire (nispor's show.rs
// precedent) — the per-field MAC-case normalization spec §3 requires is
// already applied at comparison time by each variant's Verify.
func (t *Interfaces) NormalizeCurrent() {
	for _, ifc := range t.ToVec() {
		ifc.Base().IPv6.dropLinkLocal()
	}
}

// HasSRIOVEnabled reports whether any Ethernet interface in the table
// requests SR-IOV virtual functions.
func (t *Interfaces) HasSRIOVEnabled() bool {
	for _, ifc := range t.ToVec() {
		if eth, ok := ifc.(*Ethernet); ok && eth.SRIOVEnabled() {
			return true
		}
	}
	return false
}

// Len returns the total number of interfaces in both namespaces.
func (t *Interfaces) Len() int {
	return len(t.kernel) + len(t.user)
}
