package iface

import "testing"

func TestInterfaces_PushAndGetKernelNamespace(t *testing.T) {
	t0 := NewInterfaces()
	t0.Push(NewEthernet("eth0"))

	ifc, ok := t0.Get("eth0", TypeEthernet)
	if !ok {
		t.Fatal("expected eth0 to be found")
	}
	if ifc.Name() != "eth0" {
		t.Errorf("expected name eth0, got %q", ifc.Name())
	}
}

func TestInterfaces_DualNamespaceSameName(t *testing.T) {
	t0 := NewInterfaces()
	t0.Push(NewBond("shared0", nil))       // kernel namespace
	t0.Push(NewOvsInterface("shared0"))    // user namespace

	if _, ok := t0.Get("shared0", TypeBond); !ok {
		t.Error("expected the bond to coexist in the kernel namespace")
	}
	if _, ok := t0.Get("shared0", TypeOvsInterface); !ok {
		t.Error("expected the ovs-interface to coexist in the user namespace")
	}
	if t0.Len() != 2 {
		t.Errorf("expected both entries counted, got %d", t0.Len())
	}
}

func TestInterfaces_GetUnknownTypeSearchesKernelFirst(t *testing.T) {
	t0 := NewInterfaces()
	t0.Push(NewEthernet("eth0"))

	ifc, ok := t0.Get("eth0", TypeUnknown)
	if !ok || ifc.IfaceType() != TypeEthernet {
		t.Error("expected a TypeUnknown lookup to resolve via the kernel namespace")
	}
}

func TestInterfaces_GetUnknownTypeFallsBackToUserScan(t *testing.T) {
	t0 := NewInterfaces()
	t0.Push(NewOvsInterface("ovs0"))

	ifc, ok := t0.Get("ovs0", TypeUnknown)
	if !ok || ifc.IfaceType() != TypeOvsInterface {
		t.Error("expected a TypeUnknown lookup to fall back to scanning the user namespace")
	}
}

func TestInterfaces_PushReplacesSameIdentity(t *testing.T) {
	t0 := NewInterfaces()
	first := NewEthernet("eth0")
	first.Base().MACAddress = "11:11:11:11:11:11"
	t0.Push(first)

	second := NewEthernet("eth0")
	second.Base().MACAddress = "22:22:22:22:22:22"
	t0.Push(second)

	ifc, _ := t0.Get("eth0", TypeEthernet)
	if ifc.Base().MACAddress != "22:22:22:22:22:22" {
		t.Errorf("expected the later push to replace the earlier record, got %q", ifc.Base().MACAddress)
	}
	if t0.Len() != 1 {
		t.Errorf("expected exactly one record after replacement, got %d", t0.Len())
	}
}

func TestInterfaces_ToVecOrdersByPriorityThenName(t *testing.T) {
	t0 := NewInterfaces()
	b := NewEthernet("zzz")
	b.Base().UpPriority = 1
	a := NewEthernet("aaa")
	a.Base().UpPriority = 1
	high := NewEthernet("mmm")
	high.Base().UpPriority = 0
	t0.Push(b)
	t0.Push(a)
	t0.Push(high)

	vec := t0.ToVec()
	names := []string{vec[0].Name(), vec[1].Name(), vec[2].Name()}
	want := []string{"mmm", "aaa", "zzz"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected order %v, got %v", want, names)
			break
		}
	}
}

func TestInterfaces_InsertionOrderTracksFirstPush(t *testing.T) {
	t0 := NewInterfaces()
	t0.Push(NewEthernet("eth0"))
	t0.Push(NewEthernet("eth1"))
	t0.Push(NewEthernet("eth0")) // replacement, not a new insertion

	order := t0.InsertionOrder()
	if len(order) != 2 || order[0] != "eth0" || order[1] != "eth1" {
		t.Errorf("expected insertion order [eth0 eth1], got %v", order)
	}
}

func TestInterfaces_RemoveUnknownTypePortDropsDanglingReference(t *testing.T) {
	t0 := NewInterfaces()
	bond := NewBond("bond0", []string{"eth0", "ghost0"})
	t0.Push(bond)

	current := NewInterfaces()
	current.Push(NewEthernet("eth0"))

	removed := t0.RemoveUnknownTypePort(current)
	if len(removed) != 1 || removed[0] != "ghost0" {
		t.Errorf("expected ghost0 reported removed, got %v", removed)
	}

	b, _ := t0.Get("bond0", TypeBond)
	ports := b.Ports()
	if len(ports) != 1 || ports[0] != "eth0" {
		t.Errorf("expected only eth0 to remain in the port list, got %v", ports)
	}
}

func TestInterfaces_PruneDanglingChildrenRemovesOrphanedChild(t *testing.T) {
	t0 := NewInterfaces()
	t0.Push(NewVlan("vlan100", "ghost0", 100))
	t0.Push(NewEthernet("eth0"))

	t0.PruneDanglingChildren([]string{"ghost0"})

	if _, ok := t0.Get("vlan100", TypeVlan); ok {
		t.Error("expected vlan100 pruned since its parent was removed")
	}
	if _, ok := t0.Get("eth0", TypeEthernet); !ok {
		t.Error("expected eth0 to survive pruning")
	}
}

func TestInterfaces_HasSRIOVEnabled(t *testing.T) {
	t0 := NewInterfaces()
	t0.Push(NewEthernet("eth0"))
	if t0.HasSRIOVEnabled() {
		t.Error("expected no SR-IOV without a sriov config")
	}

	eth := NewEthernet("eth1")
	eth.SRIOV = &SRIOVConfig{TotalVFs: 4}
	t0.Push(eth)
	if !t0.HasSRIOVEnabled() {
		t.Error("expected SR-IOV detected once an interface requests VFs")
	}
}

func TestInterfaces_UpdateMergesExisting(t *testing.T) {
	t0 := NewInterfaces()
	t0.Push(NewEthernet("eth0"))

	other := NewInterfaces()
	updated := NewEthernet("eth0")
	updated.Base().MACAddress = "AA:BB:CC:DD:EE:FF"
	other.Push(updated)

	t0.Update(other)

	ifc, _ := t0.Get("eth0", TypeEthernet)
	if ifc.Base().MACAddress != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("expected Update to merge mac into the existing record, got %q", ifc.Base().MACAddress)
	}
}
