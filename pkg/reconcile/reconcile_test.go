package reconcile

import (
	"testing"

	"github.com/corenetic/netstate/pkg/logging"
	"github.com/corenetic/netstate/pkg/state"
	"github.com/corenetic/netstate/pkg/state/dns"
	"github.com/corenetic/netstate/pkg/state/iface"
	"github.com/corenetic/netstate/pkg/state/netroute"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	log, err := logging.NewLogger(logging.Options{Level: "debug", Format: "json"})
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	return log
}

func TestDiff_NewUpInterfaceGoesToAdd(t *testing.T) {
	current := state.New()
	current.MarkPresent(state.PropInterfaces)

	desire := state.New()
	desire.MarkPresent(state.PropInterfaces)
	desire.Interfaces.Push(iface.NewEthernet("eth0"))

	cs, err := Diff(testLogger(t), desire, current)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if _, ok := cs.Add.Interfaces.Get("eth0", iface.TypeEthernet); !ok {
		t.Error("expected eth0 in add set")
	}
	if cs.Change.Interfaces.Len() != 0 || cs.Delete.Interfaces.Len() != 0 {
		t.Error("expected empty change/delete sets")
	}
}

func TestDiff_ExistingUpInterfaceGoesToChangeWithCurrentTypeAuthoritative(t *testing.T) {
	current := state.New()
	current.MarkPresent(state.PropInterfaces)
	current.Interfaces.Push(iface.NewEthernet("eth0"))

	desire := state.New()
	desire.MarkPresent(state.PropInterfaces)
	eth := iface.NewEthernet("eth0")
	eth.Base().MACAddress = "aa:bb:cc:dd:ee:ff"
	desire.Interfaces.Push(eth)

	cs, err := Diff(testLogger(t), desire, current)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	changed, ok := cs.Change.Interfaces.Get("eth0", iface.TypeEthernet)
	if !ok {
		t.Fatal("expected eth0 in change set")
	}
	if changed.Base().MACAddress != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("expected mac normalized by pre_edit_cleanup, got %q", changed.Base().MACAddress)
	}
}

func TestDiff_AbsentInterfaceGoesToDelete(t *testing.T) {
	current := state.New()
	current.MarkPresent(state.PropInterfaces)
	current.Interfaces.Push(iface.NewEthernet("eth0"))

	desire := state.New()
	desire.MarkPresent(state.PropInterfaces)
	absent := iface.NewEthernet("eth0")
	absent.Base().State = iface.StateAbsent
	desire.Interfaces.Push(absent)

	cs, err := Diff(testLogger(t), desire, current)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if _, ok := cs.Delete.Interfaces.Get("eth0", iface.TypeEthernet); !ok {
		t.Error("expected eth0 in delete set")
	}
}

func TestDiff_DHCPTransitionPreservesDynamicAddresses(t *testing.T) {
	current := state.New()
	current.MarkPresent(state.PropInterfaces)
	curEth := iface.NewEthernet("eth0")
	curEth.Base().IPv4 = iface.IPConfig{
		Enabled: true,
		Dhcp:    true,
		Addresses: []iface.IPAddress{
			{IP: "192.0.2.5", PrefixLength: 24},
		},
	}
	current.Interfaces.Push(curEth)

	desire := state.New()
	desire.MarkPresent(state.PropInterfaces)
	desEth := iface.NewEthernet("eth0")
	desEth.Base().IPv4 = iface.IPConfig{Enabled: true, Dhcp: false}
	desire.Interfaces.Push(desEth)

	cs, err := Diff(testLogger(t), desire, current)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	changed, ok := cs.Change.Interfaces.Get("eth0", iface.TypeEthernet)
	if !ok {
		t.Fatal("expected eth0 in change set")
	}
	addrs := changed.Base().IPv4.Addresses
	if len(addrs) != 1 || addrs[0].IP != "192.0.2.5" {
		t.Errorf("expected dynamic address preserved as static, got %+v", addrs)
	}
}

func TestDiff_OrphanCascade(t *testing.T) {
	current := state.New()
	current.MarkPresent(state.PropInterfaces)
	bond := iface.NewBond("bond0", []string{"eth0"})
	current.Interfaces.Push(bond)
	port := iface.NewEthernet("eth0")
	port.Base().Controller = "bond0"
	current.Interfaces.Push(port)

	desire := state.New()
	desire.MarkPresent(state.PropInterfaces)
	absentBond := iface.NewBond("bond0", nil)
	absentBond.Base().State = iface.StateAbsent
	desire.Interfaces.Push(absentBond)

	cs, err := Diff(testLogger(t), desire, current)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if _, ok := cs.Delete.Interfaces.Get("bond0", iface.TypeBond); !ok {
		t.Error("expected bond0 in delete set")
	}
	if _, ok := cs.Delete.Interfaces.Get("eth0", iface.TypeEthernet); !ok {
		t.Error("expected orphaned port eth0 cascaded into delete set")
	}
}

func TestDiff_OVSInternalDeleteExpandsToPortPairing(t *testing.T) {
	current := state.New()
	current.MarkPresent(state.PropInterfaces)
	ovsIfc := iface.NewOvsInterface("ovs0")
	ovsIfc.OvsIfaceType = "internal"
	current.Interfaces.Push(ovsIfc)

	desire := state.New()
	desire.MarkPresent(state.PropInterfaces)
	absent := iface.NewOvsInterface("ovs0")
	absent.Base().State = iface.StateAbsent
	desire.Interfaces.Push(absent)

	cs, err := Diff(testLogger(t), desire, current)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if _, ok := cs.Delete.Interfaces.Get("ovs0-port", iface.TypeUnknown); !ok {
		t.Error("expected synthetic ovs0-port stub in delete set")
	}
}

func TestDiff_DNSFoldingTransfersOwnershipToNewDefaultRouteInterface(t *testing.T) {
	current := state.New()
	current.MarkPresent(state.PropInterfaces)
	oldOwner := iface.NewEthernet("eth0")
	oldOwner.Base().DNSv4Owner = true
	current.Interfaces.Push(oldOwner)
	current.Interfaces.Push(iface.NewEthernet("eth1"))
	current.MarkPresent(state.PropDNS)
	current.DNS = &dns.State{Config: &dns.Config{Servers: []string{"198.51.100.1"}}}
	current.MarkPresent(state.PropRoutes)
	current.Routes = &netroute.Set{Config: []netroute.Route{
		{Destination: "0.0.0.0/0", NextHopInterface: "eth0"},
	}}

	desire := state.New()
	desire.MarkPresent(state.PropInterfaces)
	desire.MarkPresent(state.PropDNS)
	desire.DNS = &dns.State{Config: &dns.Config{Servers: []string{"203.0.113.1"}}}
	desire.MarkPresent(state.PropRoutes)
	desire.Routes = &netroute.Set{Config: []netroute.Route{
		{Destination: "0.0.0.0/0", NextHopInterface: "eth1"},
	}}

	cs, err := Diff(testLogger(t), desire, current)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if cs.Change.DNS == nil || cs.Change.DNS.Config == nil || cs.Change.DNS.Config.Servers[0] != "203.0.113.1" {
		t.Fatalf("expected merged DNS config on change set, got %+v", cs.Change.DNS)
	}

	oldTarget, ok := cs.Change.Interfaces.Get("eth0", iface.TypeUnknown)
	if !ok {
		t.Fatal("expected eth0 stub in change set to purge old DNS ownership")
	}
	if oldTarget.Base().DNSv4Owner {
		t.Error("expected eth0 to lose v4 DNS ownership")
	}

	newTarget, ok := cs.Change.Interfaces.Get("eth1", iface.TypeUnknown)
	if !ok {
		t.Fatal("expected eth1 stub in change set to gain DNS ownership")
	}
	if !newTarget.Base().DNSv4Owner {
		t.Error("expected eth1 to become the v4 DNS owner")
	}
}
