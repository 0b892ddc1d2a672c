package priority

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/corenetic/netstate/pkg/state/iface"
)

func TestResolve_SingleControllerBelowPorts(t *testing.T) {
	table := iface.NewInterfaces()
	table.Push(iface.NewEthernet("eth0"))
	table.Push(iface.NewEthernet("eth1"))
	table.Push(iface.NewBond("bond0", []string{"eth0", "eth1"}))

	if err := Resolve(table); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	bond, _ := table.Get("bond0", iface.TypeBond)
	eth0, _ := table.Get("eth0", iface.TypeEthernet)
	eth1, _ := table.Get("eth1", iface.TypeEthernet)

	if bond.Base().UpPriority >= eth0.Base().UpPriority {
		t.Errorf("expected bond priority < eth0 priority, got %d >= %d", bond.Base().UpPriority, eth0.Base().UpPriority)
	}
	if bond.Base().UpPriority >= eth1.Base().UpPriority {
		t.Errorf("expected bond priority < eth1 priority, got %d >= %d", bond.Base().UpPriority, eth1.Base().UpPriority)
	}
}

func TestResolve_NestedControllers(t *testing.T) {
	// bridge -> bond -> eth0/eth1, three levels deep including the leaf.
	table := iface.NewInterfaces()
	table.Push(iface.NewEthernet("eth0"))
	table.Push(iface.NewEthernet("eth1"))
	table.Push(iface.NewBond("bond0", []string{"eth0", "eth1"}))
	table.Push(iface.NewLinuxBridge("br0", []string{"bond0"}))

	if err := Resolve(table); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	br0, _ := table.Get("br0", iface.TypeLinuxBridge)
	bond0, _ := table.Get("bond0", iface.TypeBond)
	eth0, _ := table.Get("eth0", iface.TypeEthernet)

	if br0.Base().UpPriority >= bond0.Base().UpPriority {
		t.Errorf("expected br0 priority < bond0 priority")
	}
	if bond0.Base().UpPriority >= eth0.Base().UpPriority {
		t.Errorf("expected bond0 priority < eth0 priority")
	}
}

func TestResolve_NoControllersIsNoop(t *testing.T) {
	table := iface.NewInterfaces()
	table.Push(iface.NewEthernet("eth0"))

	if err := Resolve(table); err != nil {
		t.Fatalf("Resolve failed on a table with no controllers: %v", err)
	}
}

// TestProperty_ControllerPriorityBelowPorts is the quantified invariant
// from spec §8 property 3: after resolution, every controller's priority
// is strictly below every one of its ports' priorities.
func TestProperty_ControllerPriorityBelowPorts(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("controller priority below port priority", prop.ForAll(
		func(portCount int) bool {
			table := iface.NewInterfaces()
			var ports []string
			for i := 0; i < portCount; i++ {
				name := portName(i)
				table.Push(iface.NewEthernet(name))
				ports = append(ports, name)
			}
			table.Push(iface.NewBond("bond0", ports))

			if err := Resolve(table); err != nil {
				return false
			}

			bond, _ := table.Get("bond0", iface.TypeBond)
			for _, p := range ports {
				port, _ := table.Get(p, iface.TypeEthernet)
				if bond.Base().UpPriority >= port.Base().UpPriority {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
	))

	properties.TestingRun(t)
}

func portName(i int) string {
	return "eth" + string(rune('a'+i))
}
