package policy

import (
	"testing"

	"github.com/corenetic/netstate/pkg/nmerror"
	"github.com/corenetic/netstate/pkg/state/iface"
)

func TestCompile_BareNetworkState(t *testing.T) {
	doc := []byte(`
interfaces:
  - name: eth0
    type: ethernet
    state: up
`)
	ns, err := Compile(doc)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if _, ok := ns.Interfaces.Get("eth0", iface.TypeEthernet); !ok {
		t.Error("expected eth0 present in the compiled NetworkState")
	}
}

func TestCompile_DesiredStateWrapper(t *testing.T) {
	doc := []byte(`
desiredState:
  interfaces:
    - name: eth0
      type: ethernet
      state: up
`)
	ns, err := Compile(doc)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if ns == nil || !ns.HasAnyPresent() {
		t.Fatal("expected a non-nil compiled NetworkState carrying presence")
	}
}

func TestCompile_DesiredWrapper(t *testing.T) {
	doc := []byte(`
desired:
  interfaces:
    - name: eth0
      type: ethernet
      state: up
`)
	ns, err := Compile(doc)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if ns == nil || !ns.HasAnyPresent() {
		t.Fatal("expected a non-nil compiled NetworkState carrying presence")
	}
}

func TestCompile_NeitherShapeFails(t *testing.T) {
	doc := []byte(`
someOtherField: 42
`)
	_, err := Compile(doc)
	if !nmerror.IsInvalidArgument(err) {
		t.Fatalf("expected InvalidArgument for a document matching neither shape, got %v", err)
	}
}
