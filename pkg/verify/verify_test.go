package verify

import (
	"context"
	"errors"
	"testing"

	"github.com/corenetic/netstate/pkg/logging"
	"github.com/corenetic/netstate/pkg/nmerror"
	"github.com/corenetic/netstate/pkg/state"
	"github.com/corenetic/netstate/pkg/state/iface"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	log, err := logging.NewLogger(logging.Options{Level: "debug", Format: "json"})
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	return log
}

func TestInterfaces_FoundAndEqualPasses(t *testing.T) {
	desire := iface.NewInterfaces()
	desire.Push(iface.NewEthernet("eth0"))

	current := iface.NewInterfaces()
	current.Push(iface.NewEthernet("eth0"))

	if err := Interfaces(desire, current); err != nil {
		t.Errorf("expected verification to pass: %v", err)
	}
}

func TestInterfaces_DesiredNotFoundFails(t *testing.T) {
	desire := iface.NewInterfaces()
	desire.Push(iface.NewEthernet("eth0"))

	current := iface.NewInterfaces()

	err := Interfaces(desire, current)
	if !nmerror.IsVerificationError(err) {
		t.Fatalf("expected VerificationError, got %v", err)
	}
}

func TestInterfaces_AbsentVirtualStillPresentFails(t *testing.T) {
	desire := iface.NewInterfaces()
	absent := iface.NewBond("bond0", nil)
	absent.Base().State = iface.StateAbsent
	desire.Push(absent)

	current := iface.NewInterfaces()
	current.Push(iface.NewBond("bond0", nil))

	err := Interfaces(desire, current)
	if !nmerror.IsVerificationError(err) {
		t.Fatalf("expected VerificationError for a virtual interface still present, got %v", err)
	}
}

func TestInterfaces_AbsentPhysicalMustBeDown(t *testing.T) {
	desire := iface.NewInterfaces()
	absent := iface.NewEthernet("eth0")
	absent.Base().State = iface.StateAbsent
	desire.Push(absent)

	stillUp := iface.NewEthernet("eth0")
	current := iface.NewInterfaces()
	current.Push(stillUp)

	if err := Interfaces(desire, current); err == nil {
		t.Error("expected verification error when absent physical interface is still up")
	}

	downNow := iface.NewEthernet("eth0")
	downNow.Base().State = iface.StateDown
	current2 := iface.NewInterfaces()
	current2.Push(downNow)

	if err := Interfaces(desire, current2); err != nil {
		t.Errorf("expected verification to pass when absent physical interface is down: %v", err)
	}
}

type fakeRetriever struct {
	states []*state.NetworkState
	errs   []error
	calls  int
}

func (f *fakeRetriever) Retrieve(ctx context.Context) (*state.NetworkState, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.states) {
		return f.states[i], nil
	}
	return f.states[len(f.states)-1], nil
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	desire := state.New()
	desire.MarkPresent(state.PropInterfaces)
	desire.Interfaces.Push(iface.NewEthernet("eth0"))

	converged := state.New()
	converged.MarkPresent(state.PropInterfaces)
	converged.Interfaces.Push(iface.NewEthernet("eth0"))

	retriever := &fakeRetriever{states: []*state.NetworkState{converged}}

	if err := Retry(context.Background(), testLogger(t), retriever, desire, 3); err != nil {
		t.Errorf("expected Retry to succeed: %v", err)
	}
	if retriever.calls != 1 {
		t.Errorf("expected exactly one attempt, got %d", retriever.calls)
	}
}

func TestRetry_EventuallyConverges(t *testing.T) {
	desire := state.New()
	desire.MarkPresent(state.PropInterfaces)
	desire.Interfaces.Push(iface.NewEthernet("eth0"))

	notYet := state.New()
	notYet.MarkPresent(state.PropInterfaces)

	converged := state.New()
	converged.MarkPresent(state.PropInterfaces)
	converged.Interfaces.Push(iface.NewEthernet("eth0"))

	retriever := &fakeRetriever{states: []*state.NetworkState{notYet, notYet, converged}}

	if err := Retry(context.Background(), testLogger(t), retriever, desire, 5); err != nil {
		t.Errorf("expected Retry to eventually converge: %v", err)
	}
}

func TestRetry_ExhaustsAndReturnsLastFailure(t *testing.T) {
	desire := state.New()
	desire.MarkPresent(state.PropInterfaces)
	desire.Interfaces.Push(iface.NewEthernet("eth0"))

	notYet := state.New()
	notYet.MarkPresent(state.PropInterfaces)

	retriever := &fakeRetriever{states: []*state.NetworkState{notYet}}

	err := Retry(context.Background(), testLogger(t), retriever, desire, 2)
	if !nmerror.IsVerificationError(err) {
		t.Fatalf("expected the last VerificationError to be returned, got %v", err)
	}
	if retriever.calls != 2 {
		t.Errorf("expected exactly %d attempts, got %d", 2, retriever.calls)
	}
}

func TestRetry_RetrieveErrorIsWrappedAsPluginFailure(t *testing.T) {
	desire := state.New()
	desire.MarkPresent(state.PropInterfaces)

	retriever := &fakeRetriever{errs: []error{errors.New("kernel unreachable")}}

	err := Retry(context.Background(), testLogger(t), retriever, desire, 1)
	if err == nil {
		t.Fatal("expected an error")
	}
	var pf *nmerror.PluginFailureError
	if !errors.As(err, &pf) {
		t.Errorf("expected a PluginFailureError, got %T: %v", err, err)
	}
}
