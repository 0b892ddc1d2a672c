package apply

import (
	"context"
	"errors"
	"testing"

	"github.com/corenetic/netstate/pkg/backend"
	"github.com/corenetic/netstate/pkg/config"
	"github.com/corenetic/netstate/pkg/logging"
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

func desireWithEth0() *state.NetworkState {
	s := state.New()
	s.MarkPresent(state.PropInterfaces)
	s.Interfaces.Push(iface.NewEthernet("eth0"))
	return s
}

type fakeKernel struct {
	retrieveCalls int
	retrieved     *state.NetworkState
	applyErr      error
	applyCalls    int
}

func (f *fakeKernel) Retrieve(ctx context.Context, runningConfigOnly, kernelOnly bool) (*state.NetworkState, error) {
	f.retrieveCalls++
	return f.retrieved, nil
}

func (f *fakeKernel) Apply(ctx context.Context, add, change, del, current *state.NetworkState) error {
	f.applyCalls++
	return f.applyErr
}

type fakeNM struct {
	retrieved *state.NetworkState

	applyErr error

	created         int
	destroyed       int
	rolledBack      int
	extendedSeconds int
}

func (f *fakeNM) Retrieve(ctx context.Context) (*state.NetworkState, error) { return f.retrieved, nil }
func (f *fakeNM) Apply(ctx context.Context, add, change, del, current, desire *state.NetworkState, cp backend.CheckpointToken) error {
	return f.applyErr
}
func (f *fakeNM) CheckpointCreate(ctx context.Context) (backend.CheckpointToken, error) {
	f.created++
	return backend.CheckpointToken("cp-1"), nil
}
func (f *fakeNM) CheckpointDestroy(ctx context.Context, cp backend.CheckpointToken) error {
	f.destroyed++
	return nil
}
func (f *fakeNM) CheckpointRollback(ctx context.Context, cp backend.CheckpointToken) error {
	f.rolledBack++
	return nil
}
func (f *fakeNM) CheckpointTimeoutExtend(ctx context.Context, cp backend.CheckpointToken, seconds int) error {
	f.extendedSeconds = seconds
	return nil
}
func (f *fakeNM) GenConf(ctx context.Context, add *state.NetworkState) (map[string][]string, error) {
	return nil, nil
}

func TestApply_KernelOnlyConvergesAndVerifies(t *testing.T) {
	kernel := &fakeKernel{retrieved: desireWithEth0()}
	engine := New(kernel, nil, config.DefaultConfig(), testLogger(t))

	err := engine.Apply(context.Background(), desireWithEth0(), Options{KernelOnly: true})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if kernel.applyCalls != 1 {
		t.Errorf("expected kernel Apply called once, got %d", kernel.applyCalls)
	}
	if kernel.retrieveCalls != 2 {
		t.Errorf("expected two retrieves (current + post-apply verify), got %d", kernel.retrieveCalls)
	}
}

func TestApply_KernelOnlyNoVerifySkipsRetrieveAfterApply(t *testing.T) {
	kernel := &fakeKernel{retrieved: desireWithEth0()}
	engine := New(kernel, nil, config.DefaultConfig(), testLogger(t))

	err := engine.Apply(context.Background(), desireWithEth0(), Options{KernelOnly: true, NoVerify: true})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if kernel.retrieveCalls != 1 {
		t.Errorf("expected exactly one retrieve with verify disabled, got %d", kernel.retrieveCalls)
	}
}

func TestApply_NetworkManagerPathDestroysCheckpointOnSuccess(t *testing.T) {
	nm := &fakeNM{retrieved: desireWithEth0()}
	engine := New(nil, nm, config.DefaultConfig(), testLogger(t))

	err := engine.Apply(context.Background(), desireWithEth0(), Options{})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if nm.created != 1 || nm.destroyed != 1 {
		t.Errorf("expected one checkpoint created and destroyed, got created=%d destroyed=%d", nm.created, nm.destroyed)
	}
	if nm.rolledBack != 0 {
		t.Errorf("expected no rollback on success, got %d", nm.rolledBack)
	}
	if nm.extendedSeconds != config.DefaultConfig().Retry.Normal {
		t.Errorf("expected extend seconds to use RETRY_NORMAL count %d, got %d", config.DefaultConfig().Retry.Normal, nm.extendedSeconds)
	}
}

func TestApply_NetworkManagerFailureRollsBackAndPropagatesError(t *testing.T) {
	applyErr := errors.New("nm apply failed")
	nm := &fakeNM{retrieved: desireWithEth0(), applyErr: applyErr}
	engine := New(nil, nm, config.DefaultConfig(), testLogger(t))

	err := engine.Apply(context.Background(), desireWithEth0(), Options{})
	if !errors.Is(err, applyErr) {
		t.Fatalf("expected the original apply error to surface, got %v", err)
	}
	if nm.rolledBack != 1 {
		t.Errorf("expected checkpoint rolled back once, got %d", nm.rolledBack)
	}
	if nm.destroyed != 0 {
		t.Errorf("expected no destroy after a failed apply, got %d", nm.destroyed)
	}
}

func TestApply_SRIOVDesireSelectsExtendedRetryCount(t *testing.T) {
	desire := state.New()
	desire.MarkPresent(state.PropInterfaces)
	eth := iface.NewEthernet("eth0")
	eth.SRIOV = &iface.SRIOVConfig{TotalVFs: 2}
	desire.Interfaces.Push(eth)

	nm := &fakeNM{retrieved: desire}
	engine := New(nil, nm, config.DefaultConfig(), testLogger(t))

	if err := engine.Apply(context.Background(), desire, Options{}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if nm.extendedSeconds != config.DefaultConfig().Retry.SRIOV {
		t.Errorf("expected extend seconds to use RETRY_SRIOV count %d, got %d", config.DefaultConfig().Retry.SRIOV, nm.extendedSeconds)
	}
}

func TestApply_RetrieveCurrentUsesKernelWhenNMNil(t *testing.T) {
	kernel := &fakeKernel{retrieved: desireWithEth0()}
	engine := New(kernel, nil, config.DefaultConfig(), testLogger(t))

	if err := engine.Apply(context.Background(), desireWithEth0(), Options{}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if kernel.retrieveCalls == 0 {
		t.Error("expected the kernel backend to be used for retrieval when no NetworkManager is configured")
	}
}
