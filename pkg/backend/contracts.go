// Package backend declares the narrow contracts the core depends on for
// kernel queries and network-manager operations (spec §6 "Backend
// interfaces"). The concrete implementation in this repository is
// pkg/backend/kernel; no NetworkManager implementation is included. The
// core never imports backend implementations directly, only these
// interfaces.
package backend

import (
	"context"

	"github.com/corenetic/netstate/pkg/state"
)

// KernelQuery retrieves current state directly from the kernel and applies
// kernel-only changes (no network-manager daemon involved).
type KernelQuery interface {
	Retrieve(ctx context.Context, runningConfigOnly, kernelOnly bool) (*state.NetworkState, error)
	Apply(ctx context.Context, add, change, del, current *state.NetworkState) error
}

// CheckpointToken is the opaque rollback handle a NetworkManager backend
// hands back from CheckpointCreate.
type CheckpointToken string

// NetworkManager is the contract for a backend daemon capable of
// checkpoint-guarded profile apply (spec §6).
type NetworkManager interface {
	Retrieve(ctx context.Context) (*state.NetworkState, error)
	Apply(ctx context.Context, add, change, del, current, desire *state.NetworkState, cp CheckpointToken) error

	CheckpointCreate(ctx context.Context) (CheckpointToken, error)
	CheckpointDestroy(ctx context.Context, cp CheckpointToken) error
	CheckpointRollback(ctx context.Context, cp CheckpointToken) error
	CheckpointTimeoutExtend(ctx context.Context, cp CheckpointToken, seconds int) error

	// GenConf renders add's interfaces into backend-specific config-file
	// payloads, keyed by backend name (spec §6 "Output of gen-conf").
	GenConf(ctx context.Context, add *state.NetworkState) (map[string][]string, error)
}
