// Package apply orchestrates a single desired-state application (spec
// §4.6): retrieve current state, resolve unknown-typed interfaces and
// copy-mac-from, assign up-priority, diff into (add, change, delete),
// dispatch to either the kernel-only backend or a checkpoint-guarded
// network-manager backend, and optionally verify convergence with a
// bounded retry.
//
// Grounded on pkg/ovn/*.go's orchestration style (a thin coordinating
// function delegating to narrow collaborators) and pkg/checkpoint's
// guarded-release pattern.
package apply

import (
	"context"

	"github.com/corenetic/netstate/pkg/backend"
	"github.com/corenetic/netstate/pkg/checkpoint"
	"github.com/corenetic/netstate/pkg/config"
	"github.com/corenetic/netstate/pkg/logging"
	"github.com/corenetic/netstate/pkg/priority"
	"github.com/corenetic/netstate/pkg/reconcile"
	"github.com/corenetic/netstate/pkg/resolve"
	"github.com/corenetic/netstate/pkg/state"
	"github.com/corenetic/netstate/pkg/verify"
)

// Options controls one Apply invocation.
type Options struct {
	// KernelOnly routes the apply through backend.KernelQuery instead of
	// the checkpoint-guarded NetworkManager path (spec §4.6, §6).
	KernelOnly bool

	// NoVerify disables the post-apply verification retry loop, mirroring
	// the CLI's --no-verify flag (spec §6).
	NoVerify bool
}

// Engine ties the core packages to a pair of backends and a Config.
type Engine struct {
	Kernel backend.KernelQuery
	NM     backend.NetworkManager
	Config *config.Config
	Log    *logging.Logger
}

// New returns an Engine. nm may be nil when the caller only ever runs
// kernel-only applies.
func New(kernel backend.KernelQuery, nm backend.NetworkManager, cfg *config.Config, log *logging.Logger) *Engine {
	return &Engine{Kernel: kernel, NM: nm, Config: cfg, Log: log}
}

// Apply runs the full pipeline against desire, per spec §4.6's pseudocode.
func (e *Engine) Apply(ctx context.Context, desire *state.NetworkState, opts Options) error {
	current, err := e.retrieveCurrent(ctx, opts)
	if err != nil {
		return err
	}

	if err := resolve.Unknown(desire.Interfaces, current.Interfaces); err != nil {
		return err
	}
	if err := resolve.CopyMAC(e.Log, desire.Interfaces, current.Interfaces); err != nil {
		return err
	}
	if err := priority.Resolve(desire.Interfaces); err != nil {
		return err
	}

	cs, err := reconcile.Diff(e.Log, desire, current)
	if err != nil {
		return err
	}

	if opts.KernelOnly || e.NM == nil {
		return e.applyKernelOnly(ctx, cs, current, desire, opts)
	}
	return e.applyViaNetworkManager(ctx, cs, current, desire, opts)
}

func (e *Engine) retrieveCurrent(ctx context.Context, opts Options) (*state.NetworkState, error) {
	if opts.KernelOnly || e.NM == nil {
		return e.Kernel.Retrieve(ctx, false, opts.KernelOnly)
	}
	return e.NM.Retrieve(ctx)
}

func (e *Engine) applyKernelOnly(ctx context.Context, cs *reconcile.ChangeSet, current, desire *state.NetworkState, opts Options) error {
	if err := e.Kernel.Apply(ctx, cs.Add, cs.Change, cs.Delete, current); err != nil {
		return err
	}
	if opts.NoVerify {
		return nil
	}
	return verify.Retry(ctx, e.Log, kernelRetriever{e.Kernel}, desire, verify.RetryKernel)
}

// kernelRetriever adapts backend.KernelQuery's three-argument Retrieve to
// verify.Retriever's single-argument signature, fixing running_config_only
// and kernel_only to the values appropriate for a post-apply re-check.
type kernelRetriever struct {
	kernel backend.KernelQuery
}

func (k kernelRetriever) Retrieve(ctx context.Context) (*state.NetworkState, error) {
	return k.kernel.Retrieve(ctx, false, true)
}

func (e *Engine) applyViaNetworkManager(ctx context.Context, cs *reconcile.ChangeSet, current, desire *state.NetworkState, opts Options) error {
	return checkpoint.Guarded(ctx, e.Log, e.NM, func(ctx context.Context, cp backend.CheckpointToken) error {
		if err := e.NM.Apply(ctx, cs.Add, cs.Change, cs.Delete, current, desire, cp); err != nil {
			return err
		}

		extendSeconds := checkpoint.ExtendSeconds(e.Config.RetryInterval(), e.retryCount(desire, opts))
		if err := e.NM.CheckpointTimeoutExtend(ctx, cp, extendSeconds); err != nil {
			return err
		}

		if opts.NoVerify {
			return nil
		}
		return verify.Retry(ctx, e.Log, e.NM, desire, e.retryCount(desire, opts))
	})
}

// retryCount picks RETRY_SRIOV when any interface in desire requests
// SR-IOV, else RETRY_NORMAL (spec §4.6).
func (e *Engine) retryCount(desire *state.NetworkState, opts Options) int {
	if desire.Interfaces.HasSRIOVEnabled() {
		return verify.RetrySRIOV
	}
	return verify.RetryNormal
}
