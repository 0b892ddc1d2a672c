// Package verify compares post-apply current state to the desired state
// with a bounded retry, and verifies individual interfaces against their
// variant-specific value-equality rules (spec §4.7).
//
// The retry harness is grounded on pkg/ovndb/transact.go's
// TransactWithRetry, which polls via k8s.io/apimachinery/pkg/util/wait
// instead of a hand-rolled sleep loop.
package verify

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/corenetic/netstate/pkg/logging"
	"github.com/corenetic/netstate/pkg/nmerror"
	"github.com/corenetic/netstate/pkg/state"
	"github.com/corenetic/netstate/pkg/state/iface"
)

// Retry interval and counts (spec §4.6): fixed 1000ms interval; 5 normal
// attempts, 5 kernel-only attempts, 60 SR-IOV attempts (VFs need udev
// settle time).
const (
	Interval     = time.Second
	RetryNormal  = 5
	RetryKernel  = 5
	RetrySRIOV   = 60
)

// Retriever re-fetches current state for each verification attempt.
type Retriever interface {
	Retrieve(ctx context.Context) (*state.NetworkState, error)
}

// Retry re-retrieves current state and verifies it against desire, up to
// count times at a fixed Interval. Each attempt's failure is logged at
// info; the last failure is returned unchanged (spec §4.6, §7).
func Retry(ctx context.Context, log *logging.Logger, retriever Retriever, desire *state.NetworkState, count int) error {
	attempt := 0
	var lastErr error

	err := wait.PollUntilContextCancel(ctx, Interval, true, func(ctx context.Context) (bool, error) {
		attempt++
		current, err := retriever.Retrieve(ctx)
		if err != nil {
			lastErr = nmerror.NewPluginFailure("kernel-query", err)
			if attempt >= count {
				return false, lastErr
			}
			log.Info("verification retrieve failed, retrying", "attempt", attempt, "of", count, "error", err)
			return false, nil
		}

		verifyErr := NetworkState(desire, current)
		if verifyErr == nil {
			return true, nil
		}
		lastErr = verifyErr
		if attempt >= count {
			return false, verifyErr
		}
		log.Info("verification did not converge, retrying", "attempt", attempt, "of", count, "error", verifyErr)
		return false, nil
	})
	if err != nil {
		return err
	}
	return nil
}

// NetworkState composes the per-section verifiers described in spec §4.7.
func NetworkState(desire, current *state.NetworkState) error {
	state.NormalizeCurrent(current)
	return Interfaces(desire.Interfaces, current.Interfaces)
}

// Interfaces verifies every desired interface against current, dropping
// unresolved ports from a clone of current first (spec §4.7 "Normalize a
// clone of current by dropping unknown-type ports").
func Interfaces(desire, current *iface.Interfaces) error {
	normalized := iface.NewInterfaces()
	for _, ifc := range current.ToVec() {
		normalized.Push(ifc.Clone())
	}
	normalized.PruneDanglingChildren(normalized.RemoveUnknownTypePort(current))

	for _, d := range desire.ToVec() {
		cur, found := normalized.Get(d.Name(), d.IfaceType())

		switch {
		case d.IsAbsent(), (d.IsVirtual() && d.IsDown()):
			if !found {
				continue
			}
			if err := verifyDesireAbsentButFoundInCurrent(d, cur); err != nil {
				return err
			}

		case found:
			if err := d.Verify(cur); err != nil {
				return err
			}
			if eth, ok := d.(*iface.Ethernet); ok && eth.SRIOVEnabled() {
				if err := verifySRIOV(eth, cur); err != nil {
					return err
				}
			}

		default:
			return nmerror.NewVerificationError(d.Name(), "desired not found in current state")
		}
	}
	return nil
}

// verifyDesireAbsentButFoundInCurrent enforces spec §4.7: a virtual
// interface marked absent must be entirely gone; a physical one must at
// least be observed Down.
func verifyDesireAbsentButFoundInCurrent(desire, current iface.Interface) error {
	if desire.IsVirtual() {
		return nmerror.NewVerificationError(desire.Name(), "absent virtual interface is still present")
	}
	if !current.IsDown() {
		return nmerror.NewVerificationError(desire.Name(), "absent physical interface is not down")
	}
	return nil
}

// verifySRIOV checks that every requested VF resolved to a kernel device
// name that exists in current's VF bookkeeping (spec §4.7).
func verifySRIOV(desire *iface.Ethernet, current iface.Interface) error {
	curEth, ok := current.(*iface.Ethernet)
	if !ok || curEth.SRIOV == nil {
		return nmerror.NewVerificationError(desire.Name(), "sr-iov requested but current has no vf bookkeeping")
	}
	resolved := make(map[int]string, len(curEth.SRIOV.VFs))
	for _, vf := range curEth.SRIOV.VFs {
		resolved[vf.ID] = vf.IfaceName
	}
	return desire.VerifySRIOV(resolved)
}
