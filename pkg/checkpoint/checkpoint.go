// Package checkpoint implements the acquisition-with-release pattern
// around a backend apply (spec §4.6, §9 design note "Checkpoint
// pattern"): create before apply, extend its timeout proportional to the
// verification retry budget, then destroy on success or roll back on
// failure — with the release path chosen by the result, and guaranteed on
// every exit.
package checkpoint

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/corenetic/netstate/pkg/backend"
	"github.com/corenetic/netstate/pkg/logging"
)

// ExtendSeconds computes the checkpoint timeout extension for retryInterval
// * retryCount of verification time (spec §4.6/§5: "extended by
// retry_interval * retry_count milliseconds before verification begins").
func ExtendSeconds(retryInterval time.Duration, retryCount int) int {
	total := retryInterval * time.Duration(retryCount)
	seconds := int(total / time.Second)
	if total%time.Second != 0 {
		seconds++
	}
	return seconds
}

// Guarded runs fn with a checkpoint created beforehand and released
// afterward: destroyed if fn and the verification it performs succeed,
// rolled back otherwise. If the release call itself fails, that failure is
// logged and the original result (success or error) is what the caller
// sees — a release failure must never mask or replace the apply result.
func Guarded(ctx context.Context, log *logging.Logger, nm backend.NetworkManager, fn func(ctx context.Context, cp backend.CheckpointToken) error) (err error) {
	cp, err := nm.CheckpointCreate(ctx)
	if err != nil {
		return err
	}
	token := uuid.New().String()
	log.V(1).Info("checkpoint created", "checkpoint", cp, "request-id", token)

	defer func() {
		if err != nil {
			if rbErr := nm.CheckpointRollback(ctx, cp); rbErr != nil {
				log.Error(rbErr, "checkpoint rollback failed", "checkpoint", cp, "original-error", err)
			}
			return
		}
		if destroyErr := nm.CheckpointDestroy(ctx, cp); destroyErr != nil {
			log.Error(destroyErr, "checkpoint destroy failed", "checkpoint", cp)
		}
	}()

	err = fn(ctx, cp)
	return err
}
