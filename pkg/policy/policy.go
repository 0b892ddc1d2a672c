// Package policy implements the narrow NetworkPolicy→NetworkState
// compilation step named in SPEC_FULL.md open question 2: unwrap a
// NetworkPolicy wrapper document and decode its inner desiredState as a
// NetworkState. Full NetworkPolicy selector/match semantics belong to an
// external system and are out of scope here.
package policy

import (
	"gopkg.in/yaml.v3"

	"github.com/corenetic/netstate/pkg/nmerror"
	"github.com/corenetic/netstate/pkg/state"
)

// wrapper mirrors the NetworkPolicy document's relevant shape: the spec's
// source tolerates either key naming its embedded state.
type wrapper struct {
	DesiredState *state.NetworkState `yaml:"desiredState"`
	Desired      *state.NetworkState `yaml:"desired"`
}

// Compile accepts a document that is either a bare NetworkState or a
// NetworkPolicy wrapper carrying one under desiredState/desired, and
// returns the compiled NetworkState. A document matching neither shape
// fails InvalidArgument.
func Compile(doc []byte) (*state.NetworkState, error) {
	ns := state.New()
	if err := yaml.Unmarshal(doc, ns); err == nil && ns.HasAnyPresent() {
		return ns, nil
	}

	var w wrapper
	if err := yaml.Unmarshal(doc, &w); err != nil {
		return nil, nmerror.NewInvalidArgument("document is neither a NetworkState nor a NetworkPolicy: %v", err)
	}
	if w.DesiredState != nil {
		return w.DesiredState, nil
	}
	if w.Desired != nil {
		return w.Desired, nil
	}
	return nil, nmerror.NewInvalidArgument("NetworkPolicy document carries neither desiredState nor desired")
}
