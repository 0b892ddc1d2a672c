// Package resolve turns a desired NetworkState's Unknown-typed interfaces
// into concrete variants by matching them against current state (spec
// §4.3), and resolves copy-mac-from directives against current kernel
// interfaces (spec §4.4).
//
// Grounded on rust/src/lib/ifaces/inter_ifaces.rs's unknown-interface
// handling and on SPEC_FULL.md §4's identifier-kind-matching supplement.
package resolve

import (
	"github.com/corenetic/netstate/pkg/logging"
	"github.com/corenetic/netstate/pkg/nmerror"
	"github.com/corenetic/netstate/pkg/state/iface"
)

// Unknown replaces every Unknown-typed interface in desire with its
// resolved typed counterpart, matched against current by name (spec §4.3).
// Absent Unknown interfaces resolve to one Absent stub per name match in
// current, carrying that match's real type; present Unknown interfaces
// require exactly one name match.
func Unknown(desire, current *iface.Interfaces) error {
	pending := []iface.Interface{}
	for _, ifc := range desire.ToVec() {
		if ifc.IfaceType() != iface.TypeUnknown {
			continue
		}
		pending = append(pending, ifc)
	}

	for _, unresolved := range pending {
		matches := currentMatchesByName(current, unresolved.Name())

		if unresolved.IsAbsent() {
			if len(matches) == 0 {
				continue
			}
			for _, m := range matches {
				stub := m.CloneNameTypeOnly()
				stub.Base().State = iface.StateAbsent
				desire.Push(stub)
			}
			continue
		}

		switch len(matches) {
		case 0:
			return nmerror.NewInvalidArgument(
				"interface %q has no type and no match in current state", unresolved.Name())
		case 1:
			resolved := matches[0].Clone()
			resolved.Base().Update(*unresolved.Base())
			desire.Push(resolved)
		default:
			return nmerror.NewInvalidArgument(
				"interface %q has no type and matches %d interfaces in current state (ambiguous)",
				unresolved.Name(), len(matches))
		}
	}
	return nil
}

func currentMatchesByName(current *iface.Interfaces, name string) []iface.Interface {
	var out []iface.Interface
	for _, ifc := range current.ToVec() {
		if ifc.Name() == name {
			out = append(out, ifc)
		}
	}
	return out
}

// CopyMAC resolves every copy-mac-from directive in desire against current
// kernel interfaces, preferring the source's permanent MAC over its
// runtime MAC (spec §4.4). Resolution is logged at debug level rather than
// printed, per the source's leftover diagnostic output.
func CopyMAC(log *logging.Logger, desire, current *iface.Interfaces) error {
	for _, ifc := range desire.ToVec() {
		base := ifc.Base()
		if base.CopyMACFrom == "" {
			continue
		}
		if !iface.CopyMacAllowed(ifc.IfaceType()) {
			return nmerror.NewInvalidArgument(
				"interface %q of type %s does not support copy-mac-from", ifc.Name(), ifc.IfaceType())
		}
		src, ok := current.Get(base.CopyMACFrom, iface.TypeUnknown)
		if !ok {
			return nmerror.NewInvalidArgument(
				"copy-mac-from source %q for interface %q not found in current state",
				base.CopyMACFrom, ifc.Name())
		}
		srcBase := src.Base()
		mac := srcBase.PermanentMACAddress
		if mac == "" {
			mac = srcBase.MACAddress
		}
		if mac == "" {
			return nmerror.NewInvalidArgument(
				"copy-mac-from source %q for interface %q has no mac address", base.CopyMACFrom, ifc.Name())
		}
		log.V(1).Info("resolved copy-mac-from", "interface", ifc.Name(), "source", base.CopyMACFrom, "mac", mac)
		base.MACAddress = mac
	}
	return nil
}
