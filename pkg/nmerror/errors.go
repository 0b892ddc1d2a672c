// Package nmerror defines the error taxonomy used across the netstate engine.
//
// Each kind is a distinct type so callers can discriminate with errors.As
// instead of string matching. Wrapping always goes through %w so the causal
// chain survives across package boundaries.
package nmerror

import (
	"errors"
	"fmt"
)

// InvalidArgumentError reports input that is self-inconsistent: a missing
// reference, an ambiguous Unknown-type interface, excessive controller
// nesting, a reserved OVSDB key, or a bad copy-mac-from source.
type InvalidArgumentError struct {
	Reason string
	Cause  error
}

func (e *InvalidArgumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid argument: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error { return e.Cause }

// NewInvalidArgument builds an InvalidArgumentError from a formatted reason.
func NewInvalidArgument(format string, args ...interface{}) *InvalidArgumentError {
	return &InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}

// VerificationError reports that the post-apply live state disagrees with
// the desired state.
type VerificationError struct {
	Interface string
	Reason    string
}

func (e *VerificationError) Error() string {
	if e.Interface != "" {
		return fmt.Sprintf("verification failed for %q: %s", e.Interface, e.Reason)
	}
	return fmt.Sprintf("verification failed: %s", e.Reason)
}

// NewVerificationError builds a VerificationError for a named interface.
func NewVerificationError(iface, format string, args ...interface{}) *VerificationError {
	return &VerificationError{Interface: iface, Reason: fmt.Sprintf(format, args...)}
}

// PluginFailureError reports a backend RPC or OVSDB transport failure.
type PluginFailureError struct {
	Backend string
	Cause   error
}

func (e *PluginFailureError) Error() string {
	return fmt.Sprintf("%s backend failure: %v", e.Backend, e.Cause)
}

func (e *PluginFailureError) Unwrap() error { return e.Cause }

// NewPluginFailure wraps cause as a PluginFailureError attributed to backend.
func NewPluginFailure(backend string, cause error) *PluginFailureError {
	return &PluginFailureError{Backend: backend, Cause: cause}
}

// NotFoundError reports a named profile or row not found by UUID.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// NewNotFound builds a NotFoundError.
func NewNotFound(kind, name string) *NotFoundError {
	return &NotFoundError{Kind: kind, Name: name}
}

// CheckpointConflictError reports that another checkpoint already exists.
type CheckpointConflictError struct {
	Existing string
}

func (e *CheckpointConflictError) Error() string {
	return fmt.Sprintf("checkpoint conflict: %s is already active", e.Existing)
}

// IncompatibleReapplyError reports that the backend rejected a live
// reconfiguration of an already-applied profile.
type IncompatibleReapplyError struct {
	Interface string
	Reason    string
}

func (e *IncompatibleReapplyError) Error() string {
	return fmt.Sprintf("cannot reapply %q live: %s", e.Interface, e.Reason)
}

// BugError reports an internal invariant breach — a condition the code
// believed could not happen.
type BugError struct {
	Detail string
}

func (e *BugError) Error() string {
	return fmt.Sprintf("internal invariant violated: %s", e.Detail)
}

// NewBug builds a BugError.
func NewBug(format string, args ...interface{}) *BugError {
	return &BugError{Detail: fmt.Sprintf(format, args...)}
}

// IsInvalidArgument reports whether err (or something it wraps) is an
// InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var target *InvalidArgumentError
	return errors.As(err, &target)
}

// IsVerificationError reports whether err is a VerificationError.
func IsVerificationError(err error) bool {
	_, ok := err.(*VerificationError)
	return ok
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}
