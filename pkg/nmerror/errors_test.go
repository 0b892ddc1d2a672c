package nmerror

import (
	"errors"
	"fmt"
	"testing"
)

func TestInvalidArgumentError(t *testing.T) {
	err := NewInvalidArgument("bad value %d", 42)
	if !IsInvalidArgument(err) {
		t.Error("expected IsInvalidArgument to be true")
	}
	if IsVerificationError(err) {
		t.Error("expected IsVerificationError to be false")
	}
	if err.Error() == "" {
		t.Error("expected non-empty error string")
	}
}

func TestVerificationError(t *testing.T) {
	err := NewVerificationError("eth0", "mtu mismatch: want %d got %d", 1500, 1400)
	if !IsVerificationError(err) {
		t.Error("expected IsVerificationError to be true")
	}
	if IsInvalidArgument(err) {
		t.Error("expected IsInvalidArgument to be false")
	}
}

func TestPluginFailureUnwraps(t *testing.T) {
	cause := errors.New("socket closed")
	err := NewPluginFailure("ovsdb", cause)
	if !errors.Is(err, cause) {
		t.Error("expected PluginFailureError to unwrap to its cause")
	}
}

func TestInvalidArgumentUnwraps(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := &InvalidArgumentError{Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("expected InvalidArgumentError to unwrap to its cause")
	}
}

func TestNotFound(t *testing.T) {
	err := NewNotFound("checkpoint", "abc-123")
	if !IsNotFound(err) {
		t.Error("expected IsNotFound to be true")
	}
}

func TestBug(t *testing.T) {
	err := NewBug("invariant %s broken", "priority-order")
	if err.Error() == "" {
		t.Error("expected non-empty error string")
	}
}
