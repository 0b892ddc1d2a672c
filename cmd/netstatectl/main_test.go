package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/corenetic/netstate/pkg/nmerror"
)

func TestExitCode_MapsErrorTaxonomy(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nmerror.NewInvalidArgument("bad input"), 2},
		{nmerror.NewVerificationError("eth0", "still up"), 3},
		{nmerror.NewNotFound("interface", "eth0"), 4},
		{errors.New("something else"), 1},
	}
	for _, c := range cases {
		if got := exitCode(c.err); got != c.want {
			t.Errorf("exitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestCmdGenConf_RequiresNetworkManagerBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	if err := os.WriteFile(path, []byte("interfaces: []\n"), 0o644); err != nil {
		t.Fatalf("write temp doc: %v", err)
	}

	err := cmdGenConf([]string{path})
	if !nmerror.IsInvalidArgument(err) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestCmdGenConf_RequiresExactlyOneArg(t *testing.T) {
	if err := cmdGenConf(nil); !nmerror.IsInvalidArgument(err) {
		t.Fatalf("expected InvalidArgument for missing argument, got %v", err)
	}
	if err := cmdGenConf([]string{"a", "b"}); !nmerror.IsInvalidArgument(err) {
		t.Fatalf("expected InvalidArgument for too many arguments, got %v", err)
	}
}

func TestCmdCommitAndRollback_RequireNetworkManagerBackend(t *testing.T) {
	if err := cmdCommit(); !nmerror.IsInvalidArgument(err) {
		t.Errorf("expected InvalidArgument from commit, got %v", err)
	}
	if err := cmdRollback(); !nmerror.IsInvalidArgument(err) {
		t.Errorf("expected InvalidArgument from rollback, got %v", err)
	}
}

func TestReadDocument_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	want := []byte("interfaces: []\n")
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("write temp doc: %v", err)
	}

	got, err := readDocument(path)
	if err != nil {
		t.Fatalf("readDocument failed: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}
