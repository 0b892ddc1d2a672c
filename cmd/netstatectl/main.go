// Package main provides the entry point for netstatectl.
//
// netstatectl is a thin CLI collaborator (spec §6) over the netstate
// engine: it reads a NetworkState (or NetworkPolicy-wrapped) document,
// runs it through pkg/apply, and reports any error; `show` prints the
// kernel's current state as YAML. It owns no business
// logic of its own beyond flag parsing, document I/O, and exit-code
// mapping from the engine's error taxonomy.
//
// Usage:
//
//	netstatectl show
//	netstatectl apply <file|->
//	netstatectl gen-conf <file>
//	netstatectl commit
//	netstatectl rollback
//
// Flags:
//
//	--no-verify   Disable the post-apply verification retry loop
//	--log-level   Log level: debug, info, warn, error (default: info)
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/corenetic/netstate/pkg/apply"
	"github.com/corenetic/netstate/pkg/backend/kernel"
	"github.com/corenetic/netstate/pkg/config"
	"github.com/corenetic/netstate/pkg/logging"
	"github.com/corenetic/netstate/pkg/nmerror"
	"github.com/corenetic/netstate/pkg/policy"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("netstatectl", flag.ContinueOnError)
	noVerify := fs.Bool("no-verify", false, "disable the post-apply verification retry loop")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error (overrides configured level)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "usage: netstatectl [--no-verify] [--log-level L] <show|apply|gen-conf|commit|rollback> [args]")
		return 2
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	log, err := logging.NewLogger(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, OutputPath: cfg.Logging.File})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logging: %v\n", err)
		return 1
	}
	defer log.Sync()

	kernelBackend := kernel.New(log)
	engine := apply.New(kernelBackend, nil, cfg, log)

	ctx := context.Background()
	cmd, cmdArgs := rest[0], rest[1:]

	var cmdErr error
	switch cmd {
	case "show":
		cmdErr = cmdShow(ctx, kernelBackend)
	case "apply":
		cmdErr = cmdApply(ctx, engine, cmdArgs, *noVerify)
	case "gen-conf":
		cmdErr = cmdGenConf(cmdArgs)
	case "commit":
		cmdErr = cmdCommit()
	case "rollback":
		cmdErr = cmdRollback()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		return 2
	}

	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "netstatectl: %v\n", cmdErr)
		return exitCode(cmdErr)
	}
	return 0
}

// exitCode maps the error taxonomy (spec §7) onto process exit codes, so
// scripted callers can distinguish input errors from verification failures
// from plugin/transport failures.
func exitCode(err error) int {
	switch {
	case nmerror.IsInvalidArgument(err):
		return 2
	case nmerror.IsVerificationError(err):
		return 3
	case nmerror.IsNotFound(err):
		return 4
	default:
		return 1
	}
}

func cmdShow(ctx context.Context, kernelBackend *kernel.Provider) error {
	current, err := kernelBackend.Retrieve(ctx, false, false)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(current)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func cmdApply(ctx context.Context, engine *apply.Engine, args []string, noVerify bool) error {
	if len(args) != 1 {
		return nmerror.NewInvalidArgument("apply requires exactly one argument: a file path or \"-\" for stdin")
	}
	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}
	desire, err := policy.Compile(doc)
	if err != nil {
		return err
	}
	return engine.Apply(ctx, desire, apply.Options{NoVerify: noVerify})
}

func cmdGenConf(args []string) error {
	if len(args) != 1 {
		return nmerror.NewInvalidArgument("gen-conf requires exactly one argument: a file path")
	}
	if _, err := readDocument(args[0]); err != nil {
		return err
	}
	// gen-conf renders add's interfaces to backend-specific config-file
	// payloads via NetworkManager.GenConf (spec §6); this build only wires
	// the kernel-only backend, which has no config-file representation.
	return nmerror.NewInvalidArgument("gen-conf requires a network-manager backend; none is configured in this build")
}

func cmdCommit() error {
	return nmerror.NewInvalidArgument("commit requires a network-manager backend; none is configured in this build")
}

func cmdRollback() error {
	return nmerror.NewInvalidArgument("rollback requires a network-manager backend; none is configured in this build")
}

func readDocument(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
