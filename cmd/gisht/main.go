// Command gisht fetches, inspects, and runs gists and pastes from GitHub
// and a handful of paste services, treating each as an executable binary
// (§1, §6).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gisht/gisht/internal/cliops"
	"github.com/gisht/gisht/internal/config"
	"github.com/gisht/gisht/internal/gist"
	"github.com/gisht/gisht/internal/host"
	"github.com/gisht/gisht/internal/logx"
	"github.com/gisht/gisht/internal/result"
	"github.com/gisht/gisht/internal/runner"
	"github.com/gisht/gisht/internal/uri"
	"github.com/gisht/gisht/internal/version"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: gisht <command> [flags] <uri> [args...]

commands:
  run URI [ARGS...]   fetch (if needed) and execute the gist, forwarding ARGS
  which URI           print the gist's local binary path
  print URI           write the gist's binary content to stdout, unexecuted
  open URI            open the gist's page in the default browser
  info URI            print the gist's metadata
  hosts               list every registered paste host

flags:
  -v    raise logging verbosity (repeatable)
  -q    lower logging verbosity (repeatable)`)
}

// parseCommonFlags scans the leading -v/-q flags of args, applying each to
// logx as it's seen, and stops at the first other argument (the URI). It
// returns that argument and everything after it unchanged, in order.
func parseCommonFlags(args []string) []string {
	for i, arg := range args {
		switch arg {
		case "-v":
			logx.Raise()
		case "-q":
			logx.Lower()
		default:
			return args[i:]
		}
	}
	return nil
}

func main() {
	config.SetVersion(version.Version)

	if len(os.Args) < 2 {
		usage()
		os.Exit(result.ExitUsage)
	}

	command := os.Args[1]
	if command == "--help" || command == "-h" || command == "help" {
		usage()
		os.Exit(result.ExitOK)
	}
	if command == "--version" {
		fmt.Println("gisht " + version.String())
		os.Exit(result.ExitOK)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reg := buildRegistry()

	if command == "hosts" {
		cliops.Hosts(reg)
		os.Exit(result.ExitOK)
	}

	switch command {
	case "run", "which", "print", "open", "info":
	default:
		usage()
		os.Exit(result.ExitUsage)
	}

	args := parseCommonFlags(os.Args[2:])
	if len(args) == 0 {
		usage()
		os.Exit(result.ExitUsage)
	}

	err := dispatch(ctx, reg, command, args)
	os.Exit(result.ExitCode(err))
}

// dispatch resolves args[0] as a gist URI and runs the named command
// against it. For "run", every argument after the URI is forwarded
// verbatim to the gist's own process (§4.11's trailing-var-arg rule) —
// no flag parsing is attempted on them.
func dispatch(ctx context.Context, reg *host.Registry, command string, args []string) error {
	u, err := uri.Parse(args[0], reg)
	if err != nil {
		return err
	}
	h, ok := reg.Get(u.Host)
	if !ok {
		return &result.UnknownHostError{HostID: u.Host}
	}
	g := gist.New(u)

	switch command {
	case "run":
		return runGist(ctx, h, g, args[1:])
	case "which":
		return cliops.Which(ctx, h, g)
	case "print":
		return cliops.Print(ctx, h, g)
	case "open":
		return cliops.Open(ctx, h, g)
	case "info":
		return cliops.Info(ctx, h, g)
	default:
		return fmt.Errorf("gisht: unknown command %q", command)
	}
}

func runGist(ctx context.Context, h host.Host, g gist.Gist, scriptArgs []string) error {
	g, path, err := cliops.Resolve(ctx, h, g, host.Auto)
	if err != nil {
		return err
	}
	info, err := h.GistInfo(ctx, g)
	if err != nil {
		logx.Warn("could not obtain gist info for %s: %v", g.URI, err)
		info = nil
	}
	return runner.Run(path, scriptArgs, info)
}
