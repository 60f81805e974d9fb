package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/st/internal/cli"
	"github.com/julianstephens/st/internal/config"
	"github.com/julianstephens/st/internal/keyring"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Fprintln(ctx.Out, "Running diagnostics...")
	fmt.Fprintln(ctx.Out)

	hasError := false

	// Check 1: config file
	path := config.ExpandPath(ctx.ConfigPath)
	switch {
	case ctx.ConfigErr != nil:
		fmt.Fprintf(ctx.Out, "❌ Config file: FAIL\n")
		fmt.Fprintf(ctx.Out, "   Error: %v\n", ctx.ConfigErr)
		hasError = true
	case fileExists(path):
		fmt.Fprintf(ctx.Out, "✓ Config file: OK (%s)\n", path)
	default:
		fmt.Fprintf(ctx.Out, "⊘ Config file: not found (%s), using defaults\n", path)
	}

	// Check 2: keyring
	if keyring.IsAvailable() {
		fmt.Fprintf(ctx.Out, "✓ OS keyring: OK\n")
	} else {
		fmt.Fprintf(ctx.Out, "⚠️  OS keyring: unavailable, tokens must come from the environment\n")
	}

	// Check 3: credentials. A missing token only disables that service.
	for _, service := range keyring.Services() {
		switch src := keyring.Source(service); src {
		case "":
			fmt.Fprintf(ctx.Out, "⚠️  %s token: missing (set %s or run 'st keyring set %s')\n", service, keyring.EnvVar(service), service)
		default:
			fmt.Fprintf(ctx.Out, "✓ %s token: OK (%s)\n", service, src)
		}
	}

	// Check 4: optional identifiers
	if ctx.Config.GitHubOrgID != "" {
		fmt.Fprintf(ctx.Out, "✓ GitHub organization scope: %s\n", ctx.Config.GitHubOrgID)
	} else {
		fmt.Fprintf(ctx.Out, "ℹ GitHub organization scope: not set, status applies everywhere\n")
	}
	if ctx.Config.AsanaUserGID != "" {
		fmt.Fprintf(ctx.Out, "✓ Asana user: %s\n", ctx.Config.AsanaUserGID)
	} else {
		fmt.Fprintf(ctx.Out, "ℹ Asana user: not set, out-of-office check unavailable\n")
	}

	fmt.Fprintln(ctx.Out)
	if hasError {
		fmt.Fprintln(ctx.Out, "Diagnostics found problems.")
		return errors.New("diagnostics failed")
	}
	fmt.Fprintln(ctx.Out, "All checks passed.")
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
