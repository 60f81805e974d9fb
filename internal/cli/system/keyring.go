package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/st/internal/cli"
	"github.com/julianstephens/st/internal/keyring"
)

// promptToken asks for a token without echoing it.
var promptToken = func(service string) (string, error) {
	var token string
	err := huh.NewInput().
		Title(fmt.Sprintf("%s API token", service)).
		EchoMode(huh.EchoModePassword).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("token cannot be empty")
			}
			return nil
		}).
		Value(&token).
		Run()
	return token, err
}

// KeyringSetCmd stores a service token in the OS keyring
type KeyringSetCmd struct {
	Service string `arg:"" enum:"slack,github,asana" help:"Service the token belongs to (slack, github, asana)."`
	Token   string `arg:"" optional:"" help:"API token. Prompted for when omitted."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	token := cmd.Token
	if token == "" {
		var err error
		if token, err = promptToken(cmd.Service); err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
	}

	if err := keyring.SetToken(cmd.Service, token); err != nil {
		return fmt.Errorf("failed to store %s token in keyring: %w", cmd.Service, err)
	}

	fmt.Fprintf(ctx.Out, "✓ %s token stored in OS keyring\n", cmd.Service)
	if env := keyring.EnvVar(cmd.Service); env != "" {
		fmt.Fprintf(ctx.Out, "  %s still takes precedence when set\n", env)
	}
	return nil
}

// KeyringDeleteCmd removes a service token from the OS keyring
type KeyringDeleteCmd struct {
	Service string `arg:"" enum:"slack,github,asana" help:"Service whose token to delete."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteToken(cmd.Service); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s token found in keyring", cmd.Service)
		}
		return fmt.Errorf("failed to delete %s token from keyring: %w", cmd.Service, err)
	}

	fmt.Fprintf(ctx.Out, "✓ %s token deleted from OS keyring\n", cmd.Service)
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Fprintln(ctx.Out, "❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}

	fmt.Fprintln(ctx.Out, "✓ OS keyring is available")
	for _, service := range keyring.Services() {
		if _, err := keyring.GetToken(service); err == nil {
			fmt.Fprintf(ctx.Out, "✓ %s token is stored in keyring\n", service)
		} else {
			fmt.Fprintf(ctx.Out, "ℹ No %s token stored in keyring\n", service)
		}
	}
	return nil
}
