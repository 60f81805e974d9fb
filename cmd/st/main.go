package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/st/internal/cli"
	"github.com/julianstephens/st/internal/cli/system"
	"github.com/julianstephens/st/internal/config"
	"github.com/julianstephens/st/internal/constants"
	"github.com/julianstephens/st/internal/errors"
	"github.com/julianstephens/st/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_path}"`
	Debug   bool   `help:"Write debug logs to stderr as well as the log file."`

	Set     cli.SetCmd       `cmd:"" help:"Set your status everywhere (default command)." default:"withargs"`
	List    cli.ListCmd      `cmd:"" help:"List status keywords."`
	Doctor  system.DoctorCmd `cmd:"" help:"Check config and credentials."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a service token in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Delete a service token from the OS keyring."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show keyring availability and stored tokens." default:"1"`
	} `cmd:"" help:"Manage API tokens in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Set a status keyword across Slack, GitHub and Asana in one command."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: config.Dir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
	}

	cfg, cfgErr := config.Load(CLI.Config)
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", cfgErr)
		logger.Warn("config not loaded", "path", CLI.Config, "error", cfgErr)
	}

	appCtx := cli.NewContext(cfg, CLI.Config, cfgErr)
	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
