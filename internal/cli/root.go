package cli

import (
	"io"
	"os"

	"github.com/juju/clock"

	"github.com/julianstephens/st/internal/config"
	"github.com/julianstephens/st/internal/dispatch"
	"github.com/julianstephens/st/internal/keyring"
	"github.com/julianstephens/st/internal/services/asana"
	"github.com/julianstephens/st/internal/services/github"
	"github.com/julianstephens/st/internal/services/slack"
)

type Context struct {
	Config     config.Config
	ConfigPath string
	// ConfigErr is set when the config file exists but could not be read
	ConfigErr error
	Clock     clock.Clock
	Services  dispatch.Services
	Out       io.Writer
	Err       io.Writer
}

// NewContext wires the production clock and service adapters.
func NewContext(cfg config.Config, path string, cfgErr error) *Context {
	return &Context{
		Config:     cfg,
		ConfigPath: path,
		ConfigErr:  cfgErr,
		Clock:      clock.WallClock,
		Services:   NewServices(cfg),
		Out:        os.Stdout,
		Err:        os.Stderr,
	}
}

// NewServices builds the HTTP adapters. Tokens are looked up on first use so a
// missing credential only fails the service that needs it.
func NewServices(cfg config.Config) dispatch.Services {
	token := func(service string) func() (string, error) {
		return func() (string, error) { return keyring.Token(service) }
	}
	return dispatch.Services{
		Chat:    slack.New(token("slack")),
		Host:    github.New(token("github")),
		Tracker: asana.New(token("asana"), cfg.AsanaUserGID),
	}
}
