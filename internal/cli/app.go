// Package cli implements the terminal surface: the login and creation
// prompts, the interactive account view, and the servers listing.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cavworks/cav-cli/internal/config"
	"github.com/cavworks/cav-cli/internal/discovery"
	"github.com/cavworks/cav-cli/internal/gateway"
	"github.com/cavworks/cav-cli/internal/session"
)

// App bundles the collaborators every command needs.
type App struct {
	Config    *config.Config
	Log       *logrus.Logger
	Gateway   *gateway.Client
	Discovery *discovery.Client
	Session   *session.Controller

	in *bufio.Reader
}

// NewApp wires an application from loaded configuration.
func NewApp(cfg *config.Config, log *logrus.Logger) *App {
	gw := gateway.NewClient(cfg.ServerURL, log)
	return &App{
		Config:    cfg,
		Log:       log,
		Gateway:   gw,
		Discovery: discovery.NewClient(cfg.ServerURL, log),
		Session:   session.NewController(gw, log),
		in:        bufio.NewReader(os.Stdin),
	}
}

// prompt prints a label and reads one trimmed line from stdin. An empty
// answer yields the default.
func (a *App) prompt(label, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Printf("%s [%s]: ", label, defaultValue)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}

// promptBool reads a yes/no answer.
func (a *App) promptBool(label string, defaultValue bool) (bool, error) {
	def := "y/N"
	if defaultValue {
		def = "Y/n"
	}
	answer, err := a.prompt(fmt.Sprintf("%s (%s)", label, def), "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	case "":
		return defaultValue, nil
	default:
		return defaultValue, nil
	}
}
