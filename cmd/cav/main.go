package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cavworks/cav-cli/internal/cli"
	"github.com/cavworks/cav-cli/internal/config"
	"github.com/cavworks/cav-cli/internal/logging"
	"github.com/cavworks/cav-cli/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	args, err := parseFlags(cfg, os.Args[1:])
	if err != nil {
		return err
	}

	log := logging.Setup(cfg.LogLevel)
	if cfg.Debug {
		log.WithField("serverUrl", cfg.ServerURL).WithField("cavHome", cfg.CavHome).Debug("config loaded")
	}

	app := cli.NewApp(cfg, log)
	ctx := context.Background()

	if len(args) > 0 {
		switch args[0] {
		case "login":
			return app.LoginCommand(ctx)
		case "create-account":
			return app.CreateAccountCommand(ctx)
		case "servers":
			return app.ServersCommand(ctx)
		case "version", "--version", "-v":
			fmt.Printf("cav %s\n", version.RichVersion())
			return nil
		case "help", "--help", "-h":
			printUsage()
			return nil
		default:
			printUsage()
			return fmt.Errorf("unknown command %q", args[0])
		}
	}

	// No subcommand: interactive flow starting at the login screen.
	return app.LoginCommand(ctx)
}

func parseFlags(cfg *config.Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("cav", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	serverURL := fs.String("server", "", "CAV server base URL (overrides CAV_SERVER_URL)")
	debug := fs.Bool("debug", false, "enable debug output")
	logLevel := fs.String("log-level", "", "log level (trace|debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		printUsage()
		return nil, err
	}

	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if *debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	return fs.Args(), nil
}

func printUsage() {
	fmt.Println(`Usage: cav [flags] [command]

Commands:
  login            Log in with a beneficiary address (default)
  create-account   Create a beneficiary account
  servers          List the servers and prefectures of the network
  version          Print the version
  help             Show this help

Flags:
  -server URL      CAV server base URL (default from CAV_SERVER_URL)
  -debug           Verbose output and account state dumps
  -log-level LVL   trace|debug|info|warn|error`)
}
