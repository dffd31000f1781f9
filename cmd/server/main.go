package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	server "starfall/server"
	"starfall/server/internal/app"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

var CLI struct {
	Debug   bool             `help:"Whether to enable debug logging."`
	Version kong.VersionFlag `help:"Print the server version and exit."`

	Serve struct {
		Addr   string `help:"Address to listen on." default:":8080" env:"STARFALL_ADDR"`
		Config string `help:"Optional YAML world configuration." type:"existingfile" optional:""`
	} `cmd:"" default:"1" help:"Start the arena server."`

	Config struct {
	} `cmd:"" help:"Write the default world configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("starfall"),
		kong.Description("authoritative server for the starfall arena"),
		kong.UsageOnError(),
		kong.Vars{"version": "starfall " + version},
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	switch ctx.Command() {
	case "serve":
		world := server.DefaultWorldConfig()
		if CLI.Serve.Config != "" {
			loaded, err := server.LoadWorldConfig(CLI.Serve.Config)
			if err != nil {
				writeError(err)
			}
			world = loaded
		}

		runCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if err := app.Run(runCtx, app.Config{
			Addr:   CLI.Serve.Addr,
			World:  world,
			Logger: log.Logger,
		}); err != nil {
			writeError(err)
		}
	case "config":
		data, err := yaml.Marshal(server.DefaultWorldConfig())
		if err != nil {
			writeError(err)
		}
		fmt.Print(string(data))
	}
}
