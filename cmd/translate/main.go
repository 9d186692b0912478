// package main translates a single api gateway proxy event file against a
// settings file and prints the resulting gateway response.
package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/prognoshealth/apigwtranslator/config"
	"github.com/prognoshealth/apigwtranslator/gateway"
	"github.com/prognoshealth/apigwtranslator/logging"
	"github.com/prognoshealth/apigwtranslator/proxy"
)

// CLI holds the command line flags.
type CLI struct {
	Event    string        `arg:"" help:"API Gateway proxy event JSON file, '-' for stdin."`
	Config   string        `short:"c" help:"Settings file (.toml or .json). Defaults to the TRANSLATOR_CONFIG* environment." type:"path"`
	EnvFile  string        `name:"env-file" help:"Load environment variables from this file first." type:"path"`
	LogLevel string        `name:"log-level" help:"Override the settings log level (TRACE, DEBUG, INFO, ERROR)."`
	Host     string        `help:"Override the operation context host of the event."`
	Timeout  time.Duration `help:"Deadline for the translation." default:"30s"`
	Indent   bool          `help:"Indent the printed response."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("translate"),
		kong.Description("Translate an API Gateway proxy event into a backend request and print the gateway response."),
		kong.UsageOnError(),
	)

	ctx.FatalIfErrorf(cli.Run(os.Stdout))
}

// Run translates the event and writes the response JSON to out.
func (cli *CLI) Run(out io.Writer) error {
	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			return errors.Wrapf(err, "failed loading env file %s", cli.EnvFile)
		}
	}

	settings, err := cli.settings()
	if err != nil {
		return err
	}

	logger, err := logging.NewWithWriter(settings.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	event, err := cli.event()
	if err != nil {
		return err
	}

	gw, err := gateway.NewFromSettings(settings, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cli.Timeout)
	defer cancel()

	response, err := gw.Handle(ctx, event)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if cli.Indent {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(response)
}

func (cli *CLI) settings() (config.Settings, error) {
	var settings config.Settings
	var err error

	if cli.Config != "" {
		settings, err = config.FromFile(cli.Config)
	} else {
		settings, err = config.FromEnv()
	}
	if err != nil {
		return config.Settings{}, err
	}

	if cli.LogLevel != "" {
		settings.LogLevel = strings.ToUpper(cli.LogLevel)
		if err := settings.Validate(); err != nil {
			return config.Settings{}, err
		}
	}

	return settings, nil
}

func (cli *CLI) event() (proxy.Event, error) {
	var b []byte
	var err error

	if cli.Event == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(cli.Event)
	}
	if err != nil {
		return proxy.Event{}, errors.Wrapf(err, "failed reading event %s", cli.Event)
	}

	event := proxy.Event{}
	if err := json.Unmarshal(b, &event); err != nil {
		return proxy.Event{}, errors.Wrapf(err, "failed decoding event %s", cli.Event)
	}

	if cli.Host != "" {
		if event.OperationContext == nil {
			event.OperationContext = &proxy.OperationContext{}
		}
		event.OperationContext.Host = cli.Host
	}

	return event, nil
}
