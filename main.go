// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/goschtalt/goschtalt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schmidtw/picotemp/adc"
	"github.com/schmidtw/picotemp/sampler"
	"github.com/schmidtw/picotemp/templog"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const applicationName = "picotemp"

// CLI is the command line interface.
type CLI struct {
	Files      []string `short:"f" type:"existingfile" help:"Configuration file(s) to merge, in order."`
	ShowConfig bool     `help:"Print the merged configuration and exit."`
	Dev        bool     `short:"d" help:"Use the simulated sensor and development logging."`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name(applicationName),
		kong.Description("Logs the temperature to a file per month."),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}

	if _, err = parser.Parse(args); err != nil {
		return err
	}

	g, err := newGoschtalt(cli.Files)
	if err != nil {
		return err
	}

	if cli.ShowConfig {
		buf, err := g.Marshal(goschtalt.FormatAs("yml"))
		if err != nil {
			return err
		}
		_, err = stdout.Write(buf)
		return err
	}

	app := fx.New(options(&cli, g, stdout))
	if err := app.Err(); err != nil {
		return err
	}

	app.Run()
	return nil
}

// options assembles the application.  It is separate from run so the wiring
// can be validated without starting anything.
func options(cli *CLI, g *goschtalt.Config, stdout io.Writer) fx.Option {
	return fx.Options(
		fx.Supply(cli, g),
		fx.Provide(
			unmarshal,
			provideLogger,
			provideSensor,
			provideLog,
			provideRegistry,
			func() io.Writer { return stdout },
			provideSampler,
		),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l}
		}),
		fx.Invoke(startSampler),
	)
}

func provideLogger(cfg Config, cli *CLI) (*zap.Logger, error) {
	if cli.Dev {
		cfg.Logger.Development = true
		cfg.Logger.Level = "debug"
	}
	// Stdout carries the temperature records.
	if len(cfg.Logger.OutputPaths) == 0 {
		cfg.Logger.OutputPaths = []string{"stderr"}
	}
	if len(cfg.Logger.ErrorOutputPaths) == 0 {
		cfg.Logger.ErrorOutputPaths = []string{"stderr"}
	}
	return cfg.Logger.Build()
}

func provideLog(cfg Config, logger *zap.Logger) (*templog.Log, error) {
	l, err := templog.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	logger.Info("logging temperatures", zap.Stringer("files", l))
	return l, nil
}

func provideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

type samplerIn struct {
	fx.In

	Config   Config
	Sensor   adc.Reader
	Log      *templog.Log
	Registry *prometheus.Registry
	Console  io.Writer
	Logger   *zap.Logger
}

func provideSampler(in samplerIn) (*sampler.Sampler, error) {
	return sampler.New(in.Sensor, in.Log, in.Config.Sampler,
		sampler.WithConsole(in.Console),
		sampler.WithLogger(in.Logger),
		sampler.WithMetrics(in.Registry),
		sampler.WithTextfile(in.Config.Metrics.Textfile, in.Registry),
	)
}

func startSampler(lc fx.Lifecycle, s *sampler.Sampler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			// The start context ends once start up completes; sampling must not.
			return s.Start(context.Background())
		},
		OnStop: func(context.Context) error {
			s.Stop()
			return nil
		},
	})
}
