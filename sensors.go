// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/schmidtw/picotemp/adc"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var errUnknownBackend = errors.New("unknown sensor backend")

const (
	backendADS1x15   = "ads1x15"
	backendSerial    = "serial"
	backendSimulated = "simulated"
)

// newDevice builds the configured sensor without touching hardware.
func newDevice(cfg SensorConfig, dev bool) (adc.Device, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if dev || backend == "" {
		backend = backendSimulated
	}

	switch backend {
	case backendADS1x15:
		return adc.NewADS1x15(cfg.ADS1x15)
	case backendSerial:
		return adc.NewSerial(cfg.Serial)
	case backendSimulated:
		return adc.NewSimulated(cfg.Simulated)
	}

	return nil, fmt.Errorf("%w: '%s' valid: %s", errUnknownBackend, cfg.Backend,
		strings.Join([]string{backendADS1x15, backendSerial, backendSimulated}, ", "))
}

type sensorIn struct {
	fx.In

	LC     fx.Lifecycle
	Config Config
	CLI    *CLI
	Logger *zap.Logger
}

// provideSensor is the single owner of the sensor.  It is opened when the
// application starts and closed when it stops.
func provideSensor(in sensorIn) (adc.Reader, error) {
	d, err := newDevice(in.Config.Sensor, in.CLI.Dev)
	if err != nil {
		return nil, err
	}

	in.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			in.Logger.Info("opening sensor", zap.String("sensor", fmt.Sprint(d)))
			return d.Open()
		},
		OnStop: func(context.Context) error {
			in.Logger.Info("closing sensor")
			return d.Close()
		},
	})

	return d, nil
}
