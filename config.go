// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/goschtalt/casemapper"
	"github.com/goschtalt/goschtalt"
	yamldecoder "github.com/goschtalt/yaml-decoder"
	yamlencoder "github.com/goschtalt/yaml-encoder"
	"github.com/mitchellh/mapstructure"
	"github.com/schmidtw/picotemp/adc"
	"github.com/schmidtw/picotemp/sampler"
	"github.com/schmidtw/picotemp/templog"
	"github.com/xmidt-org/sallust"
)

// Config is the whole application configuration.  Zero values are replaced
// with defaults by the packages that consume them.
type Config struct {
	Logger  sallust.Config
	Sensor  SensorConfig
	Sampler sampler.Config
	Log     templog.Config
	Metrics MetricsConfig
}

// SensorConfig selects and configures the source of raw samples.
type SensorConfig struct {
	// Backend is one of "ads1x15", "serial" or "simulated".  The default is
	// "simulated".
	Backend string

	ADS1x15   adc.ADS1x15Config
	Serial    adc.SerialConfig
	Simulated adc.SimulatedConfig
}

// MetricsConfig configures the prometheus textfile output.
type MetricsConfig struct {
	// Textfile is rewritten after every sample.  Empty disables it.
	Textfile string
}

// setter is implemented by the periph physic quantities and
// units.Temperature.
type setter interface {
	Set(string) error
}

var setterType = reflect.TypeOf((*setter)(nil)).Elem()

// setterHook decodes strings like "4.096V", "8Hz" or "21.5C" into any type
// whose pointer implements setter.
func setterHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || !reflect.PointerTo(to).Implements(setterType) {
		return data, nil
	}

	v := reflect.New(to)
	if err := v.Interface().(setter).Set(data.(string)); err != nil {
		return nil, err
	}
	return v.Elem().Interface(), nil
}

var decodeHook = mapstructure.ComposeDecodeHookFunc(
	mapstructure.StringToTimeDurationHookFunc(),
	setterHook,
)

func newGoschtalt(files []string) (*goschtalt.Config, error) {
	opts := []goschtalt.Option{
		goschtalt.AutoCompile(),
		goschtalt.WithDecoder(&yamldecoder.Decoder{}),
		goschtalt.WithEncoder(&yamlencoder.Encoder{}),
		goschtalt.DefaultUnmarshalOptions(
			casemapper.ConfigStoredAs("two_words"),
			goschtalt.Keymap(map[string]string{
				"ADS1x15": "ads1x15",
			}),
		),
	}

	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, err
		}
		opts = append(opts, goschtalt.AddFiles(os.DirFS(filepath.Dir(abs)), filepath.Base(abs)))
	}

	return goschtalt.New(opts...)
}

func unmarshal(g *goschtalt.Config) (Config, error) {
	var cfg Config

	err := g.Unmarshal(goschtalt.Root, &cfg, goschtalt.DecodeHook(decodeHook))
	if err != nil {
		return cfg, fmt.Errorf("unable to read configuration: %w", err)
	}

	return cfg, nil
}
