// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package adc

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/schmidtw/picotemp/reading"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

const (
	defaultADS1x15Address = 0x48
	maxADS1x15Voltage     = 6144 * physic.MilliVolt
	maxADS1x15Rate        = 860 * physic.Hertz
)

// ADS1x15Config configures an ADS1115 channel wired to an analog temperature
// sensor.
type ADS1x15Config struct {
	// Bus is the I2C bus name.  Empty selects the first bus found.
	Bus string

	// Address of the converter on the bus.  The default is 0x48.
	Address uint16

	// Channel is the single ended input, 0 through 3.
	Channel int

	// MaxVoltage sets the programmable gain.  The default is 4.096V.
	MaxVoltage physic.ElectricPotential

	// SampleRate is the conversion rate.  The default is 8Hz.
	SampleRate physic.Frequency

	// Reference is the voltage that maps to a full scale sample.  The
	// default is 3.3V.
	Reference physic.ElectricPotential
}

// ADS1x15 reads samples from an ADS1115 over I2C.
type ADS1x15 struct {
	m         sync.Mutex
	config    ADS1x15Config
	ioWrapper adcWrapper
	pin       analog.PinADC
}

type adcWrapper interface {
	Open(string) error
	Close() error
	Connect(uint16, ads1x15.Channel, physic.ElectricPotential, physic.Frequency) (analog.PinADC, error)
}

// NewADS1x15 validates the configuration.  The hardware is not touched until
// Open is called.
func NewADS1x15(c ADS1x15Config) (*ADS1x15, error) {
	if c.Address == 0 {
		c.Address = defaultADS1x15Address
	}
	if c.MaxVoltage == 0 {
		c.MaxVoltage = 4096 * physic.MilliVolt
	}
	if c.SampleRate == 0 {
		c.SampleRate = 8 * physic.Hertz
	}
	if c.Reference == 0 {
		c.Reference = 3300 * physic.MilliVolt
	}

	switch {
	case c.Channel < 0 || 3 < c.Channel:
		return nil, fmt.Errorf("%w: channel %d", ErrInvalidParameter, c.Channel)
	case c.MaxVoltage < 0 || maxADS1x15Voltage < c.MaxVoltage:
		return nil, fmt.Errorf("%w: max voltage %s", ErrInvalidParameter, c.MaxVoltage)
	case c.SampleRate < 0 || maxADS1x15Rate < c.SampleRate:
		return nil, fmt.Errorf("%w: sample rate %s", ErrInvalidParameter, c.SampleRate)
	case c.Reference < 0:
		return nil, fmt.Errorf("%w: reference %s", ErrInvalidParameter, c.Reference)
	}

	return &ADS1x15{
		config:    c,
		ioWrapper: &hwWrapper{},
	}, nil
}

// Open claims the bus and the converter channel.
func (a *ADS1x15) Open() error {
	a.m.Lock()
	defer a.m.Unlock()

	if a.pin != nil {
		return ErrAlreadyOpen
	}

	if err := a.ioWrapper.Open(a.config.Bus); err != nil {
		return err
	}

	pin, err := a.ioWrapper.Connect(a.config.Address,
		ads1x15.Channel0+ads1x15.Channel(a.config.Channel),
		a.config.MaxVoltage,
		a.config.SampleRate)
	if err != nil {
		_ = a.ioWrapper.Close()
		return err
	}

	a.pin = pin
	return nil
}

// Close releases the converter and the bus.
func (a *ADS1x15) Close() error {
	a.m.Lock()
	defer a.m.Unlock()

	if a.pin == nil {
		return nil
	}
	a.pin = nil

	return a.ioWrapper.Close()
}

// ReadRaw takes one sample and scales it against the reference voltage.
func (a *ADS1x15) ReadRaw(ctx context.Context) (uint16, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	a.m.Lock()
	defer a.m.Unlock()

	if a.pin == nil {
		return 0, ErrNotOpen
	}

	s, err := a.pin.Read()
	if err != nil {
		return 0, err
	}

	return scale(s.V, a.config.Reference), nil
}

func (a *ADS1x15) String() string {
	return fmt.Sprintf("ads1115(bus=%q, addr=0x%02x, channel=%d)",
		a.config.Bus, a.config.Address, a.config.Channel)
}

// scale maps v onto [0, FullScale] where ref is full scale.
func scale(v, ref physic.ElectricPotential) uint16 {
	if v <= 0 || ref <= 0 {
		return 0
	}
	if v >= ref {
		return reading.FullScale
	}
	return uint16(math.Round(float64(v) / float64(ref) * reading.FullScale))
}
