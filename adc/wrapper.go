// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package adc

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/host/v3"
)

type hwWrapper struct {
	m    sync.Mutex
	bus  i2c.BusCloser
	pins []ads1x15.PinADC
}

func (h *hwWrapper) Open(name string) (err error) {
	h.m.Lock()
	defer h.m.Unlock()

	if h.bus != nil {
		return ErrAlreadyOpen
	}

	if _, err = host.Init(); err != nil {
		return err
	}

	h.bus, err = i2creg.Open(name)
	return err
}

func (h *hwWrapper) Close() (err error) {
	h.m.Lock()
	defer h.m.Unlock()

	for i := range h.pins {
		e := h.pins[i].Halt()
		if e != nil && err == nil {
			err = e
		}
	}
	h.pins = nil

	if h.bus != nil {
		e := h.bus.Close()
		if e != nil && err == nil {
			err = e
		}
		h.bus = nil
	}

	return err
}

func (h *hwWrapper) Connect(addr uint16, ch ads1x15.Channel, maxV physic.ElectricPotential, f physic.Frequency) (analog.PinADC, error) {
	h.m.Lock()
	defer h.m.Unlock()

	if h.bus == nil {
		return nil, fmt.Errorf("invalid state")
	}

	dev, err := ads1x15.NewADS1115(h.bus, &ads1x15.Opts{I2cAddress: addr})
	if err != nil {
		return nil, err
	}

	pin, err := dev.PinForChannel(ch, maxV, f, ads1x15.SaveEnergy)
	if err != nil {
		return nil, err
	}

	h.pins = append(h.pins, pin)
	return pin, nil
}
