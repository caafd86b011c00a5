// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package adc

import (
	"context"
	"fmt"
	"sync"

	"github.com/schmidtw/picotemp/reading"
	"github.com/schmidtw/picotemp/units"
)

// SimulatedConfig configures a sensor that needs no hardware.
type SimulatedConfig struct {
	// Temperature is the value the sensor reports.  The default when unset is
	// 21.5°C.
	Temperature *units.Temperature

	// FailEvery makes every Nth read fail.  Zero never fails.
	FailEvery int
}

// Simulated reports a constant temperature.
type Simulated struct {
	m         sync.Mutex
	raw       uint16
	failEvery int
	count     int
	open      bool
}

// NewSimulated makes a new simulated sensor.
func NewSimulated(c SimulatedConfig) (*Simulated, error) {
	if c.FailEvery < 0 {
		return nil, fmt.Errorf("%w: fail every %d", ErrInvalidParameter, c.FailEvery)
	}
	temp := units.Temperature(21.5)
	if c.Temperature != nil {
		temp = *c.Temperature
	}

	return &Simulated{
		raw:       reading.RawFor(temp),
		failEvery: c.FailEvery,
	}, nil
}

func (s *Simulated) Open() error {
	s.m.Lock()
	defer s.m.Unlock()

	if s.open {
		return ErrAlreadyOpen
	}
	s.open = true
	return nil
}

func (s *Simulated) Close() error {
	s.m.Lock()
	defer s.m.Unlock()

	s.open = false
	return nil
}

func (s *Simulated) ReadRaw(ctx context.Context) (uint16, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.m.Lock()
	defer s.m.Unlock()

	if !s.open {
		return 0, ErrNotOpen
	}

	s.count++
	if s.failEvery > 0 && s.count%s.failEvery == 0 {
		return 0, fmt.Errorf("%w: read %d", ErrSimulated, s.count)
	}

	return s.raw, nil
}

func (s *Simulated) String() string {
	return fmt.Sprintf("simulated(raw=%d)", s.raw)
}
