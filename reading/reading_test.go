// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package reading

import (
	"testing"

	"github.com/schmidtw/picotemp/units"
	"github.com/stretchr/testify/assert"
)

func TestFromRaw(t *testing.T) {
	tests := []struct {
		description string
		raw         uint16
		voltage     float64
		temp        float64
		str         string
	}{
		{
			description: "zero sample",
			raw:         0,
			voltage:     0.0,
			temp:        437.22661243463097,
			str:         "437.23°C",
		}, {
			description: "full scale sample",
			raw:         FullScale,
			voltage:     3.3,
			temp:        -1480.2632190586867,
			str:         "-1480.26°C",
		}, {
			description: "typical room temperature",
			raw:         14000,
			voltage:     0.7049668116273747,
			temp:        27.600341878341276,
			str:         "27.60°C",
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			r := FromRaw(tc.raw)

			assert.Equal(tc.raw, r.Raw)
			assert.InDelta(tc.voltage, r.Voltage, 1e-9)
			assert.InDelta(tc.temp, float64(r.Temperature), 1e-6)
			assert.Equal(tc.str, r.Temperature.String())
		})
	}
}

func TestFromRawMatchesFormula(t *testing.T) {
	assert := assert.New(t)

	for raw := 0; raw <= FullScale; raw += 97 {
		expect := 27.0 + ((float64(raw)*3.3/65535)-0.706)/(-0.001721)
		got := FromRaw(uint16(raw))
		assert.InDelta(expect, float64(got.Temperature), 1e-9, "raw %d", raw)
	}
}

func TestOffsetVoltageIs27C(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(units.Temperature(27.0), FromVoltage(OffsetVoltage))
	assert.Equal(units.Temperature(27.0), FromVoltage(0.706))

	// The closest raw sample lands within one LSB worth of temperature.
	near := FromRaw(RawFor(27.0))
	assert.InDelta(27.0, float64(near.Temperature), 0.03)
}

func TestRawFor(t *testing.T) {
	tests := []struct {
		description string
		temp        units.Temperature
		expect      uint16
	}{
		{
			description: "hot enough to clamp low",
			temp:        500.0,
			expect:      0,
		}, {
			description: "cold enough to clamp high",
			temp:        -2000.0,
			expect:      FullScale,
		}, {
			description: "room temperature",
			temp:        21.5,
			expect:      14208,
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, RawFor(tc.temp))
		})
	}
}
