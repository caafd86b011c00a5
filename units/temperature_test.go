// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package units

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemperature(t *testing.T) {
	tests := []struct {
		in         string
		expect     Temperature
		fahrenheit float64
		kelvin     float64
		str        string
		expectErr  error
	}{
		{
			in:         "21.5C",
			expect:     Temperature(21.5),
			fahrenheit: 70.7,
			kelvin:     294.65,
			str:        "21.50°C",
		}, {
			in:         "21.5 celsius",
			expect:     Temperature(21.5),
			fahrenheit: 70.7,
			kelvin:     294.65,
			str:        "21.50°C",
		}, {
			in:         "212F",
			expect:     Temperature(100.0),
			fahrenheit: 212.0,
			kelvin:     373.15,
			str:        "100.00°C",
		}, {
			in:         "32°F",
			expect:     Temperature(0.0),
			fahrenheit: 32.0,
			kelvin:     273.15,
			str:        "0.00°C",
		}, {
			in:         "0K",
			expect:     Temperature(-273.15),
			fahrenheit: -459.67,
			kelvin:     0.0,
			str:        "-273.15°C",
		}, {
			in:         "-40 Fahrenheit",
			expect:     Temperature(-40.0),
			fahrenheit: -40.0,
			kelvin:     233.15,
			str:        "-40.00°C",
		}, {
			in:        "warmc", // valid unit, but nonsense number
			expectErr: ErrInvalidUnit,
		}, {
			in:        "21.5", // no units
			expectErr: ErrInvalidUnit,
		},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert := assert.New(t)

			temp, err := ParseTemperature(tc.in)

			if tc.expectErr == nil {
				assert.NoError(err)
				assert.InDelta(float64(tc.expect), temp.Celsius(), 0.000001)
				assert.Equal(tc.str, temp.String())
				assert.Equal(
					fmt.Sprintf("%.6f", tc.fahrenheit),
					fmt.Sprintf("%.6f", temp.Fahrenheit()))
				assert.Equal(
					fmt.Sprintf("%.6f", tc.kelvin),
					fmt.Sprintf("%.6f", temp.Kelvin()))
				return
			}

			assert.ErrorIs(err, tc.expectErr)
			assert.Equal(Temperature(0.0), temp)
		})
	}
}

func TestTemperatureSet(t *testing.T) {
	assert := assert.New(t)

	var temp Temperature
	assert.NoError(temp.Set("25C"))
	assert.Equal(Temperature(25.0), temp)

	assert.ErrorIs(temp.Set("hot"), ErrInvalidUnit)
	assert.Equal(Temperature(25.0), temp)
}
