// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// Package reading converts raw samples from the RP2040 on-board temperature
// sensor into volts and degrees Celsius.
//
// The conversion is the fixed linear approximation from the RP2040 datasheet.
// No calibration is applied and the result is never clamped; a raw value of 0
// or 65535 produces a defined, if physically implausible, temperature.
package reading

import (
	"math"

	"github.com/schmidtw/picotemp/units"
)

const (
	// ReferenceVoltage is the ADC reference voltage in volts.
	ReferenceVoltage = 3.3

	// FullScale is the largest raw sample a 16-bit read can produce.
	FullScale = 65535

	// OffsetTemperature is the temperature at OffsetVoltage.
	OffsetTemperature = 27.0

	// OffsetVoltage is the sensor voltage at OffsetTemperature.
	OffsetVoltage = 0.706

	// Slope is the sensor voltage change per degree Celsius.
	Slope = -0.001721
)

// Reading is one sample taken from the sensor.
type Reading struct {
	Raw         uint16
	Voltage     float64
	Temperature units.Temperature
}

// FromRaw converts a raw 16-bit sample into a Reading.
func FromRaw(raw uint16) Reading {
	v := Voltage(raw)
	return Reading{
		Raw:         raw,
		Voltage:     v,
		Temperature: FromVoltage(v),
	}
}

// FromVoltage converts a sensor voltage into a temperature.
func FromVoltage(v float64) units.Temperature {
	return units.Temperature(OffsetTemperature + (v-OffsetVoltage)/Slope)
}

// Voltage returns the voltage represented by the raw sample.
func Voltage(raw uint16) float64 {
	return float64(raw) * (ReferenceVoltage / FullScale)
}

// RawFor returns the raw sample that most closely produces the temperature
// provided.  Temperatures outside of what a sample can represent are clamped
// to 0 or FullScale.
func RawFor(t units.Temperature) uint16 {
	v := OffsetVoltage + (float64(t)-OffsetTemperature)*Slope
	raw := math.Round(v / (ReferenceVoltage / FullScale))

	switch {
	case raw <= 0:
		return 0
	case raw >= FullScale:
		return FullScale
	}
	return uint16(raw)
}
