// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidUnit = errors.New("invalid unit")
)

const kelvinOffset = 273.15

// Temperature is a measurement of temperature stored as a float64 in degrees
// Celsius.
type Temperature float64

// ParseTemperature sets the temperature based on the string provided.  Both a
// number and units are required.
func ParseTemperature(s string) (Temperature, error) {
	list := []struct {
		suffix string
		conv   func(float64) float64
	}{
		{suffix: "celsius", conv: func(n float64) float64 { return n }},
		{suffix: "fahrenheit", conv: func(n float64) float64 { return (n - 32.0) * 5.0 / 9.0 }},
		{suffix: "kelvin", conv: func(n float64) float64 { return n - kelvinOffset }},
		{suffix: "°c", conv: func(n float64) float64 { return n }},
		{suffix: "°f", conv: func(n float64) float64 { return (n - 32.0) * 5.0 / 9.0 }},
		{suffix: "c", conv: func(n float64) float64 { return n }},
		{suffix: "f", conv: func(n float64) float64 { return (n - 32.0) * 5.0 / 9.0 }},
		{suffix: "k", conv: func(n float64) float64 { return n - kelvinOffset }},
	}

	known := make([]string, 0, len(list))
	trimmed := strings.TrimSpace(s)

	for _, unit := range list {
		if strings.HasSuffix(strings.ToLower(trimmed), unit.suffix) {
			num := strings.TrimSpace(trimmed[:len(trimmed)-len(unit.suffix)])

			n, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0.0, fmt.Errorf("%w: '%s' %v", ErrInvalidUnit, num, err)
			}
			return Temperature(unit.conv(n)), nil
		}
		known = append(known, unit.suffix)
	}

	return 0.0, fmt.Errorf("%w: unknown unit for '%s' valid: %s",
		ErrInvalidUnit, s, strings.Join(known, ", "))
}

// Celsius returns the temperature as a floating point in degrees Celsius.
func (t Temperature) Celsius() float64 {
	return float64(t)
}

// Fahrenheit returns the temperature as a floating point in degrees Fahrenheit.
func (t Temperature) Fahrenheit() float64 {
	return float64(t)*9.0/5.0 + 32.0
}

// Kelvin returns the temperature as a floating point in kelvin.
func (t Temperature) Kelvin() float64 {
	return float64(t) + kelvinOffset
}

// String returns the temperature formatted with two decimals in °C.
func (t Temperature) String() string {
	return fmt.Sprintf("%.2f°C", float64(t))
}

// Set parses s into the temperature, making it usable as a flag or config
// value.
func (t *Temperature) Set(s string) error {
	v, err := ParseTemperature(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
