// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// Package adc provides the sources of raw 16-bit temperature sensor samples.
package adc

import (
	"context"
	"errors"
)

var (
	ErrAlreadyOpen      = errors.New("already open")
	ErrNotOpen          = errors.New("not open")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrBadResponse      = errors.New("bad response")
	ErrTimeout          = errors.New("timeout")
	ErrSimulated        = errors.New("simulated failure")
)

// Reader produces one raw sample per call.  Samples are scaled so the full
// range of the converter maps onto [0, 65535].
type Reader interface {
	ReadRaw(ctx context.Context) (uint16, error)
}

// Device is a Reader that owns a hardware resource between Open and Close.
type Device interface {
	Reader
	Open() error
	Close() error
}
