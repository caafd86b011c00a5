// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package adc

import (
	"bytes"
	"time"

	"github.com/stretchr/testify/mock"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

type mockWrapper struct {
	mock.Mock
}

func (m *mockWrapper) Open(bus string) error {
	a := m.Called(bus)
	return a.Error(0)
}

func (m *mockWrapper) Close() error {
	a := m.Called()
	return a.Error(0)
}

func (m *mockWrapper) Connect(addr uint16, ch ads1x15.Channel, maxV physic.ElectricPotential, f physic.Frequency) (analog.PinADC, error) {
	a := m.Called(addr, ch, maxV, f)
	pin, _ := a.Get(0).(analog.PinADC)
	return pin, a.Error(1)
}

// Mocking analog.PinADC

type mockPin struct {
	mock.Mock
}

func (m *mockPin) String() string {
	a := m.Called()
	return a.String(0)
}

func (m *mockPin) Halt() error {
	a := m.Called()
	return a.Error(0)
}

func (m *mockPin) Name() string {
	a := m.Called()
	return a.String(0)
}

func (m *mockPin) Number() int {
	a := m.Called()
	return a.Int(0)
}

func (m *mockPin) Function() string {
	a := m.Called()
	return a.String(0)
}

func (m *mockPin) Range() (analog.Sample, analog.Sample) {
	a := m.Called()
	return a.Get(0).(analog.Sample), a.Get(1).(analog.Sample)
}

func (m *mockPin) Read() (analog.Sample, error) {
	a := m.Called()
	return a.Get(0).(analog.Sample), a.Error(1)
}

// Faking a serial port

type fakePort struct {
	rx         bytes.Buffer
	tx         bytes.Buffer
	timeout    time.Duration
	resets     int
	closed     bool
	readErr    error
	timeoutErr error
}

func (f *fakePort) Read(p []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	if f.rx.Len() == 0 {
		// go.bug.st/serial reports a read timeout as zero bytes and no error.
		return 0, nil
	}
	return f.rx.Read(p)
}

func (f *fakePort) Write(p []byte) (int, error) {
	return f.tx.Write(p)
}

func (f *fakePort) Close() error {
	f.closed = true
	return nil
}

func (f *fakePort) SetReadTimeout(t time.Duration) error {
	f.timeout = t
	return f.timeoutErr
}

func (f *fakePort) ResetInputBuffer() error {
	f.resets++
	return nil
}
