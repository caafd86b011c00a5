// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package adc

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
)

const (
	defaultBaud    = 115200
	defaultTimeout = 2 * time.Second
	defaultRequest = "r\n"
	maxLineLength  = 32
)

// SerialConfig configures a microcontroller attached over a serial port that
// answers each request line with one raw sample as a decimal number followed
// by a newline.
type SerialConfig struct {
	// Port is the serial device, for example /dev/ttyACM0.
	Port string

	// Baud is the line speed.  The default is 115200.
	Baud int

	// Timeout bounds how long a single response may take.  The default is 2s.
	Timeout time.Duration

	// Request is sent to ask for a sample.  The default is "r\n".
	Request string
}

type serialPort interface {
	io.ReadWriteCloser
	SetReadTimeout(time.Duration) error
	ResetInputBuffer() error
}

// Serial reads samples from a microcontroller over a serial port.
type Serial struct {
	m      sync.Mutex
	config SerialConfig
	open   func(string, *serial.Mode) (serialPort, error)
	port   serialPort
}

// NewSerial validates the configuration.  The port is not opened until Open
// is called.
func NewSerial(c SerialConfig) (*Serial, error) {
	if c.Port == "" {
		return nil, fmt.Errorf("%w: no serial port set", ErrInvalidParameter)
	}
	if c.Baud == 0 {
		c.Baud = defaultBaud
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.Request == "" {
		c.Request = defaultRequest
	}
	if c.Baud < 0 || c.Timeout < 0 {
		return nil, fmt.Errorf("%w: baud %d timeout %s", ErrInvalidParameter, c.Baud, c.Timeout)
	}

	return &Serial{
		config: c,
		open:   openSerial,
	}, nil
}

func openSerial(name string, mode *serial.Mode) (serialPort, error) {
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Open opens the serial port.
func (s *Serial) Open() error {
	s.m.Lock()
	defer s.m.Unlock()

	if s.port != nil {
		return fmt.Errorf("%w: '%s'", ErrAlreadyOpen, s.config.Port)
	}

	port, err := s.open(s.config.Port, &serial.Mode{BaudRate: s.config.Baud})
	if err != nil {
		return err
	}

	if err := port.SetReadTimeout(s.config.Timeout); err != nil {
		_ = port.Close()
		return err
	}

	s.port = port
	return nil
}

// Close closes the serial port.
func (s *Serial) Close() error {
	s.m.Lock()
	defer s.m.Unlock()

	if s.port == nil {
		return nil
	}

	err := s.port.Close()
	s.port = nil
	return err
}

// ReadRaw requests one sample and waits for the response line.
func (s *Serial) ReadRaw(ctx context.Context) (uint16, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.m.Lock()
	defer s.m.Unlock()

	if s.port == nil {
		return 0, fmt.Errorf("%w: '%s'", ErrNotOpen, s.config.Port)
	}

	// Anything left over from an earlier, abandoned request is stale.
	if err := s.port.ResetInputBuffer(); err != nil {
		return 0, err
	}

	b := []byte(s.config.Request)
	for len(b) > 0 {
		n, err := s.port.Write(b)
		if err != nil {
			return 0, err
		}
		b = b[n:]
	}

	line, err := s.readLine(ctx)
	if err != nil {
		return 0, err
	}

	raw, err := strconv.ParseUint(line, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s' %v", ErrBadResponse, line, err)
	}

	return uint16(raw), nil
}

func (s *Serial) readLine(ctx context.Context) (string, error) {
	var line strings.Builder
	b := make([]byte, 1)

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, err := s.port.Read(b)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return "", fmt.Errorf("%w: no response after %s", ErrTimeout, s.config.Timeout)
		}

		switch b[0] {
		case '\n':
			return strings.TrimSpace(line.String()), nil
		case '\r':
		default:
			if line.Len() >= maxLineLength {
				return "", fmt.Errorf("%w: line too long", ErrBadResponse)
			}
			line.WriteByte(b[0])
		}
	}
}

func (s *Serial) String() string {
	return fmt.Sprintf("serial(%s@%d)", s.config.Port, s.config.Baud)
}
