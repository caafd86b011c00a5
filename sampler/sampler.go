// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// Package sampler takes a temperature sample on a fixed period and appends it
// to the monthly log.  A failed sample is reported and skipped; the loop only
// ends when it is stopped.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/schmidtw/picotemp/adc"
	"github.com/schmidtw/picotemp/reading"
	"github.com/schmidtw/picotemp/templog"
	"go.uber.org/zap"
)

var (
	ErrAlreadyStarted   = errors.New("already started")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrSensor           = errors.New("unable to read sensor")
)

const (
	// DefaultInterval is the time between samples.
	DefaultInterval = 15 * time.Minute

	// Banner is printed to the console when sampling begins.
	Banner = "Starting monthly temperature logging..."

	errorPrefix = "Error reading temperature or writing to file: "
)

// Config provides the sampler configuration options.
type Config struct {
	// Interval is the time between samples.  The default is 15 minutes.
	Interval time.Duration

	// Namespace of the metrics.  The default is "picotemp".
	Namespace string
}

// Appender stores a record for the time it was taken.
type Appender interface {
	Append(t time.Time, record string) (string, error)
}

type Option interface {
	apply(s *Sampler)
}

// Result is the outcome of one sample.  Err is nil when the record was
// written.
type Result struct {
	Time    time.Time
	Reading reading.Reading
	Record  string
	Path    string
	Err     error
}

// OK reports if the sample was taken and written.
func (r Result) OK() bool {
	return r.Err == nil
}

type Sampler struct {
	m        sync.Mutex
	interval time.Duration
	sensor   adc.Reader
	log      Appender
	clock    clock.Clock
	console  io.Writer
	logger   *zap.Logger
	metrics  *metrics
	textfile *textfile
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New makes a new sampler that reads from sensor and writes to log.
func New(sensor adc.Reader, log Appender, cfg Config, opts ...Option) (*Sampler, error) {
	if sensor == nil || log == nil {
		return nil, fmt.Errorf("%w: a sensor and a log are required", ErrInvalidParameter)
	}
	if cfg.Interval < 0 {
		return nil, fmt.Errorf("%w: interval %s", ErrInvalidParameter, cfg.Interval)
	}
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "picotemp"
	}

	s := Sampler{
		interval: cfg.Interval,
		sensor:   sensor,
		log:      log,
		clock:    clock.New(),
		console:  os.Stdout,
		logger:   zap.NewNop(),
		metrics:  newMetrics(cfg.Namespace),
	}

	for _, opt := range opts {
		opt.apply(&s)
	}

	if err := s.metrics.register(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Start runs the sampling loop in the background until Stop is called or the
// context is cancelled.
func (s *Sampler) Start(ctx context.Context) error {
	s.m.Lock()
	defer s.m.Unlock()

	if s.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Run(ctx)
	}()

	return nil
}

// Stop ends the sampling loop and waits for it to finish.
func (s *Sampler) Stop() {
	s.m.Lock()
	defer s.m.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.wg.Wait()
		s.cancel = nil
	}
}

// Run samples immediately and then once every interval until the context is
// cancelled.
func (s *Sampler) Run(ctx context.Context) {
	fmt.Fprintln(s.console, Banner)
	s.logger.Info("sampling started", zap.Duration("interval", s.interval))

	for {
		r := s.LogOnce(ctx)
		if ctx.Err() != nil {
			break
		}
		s.handle(r)

		timer := s.clock.Timer(s.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("sampling stopped")
			return
		case <-timer.C:
		}
	}

	s.logger.Info("sampling stopped")
}

// LogOnce takes one sample, echoes the record to the console and appends it to
// the monthly log.  Failures are returned in the Result, never reported.
func (s *Sampler) LogOnce(ctx context.Context) Result {
	r := Result{
		Time: s.clock.Now(),
	}

	raw, err := s.sensor.ReadRaw(ctx)
	if err != nil {
		r.Err = fmt.Errorf("%w: %v", ErrSensor, err)
		return r
	}

	r.Reading = reading.FromRaw(raw)
	r.Record = templog.Format(r.Time, r.Reading.Temperature)

	fmt.Fprint(s.console, r.Record)

	r.Path, r.Err = s.log.Append(r.Time, r.Record)
	return r
}

func (s *Sampler) handle(r Result) {
	if r.OK() {
		s.metrics.success(r)
		s.logger.Debug("sample written",
			zap.Uint16("raw", r.Reading.Raw),
			zap.Float64("volts", r.Reading.Voltage),
			zap.Float64("celsius", r.Reading.Temperature.Celsius()),
			zap.String("file", r.Path))
	} else {
		s.metrics.failure()
		fmt.Fprintln(s.console, errorPrefix+r.Err.Error())
		s.logger.Warn("sample skipped", zap.Error(r.Err))
	}

	if err := s.textfile.write(); err != nil {
		s.logger.Error("unable to write metrics textfile", zap.Error(err))
	}
}

// UseClock provides a way to set the clock used.  This is used for testing.
func UseClock(c clock.Clock) Option {
	return optionFunc(func(s *Sampler) {
		s.clock = c
	})
}

// WithConsole sets where records and errors are echoed.  The default is
// os.Stdout.
func WithConsole(w io.Writer) Option {
	return optionFunc(func(s *Sampler) {
		s.console = w
	})
}

// WithLogger sets the operational logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(s *Sampler) {
		if l != nil {
			s.logger = l
		}
	})
}

type optionFunc func(*Sampler)

func (f optionFunc) apply(s *Sampler) {
	f(s)
}
