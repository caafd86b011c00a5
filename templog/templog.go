// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// Package templog writes temperature records to one append-only text file per
// calendar month.
package templog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schmidtw/picotemp/units"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrWrite            = errors.New("unable to write record")
)

const (
	// TimeFormat is the layout of the timestamp at the start of each record.
	TimeFormat = "2006-01-02 15:04:05"

	defaultPrefix   = "temperature"
	defaultFileMode = 0644
)

// Config provides the monthly log configuration options.
type Config struct {
	// Dir is the directory the monthly files are written to.  The default is
	// the working directory.
	Dir string

	// Prefix is the start of each file name.  The default is "temperature".
	Prefix string

	// FileMode is the permission used when a monthly file is created.  The
	// default is 0644.
	FileMode fs.FileMode

	// Sync forces the record to stable storage before the file is closed.
	Sync bool
}

// Log appends records to the file for the month they were taken in.  A file
// is opened, written and closed for every record so no handle is held between
// records.
type Log struct {
	mutex sync.Mutex
	dir   string
	pre   string
	mode  fs.FileMode
	sync  bool
}

// New makes a new monthly log.
func New(cfg Config) (*Log, error) {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.Prefix == "" {
		cfg.Prefix = defaultPrefix
	}
	if filepath.Base(cfg.Prefix) != cfg.Prefix {
		return nil, fmt.Errorf("%w: prefix '%s' must not contain a path",
			ErrInvalidParameter, cfg.Prefix)
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = defaultFileMode
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	return &Log{
		dir:  cfg.Dir,
		pre:  cfg.Prefix,
		mode: cfg.FileMode,
		sync: cfg.Sync,
	}, nil
}

// FileName returns the name of the monthly file for the time provided.
func (l *Log) FileName(t time.Time) string {
	return fmt.Sprintf("%s_%04d_%02d.txt", l.pre, t.Year(), int(t.Month()))
}

// Path returns the full path of the monthly file for the time provided.
func (l *Log) Path(t time.Time) string {
	return filepath.Join(l.dir, l.FileName(t))
}

// Format builds the record line for a temperature taken at the time provided.
func Format(t time.Time, temp units.Temperature) string {
	return t.Format(TimeFormat) + " - Temperature: " + temp.String() + "\n"
}

// Append writes the record to the monthly file for the time provided and
// returns the path written to.  The file is created when it does not exist.
func (l *Log) Append(t time.Time, record string) (string, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	path := l.Path(t)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, l.mode)
	if err != nil {
		return path, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if _, err = f.WriteString(record); err == nil && l.sync {
		err = f.Sync()
	}

	if e := f.Close(); e != nil && err == nil {
		err = e
	}

	if err != nil {
		return path, fmt.Errorf("%w: '%s' %v", ErrWrite, path, err)
	}

	return path, nil
}

// String returns the directory and file prefix of the log.
func (l *Log) String() string {
	return filepath.Join(l.dir, l.pre+"_YYYY_MM.txt")
}
