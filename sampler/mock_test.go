// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package sampler

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

type mockReader struct {
	mock.Mock
}

func (m *mockReader) ReadRaw(ctx context.Context) (uint16, error) {
	a := m.Called(ctx)
	return a.Get(0).(uint16), a.Error(1)
}

// scriptedReader is safe to use from the sampling goroutine.  Reads listed in
// fail return errUnknown; every other read returns raw.
type scriptedReader struct {
	m         sync.Mutex
	raw       uint16
	fail      map[int]bool
	reads     int
	successes int
}

func (s *scriptedReader) ReadRaw(context.Context) (uint16, error) {
	s.m.Lock()
	defer s.m.Unlock()

	s.reads++
	if s.fail[s.reads] {
		return 0, errUnknown
	}
	s.successes++
	return s.raw, nil
}

func (s *scriptedReader) counts() (reads, successes int) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.reads, s.successes
}
