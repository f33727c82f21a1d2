package cache

import "time"

// SetClock replaces the memory cache clock for expiry tests.
func (m *Memory) SetClock(now func() time.Time) { m.now = now }
