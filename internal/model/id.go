package model

import (
	"fmt"
	"time"
)

// IDGenerator mints identifiers in the textual format the target session
// format expects: "<epoch millis>-<n>" with n in 0..99. The suffix is a
// monotonic counter rather than a random draw; when more than 100 ids are
// requested within one millisecond the generator borrows from the next
// millisecond, so ids stay unique within a run.
type IDGenerator struct {
	now    func() time.Time
	millis int64
	seq    int
}

// NewIDGenerator returns a generator backed by the wall clock.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// NewIDGeneratorAt returns a generator backed by the given clock.
// Used in tests for deterministic ids.
func NewIDGeneratorAt(now func() time.Time) *IDGenerator {
	return &IDGenerator{now: now}
}

// Next returns the next identifier.
func (g *IDGenerator) Next() string {
	ms := g.now().UnixMilli()
	switch {
	case ms > g.millis:
		g.millis = ms
		g.seq = 0
	case g.seq < 99:
		g.seq++
	default:
		g.millis++
		g.seq = 0
	}
	return fmt.Sprintf("%d-%d", g.millis, g.seq)
}
