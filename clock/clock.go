// Package clock supplies record timestamps and the base/delta bookkeeping the
// record format depends on.
//
// Timestamps are opaque monotonically non-decreasing uint64 tick counts. The
// Converter holds the current base timestamp; deltas against it fit in 16 bits,
// which at nanosecond resolution gives a ~65µs window between forced rebases.
// Rebasing is rare on a hot path that logs every few microseconds, and always
// safe: the encoder emits a fresh base record and the window restarts.
package clock

import (
	"time"

	"github.com/arloliu/binlog/section"
)

// processStart anchors Sample. Ticks are nanoseconds since process start,
// taken from the runtime monotonic clock, so samples never go backwards.
var processStart = time.Now()

// Sample returns the current tick count.
//
// Ticks are monotonically non-decreasing within one process and are treated as
// opaque by decoders; converting them to wall-clock time is a post-processing
// concern.
func Sample() uint64 {
	return uint64(time.Since(processStart))
}

// Converter tracks the base timestamp that delta records are measured against.
//
// A Converter belongs to exactly one Logger and is not safe for concurrent use.
// The zero value is ready to use and holds no base.
type Converter struct {
	base    uint64
	hasBase bool
}

// Encode maps the sample now onto the base/delta scheme.
//
// If a base is held and now is within the 16-bit window, Encode returns the
// delta with rebase=false. Otherwise it adopts now as the new base and returns
// rebase=true; the caller must emit a base record carrying now before any
// record that uses the returned delta (which is 0 in that case).
func (c *Converter) Encode(now uint64) (delta uint16, rebase bool) {
	if !c.hasBase || now-c.base > section.MaxRelativeTicks {
		c.base = now
		c.hasBase = true

		return 0, true
	}

	return uint16(now - c.base), false
}

// Base returns the currently held base timestamp, or 0 if none is held.
func (c *Converter) Base() uint64 {
	return c.base
}

// Reset drops the current base. The next Encode call reports a rebase.
func (c *Converter) Reset() {
	c.base = 0
	c.hasBase = false
}
