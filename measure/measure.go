// Package measure is the engines' optional instrumentation sink: a
// package-global, mutex-guarded counter map gated by Enabled, in the
// snapshot-and-reset style of a measureutil/measure.Global facade.
package measure

import "sync"

// Enabled gates every Inc call so the hot path pays nothing (not even a
// mutex lock) when diagnostics are off.
var Enabled = false

type counters struct {
	mu     sync.Mutex
	values map[string]uint64
}

// Global is the single process-wide counter set every engine reports into.
var Global = &counters{values: make(map[string]uint64)}

// Inc increments the named counter by delta. A no-op when Enabled is false.
func Inc(name string, delta uint64) {
	if !Enabled {
		return
	}
	Global.mu.Lock()
	Global.values[name] += delta
	Global.mu.Unlock()
}

// SnapshotAndReset returns a copy of the current counters and clears them,
// matching measureutil.SnapshotAndReset's shape.
func (c *counters) SnapshotAndReset() map[string]uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]uint64, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	c.values = make(map[string]uint64)
	return out
}
