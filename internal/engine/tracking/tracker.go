package tracking

import (
	"sync"

	"github.com/dshills/revpoint/internal/engine/buffer"
)

// Stats counts the work done by an Updater.
type Stats struct {
	Edits     int // edits dispatched
	Updated   int // ranges moved
	Unchanged int // ranges left in place
}

// Updater applies edits to groups of tracked ranges and keeps running
// counts. All operations are thread-safe.
type Updater struct {
	mu    sync.Mutex
	stats Stats
}

// NewUpdater creates an Updater with zeroed stats.
func NewUpdater() *Updater {
	return &Updater{}
}

// UpdateAll rewrites every range in ranges to follow e and returns the
// indices of the ranges that moved, in ascending order.
func (u *Updater) UpdateAll(ranges []buffer.Range, e buffer.Edit) []int {
	var moved []int
	for i, r := range ranges {
		next, changed := UpdateRange(r, e)
		if changed {
			ranges[i] = next
			moved = append(moved, i)
		}
	}

	u.mu.Lock()
	u.stats.Edits++
	u.stats.Updated += len(moved)
	u.stats.Unchanged += len(ranges) - len(moved)
	u.mu.Unlock()

	return moved
}

// Stats returns a copy of the counters.
func (u *Updater) Stats() Stats {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.stats
}

// Reset zeroes the counters.
func (u *Updater) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.stats = Stats{}
}
