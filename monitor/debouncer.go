package monitor

import (
	"sync"
	"time"
)

// ChangeOp classifies a file system change.
type ChangeOp int

const (
	ChangeCreate ChangeOp = iota
	ChangeWrite
	ChangeRemove
	ChangeRename
)

// Change is one collapsed file system change inside a debounce window.
type Change struct {
	Path string
	Op   ChangeOp
}

// Debouncer batches file system changes: bursts of events within the quiet
// interval collapse to one batch, keeping a save-heavy editor from
// triggering a rescan per keystroke. Changes to the same path keep only the
// latest operation.
type Debouncer struct {
	interval time.Duration
	pending  map[string]Change
	mu       sync.Mutex
	timer    *time.Timer
	batches  chan []Change
}

// NewDebouncer creates a debouncer with the given quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		pending:  make(map[string]Change),
		batches:  make(chan []Change, 8),
	}
}

// Batches returns the channel receiving collapsed change batches.
func (d *Debouncer) Batches() <-chan []Change {
	return d.batches
}

// Record adds a change to the current window and restarts the quiet timer.
func (d *Debouncer) Record(path string, op ChangeOp) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = Change{Path: path, Op: op}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.pending) == 0 {
		return
	}

	batch := make([]Change, 0, len(d.pending))
	for _, c := range d.pending {
		batch = append(batch, c)
	}
	d.pending = make(map[string]Change)

	// Drop the batch if the consumer is saturated; the next poll cycle
	// picks the changes up anyway.
	select {
	case d.batches <- batch:
	default:
	}
}
