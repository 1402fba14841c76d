package monitor

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveBatch(t *testing.T, d *Debouncer) []Change {
	t.Helper()
	select {
	case batch := <-d.Batches():
		return batch
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a batch")
		return nil
	}
}

// A burst of events within the quiet window collapses into one batch.
func TestDebouncer_CollapsesBurst(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	d.Record("a.go", ChangeCreate)
	d.Record("b.go", ChangeWrite)
	d.Record("a.go", ChangeWrite)

	batch := receiveBatch(t, d)
	require.Len(t, batch, 2)

	byPath := map[string]ChangeOp{}
	for _, c := range batch {
		byPath[c.Path] = c.Op
	}
	// The latest operation per path wins.
	assert.Equal(t, ChangeWrite, byPath["a.go"])
	assert.Equal(t, ChangeWrite, byPath["b.go"])

	// Nothing else pending.
	select {
	case batch := <-d.Batches():
		t.Fatalf("unexpected extra batch: %v", batch)
	case <-time.After(100 * time.Millisecond):
	}
}

// Events separated by more than the quiet window arrive as separate batches.
func TestDebouncer_SeparateWindows(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	d.Record("first.go", ChangeWrite)
	first := receiveBatch(t, d)
	require.Len(t, first, 1)
	assert.Equal(t, "first.go", first[0].Path)

	d.Record("second.go", ChangeRemove)
	second := receiveBatch(t, d)
	require.Len(t, second, 1)
	assert.Equal(t, "second.go", second[0].Path)
	assert.Equal(t, ChangeRemove, second[0].Op)
}

// A saturated consumer drops batches instead of blocking the flush.
func TestDebouncer_DropsWhenSaturated(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)

	// Fill the channel past its capacity without consuming.
	for i := 0; i < 12; i++ {
		d.Record(fmt.Sprintf("file%d.go", i), ChangeWrite)
		time.Sleep(15 * time.Millisecond)
	}

	// Flushing must not have deadlocked; drain what survived.
	drained := 0
	for {
		select {
		case <-d.Batches():
			drained++
		default:
			assert.GreaterOrEqual(t, drained, 1)
			assert.LessOrEqual(t, drained, 8)
			return
		}
	}
}
