package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_SingleEvent_PassesThrough(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "words.md", Operation: OpModify, Timestamp: time.Now()})

	select {
	case batch := <-d.Output():
		require.Len(t, batch, 1)
		assert.Equal(t, "words.md", batch[0].Path)
		assert.Equal(t, OpModify, batch[0].Operation)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for debounced event")
	}
}

func TestDebouncer_BurstCoalesces(t *testing.T) {
	d := NewDebouncer(100 * time.Millisecond)
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Add(FileEvent{Path: "words.md", Operation: OpModify, Timestamp: time.Now()})
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case batch := <-d.Output():
		require.Len(t, batch, 1)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for debounced events")
	}

	select {
	case batch := <-d.Output():
		t.Fatalf("unexpected second batch: %v", batch)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestDebouncer_CreateThenModifyStaysCreate(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "new.md", Operation: OpCreate})
	d.Add(FileEvent{Path: "new.md", Operation: OpModify})
	d.Add(FileEvent{Path: "other.md", Operation: OpModify})

	select {
	case batch := <-d.Output():
		require.Len(t, batch, 2)
		assert.Equal(t, "new.md", batch[0].Path)
		assert.Equal(t, OpCreate, batch[0].Operation)
		assert.Equal(t, "other.md", batch[1].Path)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for debounced events")
	}
}

func TestDebouncer_StopIsIdempotent(t *testing.T) {
	d := NewDebouncer(time.Hour)
	d.Add(FileEvent{Path: "words.md"})
	d.Stop()
	d.Stop()
	d.Add(FileEvent{Path: "late.md"})

	_, ok := <-d.Output()
	assert.False(t, ok)
}
