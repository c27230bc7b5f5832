package audio

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncWriter lets the test observe frames written by the frame loop.
type syncWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *syncWriter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Len()
}

func TestFrameSilenceDrawsMidline(t *testing.T) {
	v := NewVisualizer(8, 5, &bytes.Buffer{})

	frame := v.Frame()
	lines := strings.Split(strings.TrimRight(frame, "\n"), "\n")
	require.Len(t, lines, 5)

	// With no samples every column sits on the midline row.
	assert.Equal(t, strings.Repeat("█", 8), lines[2])
	assert.Equal(t, strings.Repeat(" ", 8), lines[0])
}

func TestFrameMapsSampleAmplitudeToRows(t *testing.T) {
	v := NewVisualizer(4, 5, &bytes.Buffer{})

	v.Feed([]int16{32767, 32767, -32768, -32768})
	frame := v.Frame()
	lines := strings.Split(strings.TrimRight(frame, "\n"), "\n")
	require.Len(t, lines, 5)

	// Positive peaks render at the top row, negative at the bottom.
	assert.Equal(t, "██  ", lines[0])
	assert.Equal(t, "  ██", lines[4])
	assert.Equal(t, "────", lines[2])
}

func TestFrameLoopStopsAfterStop(t *testing.T) {
	out := &syncWriter{}
	v := NewVisualizer(4, 3, out)

	v.Start(5 * time.Millisecond)
	deadline := time.Now().Add(time.Second)
	for out.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("frame loop never produced a frame")
		}
		time.Sleep(time.Millisecond)
	}

	v.Stop()
	time.Sleep(20 * time.Millisecond)
	settled := out.Len()
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, settled, out.Len(), "no frames may be drawn after Stop")
}

func TestRestartInvalidatesPreviousLoop(t *testing.T) {
	out := &syncWriter{}
	v := NewVisualizer(4, 3, out)

	v.Start(5 * time.Millisecond)
	v.Start(5 * time.Millisecond)
	v.Stop()

	time.Sleep(30 * time.Millisecond)
	settled := out.Len()
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, settled, out.Len())
}
