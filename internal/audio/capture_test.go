package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
)

// pipeSource streams whatever the test writes into the pipe.
type pipeSource struct {
	reader *io.PipeReader
	openEr error
}

func (s *pipeSource) Open(context.Context) (io.ReadCloser, error) {
	if s.openEr != nil {
		return nil, s.openEr
	}
	return s.reader, nil
}

func pcmBytes(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

func TestRecorderProducesWAVClip(t *testing.T) {
	pr, pw := io.Pipe()
	r := NewRecorder(&pipeSource{reader: pr}, 16000, 1, nil, zap.NewNop())

	now := time.Now()
	r.clock = func() time.Time { return now }

	require.NoError(t, r.Start(context.Background()))
	assert.True(t, r.IsRecording())

	payload := pcmBytes(0, 100, -100, 32767, -32768)
	_, err := pw.Write(payload)
	require.NoError(t, err)
	pw.Close()

	now = now.Add(2 * time.Second)

	clip, err := r.Stop()
	require.NoError(t, err)
	require.NotNil(t, clip)

	assert.Equal(t, "audio/wav", clip.ContentType)
	assert.Equal(t, 2*time.Second, clip.Duration)
	assert.False(t, r.IsRecording())

	// RIFF header followed by the captured PCM payload.
	require.Greater(t, len(clip.Data), 44)
	assert.Equal(t, "RIFF", string(clip.Data[:4]))
	assert.Equal(t, "WAVE", string(clip.Data[8:12]))
	assert.Equal(t, payload, clip.Data[44:])
}

func TestRecorderStopWhileIdleIsNoop(t *testing.T) {
	pr, _ := io.Pipe()
	r := NewRecorder(&pipeSource{reader: pr}, 16000, 1, nil, zap.NewNop())

	clip, err := r.Stop()
	require.NoError(t, err)
	assert.Nil(t, clip)
}

func TestRecorderRejectsDoubleStart(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	r := NewRecorder(&pipeSource{reader: pr}, 16000, 1, nil, zap.NewNop())
	require.NoError(t, r.Start(context.Background()))

	err := r.Start(context.Background())
	require.ErrorIs(t, err, entity.ErrAlreadyRecording)

	r.Abort()
}

func TestRecorderStartWrapsDeviceFailure(t *testing.T) {
	r := NewRecorder(&pipeSource{openEr: errors.New("device busy")}, 16000, 1, nil, zap.NewNop())

	err := r.Start(context.Background())
	require.ErrorIs(t, err, entity.ErrMicrophoneUnavailable)
	assert.False(t, r.IsRecording())
}

func TestRecorderAbortDiscardsBufferedAudio(t *testing.T) {
	pr, pw := io.Pipe()
	r := NewRecorder(&pipeSource{reader: pr}, 16000, 1, nil, zap.NewNop())

	require.NoError(t, r.Start(context.Background()))
	_, err := pw.Write(pcmBytes(1, 2, 3))
	require.NoError(t, err)
	pw.Close()

	r.Abort()
	assert.False(t, r.IsRecording())

	// A fresh capture must start from an empty buffer.
	pr2, pw2 := io.Pipe()
	r.source = &pipeSource{reader: pr2}
	require.NoError(t, r.Start(context.Background()))
	pw2.Close()

	clip, err := r.Stop()
	require.NoError(t, err)
	require.NotNil(t, clip)
	assert.Len(t, clip.Data, 44, "only the WAV header, no stale PCM")
}

func TestRecorderTapSurvivesOddLengthChunks(t *testing.T) {
	pr, pw := io.Pipe()

	var mu sync.Mutex
	var tapped []int16
	tap := func(samples []int16) {
		mu.Lock()
		tapped = append(tapped, samples...)
		mu.Unlock()
	}

	r := NewRecorder(&pipeSource{reader: pr}, 16000, 1, tap, zap.NewNop())
	require.NoError(t, r.Start(context.Background()))

	// Split the payload mid-sample: each write arrives as its own read, so the
	// first chunk carries a trailing odd byte.
	payload := pcmBytes(10, -20, 30)
	_, err := pw.Write(payload[:3])
	require.NoError(t, err)
	_, err = pw.Write(payload[3:])
	require.NoError(t, err)
	pw.Close()

	clip, err := r.Stop()
	require.NoError(t, err)
	require.NotNil(t, clip)

	// Samples stay aligned for the tap and the WAV payload stays byte-exact.
	mu.Lock()
	assert.Equal(t, []int16{10, -20, 30}, tapped)
	mu.Unlock()
	assert.Equal(t, payload, clip.Data[44:])
}

func TestRecorderFeedsTap(t *testing.T) {
	pr, pw := io.Pipe()

	var mu sync.Mutex
	var tapped []int16
	tap := func(samples []int16) {
		mu.Lock()
		tapped = append(tapped, samples...)
		mu.Unlock()
	}

	r := NewRecorder(&pipeSource{reader: pr}, 16000, 1, tap, zap.NewNop())
	require.NoError(t, r.Start(context.Background()))

	_, err := pw.Write(pcmBytes(10, -20, 30))
	require.NoError(t, err)
	pw.Close()

	_, err = r.Stop()
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int16{10, -20, 30}, tapped)
}
