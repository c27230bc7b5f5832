package audio

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
)

const captureChunkSize = 4096

// Tap receives decoded sample windows while a recording is live. Used by the
// waveform visualizer.
type Tap func(samples []int16)

// Recorder owns the microphone stream for the duration of one recording and
// produces exactly one clip per start/stop cycle. Stop while idle is a no-op;
// Abort discards buffered audio without producing a clip.
type Recorder struct {
	source     Source
	tap        Tap
	logger     *zap.Logger
	sampleRate int
	channels   int

	mu        sync.Mutex
	active    bool
	chunks    [][]byte
	stream    io.ReadCloser
	done      chan struct{}
	startedAt time.Time
	clock     func() time.Time
}

func NewRecorder(source Source, sampleRate, channels int, tap Tap, logger *zap.Logger) *Recorder {
	return &Recorder{
		source:     source,
		tap:        tap,
		logger:     logger,
		sampleRate: sampleRate,
		channels:   channels,
		clock:      time.Now,
	}
}

// Start acquires the microphone and begins buffering PCM chunks. A denied or
// missing device surfaces as ErrMicrophoneUnavailable for the caller to report.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active {
		return entity.ErrAlreadyRecording
	}

	stream, err := r.source.Open(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrMicrophoneUnavailable, err)
	}

	r.stream = stream
	r.chunks = nil
	r.active = true
	r.startedAt = r.clock()
	r.done = make(chan struct{})

	go r.readLoop(stream, r.done)

	return nil
}

func (r *Recorder) readLoop(stream io.Reader, done chan struct{}) {
	defer close(done)

	buf := make([]byte, captureChunkSize)
	// Reads do not arrive sample-aligned; a trailing odd byte is carried into
	// the next chunk so the tap always decodes whole samples.
	var carry []byte
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])

			r.mu.Lock()
			r.chunks = append(r.chunks, chunk)
			r.mu.Unlock()

			if r.tap != nil {
				data := chunk
				if len(carry) > 0 {
					data = append(carry, chunk...)
				}
				if len(data)%2 != 0 {
					carry = []byte{data[len(data)-1]}
					data = data[:len(data)-1]
				} else {
					carry = nil
				}
				if len(data) > 0 {
					r.tap(pcmSamples(data))
				}
			}
		}
		if err != nil {
			if err != io.EOF {
				r.logger.Debug("capture stream ended", zap.Error(err))
			}
			return
		}
	}
}

// Stop finalizes the recording into one WAV clip and releases the microphone.
// Calling Stop when no capture is active returns (nil, nil).
func (r *Recorder) Stop() (*entity.Clip, error) {
	pcm, duration, stopped := r.teardown()
	if !stopped {
		return nil, nil
	}

	clip := &entity.Clip{
		Data:        EncodeWAV(pcm, r.sampleRate, r.channels),
		ContentType: "audio/wav",
		Duration:    duration,
	}

	r.logger.Info("recording finalized",
		zap.Int("pcm_bytes", len(pcm)),
		zap.Duration("duration", duration),
	)

	return clip, nil
}

// Abort releases the microphone and discards everything buffered so far.
func (r *Recorder) Abort() {
	if _, _, stopped := r.teardown(); stopped {
		r.logger.Info("recording aborted, clip discarded")
	}
}

// teardown stops the stream, waits for the read loop and drains the chunk
// list. Returns false when no capture was active.
func (r *Recorder) teardown() ([]byte, time.Duration, bool) {
	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		return nil, 0, false
	}
	r.active = false
	stream := r.stream
	done := r.done
	startedAt := r.startedAt
	r.stream = nil
	r.mu.Unlock()

	// Closing the stream unblocks the read loop.
	_ = stream.Close()
	<-done

	r.mu.Lock()
	var pcm []byte
	for _, chunk := range r.chunks {
		pcm = append(pcm, chunk...)
	}
	r.chunks = nil
	r.mu.Unlock()

	return pcm, r.clock().Sub(startedAt), true
}

// IsRecording reports whether a capture is live.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}
