package audio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kmalyshev/voice-interviewer/pkg/httpclient"
)

type fakeSink struct {
	mu         sync.Mutex
	urlErr     error
	bytesErr   error
	playedURLs []string
	playedData [][]byte
	done       chan struct{}
}

func newFakeSink(urlErr, bytesErr error) *fakeSink {
	return &fakeSink{urlErr: urlErr, bytesErr: bytesErr, done: make(chan struct{}, 4)}
}

func (s *fakeSink) PlayURL(_ context.Context, url string) error {
	s.mu.Lock()
	s.playedURLs = append(s.playedURLs, url)
	s.mu.Unlock()
	if s.urlErr == nil {
		s.done <- struct{}{}
	}
	return s.urlErr
}

func (s *fakeSink) PlayBytes(_ context.Context, data []byte) error {
	s.mu.Lock()
	s.playedData = append(s.playedData, data)
	s.mu.Unlock()
	s.done <- struct{}{}
	return s.bytesErr
}

func (s *fakeSink) Stop() {}

func waitFor(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for playback")
	}
}

func waitNotPlaying(t *testing.T, p *Player) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for p.IsPlaying() {
		if time.Now().After(deadline) {
			t.Fatal("player never became idle")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPlayerDirectPlayback(t *testing.T) {
	sink := newFakeSink(nil, nil)
	p := NewPlayer(sink, httpclient.NewConnector(zap.NewNop()), time.Minute, zap.NewNop())

	p.PlayURL(context.Background(), "https://tts.example/q.mp3")

	waitFor(t, sink.done)
	waitNotPlaying(t, p)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.playedURLs, 1)
	assert.Empty(t, sink.playedData)
}

func TestPlayerFallsBackToFetchedBytes(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("clip-bytes"))
	}))
	defer server.Close()

	sink := newFakeSink(errors.New("unsupported container"), nil)
	p := NewPlayer(sink, httpclient.NewConnector(zap.NewNop()), time.Minute, zap.NewNop())

	p.PlayURL(context.Background(), server.URL+"/q.mp3")
	waitFor(t, sink.done)
	waitNotPlaying(t, p)

	sink.mu.Lock()
	require.Len(t, sink.playedData, 1)
	assert.Equal(t, []byte("clip-bytes"), sink.playedData[0])
	sink.mu.Unlock()

	// Same URL again: bytes must come from the cache.
	p.PlayURL(context.Background(), server.URL+"/q.mp3")
	waitFor(t, sink.done)
	waitNotPlaying(t, p)

	assert.Equal(t, int32(1), hits.Load())
}

func TestPlayerBothAttemptsFailSilently(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	sink := newFakeSink(errors.New("no device"), nil)
	p := NewPlayer(sink, httpclient.NewConnector(zap.NewNop()), time.Minute, zap.NewNop())

	p.PlayURL(context.Background(), server.URL+"/missing.mp3")
	waitNotPlaying(t, p)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Empty(t, sink.playedData)
}

func TestPlayerEmptyURLIsNoop(t *testing.T) {
	sink := newFakeSink(nil, nil)
	p := NewPlayer(sink, httpclient.NewConnector(zap.NewNop()), time.Minute, zap.NewNop())

	p.PlayURL(context.Background(), "")
	assert.False(t, p.IsPlaying())

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Empty(t, sink.playedURLs)
}

// blockingSink stays inside PlayURL until Stop kills it, then reports the
// kill as a playback error, the way ffplay does.
type blockingSink struct {
	started    chan struct{}
	killed     chan struct{}
	stopOnce   sync.Once
	bytesCalls atomic.Int32
}

func newBlockingSink() *blockingSink {
	return &blockingSink{
		started: make(chan struct{}),
		killed:  make(chan struct{}),
	}
}

func (s *blockingSink) PlayURL(context.Context, string) error {
	close(s.started)
	<-s.killed
	return errors.New("killed")
}

func (s *blockingSink) PlayBytes(context.Context, []byte) error {
	s.bytesCalls.Add(1)
	return nil
}

func (s *blockingSink) Stop() {
	s.stopOnce.Do(func() { close(s.killed) })
}

func TestPlayerStopPreventsFetchFallback(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("clip-bytes"))
	}))
	defer server.Close()

	sink := newBlockingSink()
	p := NewPlayer(sink, httpclient.NewConnector(zap.NewNop()), time.Minute, zap.NewNop())

	p.PlayURL(context.Background(), server.URL+"/q.mp3")
	<-sink.started

	p.Stop()
	assert.False(t, p.IsPlaying())

	// The kill-induced error must not trigger the fetch fallback: narration
	// stays stopped after Stop.
	assert.Never(t, func() bool {
		return hits.Load() > 0 || sink.bytesCalls.Load() > 0
	}, 300*time.Millisecond, 10*time.Millisecond)
}

func TestPlayerStopClearsPlayingFlag(t *testing.T) {
	sink := newFakeSink(nil, nil)
	p := NewPlayer(sink, httpclient.NewConnector(zap.NewNop()), time.Minute, zap.NewNop())

	p.playing.Store(true)
	p.Stop()
	assert.False(t, p.IsPlaying())
}
