package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/kmalyshev/voice-interviewer/internal/config"
	"github.com/kmalyshev/voice-interviewer/pkg/httpclient"
)

// Sink plays one audio stream at a time on the local output device.
type Sink interface {
	PlayURL(ctx context.Context, url string) error
	PlayBytes(ctx context.Context, data []byte) error
	Stop()
}

// Player drives narration playback. While a clip is playing the recording
// guard in the session reducer refuses to start a capture. Playback failures
// are silent: a broken narration must never block the interview.
type Player struct {
	sink    Sink
	fetcher *httpclient.Connector
	cache   *gocache.Cache
	logger  *zap.Logger
	playing atomic.Bool

	// generation invalidates in-flight playback goroutines. Stop and every new
	// PlayURL bump it; a goroutine holding a stale value must not touch the
	// sink or the playing flag again.
	generation atomic.Uint64
}

func NewPlayer(sink Sink, fetcher *httpclient.Connector, cacheTTL time.Duration, logger *zap.Logger) *Player {
	return &Player{
		sink:    sink,
		fetcher: fetcher,
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
		logger:  logger,
	}
}

// PlayURL starts narration asynchronously. The playing flag flips on before
// this returns so recording guards observe it immediately; it clears when
// playback ends, errors out, or both attempts fail.
func (p *Player) PlayURL(ctx context.Context, url string) {
	if url == "" {
		return
	}

	gen := p.generation.Add(1)
	p.playing.Store(true)

	go func() {
		defer func() {
			if p.generation.Load() == gen {
				p.playing.Store(false)
			}
		}()

		if err := p.sink.PlayURL(ctx, url); err == nil {
			return
		}

		// Stop kills the sink mid-play, which also surfaces as an error here.
		// A stale generation means the failure was a kill, not a bad source.
		if p.generation.Load() != gen {
			return
		}

		// Direct playback failed (cross-origin, container, codec). Fetch the
		// bytes ourselves and retry once through the sink.
		data, err := p.fetchClip(ctx, url)
		if err != nil {
			p.logger.Warn("narration fetch fallback failed", zap.String("url", url), zap.Error(err))
			return
		}

		if p.generation.Load() != gen {
			return
		}
		if err := p.sink.PlayBytes(ctx, data); err != nil {
			p.logger.Warn("narration playback failed", zap.String("url", url), zap.Error(err))
		}
	}()
}

func (p *Player) fetchClip(ctx context.Context, url string) ([]byte, error) {
	if cached, ok := p.cache.Get(url); ok {
		return cached.([]byte), nil
	}

	data, err := p.fetcher.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch narration: %w", err)
	}

	p.cache.Set(url, data, gocache.DefaultExpiration)
	return data, nil
}

// IsPlaying reports whether narration is currently audible.
func (p *Player) IsPlaying() bool {
	return p.playing.Load()
}

// Stop kills the active playback, if any, and invalidates the in-flight
// playback goroutine so the fetch fallback cannot restart narration. Used by
// reset.
func (p *Player) Stop() {
	p.generation.Add(1)
	p.sink.Stop()
	p.playing.Store(false)
}

// FFplaySink plays audio by exec-ing ffplay without a display window.
type FFplaySink struct {
	cfg    config.AudioConfig
	logger *zap.Logger

	mu  sync.Mutex
	cmd *exec.Cmd
}

func NewFFplaySink(cfg config.AudioConfig, logger *zap.Logger) *FFplaySink {
	return &FFplaySink{cfg: cfg, logger: logger}
}

func (s *FFplaySink) PlayURL(ctx context.Context, url string) error {
	cmd := exec.CommandContext(ctx, s.cfg.FFplayBin,
		"-nodisp", "-autoexit", "-loglevel", "error", "-i", url)
	return s.run(cmd)
}

func (s *FFplaySink) PlayBytes(ctx context.Context, data []byte) error {
	cmd := exec.CommandContext(ctx, s.cfg.FFplayBin,
		"-nodisp", "-autoexit", "-loglevel", "error", "-i", "pipe:0")
	cmd.Stdin = bytes.NewReader(data)
	return s.run(cmd)
}

func (s *FFplaySink) run(cmd *exec.Cmd) error {
	s.mu.Lock()
	// Starting a new source simply replaces the active one.
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	s.cmd = cmd

	if err := cmd.Start(); err != nil {
		s.cmd = nil
		s.mu.Unlock()
		return fmt.Errorf("start ffplay: %w", err)
	}
	s.mu.Unlock()

	err := cmd.Wait()

	s.mu.Lock()
	if s.cmd == cmd {
		s.cmd = nil
	}
	s.mu.Unlock()

	return err
}

func (s *FFplaySink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	s.cmd = nil
}
