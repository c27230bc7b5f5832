package audio

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"go.uber.org/zap"

	"github.com/kmalyshev/voice-interviewer/internal/config"
)

// Source produces a live stream of s16le PCM from a microphone. The returned
// reader is exclusively owned by the caller until Close.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FFmpegSource captures the default microphone by exec-ing ffmpeg with the
// configured input format (alsa/pulse/avfoundation/dshow) and decoding to raw
// PCM on stdout.
type FFmpegSource struct {
	cfg    config.AudioConfig
	logger *zap.Logger
}

func NewFFmpegSource(cfg config.AudioConfig, logger *zap.Logger) *FFmpegSource {
	return &FFmpegSource{cfg: cfg, logger: logger}
}

func (s *FFmpegSource) Open(ctx context.Context) (io.ReadCloser, error) {
	args := []string{
		"-loglevel", "error",
		"-f", s.cfg.InputFormat,
		"-i", s.cfg.InputDevice,
		"-ac", strconv.Itoa(s.cfg.Channels),
		"-ar", strconv.Itoa(s.cfg.SampleRate),
		"-f", "s16le",
		"pipe:1",
	}

	cmd := exec.CommandContext(ctx, s.cfg.FFmpegBin, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("open ffmpeg stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg capture: %w", err)
	}

	s.logger.Debug("microphone capture started",
		zap.String("input_format", s.cfg.InputFormat),
		zap.String("input_device", s.cfg.InputDevice),
		zap.Int("sample_rate", s.cfg.SampleRate),
	)

	return &processReader{reader: stdout, cmd: cmd}, nil
}

// processReader ties the PCM stream to the capture process: Close kills the
// process and reaps it, releasing the device.
type processReader struct {
	reader io.ReadCloser
	cmd    *exec.Cmd
}

func (pr *processReader) Read(p []byte) (int, error) {
	return pr.reader.Read(p)
}

func (pr *processReader) Close() error {
	if pr.cmd.Process != nil {
		_ = pr.cmd.Process.Kill()
	}
	_ = pr.reader.Close()
	_ = pr.cmd.Wait()
	return nil
}
