package builder

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kmalyshev/voice-interviewer/internal/api"
	interviewapi "github.com/kmalyshev/voice-interviewer/internal/api/interview"
	"github.com/kmalyshev/voice-interviewer/internal/audio"
	"github.com/kmalyshev/voice-interviewer/internal/config"
	"github.com/kmalyshev/voice-interviewer/internal/entity"
	"github.com/kmalyshev/voice-interviewer/internal/integration/workflow"
	"github.com/kmalyshev/voice-interviewer/internal/pkg/formatter"
	"github.com/kmalyshev/voice-interviewer/internal/pkg/validator"
	"github.com/kmalyshev/voice-interviewer/internal/telegram"
	"github.com/kmalyshev/voice-interviewer/internal/usecase/interview"
	"github.com/kmalyshev/voice-interviewer/pkg/httpclient"
)

// exportFactory adapts the formatter factory to the usecase interface.
type exportFactory struct {
	inner *formatter.Factory
}

func (f exportFactory) Create(format entity.ReportFormat) (interview.TranscriptFormatter, error) {
	return f.inner.Create(format)
}

// buildConnector selects the real or mock workflow backend.
func buildConnector(cfg *config.Config, logger *zap.Logger) interview.WorkflowConnector {
	if cfg.EnableMocks {
		logger.Info("Using mock workflow connector")
		return workflow.NewMockConnector(logger)
	}
	return workflow.NewConnector(cfg.WorkflowCfg, logger)
}

// buildPlayer wires the narration player when local audio output is enabled.
func buildPlayer(cfg *config.Config, logger *zap.Logger) interview.Player {
	if !cfg.AudioCfg.EnableLocalAudio {
		return nil
	}

	sink := audio.NewFFplaySink(cfg.AudioCfg, logger)
	fetcher := httpclient.NewConnector(logger,
		httpclient.WithRequestTimeout(cfg.WorkflowCfg.RequestTimeout),
		httpclient.WithRequestLogging(),
	)

	return audio.NewPlayer(sink, fetcher, cfg.AudioCfg.NarrationCacheTTL, logger)
}

// BuildAPI assembles the HTTP facade application. The facade serves clients
// that capture their own audio, so no local recorder is wired.
func BuildAPI() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	uc := interview.NewUsecase(
		buildConnector(cfg, logger),
		nil,
		buildPlayer(cfg, logger),
		validator.NewProfileValidator(cfg.ResumeCfg),
		exportFactory{formatter.NewFactory()},
		logger,
	)
	logger.Info("Use case initialized")

	handler := interviewapi.NewHandler(uc)
	router := api.SetupRouter(handler, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// CLIApp bundles everything the terminal client needs.
type CLIApp struct {
	Usecase    *interview.Usecase
	Visualizer *audio.Visualizer
	Cfg        *config.Config
	Logger     *zap.Logger
}

// BuildCLI assembles the terminal client with the full local audio pipeline:
// microphone capture with a live waveform and narration playback.
func BuildCLI(waveformOut io.Writer) (*CLIApp, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building terminal client",
		zap.String("environment", cfg.Environment),
	)

	visualizer := audio.NewVisualizer(64, 9, waveformOut)

	var recorder interview.Recorder
	if cfg.AudioCfg.EnableLocalAudio {
		source := audio.NewFFmpegSource(cfg.AudioCfg, logger)
		recorder = audio.NewRecorder(source, cfg.AudioCfg.SampleRate, cfg.AudioCfg.Channels, visualizer.Feed, logger)
	}

	uc := interview.NewUsecase(
		buildConnector(cfg, logger),
		recorder,
		buildPlayer(cfg, logger),
		validator.NewProfileValidator(cfg.ResumeCfg),
		exportFactory{formatter.NewFactory()},
		logger,
	)

	logger.Info("Terminal client built successfully")

	return &CLIApp{
		Usecase:    uc,
		Visualizer: visualizer,
		Cfg:        cfg,
		Logger:     logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot front-end.
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	uc := interview.NewUsecase(
		buildConnector(cfg, logger),
		nil,
		nil,
		validator.NewProfileValidator(cfg.ResumeCfg),
		exportFactory{formatter.NewFactory()},
		logger,
	)
	logger.Info("Use case initialized")

	bot, err := telegram.NewBot(&cfg.TelegramCfg, uc, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}
