package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	pkgretry "github.com/kmalyshev/voice-interviewer/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// HTTP facade configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8085"`

	// Workflow backend (the two webhook endpoints)
	WorkflowCfg WorkflowConnectorConfig `envPrefix:"WORKFLOW_"`

	// Local audio pipeline
	AudioCfg AudioConfig `envPrefix:"AUDIO_"`

	// Resume upload limits
	ResumeCfg ResumeUploadConfig `envPrefix:"RESUME_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (used by cmd/telegram-bot only)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// WorkflowConnectorConfig points at the two fixed webhook endpoints. The start
// endpoint also serves hint requests.
type WorkflowConnectorConfig struct {
	HTTPClientConfig
	StartURL  string               `env:"START_URL,notEmpty"`
	AnswerURL string               `env:"ANSWER_URL,notEmpty"`
	Retry     pkgretry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	DialTimeout           time.Duration `env:"DIAL_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
}

// AudioConfig drives microphone capture and narration playback.
type AudioConfig struct {
	SampleRate  int    `env:"SAMPLE_RATE" envDefault:"16000"`
	Channels    int    `env:"CHANNELS" envDefault:"1"`
	InputFormat string `env:"INPUT_FORMAT" envDefault:"alsa"`
	InputDevice string `env:"INPUT_DEVICE" envDefault:"default"`
	FFmpegBin   string `env:"FFMPEG_BIN" envDefault:"ffmpeg"`
	FFplayBin   string `env:"FFPLAY_BIN" envDefault:"ffplay"`

	// Narration clips fetched as a playback fallback are cached this long.
	NarrationCacheTTL time.Duration `env:"NARRATION_CACHE_TTL" envDefault:"10m"`

	// Local audio is disabled for adapters whose clients capture their own
	// audio (HTTP facade, telegram).
	EnableLocalAudio bool `env:"ENABLE_LOCAL" envDefault:"true"`
}

// ResumeUploadConfig holds resume file limits
type ResumeUploadConfig struct {
	MaxFileSize int64 `env:"MAX_FILE_SIZE" envDefault:"5242880"` // 5 MiB
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	Debug              bool   `env:"DEBUG" envDefault:"false"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errs []string

	if cfg.AudioCfg.SampleRate < 8000 || cfg.AudioCfg.SampleRate > 48000 {
		errs = append(errs, fmt.Sprintf("AUDIO_SAMPLE_RATE must be between 8000 and 48000, got %d", cfg.AudioCfg.SampleRate))
	}

	if cfg.AudioCfg.Channels != 1 && cfg.AudioCfg.Channels != 2 {
		errs = append(errs, fmt.Sprintf("AUDIO_CHANNELS must be 1 or 2, got %d", cfg.AudioCfg.Channels))
	}

	if cfg.ResumeCfg.MaxFileSize < 1024 {
		errs = append(errs, fmt.Sprintf("RESUME_MAX_FILE_SIZE must be at least 1024 bytes, got %d", cfg.ResumeCfg.MaxFileSize))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
