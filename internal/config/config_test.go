package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		AudioCfg: AudioConfig{
			SampleRate: 16000,
			Channels:   1,
		},
		ResumeCfg: ResumeUploadConfig{MaxFileSize: 5 << 20},
	}
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(validTestConfig()))

	t.Run("sample rate out of range", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.AudioCfg.SampleRate = 4000
		err := validateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AUDIO_SAMPLE_RATE")
	})

	t.Run("bad channel count", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.AudioCfg.Channels = 3
		err := validateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AUDIO_CHANNELS")
	})

	t.Run("resume limit too small", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.ResumeCfg.MaxFileSize = 100
		err := validateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RESUME_MAX_FILE_SIZE")
	})

	t.Run("errors accumulate", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.AudioCfg.SampleRate = 0
		cfg.AudioCfg.Channels = 0
		err := validateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AUDIO_SAMPLE_RATE")
		assert.Contains(t, err.Error(), "AUDIO_CHANNELS")
	})
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("prod"))
	assert.Equal(t, ".env.prod", getEnvFile("production"))
	assert.Equal(t, ".env.local", getEnvFile("local"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}
