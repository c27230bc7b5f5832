package handlers

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
)

const (
	maxTelegramFileSize = 10 * 1024 * 1024 // 10 MB
	downloadTimeout     = 30 * time.Second
)

var secureHTTPClient = &http.Client{
	Timeout: downloadTimeout,
	Transport: &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
}

// downloadFile fetches a file from the Telegram file API over HTTPS.
func downloadFile(ctx context.Context, bot *tgbotapi.BotAPI, fileID string) ([]byte, error) {
	file, err := bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file info: %w", err)
	}

	if file.FileSize > maxTelegramFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", file.FileSize, maxTelegramFileSize)
	}

	fileURL := file.Link(bot.Token)

	parsedURL, err := url.Parse(fileURL)
	if err != nil {
		return nil, fmt.Errorf("invalid file URL: %w", err)
	}
	if parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("insecure URL scheme: %s (expected https)", parsedURL.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := secureHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTelegramFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file data: %w", err)
	}
	if len(data) > maxTelegramFileSize {
		return nil, fmt.Errorf("file too large after download")
	}

	return data, nil
}

// downloadVoiceClip fetches a Telegram voice message and wraps it as a clip.
// Telegram serves voice as OGG/Opus; the clip is submitted as-is and the
// workflow backend handles the container.
func downloadVoiceClip(ctx context.Context, bot *tgbotapi.BotAPI, voice *tgbotapi.Voice) (*entity.Clip, error) {
	data, err := downloadFile(ctx, bot, voice.FileID)
	if err != nil {
		return nil, err
	}

	return &entity.Clip{
		Data:        data,
		ContentType: "audio/ogg",
		Duration:    time.Duration(voice.Duration) * time.Second,
	}, nil
}

// downloadResume fetches a Telegram document and wraps it as a resume file.
func downloadResume(ctx context.Context, bot *tgbotapi.BotAPI, doc *tgbotapi.Document) (*entity.ResumeFile, error) {
	data, err := downloadFile(ctx, bot, doc.FileID)
	if err != nil {
		return nil, err
	}

	return &entity.ResumeFile{
		Name:        doc.FileName,
		ContentType: doc.MimeType,
		Data:        data,
	}, nil
}
