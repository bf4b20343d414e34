package config

import (
	"fmt"
	"os"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string
	JWTSecret    string

	// HTTP API
	APIAddr string

	// Telegram Config
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64
	AdminTelegramID     int64

	// Shopping list defaults
	DefaultListName string

	// Text export archive
	ArchiveDir string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		return nil, fmt.Errorf("DATABASE_PATH environment variable not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	apiAddr := os.Getenv("API_ADDR")
	if apiAddr == "" {
		apiAddr = ":8080"
	}

	defaultListName := os.Getenv("DEFAULT_LIST_NAME")
	if defaultListName == "" {
		defaultListName = "Shopping List"
	}

	archiveDir := os.Getenv("ARCHIVE_DIR")
	if archiveDir == "" {
		archiveDir = "data/exports"
	}

	// Telegram Config (Optional for CLI and API, required for Bot)
	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	telegramWebhookURL := os.Getenv("TELEGRAM_WEBHOOK_URL")

	var telegramAllowUserID int64
	if s := os.Getenv("TELEGRAM_ALLOW_USER_ID"); s != "" {
		fmt.Sscanf(s, "%d", &telegramAllowUserID)
	}
	var adminTelegramID int64
	if s := os.Getenv("ADMIN_TELEGRAM_ID"); s != "" {
		fmt.Sscanf(s, "%d", &adminTelegramID)
	}

	return &Config{
		DatabasePath:        databasePath,
		JWTSecret:           jwtSecret,
		APIAddr:             apiAddr,
		TelegramBotToken:    telegramBotToken,
		TelegramWebhookURL:  telegramWebhookURL,
		TelegramAllowUserID: telegramAllowUserID,
		AdminTelegramID:     adminTelegramID,
		DefaultListName:     defaultListName,
		ArchiveDir:          archiveDir,
	}, nil
}
