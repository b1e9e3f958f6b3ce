package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectDir string `json:"project_dir"`
	DataDir    string `json:"data_dir"`

	// Language-model backend (OpenAI-compatible).
	OpenAIAPIKey  string `json:"openai_api_key"`
	OpenAIBaseURL string `json:"openai_base_url"`
	Model         string `json:"model"`

	// Collaborator credentials and identity.
	GNewsAPIKey     string `json:"gnews_api_key"`
	RedditUserAgent string `json:"reddit_user_agent"`

	// Conversation transcript recording (sqlite). Off by default.
	HistoryEnabled bool `json:"history_enabled"`

	Debug bool `json:"debug"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	return &Config{
		ProjectDir: currentDir,
		DataDir:    filepath.Join(currentDir, "data"),

		OpenAIBaseURL: "https://api.openai.com/v1",
		Model:         "gpt-4o-mini",

		RedditUserAgent: "FinanceAgent/1.0 (market sentiment)",

		HistoryEnabled: false,
		Debug:          false,
	}
}

// Load builds the runtime configuration from defaults, an optional
// .env file, and environment variables, in that order.
func Load() *Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.OpenAIBaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GNEWS_API_KEY"); v != "" {
		cfg.GNewsAPIKey = v
	}
	if v := os.Getenv("REDDIT_USER_AGENT"); v != "" {
		cfg.RedditUserAgent = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("HISTORY_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.HistoryEnabled = b
		}
	}
	if v := os.Getenv("DEBUG"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.Debug = b
		}
	}

	return cfg
}

func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(c.DataDir, 0755)
}
