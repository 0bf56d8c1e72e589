package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	AppName    = "AbstractSummarizer"
	AppVersion = "1.0.0"
)

// Summarizer holds the configuration for the summarization model backend.
type Summarizer struct {
	Provider      string // openai, anthropic, compatible
	APIKey        string
	BaseURL       string // optional for openai, required for compatible
	Model         string
	MaxLength     int // upper bound of the summary, in words
	MinLength     int // lower bound of the summary, in words
	RateLimit     int // model calls per second across the process
	MaxConcurrent int // concurrent in-flight model calls
}

type Config struct {
	Addr          string
	DBPath        string
	DataDir       string
	DownloadsDir  string
	LogLevel      string
	JWTSecret     string
	SnowflakeNode int64
	Summarizer    Summarizer
}

func Load() Config {
	// Same behavior as a dotenv loader in any web stack: a missing .env file
	// is not an error.
	_ = godotenv.Load()

	addr := getEnv("SUMMARIZER_ADDR", ":8080")
	dataDir := getEnv("SUMMARIZER_DATA_DIR", "./data")
	dbPath := getEnv("SUMMARIZER_DB_PATH", filepath.Join(dataDir, "summarizer.db"))
	downloadsDir := getEnv("SUMMARIZER_DOWNLOADS_DIR", filepath.Join(dataDir, "downloads"))

	return Config{
		Addr:          addr,
		DBPath:        filepath.Clean(dbPath),
		DataDir:       filepath.Clean(dataDir),
		DownloadsDir:  filepath.Clean(downloadsDir),
		LogLevel:      getEnv("SUMMARIZER_LOG_LEVEL", "info"),
		JWTSecret:     getEnv("SUMMARIZER_JWT_SECRET", ""),
		SnowflakeNode: getEnvInt64("SUMMARIZER_NODE_ID", 0),
		Summarizer: Summarizer{
			Provider:      getEnv("SUMMARIZER_AI_PROVIDER", "openai"),
			APIKey:        getEnv("SUMMARIZER_AI_API_KEY", ""),
			BaseURL:       getEnv("SUMMARIZER_AI_BASE_URL", ""),
			Model:         getEnv("SUMMARIZER_AI_MODEL", "gpt-4o-mini"),
			MaxLength:     getEnvInt("SUMMARIZER_MAX_LENGTH", 130),
			MinLength:     getEnvInt("SUMMARIZER_MIN_LENGTH", 30),
			RateLimit:     getEnvInt("SUMMARIZER_AI_RATE_LIMIT", 10),
			MaxConcurrent: getEnvInt("SUMMARIZER_AI_MAX_CONCURRENT", 1),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
