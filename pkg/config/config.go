package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	OpenAI    OpenAIConfig
	GigaChat  GigaChatConfig
	LLM       LLMConfig
	Prompt    PromptConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimitMB  int
}

// LLMConfig selects the completion backend.
type LLMConfig struct {
	Provider string // "openai" or "gigachat"
	Timeout  time.Duration
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	Model              string
	InsecureSkipVerify bool
}

// PromptConfig points at a directory holding prompt templates.
// An empty Dir means the embedded templates are used.
type PromptConfig struct {
	Dir string
}

type UploadConfig struct {
	AllowedExtensions []string
	AllowedMimeTypes  []string
	MaxSizeMB         float64
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	MaxWait  time.Duration // 0 waits for as long as it takes
}

const (
	ProviderOpenAI   = "openai"
	ProviderGigaChat = "gigachat"
)

func Load() (*Config, error) {
	// .env is optional; plain environment variables work too (Docker/K8s)
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "120"))
	bodyLimit, _ := strconv.Atoi(getEnv("SERVER_BODY_LIMIT_MB", "50"))
	llmTimeout, _ := strconv.Atoi(getEnv("LLM_TIMEOUT", "60"))
	maxSize, err := strconv.ParseFloat(getEnv("UPLOAD_MAX_SIZE_MB", "10"), 64)
	if err != nil || maxSize <= 0 {
		maxSize = 10
	}
	rlRequests, _ := strconv.Atoi(getEnv("RATE_LIMIT_REQUESTS", "10"))
	if rlRequests <= 0 {
		rlRequests = 10
	}
	rlWindow, _ := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW", "60"))
	if rlWindow <= 0 {
		rlWindow = 60
	}
	rlMaxWait, _ := strconv.Atoi(getEnv("RATE_LIMIT_MAX_WAIT", "0"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			BodyLimitMB:  bodyLimit,
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),
			Timeout:  time.Duration(llmTimeout) * time.Second,
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			Model:              getEnv("GIGACHAT_MODEL", "GigaChat"),
			InsecureSkipVerify: insecureSkipVerify,
		},
		Prompt: PromptConfig{
			Dir: getEnv("PROMPT_DIR", ""),
		},
		Upload: UploadConfig{
			AllowedExtensions: getList("UPLOAD_ALLOWED_EXTENSIONS", "pdf"),
			AllowedMimeTypes:  getList("UPLOAD_ALLOWED_MIME_TYPES", "application/pdf"),
			MaxSizeMB:         maxSize,
		},
		RateLimit: RateLimitConfig{
			Requests: rlRequests,
			Window:   time.Duration(rlWindow) * time.Second,
			MaxWait:  time.Duration(rlMaxWait) * time.Second,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getList splits a comma separated variable, dropping blanks.
func getList(key, defaultValue string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
