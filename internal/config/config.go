package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by SAHAYAK_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("SAHAYAK_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func AnthropicAPIKey() string {
	return os.Getenv("ANTHROPIC_API_KEY")
}

func CerebrasAPIKey() string {
	return os.Getenv("CEREBRAS_API_KEY")
}

// LLMProvider returns the configured LLM provider.
// Defaults to "openai" if not set.
// Valid values: openai, anthropic, cerebras, mock
func LLMProvider() string {
	p := os.Getenv("LLM_PROVIDER")
	if p == "" {
		return "openai"
	}
	return p
}

// LLMAPIKey returns the API key for the configured LLM provider.
func LLMAPIKey() string {
	switch LLMProvider() {
	case "anthropic":
		return AnthropicAPIKey()
	case "cerebras":
		return CerebrasAPIKey()
	case "mock":
		return ""
	default:
		return OpenAIAPIKey()
	}
}

// CatalogPath is the scheme catalog YAML file.
func CatalogPath() string {
	p := os.Getenv("CATALOG_PATH")
	if p == "" {
		return "config/schemes.yaml"
	}
	return p
}

// MaxTurns is the hard ceiling on conversation turns.
// Defaults to 20 if not set.
func MaxTurns() int {
	n, err := strconv.Atoi(os.Getenv("MAX_TURNS"))
	if err != nil || n <= 0 {
		return 20
	}
	return n
}

// EligibilityThreshold is the provisional-eligibility score fraction.
// Defaults to 0.7 if not set or out of (0, 1].
func EligibilityThreshold() float64 {
	v, err := strconv.ParseFloat(os.Getenv("ELIGIBILITY_THRESHOLD"), 64)
	if err != nil || v <= 0 || v > 1 {
		return 0.7
	}
	return v
}

// TopSchemes is how many ranked schemes the reply generator sees.
// Defaults to 3 if not set.
func TopSchemes() int {
	n, err := strconv.Atoi(os.Getenv("TOP_SCHEMES"))
	if err != nil || n <= 0 {
		return 3
	}
	return n
}

// HistoryWindow is the trailing message count given to capabilities.
// Defaults to 10 if not set.
func HistoryWindow() int {
	n, err := strconv.Atoi(os.Getenv("HISTORY_WINDOW"))
	if err != nil || n <= 0 {
		return 10
	}
	return n
}

// SessionTTLMinutes is how long an idle conversation survives.
// Defaults to 30 if not set.
func SessionTTLMinutes() int {
	n, err := strconv.Atoi(os.Getenv("SESSION_TTL_MINUTES"))
	if err != nil || n <= 0 {
		return 30
	}
	return n
}

// SweepIntervalMinutes is the idle-conversation sweep cadence.
// Defaults to 5 if not set.
func SweepIntervalMinutes() int {
	n, err := strconv.Atoi(os.Getenv("SWEEP_INTERVAL_MINUTES"))
	if err != nil || n <= 0 {
		return 5
	}
	return n
}

// ApplicationMode selects the scheme application backend.
// Valid values: mock, http. Defaults to "mock" if not set.
func ApplicationMode() string {
	m := os.Getenv("APPLICATION_MODE")
	if m == "" {
		return "mock"
	}
	return m
}

// ApplicationAPIURL is the base URL for the http application backend.
func ApplicationAPIURL() string {
	u := os.Getenv("APPLICATION_API_URL")
	if u == "" {
		return "http://localhost:3001/api"
	}
	return u
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
