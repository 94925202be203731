package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by DIALOGUE_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("DIALOGUE_ENV")
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

// DialogueProvider returns the configured dialogue LLM provider.
// Defaults to "openai" if not set.
// Valid values: openai, anthropic, mock
func DialogueProvider() string {
	p := os.Getenv("DIALOGUE_PROVIDER")
	if p == "" {
		return "openai"
	}
	return p
}

// DialogueModel returns a model override for the dialogue provider,
// or empty to use the provider default.
func DialogueModel() string {
	return os.Getenv("DIALOGUE_MODEL")
}

// DialogueAPIKey returns the API key for the configured dialogue provider.
func DialogueAPIKey() string {
	switch DialogueProvider() {
	case "anthropic":
		return AnthropicAPIKey()
	case "mock":
		return ""
	default:
		return OpenAIAPIKey()
	}
}

// ScenarioPath returns the scenario file to load at startup,
// or empty to start with an empty world.
func ScenarioPath() string {
	return os.Getenv("SCENARIO_PATH")
}

// APIKey returns the static key required on API requests,
// or empty to disable auth.
func APIKey() string {
	return os.Getenv("API_KEY")
}

// FactCheckingEnabled reports whether responses are validated against
// the world model. Defaults to true.
func FactCheckingEnabled() bool {
	v := os.Getenv("FACT_CHECKING")
	if v == "" {
		return true
	}
	enabled, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return enabled
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
