package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port string `json:"port"`
	Host string `json:"host"`

	// Firecrawl settings
	FirecrawlAPIKey  string        `json:"-"` // Don't expose in JSON
	FirecrawlBaseURL string        `json:"firecrawl_base_url"`
	ScrapeTimeout    time.Duration `json:"scrape_timeout"`
	SourceURL        string        `json:"source_url"`

	// Keyword data
	KeywordFile string `json:"keyword_file"`
	ReportBrand string `json:"report_brand"`

	// Output settings
	OutputDir      string `json:"output_dir"`
	ArtifactBucket string `json:"artifact_bucket"`
	ArtifactPrefix string `json:"artifact_prefix"`

	// Scheduling and caching
	AnalysisSchedule string        `json:"analysis_schedule"` // cron spec, "off" disables
	CacheDuration    time.Duration `json:"cache_duration"`

	// Slack settings
	SlackBotToken string `json:"-"` // Don't expose in JSON
	SlackChannel  string `json:"slack_channel"`

	// Logging settings
	LogLevel       string `json:"log_level"`
	LogDevelopment bool   `json:"log_development"` // console encoder instead of JSON
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		Host:             getEnvOrDefault("HOST", "0.0.0.0"),
		FirecrawlAPIKey:  getEnvOrDefault("FIRECRAWL_API_KEY", ""),
		FirecrawlBaseURL: getEnvOrDefault("FIRECRAWL_BASE_URL", "https://api.firecrawl.dev/v0"),
		ScrapeTimeout:    time.Duration(getEnvOrDefaultInt("SCRAPE_TIMEOUT_SECONDS", 30)) * time.Second,
		SourceURL:        getEnvOrDefault("SOURCE_URL", "file://index.html"),
		KeywordFile:      getEnvOrDefault("KEYWORD_FILE", ""),
		ReportBrand:      getEnvOrDefault("REPORT_BRAND", "CuraMedix"),
		OutputDir:        getEnvOrDefault("OUTPUT_DIR", "."),
		ArtifactBucket:   getEnvOrDefault("ARTIFACT_BUCKET", ""),
		ArtifactPrefix:   getEnvOrDefault("ARTIFACT_PREFIX", "keyword-analysis/"),
		AnalysisSchedule: getEnvOrDefault("ANALYSIS_SCHEDULE", "@every 24h"),
		CacheDuration:    time.Duration(getEnvOrDefaultInt("CACHE_DURATION_HOURS", 24)) * time.Hour,
		SlackBotToken:    getEnvOrDefault("SLACK_BOT_TOKEN", ""),
		SlackChannel:     getEnvOrDefault("SLACK_CHANNEL", "#marketing"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		LogDevelopment:   getEnvOrDefaultBool("LOG_DEVELOPMENT", false),
	}

	return config, config.validate()
}

// HasFirecrawlKey reports whether remote scraping is possible
func (c *Config) HasFirecrawlKey() bool {
	return c.FirecrawlAPIKey != ""
}

// ScheduleEnabled reports whether the server should re-run the analysis periodically
func (c *Config) ScheduleEnabled() bool {
	return c.AnalysisSchedule != "" && !strings.EqualFold(c.AnalysisSchedule, "off")
}

// validate checks that configured values are usable.
// A missing Firecrawl key is not an error; analysis falls back to the local file.
func (c *Config) validate() error {
	if c.OutputDir == "" {
		return &ConfigError{Field: "OUTPUT_DIR", Message: "output directory must not be empty"}
	}
	if c.ScrapeTimeout <= 0 {
		return &ConfigError{Field: "SCRAPE_TIMEOUT_SECONDS", Message: "must be positive"}
	}
	if c.CacheDuration < 0 {
		return &ConfigError{Field: "CACHE_DURATION_HOURS", Message: "must not be negative"}
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return &ConfigError{Field: "LOG_LEVEL", Message: "unknown level " + strconv.Quote(c.LogLevel)}
	}
	if c.SlackBotToken != "" && !strings.HasPrefix(c.SlackBotToken, "xoxb-") {
		return &ConfigError{Field: "SLACK_BOT_TOKEN", Message: "must start with xoxb-"}
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvOrDefaultBool returns environment variable value as bool or default if not set
func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
