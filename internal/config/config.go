package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Relay providers
const (
	RelayEmailJS  = "emailjs"
	RelayTelegram = "telegram"
	RelayLog      = "log"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"API_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Relay Configuration
	RelayProvider     string        `env:"RELAY_PROVIDER"`
	EmailJSServiceID  string        `env:"EMAILJS_SERVICE_ID"`
	EmailJSTemplateID string        `env:"EMAILJS_TEMPLATE_ID"`
	EmailJSPublicKey  string        `env:"EMAILJS_PUBLIC_KEY"`
	EmailJSPrivateKey string        `env:"EMAILJS_PRIVATE_KEY"`
	EmailJSEndpoint   string        `env:"EMAILJS_ENDPOINT" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
	TelegramBotToken  string        `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID    string        `env:"TELEGRAM_CHAT_ID"`
	RelayTimeout      time.Duration `env:"RELAY_TIMEOUT" envDefault:"10s"`

	// Captcha Configuration
	RecaptchaSecretKey string  `env:"RECAPTCHA_SECRET_KEY"`
	RecaptchaMinScore  float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`

	// Contact constants shown on the page
	DisplayEmail string `env:"CONTACT_EMAIL" envDefault:"aloncelot@gmail.com"`
	GithubURL    string `env:"GITHUB_URL" envDefault:"https://github.com/Aloncelot"`
	LinkedinURL  string `env:"LINKEDIN_URL" envDefault:"https://www.linkedin.com/in/alonso-correap/"`
	Location     string `env:"CONTACT_LOCATION" envDefault:"Mexico City, CDMX"`

	// Form Configuration
	StatusResetDelay time.Duration `env:"STATUS_RESET_DELAY" envDefault:"5s"`
	ScrambleDuration time.Duration `env:"SCRAMBLE_DURATION" envDefault:"2s"`
	FormSessionTTL   time.Duration `env:"FORM_SESSION_TTL" envDefault:"30m"`

	// HTTP Configuration
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	RateLimitRPS   int      `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// Try multiple locations for .env file
	envLocations := []string{".env"}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv never overrides variables already set, the first file found wins
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}

// Parse builds a Config from the current environment only, without touching
// .env files or the filesystem.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.RelayProvider = strings.ToLower(strings.TrimSpace(cfg.RelayProvider))

	// Pick the relay from what is configured
	if cfg.RelayProvider == "" {
		switch {
		case cfg.EmailJSServiceID != "":
			cfg.RelayProvider = RelayEmailJS
		case cfg.TelegramBotToken != "":
			cfg.RelayProvider = RelayTelegram
		default:
			cfg.RelayProvider = RelayLog
		}
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.IsProduction() {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks provider specific settings
func (c *Config) Validate() error {
	switch c.RelayProvider {
	case RelayEmailJS:
		var missing []string
		if c.EmailJSServiceID == "" {
			missing = append(missing, "EMAILJS_SERVICE_ID")
		}
		if c.EmailJSTemplateID == "" {
			missing = append(missing, "EMAILJS_TEMPLATE_ID")
		}
		if c.EmailJSPublicKey == "" {
			missing = append(missing, "EMAILJS_PUBLIC_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("emailjs relay requires %s", strings.Join(missing, ", "))
		}
	case RelayTelegram:
		if c.TelegramBotToken == "" || c.TelegramChatID == "" {
			return fmt.Errorf("telegram relay requires TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID")
		}
	case RelayLog:
		if c.IsProduction() {
			return fmt.Errorf("log relay is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown relay provider %q", c.RelayProvider)
	}

	if c.RecaptchaMinScore < 0 || c.RecaptchaMinScore > 1 {
		return fmt.Errorf("RECAPTCHA_MIN_SCORE must be between 0 and 1, got %.2f", c.RecaptchaMinScore)
	}
	if c.StatusResetDelay <= 0 {
		return fmt.Errorf("STATUS_RESET_DELAY must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return nil
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CaptchaEnabled reports whether submissions must carry a reCAPTCHA token
func (c *Config) CaptchaEnabled() bool {
	return c.RecaptchaSecretKey != ""
}

// Redacted returns a copy safe to print, with secrets masked
func (c *Config) Redacted() Config {
	out := *c
	out.EmailJSPrivateKey = mask(out.EmailJSPrivateKey)
	out.TelegramBotToken = mask(out.TelegramBotToken)
	out.RecaptchaSecretKey = mask(out.RecaptchaSecretKey)
	return out
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:2] + strings.Repeat("*", len(secret)-4) + secret[len(secret)-2:]
}
