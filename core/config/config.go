package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Stacks      string `yaml:"stacks"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	ErrorsFile  string `yaml:"errors_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

// TransitConfig points the client at the TPL FVG upstream services.
type TransitConfig struct {
	// SearchBaseURL serves keyword and polygon stop searches.
	SearchBaseURL string `yaml:"search_base_url" envconfig:"TRANSIT_SEARCH_BASE_URL"`
	// RealtimeBaseURL serves pole monitor, stop info and line timetable queries.
	RealtimeBaseURL string `yaml:"realtime_base_url" envconfig:"TRANSIT_REALTIME_BASE_URL"`
	// LocationRadiusKM is the half-side of the bounding square built around a
	// user-sent location.
	LocationRadiusKM float64 `yaml:"location_radius_km" envconfig:"TRANSIT_LOCATION_RADIUS_KM"`
	// RequestTimeoutSeconds bounds every upstream call; a timeout degrades to a
	// soft "not found" answer.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" envconfig:"TRANSIT_REQUEST_TIMEOUT_SECONDS"`
}

// StorageConfig selects where user sessions are persisted.
type StorageConfig struct {
	// Driver is either "postgres" or "memory".
	Driver   string         `yaml:"driver" envconfig:"STORAGE_DRIVER"`
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds Postgres connection settings for the session store.
type DatabaseConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// ReferenceConfig locates offline reference data built by the scraping job.
type ReferenceConfig struct {
	// LinesByStopPath is the JSON table mapping stop codes to served lines and
	// zones. A missing file disables line annotations and zone filtering.
	LinesByStopPath string `yaml:"lines_by_stop_path" envconfig:"REFERENCE_LINES_BY_STOP_PATH"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// StorageDriverPostgres persists sessions in Postgres.
	StorageDriverPostgres = "postgres"
	// StorageDriverMemory keeps sessions in process memory (dev/tests).
	StorageDriverMemory = "memory"
)

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
	// UpdateInlineQuery identifies inline query updates for rate limit exclusions.
	UpdateInlineQuery = "inline_query"
)

// RateLimitConfig holds settings for rate limiting.
// ExcludeUpdates accepts update types to bypass limiting:
// - "callback": Telegram callback button presses
// - "message": standard text messages
// - "inline_query": inline query updates
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// Config aggregates the full bot configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Transit   TransitConfig   `yaml:"transit"`
	Storage   StorageConfig   `yaml:"storage"`
	Reference ReferenceConfig `yaml:"reference"`
}

// Defaults applied when the YAML omits transit settings entirely.
const (
	DefaultSearchBaseURL    = "https://tplfvg.it/services/bus-stops/"
	DefaultRealtimeBaseURL  = "https://realtime.tplfvg.it/API/v1.0/"
	DefaultLocationRadiusKM = 0.4
	DefaultRequestTimeout   = 10
)

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if strings.TrimSpace(cfg.Transit.SearchBaseURL) == "" {
		cfg.Transit.SearchBaseURL = DefaultSearchBaseURL
	}
	if strings.TrimSpace(cfg.Transit.RealtimeBaseURL) == "" {
		cfg.Transit.RealtimeBaseURL = DefaultRealtimeBaseURL
	}
	if cfg.Transit.LocationRadiusKM <= 0 {
		cfg.Transit.LocationRadiusKM = DefaultLocationRadiusKM
	}
	if cfg.Transit.RequestTimeoutSeconds <= 0 {
		cfg.Transit.RequestTimeoutSeconds = DefaultRequestTimeout
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	if driver == "" {
		driver = StorageDriverMemory
	}
	switch driver {
	case StorageDriverPostgres:
		if strings.TrimSpace(cfg.Storage.Database.Host) == "" {
			return fmt.Errorf("storage.database.host is required when storage.driver is 'postgres'")
		}
		if strings.TrimSpace(cfg.Storage.Database.Name) == "" {
			return fmt.Errorf("storage.database.name is required when storage.driver is 'postgres'")
		}
		if cfg.Storage.Database.MaxConnections <= 0 {
			cfg.Storage.Database.MaxConnections = 4
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("invalid storage.driver %q; allowed: postgres, memory", cfg.Storage.Driver)
	}
	cfg.Storage.Driver = driver

	allowed := map[string]struct{}{
		UpdateCallback:    {},
		UpdateMessage:     {},
		UpdateInlineQuery: {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message, inline_query", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}
	return nil
}
