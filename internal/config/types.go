package config

// LogLevel is a zap level name.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Config is the top-level commentsync configuration, corresponding to .commentsync.yml.
type Config struct {
	ServerURL        string       `yaml:"server_url" koanf:"server_url"`
	DataDir          string       `yaml:"data_dir" koanf:"data_dir"`
	LogLevel         LogLevel     `yaml:"log_level" koanf:"log_level"`
	TimeoutSeconds   int          `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	RetryAttempts    int          `yaml:"retry_attempts" koanf:"retry_attempts"`
	RetryBaseDelayMS int          `yaml:"retry_base_delay_ms" koanf:"retry_base_delay_ms"`
	Live             LiveConfig   `yaml:"live" koanf:"live"`
	Render           RenderConfig `yaml:"render" koanf:"render"`
}

// LiveConfig holds settings for the live HTML view.
type LiveConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// RenderConfig controls HTML rendering of comment text.
type RenderConfig struct {
	HighlightStyle string `yaml:"highlight_style" koanf:"highlight_style"`
}
