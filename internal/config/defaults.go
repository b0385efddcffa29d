package config

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = ".commentsync.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:        "http://localhost:8080",
		DataDir:          ".commentsync",
		LogLevel:         LogInfo,
		TimeoutSeconds:   5,
		RetryAttempts:    3,
		RetryBaseDelayMS: 200,
		Live: LiveConfig{
			Port: 8090,
		},
		Render: RenderConfig{
			HighlightStyle: "github",
		},
	}
}
