package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result
// to path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to commentsync! Let's point it at your comment service.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Server URL.
	serverPrompt := promptui.Prompt{
		Label:    "Comment service URL",
		Default:  defaults.ServerURL,
		Validate: validateServerURL,
	}
	serverURL, err := serverPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}

	// 2. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Directory for saved preferences",
		Default: defaults.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 3. Timeout.
	timeoutPrompt := promptui.Prompt{
		Label:    "Request timeout (seconds)",
		Default:  strconv.Itoa(defaults.TimeoutSeconds),
		Validate: validateNonNegative,
	}
	timeoutStr, err := timeoutPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("timeout: %w", err)
	}
	timeout, _ := strconv.Atoi(timeoutStr)

	// 4. Log level.
	levelPrompt := promptui.Select{
		Label: "Log level",
		Items: []string{string(LogInfo), string(LogDebug), string(LogWarn), string(LogError)},
	}
	_, level, err := levelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	cfg := DefaultConfig()
	cfg.ServerURL = serverURL
	cfg.DataDir = dataDir
	cfg.TimeoutSeconds = timeout
	cfg.LogLevel = LogLevel(level)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateServerURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an absolute http(s) URL")
	}
	return nil
}

func validateNonNegative(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative integer")
	}
	return nil
}
