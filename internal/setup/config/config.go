package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/lumivault/gatekeeper/internal/engine/abuse"
	"github.com/lumivault/gatekeeper/internal/engine/score"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
	ErrUnknownActionClass    = errors.New("unknown action class in scoring policy")
)

// RepositoryVersion is the repository version tag for config file references.
const RepositoryVersion = "v1.0.0"

// CurrentVersion is the expected version of the config file.
const CurrentVersion = 1

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version    int        `koanf:"version"`
	Debug      Debug      `koanf:"debug"`
	Server     Server     `koanf:"server"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Redis      Redis      `koanf:"redis"`
	Chain      Chain      `koanf:"chain"`
	Engine     Engine     `koanf:"engine"`
	Scoring    Scoring    `koanf:"scoring"`
	Abuse      Abuse      `koanf:"abuse"`
	Worker     Worker     `koanf:"worker"`
	Loki       Loki       `koanf:"loki"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Maximum log files to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
	// Maximum lines per log file.
	MaxLogLines int `koanf:"max_log_lines"`
	// Enable pprof debugging.
	EnablePprof bool `koanf:"enable_pprof"`
	// pprof server port.
	PprofPort int `koanf:"pprof_port"`
}

// Server contains REST API server configuration.
type Server struct {
	// Host address to listen on.
	Host string `koanf:"host"`
	// Port to listen on.
	Port int `koanf:"port"`
	// API keys allowed to call the API. Empty disables authentication.
	APIKeys []string `koanf:"api_keys"`
	// Include full scoring diagnostics in decision responses. Off in
	// production; diagnostics leak the thresholds an attacker would probe.
	ExposeDiagnostics bool `koanf:"expose_diagnostics"`
	// Rate limiting configuration.
	RateLimit RateLimit `koanf:"rate_limit"`
}

// RateLimit contains request rate limiting configuration.
type RateLimit struct {
	// Requests allowed per second per client.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	// Burst size per client.
	BurstSize int `koanf:"burst_size"`
	// Violations before a client is temporarily blocked.
	StrikeLimit int `koanf:"strike_limit"`
	// Block duration in seconds.
	BlockDuration int `koanf:"block_duration"`
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	// Database hostname.
	Host string `koanf:"host"`
	// Database port.
	Port int `koanf:"port"`
	// Database username.
	User string `koanf:"user"`
	// Database password.
	Password string `koanf:"password"`
	// Database name.
	DBName string `koanf:"db_name"`
	// Maximum open connections.
	MaxOpenConns int `koanf:"max_open_conns"`
	// Maximum idle connections.
	MaxIdleConns int `koanf:"max_idle_conns"`
	// Connection lifetime in minutes.
	MaxLifetime int `koanf:"max_lifetime"`
	// Idle timeout in minutes.
	MaxIdleTime int `koanf:"max_idle_time"`
}

// Redis contains Redis connection configuration.
type Redis struct {
	// Redis hostname.
	Host string `koanf:"host"`
	// Redis port.
	Port int `koanf:"port"`
	// Redis username.
	Username string `koanf:"username"`
	// Redis password.
	Password string `koanf:"password"`
}

// Chain contains chain observer configuration.
type Chain struct {
	// Base URL of the chain observer service.
	BaseURL string `koanf:"base_url"`
	// API key for the observer.
	APIKey string `koanf:"api_key"`
	// Per-request timeout in milliseconds.
	RequestTimeout int `koanf:"request_timeout"`
}

// Engine contains decision engine tuning.
type Engine struct {
	// Upstream fetch timeout per decision in milliseconds.
	UpstreamTimeout int `koanf:"upstream_timeout"`
}

// Scoring contains the action scoring policy.
type Scoring struct {
	// Score assigned to action types missing from the table.
	DefaultScore float64 `koanf:"default_score"`
	// Per-action-type scoring policy.
	Actions map[string]ActionPolicy `koanf:"actions"`
}

// ActionPolicy is the configured policy for one action type.
type ActionPolicy struct {
	// Base quality score in [0, 1].
	Score float64 `koanf:"score"`
	// Abuse class: neutral, contribution, read or verification.
	Class string `koanf:"class"`
}

// Abuse contains abuse detector threshold overrides. Zero values fall back
// to the built-in defaults.
type Abuse struct {
	// Rolling window for the extraction check in minutes.
	ExtractionWindowMinutes int `koanf:"extraction_window_minutes"`
	// Reads above this count with zero contributions flag extraction.
	ExtractionMaxReads int `koanf:"extraction_max_reads"`
	// Sliding window for the automation check in seconds.
	AutomationWindowSeconds int `koanf:"automation_window_seconds"`
	// Actions above this count inside the window flag automation.
	AutomationMaxActions int `koanf:"automation_max_actions"`
	// Minimum verification attempts before the failure ratio applies.
	ForgeryMinAttempts int `koanf:"forgery_min_attempts"`
	// Failure ratio above which forgery is flagged.
	ForgeryFailRatio float64 `koanf:"forgery_fail_ratio"`
}

// Worker contains maintenance worker configuration.
type Worker struct {
	// Sweep interval in minutes.
	SweepInterval int `koanf:"sweep_interval"`
}

// Loki contains Grafana Loki logging configuration.
type Loki struct {
	// Enable Loki integration
	Enabled bool `koanf:"enabled"`
	// Loki server URL (without /loki/api/v1/push suffix)
	URL string `koanf:"url"`
	// Maximum number of log entries per batch
	BatchMaxSize int `koanf:"batch_max_size"`
	// Maximum time to wait before sending a batch (in milliseconds)
	BatchMaxWaitMS int `koanf:"batch_max_wait_ms"`
	// Labels added to all log streams
	Labels map[string]string `koanf:"labels"`
	// Basic authentication username (optional)
	Username string `koanf:"username"`
	// Basic authentication password (optional)
	Password string `koanf:"password"`
}

// LoadConfig loads the configuration from the specified file.
// Returns the config along with the used config directory.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	// Get user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// List search paths
	configPaths := []string{
		".gatekeeper",
		homeDir + "/.gatekeeper/config",
		"/etc/gatekeeper/config",
		"/app/config",
		"config",
		".",
	}

	var usedConfigPath string

	for _, path := range configPaths {
		configPath := fmt.Sprintf("%s/gatekeeper.toml", path)
		if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
			usedConfigPath = path
			break
		}
	}

	if usedConfigPath == "" {
		return nil, "", fmt.Errorf("%w: gatekeeper.toml", ErrConfigFileNotFound)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := checkConfigVersion(config.Version, CurrentVersion); err != nil {
		return nil, "", err
	}

	return &config, usedConfigPath, nil
}

// BuildTable converts the scoring policy into the engine's score table.
func (s *Scoring) BuildTable() (*score.Table, error) {
	entries := make(map[string]score.Policy, len(s.Actions))

	for actionType, policy := range s.Actions {
		class, err := enum.ActionClassString(policy.Class)
		if err != nil {
			return nil, fmt.Errorf("%w: %q for action %q", ErrUnknownActionClass, policy.Class, actionType)
		}

		entries[actionType] = score.Policy{
			Score: policy.Score,
			Class: class,
		}
	}

	return score.NewTable(entries, s.DefaultScore), nil
}

// DetectorConfig merges the configured overrides onto the detector defaults.
func (a *Abuse) DetectorConfig() abuse.Config {
	cfg := abuse.DefaultConfig()

	if a.ExtractionWindowMinutes > 0 {
		cfg.ExtractionWindow = time.Duration(a.ExtractionWindowMinutes) * time.Minute
	}

	if a.ExtractionMaxReads > 0 {
		cfg.ExtractionMaxReads = a.ExtractionMaxReads
	}

	if a.AutomationWindowSeconds > 0 {
		cfg.AutomationWindow = time.Duration(a.AutomationWindowSeconds) * time.Second
	}

	if a.AutomationMaxActions > 0 {
		cfg.AutomationMaxActions = a.AutomationMaxActions
	}

	if a.ForgeryMinAttempts > 0 {
		cfg.ForgeryMinAttempts = a.ForgeryMinAttempts
	}

	if a.ForgeryFailRatio > 0 {
		cfg.ForgeryFailRatio = a.ForgeryFailRatio
	}

	return cfg
}

// UpstreamTimeoutDuration returns the configured engine upstream timeout,
// or zero when unset so the engine falls back to its default.
func (e *Engine) UpstreamTimeoutDuration() time.Duration {
	return time.Duration(e.UpstreamTimeout) * time.Millisecond
}

// RequestTimeoutDuration returns the per-request observer timeout, with a
// sane default when unset.
func (c *Chain) RequestTimeoutDuration() time.Duration {
	if c.RequestTimeout <= 0 {
		return time.Second
	}

	return time.Duration(c.RequestTimeout) * time.Millisecond
}

// SweepIntervalDuration returns the sweep interval, defaulting to an hour.
func (w *Worker) SweepIntervalDuration() time.Duration {
	if w.SweepInterval <= 0 {
		return time.Hour
	}

	return time.Duration(w.SweepInterval) * time.Minute
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(current, expected int) error {
	if current == 0 {
		return fmt.Errorf("%w: gatekeeper.toml", ErrConfigVersionMissing)
	}

	if current != expected {
		return fmt.Errorf(
			"%w: gatekeeper.toml (got: %d, expected: %d)\n"+
				"Please update your config file from: https://github.com/lumivault/gatekeeper/tree/%s/config/gatekeeper.toml",
			ErrConfigVersionMismatch,
			current,
			expected,
			RepositoryVersion,
		)
	}

	return nil
}
