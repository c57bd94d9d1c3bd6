package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig allows Limit requests per Window on one route, with Burst (default Limit)
// available at once. A Path ending in "/" matches every path below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Environment variables read by LoadConfig.
const (
	EnvEnabled   = "RESUME_SHARE_RATE_LIMIT_ENABLED"
	EnvLimit     = "RESUME_SHARE_RATE_LIMIT_DEFAULT_LIMIT"
	EnvWindow    = "RESUME_SHARE_RATE_LIMIT_DEFAULT_WINDOW"
	EnvCleanup   = "RESUME_SHARE_RATE_LIMIT_CLEANUP_INTERVAL"
	EnvWhitelist = "RESUME_SHARE_RATE_LIMIT_WHITELIST"
	EnvBlacklist = "RESUME_SHARE_RATE_LIMIT_BLACKLIST"
)

// DefaultConfig returns the limits used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig starts from DefaultConfig and applies RESUME_SHARE_RATE_LIMIT_* variables.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = getEnvBool(EnvEnabled, cfg.Enabled)
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}

	cfg.DefaultLimit = getEnvInt(EnvLimit, cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration(EnvWindow, cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration(EnvCleanup, cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(os.Getenv(EnvWhitelist))
	cfg.Blacklist = parseIPList(os.Getenv(EnvBlacklist))
	return cfg
}

// DefaultEndpointConfigs returns the per-route limits of the viewer.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// encoding and rendering do real work
		{Path: "/api/share", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/resolve", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/share", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/preview", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of client addresses.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
