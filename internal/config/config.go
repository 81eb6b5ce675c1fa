// README: Config loader with env defaults for the maps provider, realtime backend, and roster poll.
package config

import (
	"os"
	"strconv"
	"time"
)

type RosterConfig struct {
	PollInterval time.Duration
	// StaleAfter enables eviction of providers not seen for this long.
	// Zero keeps the roster grow-only.
	StaleAfter time.Duration
}

type Config struct {
	Maps struct {
		APIKey string
	}
	Backend struct {
		WSURL string
	}
	Roster RosterConfig
	HTTP   struct {
		Addr string
	}
	Redis struct {
		Addr string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.Maps.APIKey = envOrError("CAMPUSRIDE_MAPS_API_KEY")
	cfg.Backend.WSURL = envOrDefault("CAMPUSRIDE_BACKEND_WS", "ws://localhost:8080/ws")
	cfg.Roster.PollInterval = time.Duration(envOrDefaultInt("CAMPUSRIDE_ROSTER_POLL_SECONDS", 5)) * time.Second
	cfg.Roster.StaleAfter = time.Duration(envOrDefaultInt("CAMPUSRIDE_ROSTER_STALE_SECONDS", 0)) * time.Second
	cfg.HTTP.Addr = envOrDefault("CAMPUSRIDE_HTTP_ADDR", ":8080")
	cfg.Redis.Addr = envOrDefault("CAMPUSRIDE_REDIS_ADDR", "localhost:6379")
	return cfg, nil
}

// LoadSim is the hailsim variant; the simulator has no use for a maps key.
func LoadSim() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("CAMPUSRIDE_HTTP_ADDR", ":8080")
	cfg.Redis.Addr = envOrDefault("CAMPUSRIDE_REDIS_ADDR", "localhost:6379")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
