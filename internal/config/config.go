// Package config holds process settings for the chess server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Addr               string
	AllowOrigins       []string
	DefaultSearchDepth int
	MaxSearchDepth     int
	WSReadBufferSize   int
	WSWriteBufferSize  int
	LogLevel           log.Level
}

func Default() Config {
	return Config{
		Addr:               ":3000",
		AllowOrigins:       []string{"http://localhost:5173"},
		DefaultSearchDepth: 2,
		MaxSearchDepth:     4,
		WSReadBufferSize:   1024,
		WSWriteBufferSize:  1024,
		LogLevel:           log.LevelInfo,
	}
}

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

// FromEnv starts from Default and applies any CHESS_* variables found through lookup.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("CHESS_ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup("CHESS_ALLOWED_ORIGINS"); ok && v != "" {
		origins := []string{}
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowOrigins = origins
	}
	if v, ok := lookup("CHESS_SEARCH_DEPTH"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: CHESS_SEARCH_DEPTH=%q: %v", ErrInvalidConfig, v, err)
		}
		cfg.DefaultSearchDepth = n
	}
	if v, ok := lookup("CHESS_MAX_SEARCH_DEPTH"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: CHESS_MAX_SEARCH_DEPTH=%q: %v", ErrInvalidConfig, v, err)
		}
		cfg.MaxSearchDepth = n
	}
	if v, ok := lookup("CHESS_LOG_LEVEL"); ok && v != "" {
		level, known := logLevels[strings.ToLower(v)]
		if !known {
			return Config{}, fmt.Errorf("%w: CHESS_LOG_LEVEL=%q", ErrInvalidConfig, v)
		}
		cfg.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the process environment.
func Load() (Config, error) {
	return FromEnv(os.LookupEnv)
}

func (c Config) Validate() error {
	if c.MaxSearchDepth < 1 {
		return fmt.Errorf("%w: max search depth %d < 1", ErrInvalidConfig, c.MaxSearchDepth)
	}
	if c.DefaultSearchDepth < 1 || c.DefaultSearchDepth > c.MaxSearchDepth {
		return fmt.Errorf("%w: default search depth %d outside 1..%d", ErrInvalidConfig, c.DefaultSearchDepth, c.MaxSearchDepth)
	}
	if len(c.AllowOrigins) == 0 {
		return fmt.Errorf("%w: no allowed origins", ErrInvalidConfig)
	}
	return nil
}

// SearchDepth resolves a requested depth: zero means the default, anything above the
// maximum is capped.
func (c Config) SearchDepth(requested int) int {
	switch {
	case requested <= 0:
		return c.DefaultSearchDepth
	case requested > c.MaxSearchDepth:
		return c.MaxSearchDepth
	}
	return requested
}
