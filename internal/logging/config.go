// Package logging configures the zerolog backbone for the query client.
//
// Sessions and connections take a constructor-supplied logger; nothing in
// this module reaches for a lazy global.
package logging

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel     = "TS3QUERY_LOG_LEVEL"
	EnvLogTimestamp = "TS3QUERY_LOG_TIMESTAMP"
	EnvLogNoColor   = "TS3QUERY_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

type config struct {
	level     zerolog.Level
	timestamp bool
	noColor   bool
}

var configureOnce sync.Once

func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

func ConfigureTests() {
	Configure(ProfileTest)
}

func Configure(profile Profile) {
	configureOnce.Do(func() {
		cfg := defaultConfig(profile)
		applyEnvOverrides(&cfg)
		zerolog.SetGlobalLevel(cfg.level)
		zerolog.TimeFieldFormat = time.RFC3339
		current.mu.Lock()
		current.cfg = cfg
		current.mu.Unlock()
	})
}

// New returns a console logger tagged with the given component name. The
// returned logger honors whatever profile Configure installed.
func New(component string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    currentNoColor(),
	}
	ctx := zerolog.New(output).With().Str("component", component)
	if currentTimestamp() {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}

var current = struct {
	mu  sync.Mutex
	cfg config
}{cfg: config{level: zerolog.InfoLevel, timestamp: true}}

func currentTimestamp() bool {
	current.mu.Lock()
	defer current.mu.Unlock()
	return current.cfg.timestamp
}

func currentNoColor() bool {
	current.mu.Lock()
	defer current.mu.Unlock()
	return current.cfg.noColor
}

func defaultConfig(profile Profile) config {
	switch profile {
	case ProfileTest:
		return config{level: zerolog.DebugLevel, timestamp: false, noColor: true}
	default:
		return config{level: zerolog.InfoLevel, timestamp: true}
	}
}

func applyEnvOverrides(cfg *config) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.noColor = v
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
