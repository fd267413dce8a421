package config

import (
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/PayRam/go-search/internal/log"
	"github.com/PayRam/go-search/sqlsafe"
	"github.com/joho/godotenv"
)

const (
	DefaultDBPath      = "search.db"
	DefaultParamPrefix = "p"
)

// Config holds the search settings shared by the library and the CLI.
type Config struct {
	EscapeChar      rune   // LIKE escape character
	ParamPrefix     string // default parameter name prefix
	FixParserQuirks bool   // opt in to the corrected tokenizer
	DBPath          string // sqlite database file
	LogSQL          bool   // log statements and debug output
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		EscapeChar:  sqlsafe.DefaultEscapeChar,
		ParamPrefix: DefaultParamPrefix,
		DBPath:      DefaultDBPath,
	}
}

// Load reads configuration from the environment. Values from a .env file are
// used only for variables that are not already set.
func Load(envPaths ...string) (*Config, error) {
	if len(envPaths) == 0 {
		envPaths = []string{".env"}
	}
	var loadErr error
	for _, envPath := range envPaths {
		loadErr = godotenv.Load(envPath)
		if loadErr == nil {
			break
		}
	}
	if loadErr != nil {
		log.Debug(".env file not found, using environment variables and defaults")
	}

	cfg := Default()
	escape := getEnvOrDefault("SEARCH_ESCAPE_CHAR", string(cfg.EscapeChar))
	if utf8.RuneCountInString(escape) != 1 {
		return nil, fmt.Errorf("%w: SEARCH_ESCAPE_CHAR must be a single character, got %q", sqlsafe.ErrInvalidArgument, escape)
	}
	cfg.EscapeChar, _ = utf8.DecodeRuneInString(escape)
	cfg.ParamPrefix = getEnvOrDefault("SEARCH_PARAM_PREFIX", cfg.ParamPrefix)
	cfg.FixParserQuirks = getEnvAsBool("SEARCH_FIX_PARSER_QUIRKS", false)
	cfg.DBPath = getEnvOrDefault("SEARCH_DB_PATH", cfg.DBPath)
	cfg.LogSQL = getEnvAsBool("SEARCH_LOG_SQL", false)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the escape character and the parameter prefix.
func (c *Config) Validate() error {
	if err := sqlsafe.ValidEscapeChar(c.EscapeChar); err != nil {
		return err
	}
	if c.ParamPrefix == "" {
		return fmt.Errorf("%w: parameter prefix is empty", sqlsafe.ErrInvalidArgument)
	}
	for i, r := range c.ParamPrefix {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !letter && (i == 0 || r < '0' || r > '9') {
			return fmt.Errorf("%w: parameter prefix %q must be a letter followed by letters, digits or underscores", sqlsafe.ErrInvalidArgument, c.ParamPrefix)
		}
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		log.Warn("ignoring %s=%q: %v", key, val, err)
		return fallback
	}
	return b
}
