package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LogRotation defines parameters for size-capped rotation of log files.
// Compression is deliberately unsupported: the on-disk output is plain
// line-oriented text.
type LogRotation struct {
	MaxSize    string `yaml:"max_size,omitempty"` // MB, e.g. "10"
	MaxAge     string `yaml:"max_age,omitempty"`  // e.g. "7d", "2w"
	MaxBackups int    `yaml:"max_backups,omitempty"`
	Compress   bool   `yaml:"compress,omitempty"` // must stay false
}

// LogConfig configures the routing core: where files go and what each
// sink admits.
type LogConfig struct {
	BaseDir        string      `yaml:"base_dir,omitempty"`
	ConsoleLevel   string      `yaml:"console_level" validate:"required"`
	FileLevel      string      `yaml:"file_level" validate:"required"`
	CacheSize      int         `yaml:"cache_size,omitempty"`       // open handle limit, default 32
	MaxMessageSize string      `yaml:"max_message_size,omitempty"` // e.g. "4k", empty = unlimited
	Rotation       LogRotation `yaml:"rotation,omitempty"`
}

// LogRule overrides sink handling for record targets matching a glob
// pattern. Rules are evaluated in order; the first match wins.
type LogRule struct {
	Target       string `yaml:"target" validate:"required"`
	Enabled      bool   `yaml:"enabled"`
	ConsoleLevel string `yaml:"console_level,omitempty"`
	FileLevel    string `yaml:"file_level,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Log      LogConfig `yaml:"log"`
	LogRules []LogRule `yaml:"log_rules,omitempty"`
}

// validLevelNames lists the accepted threshold names. OFF is a valid
// threshold (sink disabled) but not a record level.
var validLevelNames = map[string]bool{
	"TRACE": true,
	"DEBUG": true,
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
	"OFF":   true,
}

// Default returns the configuration used when no config file is given:
// both sinks at INFO, files relative to the working directory.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			ConsoleLevel: "INFO",
			FileLevel:    "INFO",
		},
	}
}

// LoadConfig loads and validates the configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file '%s': %w", path, err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig performs semantic validation of the configuration
func validateConfig(cfg *Config) error {
	if !validLevelNames[strings.ToUpper(cfg.Log.ConsoleLevel)] {
		return fmt.Errorf("invalid log.console_level: '%s'", cfg.Log.ConsoleLevel)
	}
	if !validLevelNames[strings.ToUpper(cfg.Log.FileLevel)] {
		return fmt.Errorf("invalid log.file_level: '%s'", cfg.Log.FileLevel)
	}
	if cfg.Log.CacheSize < 0 {
		return fmt.Errorf("log.cache_size cannot be negative: %d", cfg.Log.CacheSize)
	}

	if cfg.Log.MaxMessageSize != "" {
		if _, err := ParseSize(cfg.Log.MaxMessageSize); err != nil {
			return fmt.Errorf("invalid log.max_message_size: %w", err)
		}
	}

	// Rotation validation
	if cfg.Log.Rotation.Compress {
		return errors.New("log.rotation.compress is not supported: output must stay plain text")
	}
	if cfg.Log.Rotation.MaxSize != "" {
		// The max_size value is always in MB (e.g. "1", "10", "100")
		maxSizeMB, err := strconv.Atoi(cfg.Log.Rotation.MaxSize)
		if err != nil {
			return fmt.Errorf("invalid log.rotation.max_size '%s': value must be MB without units", cfg.Log.Rotation.MaxSize)
		}
		if maxSizeMB < 0 {
			return fmt.Errorf("log.rotation.max_size cannot be negative: %d", maxSizeMB)
		}
	}
	if cfg.Log.Rotation.MaxAge != "" {
		if _, err := ParseDuration(cfg.Log.Rotation.MaxAge); err != nil {
			return fmt.Errorf("invalid log.rotation.max_age: %w", err)
		}
	}
	if cfg.Log.Rotation.MaxBackups < 0 {
		return fmt.Errorf("log.rotation.max_backups cannot be negative: %d", cfg.Log.Rotation.MaxBackups)
	}

	// Log Rules validation
	for i, rule := range cfg.LogRules {
		rulePath := fmt.Sprintf("log_rules[%d]", i)
		if rule.Target == "" {
			return fmt.Errorf("%s: target pattern is required", rulePath)
		}
		if rule.ConsoleLevel != "" && !validLevelNames[strings.ToUpper(rule.ConsoleLevel)] {
			return fmt.Errorf("%s: invalid console_level '%s'", rulePath, rule.ConsoleLevel)
		}
		if rule.FileLevel != "" && !validLevelNames[strings.ToUpper(rule.FileLevel)] {
			return fmt.Errorf("%s: invalid file_level '%s'", rulePath, rule.FileLevel)
		}
	}

	return nil
}

// ValidateConfig uses go-playground/validator for struct-level validation.
// It complements the semantic validation in validateConfig.
func ValidateConfig(cfg *Config) error {
	validate := validator.New()

	err := validate.Struct(cfg)
	if err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			fieldName := err.Field()
			tag := err.Tag()
			message := fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, tag)
			validationErrors = append(validationErrors, message)
		}
		return errors.New(strings.Join(validationErrors, "; "))
	}

	// Perform additional semantic validation (that validator can't easily handle)
	if err := validateConfig(cfg); err != nil {
		return err
	}

	return nil
}

// ParseDuration parses a duration string (e.g., "10m", "1h30m", "7d").
// Supports standard time.ParseDuration units plus 'd' for days.
// Returns an error if the format is invalid or the duration is non-positive.
func ParseDuration(durationStr string) (time.Duration, error) {
	durationStr = strings.TrimSpace(durationStr)
	if durationStr == "" {
		return 0, errors.New("duration string cannot be empty")
	}

	// Handle 'd' suffix manually
	if strings.HasSuffix(strings.ToLower(durationStr), "d") {
		numStr := strings.TrimSuffix(strings.ToLower(durationStr), "d")
		days, err := strconv.ParseInt(numStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number format for days in '%s': %w", durationStr, err)
		}
		if days < 0 {
			return 0, fmt.Errorf("duration (days) cannot be negative: %d", days)
		}
		d := time.Duration(days) * 24 * time.Hour
		if d <= 0 {
			return 0, fmt.Errorf("duration must be positive: '%s'", durationStr)
		}
		return d, nil
	}

	// Use standard time.ParseDuration for other units
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format '%s': %w", durationStr, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: '%s'", durationStr)
	}
	return d, nil
}

// ParseSize parses a size string (e.g., "10MB", "5k", "1G") into bytes.
// Supports K, M, G suffixes (case-insensitive), with or without a
// trailing B.
func ParseSize(sizeStr string) (int64, error) {
	sizeStr = strings.TrimSpace(strings.ToUpper(sizeStr))
	if sizeStr == "" {
		return 0, errors.New("size string cannot be empty")
	}

	var multiplier int64 = 1
	suffix := ""

	if strings.HasSuffix(sizeStr, "KB") {
		multiplier = 1024
		suffix = "KB"
	} else if strings.HasSuffix(sizeStr, "K") {
		multiplier = 1024
		suffix = "K"
	} else if strings.HasSuffix(sizeStr, "MB") {
		multiplier = 1024 * 1024
		suffix = "MB"
	} else if strings.HasSuffix(sizeStr, "M") {
		multiplier = 1024 * 1024
		suffix = "M"
	} else if strings.HasSuffix(sizeStr, "GB") {
		multiplier = 1024 * 1024 * 1024
		suffix = "GB"
	} else if strings.HasSuffix(sizeStr, "G") {
		multiplier = 1024 * 1024 * 1024
		suffix = "G"
	}

	numStr := sizeStr
	if suffix != "" {
		numStr = strings.TrimSuffix(sizeStr, suffix)
	}
	numStr = strings.TrimSpace(numStr)

	// Use big.Int for invalid format detection and negative numbers
	numBig := new(big.Int)
	_, ok := numBig.SetString(numStr, 10)
	if !ok {
		return 0, fmt.Errorf("invalid number format in size string '%s'", sizeStr)
	}

	if numBig.Sign() < 0 {
		return 0, fmt.Errorf("size cannot be negative: %s", numBig.String())
	}
	if numBig.Sign() == 0 {
		return 0, nil // Zero is valid
	}

	resultBig := new(big.Int).Mul(numBig, big.NewInt(multiplier))

	// Check for int64 overflow
	maxInt64 := big.NewInt(1<<63 - 1)
	if resultBig.Cmp(maxInt64) > 0 {
		return 0, fmt.Errorf("size value %s%s results in overflow (exceeds max int64)", numBig.String(), suffix)
	}

	return resultBig.Int64(), nil
}
