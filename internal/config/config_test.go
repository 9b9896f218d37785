package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	tempDir := t.TempDir()
	tempFile := filepath.Join(tempDir, "config.yaml")
	err := os.WriteFile(tempFile, []byte(content), 0644)
	require.NoError(t, err, "Failed to create temporary config file")
	return tempFile
}

func TestLoadConfig_Valid(t *testing.T) {
	content := `
log:
  base_dir: /var/log/dailylog
  console_level: WARN
  file_level: TRACE
  cache_size: 16
  max_message_size: 4k
  rotation:
    max_size: "10"
    max_age: 7d
    max_backups: 3
log_rules:
  - target: "noisy.*"
    enabled: false
  - target: vending
    enabled: true
    file_level: DEBUG
`
	path := createTempConfigFile(t, content)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/var/log/dailylog", cfg.Log.BaseDir)
	assert.Equal(t, "WARN", cfg.Log.ConsoleLevel)
	assert.Equal(t, "TRACE", cfg.Log.FileLevel)
	assert.Equal(t, 16, cfg.Log.CacheSize)
	assert.Equal(t, "4k", cfg.Log.MaxMessageSize)
	assert.Equal(t, "10", cfg.Log.Rotation.MaxSize)
	assert.Equal(t, "7d", cfg.Log.Rotation.MaxAge)
	assert.Equal(t, 3, cfg.Log.Rotation.MaxBackups)
	assert.False(t, cfg.Log.Rotation.Compress)

	require.Len(t, cfg.LogRules, 2)
	assert.Equal(t, "noisy.*", cfg.LogRules[0].Target)
	assert.False(t, cfg.LogRules[0].Enabled)
	assert.Equal(t, "DEBUG", cfg.LogRules[1].FileLevel)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := createTempConfigFile(t, "log: {}\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Log.ConsoleLevel)
	assert.Equal(t, "INFO", cfg.Log.FileLevel)
	assert.Empty(t, cfg.Log.BaseDir)
	assert.Zero(t, cfg.Log.CacheSize)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name: "Unknown console level",
			content: `
log:
  console_level: VERBOSE
  file_level: INFO
`,
			errText: "invalid log.console_level",
		},
		{
			name: "Negative cache size",
			content: `
log:
  console_level: INFO
  file_level: INFO
  cache_size: -1
`,
			errText: "cache_size cannot be negative",
		},
		{
			name: "Compression requested",
			content: `
log:
  console_level: INFO
  file_level: INFO
  rotation:
    compress: true
`,
			errText: "compress is not supported",
		},
		{
			name: "Rotation size with units",
			content: `
log:
  console_level: INFO
  file_level: INFO
  rotation:
    max_size: 10MB
`,
			errText: "value must be MB without units",
		},
		{
			name: "Bad max message size",
			content: `
log:
  console_level: INFO
  file_level: INFO
  max_message_size: lots
`,
			errText: "invalid log.max_message_size",
		},
		{
			name: "Rule without target",
			content: `
log:
  console_level: INFO
  file_level: INFO
log_rules:
  - enabled: true
`,
			errText: "target pattern is required",
		},
		{
			name: "Rule with unknown level",
			content: `
log:
  console_level: INFO
  file_level: INFO
log_rules:
  - target: "*"
    enabled: true
    console_level: CHATTY
`,
			errText: "invalid console_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTempConfigFile(t, tt.content)
			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestValidateConfig_RequiredFields(t *testing.T) {
	cfg := &Config{}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"1024", 1024, false},
		{"1k", 1024, false},
		{"1KB", 1024, false},
		{"10MB", 10 * 1024 * 1024, false},
		{"2G", 2 * 1024 * 1024 * 1024, false},
		{" 5 M ", 5 * 1024 * 1024, false},
		{"0", 0, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-1k", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"10m", 10 * time.Minute, false},
		{"1h30m", 90 * time.Minute, false},
		{"7d", 7 * 24 * time.Hour, false},
		{"", 0, true},
		{"0d", 0, true},
		{"-5m", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
