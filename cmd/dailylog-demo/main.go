package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/orgoj/dailylog/internal/config"
	"github.com/orgoj/dailylog/internal/logger"
	"github.com/orgoj/dailylog/internal/rules"
	"github.com/orgoj/dailylog/internal/version"
)

func main() {
	// --- Configuration --- //
	configPath := flag.String("config", "", "Path to the configuration file (optional)")
	baseDir := flag.String("dir", "", "Base directory for log files (overrides config)")
	testConfigShort := flag.Bool("t", false, "Test configuration and exit (nginx style)")
	testConfigLong := flag.Bool("test", false, "Test configuration and exit (nginx style)")
	showVersion := flag.Bool("version", false, "Show version information and exit")
	flag.Parse()

	// Display version information if requested
	if *showVersion {
		fmt.Println(version.VersionInfo())
		os.Exit(0)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			fmt.Printf("[CRITICAL] Failed to load configuration from '%s': %v\n", *configPath, err)
			os.Exit(1)
		}

		if err := config.ValidateConfig(cfg); err != nil {
			fmt.Printf("[CRITICAL] Configuration validation failed for '%s':\n%v\n", *configPath, err)
			os.Exit(1)
		}
	}

	if *testConfigShort || *testConfigLong {
		if *configPath == "" {
			fmt.Println("[CRITICAL] -t requires -config")
			os.Exit(1)
		}
		// Validation was already done above
		fmt.Printf("Configuration '%s' is valid.\n", *configPath)
		os.Exit(0)
	}

	if *baseDir != "" {
		cfg.Log.BaseDir = *baseDir
	}

	// --- Logger Initialization --- //
	if err := wireLogger(cfg); err != nil {
		fmt.Printf("[CRITICAL] Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	lg := logger.Get()
	defer lg.Close()

	// Emit a small mixed workload: keyed records trace one order through
	// its workflow, non-keyed records land only in the daily file.
	orderID := uuid.NewString()

	lg.InfofKeyed("vending", orderID, "order %s started", orderID)
	lg.InfofKeyed("vending", orderID, "dispensing item for order %s", orderID)
	lg.Infof("ui", "generic log 1")
	lg.Infof("ui", "generic log 2")
	lg.Debugf("system", "random debug msg")
	lg.Warnf("ui", "warning ui")
	lg.Warnf("vending", "warning vending")
	lg.ErrorfKeyed("vending", orderID, "order %s failed", orderID)
	lg.Tracef("random", "trace msgs 1")
	lg.TracefKeyed("random", orderID, "trace msgs 2")
}

// wireLogger applies the loaded configuration to the process-wide
// logger instance.
func wireLogger(cfg *config.Config) error {
	consoleLevel, err := logger.ParseLevel(cfg.Log.ConsoleLevel)
	if err != nil {
		return fmt.Errorf("console level: %w", err)
	}
	fileLevel, err := logger.ParseLevel(cfg.Log.FileLevel)
	if err != nil {
		return fmt.Errorf("file level: %w", err)
	}

	logger.Init(consoleLevel, fileLevel, cfg.Log.BaseDir)
	lg := logger.Get()

	if cfg.Log.CacheSize > 0 {
		lg.SetCacheSize(cfg.Log.CacheSize)
	}

	if cfg.Log.MaxMessageSize != "" {
		size, err := config.ParseSize(cfg.Log.MaxMessageSize)
		if err != nil {
			return fmt.Errorf("max message size: %w", err)
		}
		lg.SetMaxMessageSize(int(size))
	}

	var rotation logger.Rotation
	if cfg.Log.Rotation.MaxSize != "" {
		// Validated at load time; the value is MB.
		rotation.MaxSizeMB, _ = strconv.Atoi(cfg.Log.Rotation.MaxSize)
	}
	if cfg.Log.Rotation.MaxAge != "" {
		ageDuration, err := config.ParseDuration(cfg.Log.Rotation.MaxAge)
		if err != nil {
			return fmt.Errorf("rotation max age: %w", err)
		}
		days := int(ageDuration.Hours() / 24)
		if days < 1 {
			days = 1
		}
		rotation.MaxAgeDays = days
	}
	rotation.MaxBackups = cfg.Log.Rotation.MaxBackups
	if rotation.MaxSizeMB > 0 || rotation.MaxAgeDays > 0 || rotation.MaxBackups > 0 {
		lg.SetRotation(rotation)
	}

	if len(cfg.LogRules) > 0 {
		processor, err := rules.NewProcessor(cfg.LogRules)
		if err != nil {
			return fmt.Errorf("log rules: %w", err)
		}
		lg.SetTargetFilter(processor)
	}

	return nil
}
