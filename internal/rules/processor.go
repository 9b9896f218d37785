// internal/rules/processor.go

package rules

import (
	"fmt"

	"github.com/gobwas/glob"
	"github.com/orgoj/dailylog/internal/config"
	"github.com/orgoj/dailylog/internal/logger"
)

// compiledRule holds a rule with its pre-compiled target pattern and
// parsed level overrides.
type compiledRule struct {
	pattern      glob.Glob
	enabled      bool
	consoleLevel logger.Level // 0 means inherit the configured threshold
	fileLevel    logger.Level
}

// Processor matches record targets against the configured rules and
// resolves per-target sink thresholds. It implements
// logger.TargetFilter. All state is built up front; matching is
// read-only and safe for concurrent use.
type Processor struct {
	compiledRules []compiledRule
}

// NewProcessor creates a Processor with pre-compiled patterns.
func NewProcessor(rules []config.LogRule) (*Processor, error) {
	compiledRules := make([]compiledRule, 0, len(rules))
	for i, rule := range rules {
		g, err := glob.Compile(rule.Target)
		if err != nil {
			return nil, fmt.Errorf("rule %d: invalid target glob pattern '%s': %w", i, rule.Target, err)
		}

		compiled := compiledRule{
			pattern: g,
			enabled: rule.Enabled,
		}
		if rule.ConsoleLevel != "" {
			level, err := logger.ParseLevel(rule.ConsoleLevel)
			if err != nil {
				return nil, fmt.Errorf("rule %d: %w", i, err)
			}
			compiled.consoleLevel = level
		}
		if rule.FileLevel != "" {
			level, err := logger.ParseLevel(rule.FileLevel)
			if err != nil {
				return nil, fmt.Errorf("rule %d: %w", i, err)
			}
			compiled.fileLevel = level
		}

		compiledRules = append(compiledRules, compiled)
	}

	return &Processor{compiledRules: compiledRules}, nil
}

// Thresholds resolves the effective sink thresholds for a target. Rules
// are evaluated in order and the first matching rule wins: a disabled
// rule silences both sinks for the target, an enabled one applies its
// level overrides. Targets matching no rule keep the configured
// thresholds.
func (p *Processor) Thresholds(target string, console, file logger.Level) (logger.Level, logger.Level) {
	for _, rule := range p.compiledRules {
		if !rule.pattern.Match(target) {
			continue
		}
		if !rule.enabled {
			return logger.OFF, logger.OFF
		}
		if rule.consoleLevel != 0 {
			console = rule.consoleLevel
		}
		if rule.fileLevel != 0 {
			file = rule.fileLevel
		}
		return console, file
	}
	return console, file
}

// Ensure Processor implements the logger filter interface.
var _ logger.TargetFilter = (*Processor)(nil)
