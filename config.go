package rota

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/rota/strategy"
	"github.com/arloliu/rota/window"
)

// largeCapacity is the team capacity above which ValidateWithWarnings complains.
const largeCapacity = 40

// KVBucketConfig configures NATS JetStream KV bucket names.
type KVBucketConfig struct {
	// RosterBucket is the bucket name for sign-ups read by source.KV.
	RosterBucket string `yaml:"rosterBucket"`

	// ScheduleBucket is the bucket name for schedules written by publish.KVPublisher.
	ScheduleBucket string `yaml:"scheduleBucket"`
}

// Config is the configuration for the Scheduler.
//
// All duration fields accept standard Go duration strings like "500ms", "10s".
type Config struct {
	// Activities maps each activity name to its team capacity.
	// Every capacity must be a positive multiple of 4.
	Activities map[string]int `yaml:"activities"`

	// Strategy names the schedule strategy (see strategy.Names) that NewScheduler
	// uses when it is given a nil strategy.
	// Default: "batch_remainder"
	Strategy string `yaml:"strategy"`

	// WindowStart is the English name of the weekday each scheduling window starts on.
	// Default: "wednesday"
	WindowStart string `yaml:"windowStart"`

	// DayNames are the single-character day names accepted in availability strings.
	// Default: window.DefaultDayNames
	DayNames []string `yaml:"dayNames"`

	// OperationTimeout bounds each roster lookup.
	// Default: 10 seconds
	OperationTimeout time.Duration `yaml:"operationTimeout"`

	// DisableCache turns off reuse of schedules for unchanged rosters.
	DisableCache bool `yaml:"disableCache"`

	// KVBuckets configures bucket names for the NATS-backed components.
	KVBuckets KVBucketConfig `yaml:"kvBuckets"`
}

// DefaultConfig returns the default configuration.
//
// No activities are configured; callers add their own.
//
// Returns:
//   - Config: Default configuration
//
// Example:
//
//	cfg := rota.DefaultConfig()
//	cfg.Activities = map[string]int{"valtan": 8}
//	sched, err := rota.NewScheduler(&cfg, src, strategy.NewBatchRemainder())
func DefaultConfig() Config {
	return Config{
		Activities:       map[string]int{},
		Strategy:         strategy.NameBatchRemainder,
		WindowStart:      "wednesday",
		DayNames:         append([]string(nil), window.DefaultDayNames...),
		OperationTimeout: 10 * time.Second,
		KVBuckets: KVBucketConfig{
			RosterBucket:   "rota-roster",
			ScheduleBucket: "rota-schedule",
		},
	}
}

// SetDefaults fills zero-valued fields with defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Activities == nil {
		cfg.Activities = defaults.Activities
	}
	if cfg.Strategy == "" {
		cfg.Strategy = defaults.Strategy
	}
	if cfg.WindowStart == "" {
		cfg.WindowStart = defaults.WindowStart
	}
	if len(cfg.DayNames) == 0 {
		cfg.DayNames = defaults.DayNames
	}
	if cfg.OperationTimeout == 0 {
		cfg.OperationTimeout = defaults.OperationTimeout
	}
	if cfg.KVBuckets.RosterBucket == "" {
		cfg.KVBuckets.RosterBucket = defaults.KVBuckets.RosterBucket
	}
	if cfg.KVBuckets.ScheduleBucket == "" {
		cfg.KVBuckets.ScheduleBucket = defaults.KVBuckets.ScheduleBucket
	}
}

// ParseConfig decodes a YAML document and applies defaults.
//
// Unknown fields are rejected so typos surface instead of silently
// falling back to defaults.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - Config: Decoded configuration with defaults applied (not yet validated)
//   - error: Decoding error
func ParseConfig(data []byte) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	SetDefaults(&cfg)

	return cfg, nil
}

// LoadConfig reads and decodes a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return ParseConfig(data)
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Rules:
//   - Every activity name is non-empty and its capacity passes strategy.CalculateQuota
//   - Strategy is a registered strategy name
//   - WindowStart is a weekday name
//   - DayNames are single, distinct characters
//   - OperationTimeout > 0
//   - Bucket names are non-empty
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	for name, capacity := range cfg.Activities {
		if name == "" {
			return errors.New("activity name must not be empty")
		}
		if _, err := strategy.CalculateQuota(capacity); err != nil {
			return fmt.Errorf("activity %q: %w", name, err)
		}
	}

	if _, err := strategy.ByName(cfg.Strategy); err != nil {
		return err
	}

	if _, err := cfg.Weekday(); err != nil {
		return err
	}

	if _, err := cfg.DayTable(); err != nil {
		return fmt.Errorf("dayNames: %w", err)
	}

	if cfg.OperationTimeout <= 0 {
		return fmt.Errorf("OperationTimeout must be > 0, got %v", cfg.OperationTimeout)
	}

	if cfg.KVBuckets.RosterBucket == "" || cfg.KVBuckets.ScheduleBucket == "" {
		return errors.New("KV bucket names must not be empty")
	}

	return nil
}

// ValidateWithWarnings logs warnings for valid but unusual values.
//
// This is called after Validate() in NewScheduler() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if len(cfg.Activities) == 0 {
		logger.Warn("no activities configured, every schedule request will fail")
	}

	for name, capacity := range cfg.Activities {
		if capacity > largeCapacity {
			logger.Warn(
				"activity capacity is unusually large",
				"activity", name,
				"capacity", capacity,
				"recommended_max", largeCapacity,
			)
		}
	}
}

// Weekday returns the parsed WindowStart.
func (cfg *Config) Weekday() (time.Weekday, error) {
	return window.ParseWeekday(cfg.WindowStart)
}

// DayTable returns a day table over DayNames.
func (cfg *Config) DayTable() (*window.DayTable, error) {
	return window.NewDayTable(cfg.DayNames)
}

// TestConfig returns a configuration with a single 8-player activity named
// "raid" and a short operation timeout, for tests and examples.
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.Activities = map[string]int{"raid": 8}
	cfg.OperationTimeout = time.Second

	return cfg
}
