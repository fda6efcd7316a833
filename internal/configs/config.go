package configs

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/encoding"
	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/linking"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

// Config is the user's generation settings as stored in config.toml.
type Config struct {
	TargetDirectory           string   `toml:"target_directory" json:"target_directory"`
	DeleteAfterCompletion     bool     `toml:"delete_after_completion" json:"delete_after_completion"`
	CleanupDelay              string   `toml:"cleanup_delay" json:"cleanup_delay"`
	FillDrive                 bool     `toml:"fill_drive" json:"fill_drive"`
	MinFileSize               string   `toml:"min_file_size" json:"min_file_size"`
	MaxFileSize               string   `toml:"max_file_size" json:"max_file_size"`
	MinimumRemainingDiskSpace string   `toml:"minimum_remaining_disk_space" json:"minimum_remaining_disk_space"`
	MinFileCount              int      `toml:"min_file_count" json:"min_file_count"`
	MaxFileCount              int      `toml:"max_file_count" json:"max_file_count"`
	FileTypes                 []string `toml:"file_types" json:"file_types"`
	Languages                 []string `toml:"languages" json:"languages"`
	Seed                      uint64   `toml:"seed" json:"seed"`
	Workers                   int      `toml:"workers" json:"workers"`
	SuffixPolicy              string   `toml:"suffix_policy" json:"suffix_policy"`
	RandomizeTimestamps       bool     `toml:"randomize_timestamps" json:"randomize_timestamps"`

	Encoding EncodingConfig        `toml:"encoding" json:"encoding"`
	Linking  linking.Probabilities `toml:"linking" json:"linking"`

	// unknownKeys are keys in the loaded file that match no setting.
	unknownKeys []string
}

// EncodingConfig overrides rows of the encoding weight table. Keys are file
// kinds; values are weights in method order.
type EncodingConfig struct {
	Weights map[string][]float64 `toml:"weights" json:"weights"`
}

// Limits holds the parsed numeric settings.
type Limits struct {
	MinFileSize  uint64
	MaxFileSize  uint64
	ReserveSpace uint64
	MinFileCount int
	MaxFileCount int
	CleanupDelay time.Duration
}

var defaultFileTypes = []string{"txt", "jpg", "eml", "pdf", "docx", "xlsx", "csv"}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		TargetDirectory:           UserChaffSettings.DefaultTarget,
		CleanupDelay:              "5s",
		MinFileSize:               "0.1MB",
		MaxFileSize:               "10MB",
		MinimumRemainingDiskSpace: "100MB",
		MinFileCount:              100,
		MaxFileCount:              10000,
		FileTypes:                 append([]string(nil), defaultFileTypes...),
		Languages:                 []string{"en"},
		SuffixPolicy:              "keep",
		RandomizeTimestamps:       true,
		Linking:                   linking.DefaultProbabilities(),
	}
}

// LoadConfig reads path over the defaults and then applies CHAFF_*
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		unknown, err := LoadTOML(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", cerrors.ErrInvalidConfig, path, err)
		}
		cfg.unknownKeys = unknown
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.TargetDirectory = utils.ExpandHome(cfg.TargetDirectory)
	return cfg, nil
}

// SaveConfig writes cfg to path.
func SaveConfig(path string, cfg *Config) error {
	if err := SaveTOML(path, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from CHAFF_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup("CHAFF_" + key); ok && v != "" {
			*dst = v
		}
	}
	list := func(key string, dst *[]string) {
		if v, ok := lookup("CHAFF_" + key); ok && v != "" {
			*dst = splitList(v)
		}
	}
	var errs []error
	boolean := func(key string, dst *bool) {
		if v, ok := lookup("CHAFF_" + key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("CHAFF_%s: %v", key, err))
				return
			}
			*dst = b
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup("CHAFF_" + key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("CHAFF_%s: %v", key, err))
				return
			}
			*dst = n
		}
	}

	str("TARGET_DIRECTORY", &c.TargetDirectory)
	boolean("DELETE_AFTER_COMPLETION", &c.DeleteAfterCompletion)
	str("CLEANUP_DELAY", &c.CleanupDelay)
	boolean("FILL_DRIVE", &c.FillDrive)
	str("MIN_FILE_SIZE", &c.MinFileSize)
	str("MAX_FILE_SIZE", &c.MaxFileSize)
	str("MINIMUM_REMAINING_DISK_SPACE", &c.MinimumRemainingDiskSpace)
	integer("MIN_FILE_COUNT", &c.MinFileCount)
	integer("MAX_FILE_COUNT", &c.MaxFileCount)
	list("FILE_TYPES", &c.FileTypes)
	list("LANGUAGES", &c.Languages)
	integer("WORKERS", &c.Workers)
	str("SUFFIX_POLICY", &c.SuffixPolicy)
	boolean("RANDOMIZE_TIMESTAMPS", &c.RandomizeTimestamps)

	if v, ok := lookup("CHAFF_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("CHAFF_SEED: %v", err))
		} else {
			c.Seed = seed
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", cerrors.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func splitList(s string) []string {
	return lo.FilterMap(strings.Split(s, ","), func(item string, _ int) (string, bool) {
		item = strings.TrimSpace(item)
		return item, item != ""
	})
}

// Limits parses the size and count settings.
func (c *Config) Limits() (Limits, error) {
	var l Limits
	var err error
	if l.MinFileSize, err = utils.ParseSize(c.MinFileSize); err != nil {
		return l, fmt.Errorf("min_file_size: %w", err)
	}
	if l.MaxFileSize, err = utils.ParseSize(c.MaxFileSize); err != nil {
		return l, fmt.Errorf("max_file_size: %w", err)
	}
	if l.ReserveSpace, err = utils.ParseSize(c.MinimumRemainingDiskSpace); err != nil {
		return l, fmt.Errorf("minimum_remaining_disk_space: %w", err)
	}
	if c.MinFileCount < 0 || c.MaxFileCount < 0 {
		return l, fmt.Errorf("%w: file counts must not be negative", cerrors.ErrInvalidConfig)
	}
	l.MinFileCount, l.MaxFileCount = c.MinFileCount, c.MaxFileCount
	if c.CleanupDelay != "" {
		if l.CleanupDelay, err = time.ParseDuration(c.CleanupDelay); err != nil {
			return l, fmt.Errorf("%w: cleanup_delay: %v", cerrors.ErrInvalidConfig, err)
		}
	}
	return l, nil
}

// Kinds parses file_types. Duplicates are dropped.
func (c *Config) Kinds() ([]plan.Kind, error) {
	kinds := make([]plan.Kind, 0, len(c.FileTypes))
	for _, s := range c.FileTypes {
		k, err := plan.ParseKind(s)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return lo.Uniq(kinds), nil
}

// Weights returns the encoding weight table with config overrides applied.
func (c *Config) Weights() (encoding.WeightTable, error) {
	return encoding.WeightTableFromConfig(c.Encoding.Weights)
}

// Validate returns hard errors for settings that cannot be used and
// warnings for settings that are merely odd.
func (c *Config) Validate() ([]string, error) {
	limits, err := c.Limits()
	if err != nil {
		return nil, err
	}
	if _, err := c.Kinds(); err != nil {
		return nil, err
	}
	if _, err := c.Weights(); err != nil {
		return nil, err
	}
	if err := c.Linking.Validate(); err != nil {
		return nil, err
	}
	if !lo.Contains([]string{"", "keep", "suffix"}, strings.ToLower(c.SuffixPolicy)) {
		return nil, fmt.Errorf("%w: unknown suffix policy %q", cerrors.ErrInvalidConfig, c.SuffixPolicy)
	}
	if c.TargetDirectory == "" {
		return nil, fmt.Errorf("%w: target_directory is empty", cerrors.ErrInvalidConfig)
	}

	var warnings []string
	if limits.MinFileSize >= limits.MaxFileSize {
		warnings = append(warnings, "Minimum file size must be less than maximum file size")
	}
	if limits.MinFileCount >= limits.MaxFileCount {
		warnings = append(warnings, "Minimum file count must be less than maximum file count")
	}
	if len(c.FileTypes) == 0 {
		warnings = append(warnings, "No file types configured, all kinds will be generated")
	}
	for _, key := range c.unknownKeys {
		warnings = append(warnings, fmt.Sprintf("Unknown setting %q is ignored", key))
	}
	return warnings, nil
}
