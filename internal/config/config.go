package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"remuxer/internal/policy"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directories owned by remuxer itself.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Library describes where containers are discovered.
type Library struct {
	Roots      []string `toml:"roots"`
	Extensions []string `toml:"extensions"`
	PageSize   int      `toml:"page_size"`
}

// Policy holds the remux policy as written in the config file.
type Policy struct {
	WhitelistedLanguages []string `toml:"whitelisted_languages"`
	KeepDefaultTrack     bool     `toml:"keep_default_track"`
	StripMode            string   `toml:"strip_mode"`
	ExtractMode          string   `toml:"extract_mode"`
	ExtractOnlyTextSubs  bool     `toml:"extract_only_text_subs"`
	OCRMode              string   `toml:"ocr_mode"`
	OCRAlways            bool     `toml:"ocr_always"`
}

// Tools names the external binaries remuxer drives.
type Tools struct {
	MkvMerge   string `toml:"mkvmerge"`
	MkvExtract string `toml:"mkvextract"`
	OCR        string `toml:"ocr"`
}

// OCR tunes the OCR fan-out. MaxParallel 0 launches every conversion at once.
type OCR struct {
	MaxParallel int `toml:"max_parallel"`
}

// Workflow contains pipeline housekeeping settings.
type Workflow struct {
	StaleScratchHours int  `toml:"stale_scratch_hours"`
	CheckFreeSpace    bool `toml:"check_free_space"`
}

// Logging configures log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for remuxer.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Library  Library  `toml:"library"`
	Policy   Policy   `toml:"policy"`
	Tools    Tools    `toml:"tools"`
	OCR      OCR      `toml:"ocr"`
	Workflow Workflow `toml:"workflow"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/remuxer/config.toml")
}

// Load reads configuration from disk, applying defaults and normalization.
// It returns the config, the resolved path, whether the file existed, and an error.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("remuxer.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath returns the location of the processed-file ledger.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// ScanLockPath returns the lock file guarding library scans.
func (c *Config) ScanLockPath() string {
	return filepath.Join(c.Paths.StateDir, "scan.lock")
}

// RemuxPolicy converts the configured policy into the form the decision engine uses.
func (c *Config) RemuxPolicy() (policy.Policy, error) {
	strip, err := policy.ParseStripMode(c.Policy.StripMode)
	if err != nil {
		return policy.Policy{}, fmt.Errorf("policy.strip_mode: %w", err)
	}
	extract, err := policy.ParseExtractMode(c.Policy.ExtractMode)
	if err != nil {
		return policy.Policy{}, fmt.Errorf("policy.extract_mode: %w", err)
	}
	ocr, err := policy.ParseOCRMode(c.Policy.OCRMode)
	if err != nil {
		return policy.Policy{}, fmt.Errorf("policy.ocr_mode: %w", err)
	}
	return policy.Policy{
		Languages:           policy.NewLanguageSet(c.Policy.WhitelistedLanguages...),
		KeepDefaultTrack:    c.Policy.KeepDefaultTrack,
		StripMode:           strip,
		ExtractMode:         extract,
		ExtractOnlyTextSubs: c.Policy.ExtractOnlyTextSubs,
		OCRMode:             ocr,
		OCRAlways:           c.Policy.OCRAlways,
	}, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the commented sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
