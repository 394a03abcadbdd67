package config

import (
	"errors"
	"fmt"

	"remuxer/internal/policy"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePolicy(); err != nil {
		return err
	}
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePolicy() error {
	if _, err := policy.ParseStripMode(c.Policy.StripMode); err != nil {
		return fmt.Errorf("policy.strip_mode: %w", err)
	}
	if _, err := policy.ParseExtractMode(c.Policy.ExtractMode); err != nil {
		return fmt.Errorf("policy.extract_mode: %w", err)
	}
	if _, err := policy.ParseOCRMode(c.Policy.OCRMode); err != nil {
		return fmt.Errorf("policy.ocr_mode: %w", err)
	}
	if len(c.Policy.WhitelistedLanguages) == 0 && c.Policy.StripMode != string(policy.StripNone) && !c.Policy.KeepDefaultTrack {
		return errors.New("policy.whitelisted_languages is empty; every track would be stripped")
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if c.Library.PageSize <= 0 {
		return errors.New("library.page_size must be positive")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.StaleScratchHours < 0 {
		return errors.New("workflow.stale_scratch_hours must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
