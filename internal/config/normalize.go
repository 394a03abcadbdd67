package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeLibrary(); err != nil {
		return err
	}
	c.normalizePolicy()
	c.normalizeTools()
	c.normalizeLogging()
	if c.OCR.MaxParallel < 0 {
		c.OCR.MaxParallel = 0
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLibrary() error {
	roots := make([]string, 0, len(c.Library.Roots))
	for _, root := range c.Library.Roots {
		if strings.TrimSpace(root) == "" {
			continue
		}
		expanded, err := expandPath(strings.TrimSpace(root))
		if err != nil {
			return fmt.Errorf("library.roots: %w", err)
		}
		roots = append(roots, expanded)
	}
	c.Library.Roots = roots

	exts := make([]string, 0, len(c.Library.Extensions))
	for _, ext := range c.Library.Extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	if len(exts) == 0 {
		exts = []string{"mkv"}
	}
	c.Library.Extensions = exts

	if c.Library.PageSize <= 0 {
		c.Library.PageSize = defaultLibraryPageSize
	}
	return nil
}

func (c *Config) normalizePolicy() {
	if value, ok := os.LookupEnv("REMUXER_LANGUAGES"); ok && strings.TrimSpace(value) != "" {
		c.Policy.WhitelistedLanguages = strings.Split(value, ",")
	}
	langs := make([]string, 0, len(c.Policy.WhitelistedLanguages))
	seen := make(map[string]struct{}, len(c.Policy.WhitelistedLanguages))
	for _, lang := range c.Policy.WhitelistedLanguages {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			continue
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		langs = append(langs, lang)
	}
	c.Policy.WhitelistedLanguages = langs

	c.Policy.StripMode = strings.ToLower(strings.TrimSpace(c.Policy.StripMode))
	if c.Policy.StripMode == "" {
		c.Policy.StripMode = defaultStripMode
	}
	c.Policy.ExtractMode = strings.ToLower(strings.TrimSpace(c.Policy.ExtractMode))
	if c.Policy.ExtractMode == "" {
		c.Policy.ExtractMode = defaultExtractMode
	}
	c.Policy.OCRMode = strings.ToLower(strings.TrimSpace(c.Policy.OCRMode))
	if c.Policy.OCRMode == "" {
		c.Policy.OCRMode = defaultOCRMode
	}
}

func (c *Config) normalizeTools() {
	c.Tools.MkvMerge = strings.TrimSpace(c.Tools.MkvMerge)
	if c.Tools.MkvMerge == "" {
		c.Tools.MkvMerge = defaultMkvMergeBinary
	}
	c.Tools.MkvExtract = strings.TrimSpace(c.Tools.MkvExtract)
	if c.Tools.MkvExtract == "" {
		c.Tools.MkvExtract = defaultMkvExtractBinary
	}
	c.Tools.OCR = strings.TrimSpace(c.Tools.OCR)
	if c.Tools.OCR == "" {
		c.Tools.OCR = defaultOCRBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("REMUXER_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
