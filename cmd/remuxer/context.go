package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"remuxer/internal/config"
	"remuxer/internal/history"
	"remuxer/internal/logging"
	"remuxer/internal/toolexec"
)

type commandContext struct {
	configFlag *string
	runner     toolexec.Runner

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, runner toolexec.Runner, logger *slog.Logger) *commandContext {
	if runner == nil {
		runner = toolexec.ExecRunner{}
	}
	return &commandContext{
		configFlag: configFlag,
		runner:     runner,
		logger:     logger,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the logger from the loaded config and prunes log files
// past the retention window.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		if c.logger != nil {
			return
		}
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		active := logging.DailyLogPath(cfg.Paths.LogDir, time.Now())
		logging.CleanupOldLogs(logger, cfg.Paths.LogDir, logging.LogFilePattern, active, cfg.Logging.RetentionDays)
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}

// expandArgs resolves user supplied paths, falling back when none are given.
func expandArgs(args []string, fallback []string) ([]string, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	out := make([]string, 0, len(args))
	for _, arg := range args {
		expanded, err := config.ExpandPath(strings.TrimSpace(arg))
		if err != nil {
			return nil, fmt.Errorf("resolve path %q: %w", arg, err)
		}
		out = append(out, expanded)
	}
	return out, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
