package main

import (
	"log/slog"
	"strings"
	"sync"

	"redbreast/internal/config"
	"redbreast/internal/ffmpeg"
	"redbreast/internal/history"
	"redbreast/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	// newRunner and openHistory are swappable so command tests can inject
	// fakes without touching ffmpeg or the filesystem.
	newRunner   func(cfg *config.Config, logger *slog.Logger) ffmpeg.Runner
	openHistory func(cfg *config.Config) (*history.Store, error)
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		newRunner: func(cfg *config.Config, logger *slog.Logger) ffmpeg.Runner {
			return ffmpeg.NewCLI(
				ffmpeg.WithBinary(cfg.Encoder.Binary),
				ffmpeg.WithMinFreeSpace(cfg.MinFreeSpaceBytes()),
				ffmpeg.WithLogger(logger),
			)
		},
		openHistory: history.Open,
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

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = slog.Default()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = slog.Default()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) runner() (ffmpeg.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return c.newRunner(cfg, c.ensureLogger()), nil
}
