package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"clio/internal/collection"
	"clio/internal/config"
	"clio/internal/logging"
	"clio/internal/search"
	"clio/internal/services"
	"clio/internal/services/kleio"
)

type commandContext struct {
	configFlag *string
	apiURLFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, apiURLFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		apiURLFlag: apiURLFlag,
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
		if c.apiURLFlag != nil {
			if override := strings.TrimSpace(*c.apiURLFlag); override != "" {
				cfg.API.BaseURL = strings.TrimRight(override, "/")
			}
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
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
		logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
			Dir:     cfg.Paths.LogDir,
			Pattern: "*.log",
		})
	})
	return c.logger
}

func (c *commandContext) apiClient() (*kleio.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return kleio.New(cfg.API.BaseURL, cfg.API.Token)
}

// opContext derives a request-scoped context from the command: a fresh
// correlation ID plus the configured API timeout.
func (c *commandContext) opContext(cmd *cobra.Command) (context.Context, context.CancelFunc, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	ctx := services.WithRequestID(cmd.Context(), uuid.NewString())
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
	return ctx, cancel, nil
}

func (c *commandContext) matcher() *search.Matcher {
	cfg, err := c.ensureConfig()
	if err != nil {
		return search.NewMatcher(0)
	}
	return search.NewMatcher(cfg.Search.Threshold)
}

// fetchStore pulls the current snapshot and loads it into a store so
// commands read one consistent view.
func (c *commandContext) fetchStore(cmd *cobra.Command) (*collection.Store, error) {
	client, err := c.apiClient()
	if err != nil {
		return nil, err
	}
	ctx, cancel, err := c.opContext(cmd)
	if err != nil {
		return nil, err
	}
	defer cancel()

	snap, err := client.Collection(ctx)
	if err != nil {
		return nil, err
	}
	store := collection.NewStore()
	store.Replace(snap)
	return store, nil
}
