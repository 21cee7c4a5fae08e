package main

import (
	"strings"
	"sync"

	"clipvault/internal/config"
)

type commandContext struct {
	serverFlag *string
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(serverFlag, configFlag *string) *commandContext {
	return &commandContext{
		serverFlag: serverFlag,
		configFlag: configFlag,
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
		c.config = cfg
	})
	return c.config, c.configErr
}

// baseURL resolves the daemon address: the --server flag wins, then the
// configured bind address.
func (c *commandContext) baseURL() (string, error) {
	if c.serverFlag != nil {
		if flag := strings.TrimSpace(*c.serverFlag); flag != "" {
			return strings.TrimRight(flag, "/"), nil
		}
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return "http://" + cfg.Server.Bind, nil
}

func (c *commandContext) client() (*apiClient, error) {
	base, err := c.baseURL()
	if err != nil {
		return nil, err
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return newAPIClient(base, cfg.Server.AdminUser, cfg.Server.AdminPassword), nil
}
