package pagesApi

import (
	"log/slog"

	"github.com/alex-galey/pages-janitor/pkg/config"
	"go.uber.org/fx"
)

// NewPagesClientFromConfig creates a PagesClient from the API configuration.
func NewPagesClientFromConfig(cfg config.APIConfig, logger *slog.Logger) PagesClient {
	clientConfig := &ClientConfig{
		BaseURL:        cfg.BaseURL,
		PerPage:        cfg.PerPage,
		RequestTimeout: cfg.RequestTimeout,
	}

	logger.Debug("Pages API client configured",
		"base_url", clientConfig.BaseURL,
		"per_page", clientConfig.PerPage,
		"request_timeout", clientConfig.RequestTimeout)

	return NewPagesClient(clientConfig, logger)
}

// NewListerFromConfig binds the client to the configured project.
func NewListerFromConfig(client PagesClient, cfg config.CloudflareConfig) *Lister {
	return NewLister(client, cfg.AccountID, cfg.ProjectName, cfg.AuthToken)
}

var Module = fx.Module("pages-api",
	fx.Provide(
		NewPagesClientFromConfig,
		NewListerFromConfig,
	),
)
