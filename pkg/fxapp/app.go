package fxapp

import (
	"log/slog"

	"github.com/alex-galey/pages-janitor/internal/cleanup"
	pagesApi "github.com/alex-galey/pages-janitor/internal/pages-api"
	"github.com/alex-galey/pages-janitor/pkg/config"
	"github.com/alex-galey/pages-janitor/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// New assembles the janitor from an already validated configuration.
// Extra options are appended, which is how callers pull out the Cleaner.
func New(cfg *config.JanitorConfig, opts ...fx.Option) *fx.App {
	// Container events are only interesting while debugging wiring
	var fxLogger fx.Option = fx.WithLogger(
		func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		},
	)

	if cfg.LogLevel != "debug" {
		fxLogger = fx.NopLogger
	}

	options := []fx.Option{
		fxLogger,
		fx.Supply(cfg),
		config.Module,
		logger.Module,
		pagesApi.Module,
		cleanup.Module,
	}
	return fx.New(append(options, opts...)...)
}
