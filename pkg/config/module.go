package config

import "go.uber.org/fx"

var Module = fx.Module("config",
	// Provides specific, smaller configs for consumers
	fx.Provide(func(cfg *JanitorConfig) CloudflareConfig { return cfg.Cloudflare }),
	fx.Provide(func(cfg *JanitorConfig) APIConfig { return cfg.API }),
	fx.Provide(func(cfg *JanitorConfig) CleanupConfig { return cfg.Cleanup }),
)
