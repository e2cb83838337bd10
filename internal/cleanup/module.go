package cleanup

import (
	pagesApi "github.com/alex-galey/pages-janitor/internal/pages-api"
	"github.com/alex-galey/pages-janitor/internal/shared/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("cleanup",
	fx.Provide(
		// Listing bound to the configured project
		fx.Annotate(
			func(l *pagesApi.Lister) DeploymentLister { return l },
		),
		// Client deletes deployments
		fx.Annotate(
			func(c pagesApi.PagesClient) pagesApi.DeploymentDeleter { return c },
		),
		fx.Annotate(
			metrics.NewRunCollector,
			fx.As(new(metrics.Collector)),
		),
		func() Sleeper { return SleepContext },
		NewCleaner,
	),
)
