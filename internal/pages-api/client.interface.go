package pagesApi

import "context"

// PageFetcher retrieves one page of a project's deployment listing.
type PageFetcher interface {
	FetchPage(ctx context.Context, accountID, projectName, authToken string, page, perPage int) (*PageResponse, error)
}

// DeploymentDeleter removes a single deployment and reports whether it is
// gone. Failures are logged by the implementation, never returned.
type DeploymentDeleter interface {
	DeleteDeployment(ctx context.Context, accountID, projectName, authToken, deploymentID string) bool
}

// PagesClient combines all deployment capabilities
type PagesClient interface {
	PageFetcher
	DeploymentDeleter
}
