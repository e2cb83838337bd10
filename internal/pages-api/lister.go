package pagesApi

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ListAllDeployments returns every deployment of a project. The first page
// tells how many pages exist; the remaining pages are fetched concurrently
// and appended in page order. Any failed page fails the whole listing.
func ListAllDeployments(ctx context.Context, fetcher PageFetcher, accountID, projectName, authToken string) ([]Deployment, error) {
	first, err := fetcher.FetchPage(ctx, accountID, projectName, authToken, 1, 0)
	if err != nil {
		return nil, err
	}

	totalPages := first.TotalPages()
	if totalPages == 1 {
		return append([]Deployment(nil), first.Result...), nil
	}

	// remaining[i] holds page i+2
	remaining := make([][]Deployment, totalPages-1)
	g, gctx := errgroup.WithContext(ctx)
	for i := range remaining {
		page := i + 2
		g.Go(func() error {
			resp, err := fetcher.FetchPage(gctx, accountID, projectName, authToken, page, 0)
			if err != nil {
				return err
			}
			remaining[page-2] = resp.Result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := len(first.Result)
	for _, r := range remaining {
		total += len(r)
	}
	all := make([]Deployment, 0, total)
	all = append(all, first.Result...)
	for _, r := range remaining {
		all = append(all, r...)
	}
	return all, nil
}

// Lister binds a fetcher to one project.
type Lister struct {
	fetcher     PageFetcher
	accountID   string
	projectName string
	authToken   string
}

func NewLister(fetcher PageFetcher, accountID, projectName, authToken string) *Lister {
	return &Lister{
		fetcher:     fetcher,
		accountID:   accountID,
		projectName: projectName,
		authToken:   authToken,
	}
}

func (l *Lister) ListDeployments(ctx context.Context) ([]Deployment, error) {
	deployments, err := ListAllDeployments(ctx, l.fetcher, l.accountID, l.projectName, l.authToken)
	if err != nil {
		return nil, fmt.Errorf("list deployments of %s: %w", l.projectName, err)
	}
	return deployments, nil
}
