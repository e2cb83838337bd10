package pagesApi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alex-galey/pages-janitor/pkg/config"
)

type ClientConfig struct {
	BaseURL string
	PerPage int
	// RequestTimeout bounds each HTTP call; zero leaves calls unbounded.
	RequestTimeout time.Duration
}

func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: config.DefaultAPIBaseURL,
		PerPage: DefaultPerPage,
	}
}

// Option customises client instantiation.
type Option func(*client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

type client struct {
	config     *ClientConfig
	logger     *slog.Logger
	httpClient *http.Client
}

func NewPagesClient(cfg *ClientConfig, logger *slog.Logger, opts ...Option) PagesClient {
	if cfg == nil {
		cfg = DefaultClientConfig()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultAPIBaseURL
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = DefaultPerPage
	}

	c := &client{
		config:     cfg,
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) deploymentsPath(accountID, projectName string) string {
	return fmt.Sprintf("%s/accounts/%s/pages/projects/%s/deployments",
		strings.TrimRight(c.config.BaseURL, "/"),
		url.PathEscape(accountID),
		url.PathEscape(projectName))
}

func (c *client) FetchPage(ctx context.Context, accountID, projectName, authToken string, page, perPage int) (*PageResponse, error) {
	if perPage <= 0 {
		perPage = c.config.PerPage
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	endpoint := c.deploymentsPath(accountID, projectName) + "?" + query.Encode()

	c.logger.Debug("Fetching deployments page",
		"project", projectName,
		"page", page,
		"per_page", perPage)

	var data PageResponse
	if err := c.do(ctx, http.MethodGet, endpoint, authToken, &data); err != nil {
		return nil, fmt.Errorf("fetch deployments page %d: %w", page, err)
	}
	if !data.Success {
		return nil, &RequestError{Operation: "fetch deployments", Payload: encodeErrors(data.Errors)}
	}
	return &data, nil
}

func (c *client) DeleteDeployment(ctx context.Context, accountID, projectName, authToken, deploymentID string) bool {
	endpoint := c.deploymentsPath(accountID, projectName) + "/" + url.PathEscape(deploymentID) + "?force=true"

	var data DeleteResponse
	if err := c.do(ctx, http.MethodDelete, endpoint, authToken, &data); err != nil {
		c.logger.Error("Failed to delete deployment",
			"deployment_id", deploymentID,
			"error", err)
		return false
	}
	if !data.Success {
		c.logger.Error("Failed to delete deployment",
			"deployment_id", deploymentID,
			"errors", encodeErrors(data.Errors))
		return false
	}
	return true
}

// do sends an authenticated request and decodes the JSON envelope into v.
// The envelope is decoded regardless of HTTP status because the API reports
// failures through its success flag.
func (c *client) do(ctx context.Context, method, endpoint, authToken string, v any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(authToken))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}
