package pagesApi

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultPerPage is the page size used when a caller does not ask for one.
const DefaultPerPage = 25

// Deployment is a single published build of a Pages project.
type Deployment struct {
	ID        string `json:"id"`
	CreatedOn string `json:"created_on"`
}

// CreatedAt parses CreatedOn as an RFC 3339 timestamp.
func (d Deployment) CreatedAt() (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, d.CreatedOn)
	if err != nil {
		return time.Time{}, fmt.Errorf("deployment %s has invalid created_on %q: %w", d.ID, d.CreatedOn, err)
	}
	return t, nil
}

type ResultInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
}

// PageResponse is one page of the deployments listing envelope.
type PageResponse struct {
	Success    bool              `json:"success"`
	Errors     []json.RawMessage `json:"errors"`
	Result     []Deployment      `json:"result"`
	ResultInfo *ResultInfo       `json:"result_info,omitempty"`
}

// TotalPages returns the advertised page count, treating a missing or zero
// value as a single page.
func (p *PageResponse) TotalPages() int {
	if p == nil || p.ResultInfo == nil || p.ResultInfo.TotalPages <= 0 {
		return 1
	}
	return p.ResultInfo.TotalPages
}

type DeleteResponse struct {
	Success bool              `json:"success"`
	Errors  []json.RawMessage `json:"errors"`
}

// encodeErrors renders an API error payload the way it arrived on the wire.
func encodeErrors(errs []json.RawMessage) string {
	if errs == nil {
		errs = []json.RawMessage{}
	}
	data, err := json.Marshal(errs)
	if err != nil {
		return fmt.Sprintf("%v", errs)
	}
	return string(data)
}
