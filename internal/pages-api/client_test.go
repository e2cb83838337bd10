package pagesApi_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	pagesApi "github.com/alex-galey/pages-janitor/internal/pages-api"
	"github.com/alex-galey/pages-janitor/pkg/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type recordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	ContentType   string
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:        r.Method,
		Path:          r.URL.EscapedPath(),
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
	})
	status, body := f.status, f.body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (f *fakeAPI) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

var _ = Describe("Client", func() {
	var (
		api    *fakeAPI
		server *httptest.Server
		client pagesApi.PagesClient
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		api = &fakeAPI{}
		server = httptest.NewServer(api)
		client = pagesApi.NewPagesClient(&pagesApi.ClientConfig{BaseURL: server.URL + "/client/v4/"}, createTestLogger())
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("FetchPage", func() {
		It("should issue an authenticated listing request with pagination parameters", func() {
			api.body = `{"success":true,"errors":[],"result":[{"id":"a","created_on":"2024-01-01T00:00:00Z"}],"result_info":{"page":2,"per_page":25,"total_pages":3,"total_count":51}}`

			page, err := client.FetchPage(ctx, "acc", "docs", "token", 2, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Result).To(Equal([]pagesApi.Deployment{{ID: "a", CreatedOn: "2024-01-01T00:00:00Z"}}))
			Expect(page.TotalPages()).To(Equal(3))

			reqs := api.Requests()
			Expect(reqs).To(HaveLen(1))
			Expect(reqs[0].Method).To(Equal(http.MethodGet))
			Expect(reqs[0].Path).To(Equal("/client/v4/accounts/acc/pages/projects/docs/deployments"))
			Expect(reqs[0].Query).To(Equal("page=2&per_page=25"))
			Expect(reqs[0].Authorization).To(Equal("Bearer token"))
			Expect(reqs[0].ContentType).To(Equal("application/json"))
		})

		It("should honour an explicit page size", func() {
			api.body = `{"success":true,"errors":[],"result":[]}`

			_, err := client.FetchPage(ctx, "acc", "docs", "token", 1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(api.Requests()[0].Query).To(Equal("page=1&per_page=10"))
		})

		It("should escape path segments", func() {
			api.body = `{"success":true,"errors":[],"result":[]}`

			_, err := client.FetchPage(ctx, "acc", "my site", "token", 1, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(api.Requests()[0].Path).To(Equal("/client/v4/accounts/acc/pages/projects/my%20site/deployments"))
		})

		It("should return a RequestError embedding the error payload when success is false", func() {
			api.status = http.StatusForbidden
			api.body = `{"success":false,"errors":[{"code":10000,"message":"Authentication error"}],"result":null}`

			page, err := client.FetchPage(ctx, "acc", "docs", "bad", 1, 0)
			Expect(page).To(BeNil())
			Expect(pagesApi.IsRequestError(err)).To(BeTrue())
			Expect(err.Error()).To(Equal(`failed to fetch deployments: [{"code":10000,"message":"Authentication error"}]`))
		})

		It("should fail when the body is not JSON", func() {
			api.status = http.StatusBadGateway
			api.body = `<html>bad gateway</html>`

			_, err := client.FetchPage(ctx, "acc", "docs", "token", 1, 0)
			Expect(err).To(HaveOccurred())
			Expect(pagesApi.IsRequestError(err)).To(BeFalse())
			Expect(err.Error()).To(ContainSubstring("decode response"))
		})

		It("should treat a missing result_info as a single page", func() {
			api.body = `{"success":true,"errors":[],"result":[]}`

			page, err := client.FetchPage(ctx, "acc", "docs", "token", 1, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.ResultInfo).To(BeNil())
			Expect(page.TotalPages()).To(Equal(1))
		})
	})

	Describe("NewPagesClient", func() {
		It("should target the Cloudflare API when no base URL is configured", func() {
			var requested string
			transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
				requested = r.URL.String()
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(strings.NewReader(`{"success":true,"errors":[],"result":[]}`)),
					Header:     make(http.Header),
				}, nil
			})
			client = pagesApi.NewPagesClient(&pagesApi.ClientConfig{}, createTestLogger(),
				pagesApi.WithHTTPClient(&http.Client{Transport: transport}))

			_, err := client.FetchPage(ctx, "acc", "docs", "token", 1, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(requested).To(Equal(config.DefaultAPIBaseURL + "/accounts/acc/pages/projects/docs/deployments?page=1&per_page=25"))
		})
	})

	Describe("DeleteDeployment", func() {
		It("should issue a forced delete for the deployment", func() {
			api.body = `{"success":true,"errors":[]}`

			Expect(client.DeleteDeployment(ctx, "acc", "docs", "token", "dep-1")).To(BeTrue())

			reqs := api.Requests()
			Expect(reqs).To(HaveLen(1))
			Expect(reqs[0].Method).To(Equal(http.MethodDelete))
			Expect(reqs[0].Path).To(Equal("/client/v4/accounts/acc/pages/projects/docs/deployments/dep-1"))
			Expect(reqs[0].Query).To(Equal("force=true"))
			Expect(reqs[0].Authorization).To(Equal("Bearer token"))
		})

		It("should log and swallow an unsuccessful delete", func() {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			client = pagesApi.NewPagesClient(&pagesApi.ClientConfig{BaseURL: server.URL}, logger)
			api.status = http.StatusBadRequest
			api.body = `{"success":false,"errors":[{"code":8000034,"message":"protected"}]}`

			Expect(client.DeleteDeployment(ctx, "acc", "docs", "token", "dep-1")).To(BeFalse())
			Expect(logs.String()).To(ContainSubstring("Failed to delete deployment"))
			Expect(logs.String()).To(ContainSubstring("dep-1"))
			Expect(logs.String()).To(ContainSubstring("8000034"))
		})

		It("should log and swallow transport failures", func() {
			server.Close()

			Expect(client.DeleteDeployment(ctx, "acc", "docs", "token", "dep-1")).To(BeFalse())
		})
	})
})
