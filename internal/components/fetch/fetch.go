// Package fetch is the HTTP GET capability every scraper depends on.
package fetch

import (
	"context"
	"fmt"
	"time"

	"cpprofile-backend/internal/components/assert"
	"cpprofile-backend/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const (
	report_client_get = "client.get"
)

const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Client performs a GET request and returns the raw response body.
//
// note: fault injection point
type Client interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// StatusError is returned by Get when the server answers with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
	URL    string
	// Body is the response body, some apis explain the failure in it.
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %s", e.URL, e.Status)
}

type Options struct {
	// Name is used for the telemetry namespace and tracer name.
	Name    string
	Timeout time.Duration
	// UserAgent defaults to a desktop browser user-agent.
	UserAgent string
	Headers   map[string]string
	// BypassCloudflare wraps the transport so that the TLS fingerprint matches a browser.
	BypassCloudflare bool
	// Dump receives every exchange when set, see DirOutput.
	Dump Output
}

// RestyClient implements Client with resty.
type RestyClient struct {
	http *resty.Client
	tel  telemetry.API
}

func NewRestyClient(opts Options, tel telemetry.API) *RestyClient {
	assert.NotNil(tel, "telemetry")
	assert.NotEmptyStr(opts.Name, "client name")

	tel = telemetry.NewScopedAPI(opts.Name, tel)

	httpClient := resty.New()
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	} else {
		httpClient.SetTimeout(time.Second * 30)
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = desktopUserAgent
	}
	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetHeaders(opts.Headers)

	if opts.BypassCloudflare {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	telemetry.InstrumentResty(httpClient, fmt.Sprintf("cpprofile.fetch.%s", opts.Name), tel)
	if opts.Dump != nil {
		dumpTo(httpClient, opts.Name, opts.Dump)
	}

	return &RestyClient{http: httpClient, tel: tel}
}

func (c *RestyClient) Get(ctx context.Context, url string) ([]byte, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		c.tel.ReportWarning(
			report_client_get,
			fmt.Errorf("fetch: %w", err),
			url,
		)
		return nil, err
	}
	if res.IsError() {
		return nil, &StatusError{
			Code:   res.StatusCode(),
			Status: res.Status(),
			URL:    url,
			Body:   res.Body(),
		}
	}
	return res.Body(), nil
}
