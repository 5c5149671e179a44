package codechef

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cpprofile-backend/internal/components/assert"
	"cpprofile-backend/internal/components/fetch"
	"cpprofile-backend/internal/components/telemetry"
	"cpprofile-backend/internal/profile"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://www.codechef.com"

const (
	report_scraper_profile        = "scraper.profile"
	report_scraper_missing_fields = "scraper.missing-fields"
	report_scraper_badge_count    = "scraper.badge-count"
)

var tracer = otel.Tracer("cpprofile.internal.scrapers.codechef")

// NewHttpClient creates the fetch client codechef pages should be requested with, codechef
// sits behind cloudflare so the transport needs to look like a browser.
func NewHttpClient(timeout time.Duration, dump fetch.Output, tel telemetry.API) *fetch.RestyClient {
	return fetch.NewRestyClient(fetch.Options{
		Name:    "codechef_http",
		Timeout: timeout,
		Dump:    dump,
		Headers: map[string]string{
			"accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"accept-language": "en-US,en;q=0.9",
		},
		BypassCloudflare: true,
	}, tel)
}

// Scraper scrapes codechef user pages.
type Scraper struct {
	baseUrl string
	http    fetch.Client
	tel     telemetry.API
}

func NewScraper(baseUrl string, http fetch.Client, tel telemetry.API) Scraper {
	assert.NotEmptyStr(baseUrl, "codechef base url")
	assert.NotNil(http, "codechef http client")
	assert.NotNil(tel, "telemetry")

	return Scraper{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		http:    http,
		tel:     telemetry.NewScopedAPI("codechef_scraper", tel),
	}
}

func (s Scraper) Profile(ctx context.Context, username string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "Profile")
	defer span.End()
	span.SetAttributes(attribute.String("username", username))

	endpoint := fmt.Sprintf("%s/users/%s", s.baseUrl, url.PathEscape(username))
	s.tel.ReportDebug(report_scraper_profile, endpoint)

	body, err := s.http.Get(ctx, endpoint)
	if err != nil {
		s.tel.ReportBroken(
			report_scraper_profile,
			fmt.Errorf("fetch: %w", err),
			endpoint,
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return Profile{}, profile.NewFetchError(profile.CodeChef, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		s.tel.ReportBroken(
			report_scraper_profile,
			fmt.Errorf("parse: %w", err),
			endpoint,
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return Profile{}, profile.Malformed(profile.CodeChef, err)
	}

	result, missing := extract(doc)
	if len(missing) > 0 {
		s.tel.ReportDebug(report_scraper_missing_fields, username, missing)
	}
	s.tel.ReportCount(report_scraper_badge_count, int64(len(result.Badges)))

	return result, nil
}
