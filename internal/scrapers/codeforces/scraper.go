package codeforces

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cpprofile-backend/internal/components/assert"
	"cpprofile-backend/internal/components/fetch"
	"cpprofile-backend/internal/components/telemetry"
	"cpprofile-backend/internal/profile"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://codeforces.com"

const (
	report_scraper_profile = "scraper.profile"
	report_scraper_decode  = "scraper.decode"
)

var tracer = otel.Tracer("cpprofile.internal.scrapers.codeforces")

var errEmptyResult = errors.New("user.info returned no users")

func NewHttpClient(timeout time.Duration, dump fetch.Output, tel telemetry.API) *fetch.RestyClient {
	return fetch.NewRestyClient(fetch.Options{
		Name:    "codeforces_http",
		Timeout: timeout,
		Dump:    dump,
		Headers: map[string]string{
			"accept": "application/json",
		},
	}, tel)
}

type Scraper struct {
	baseUrl string
	http    fetch.Client
	tel     telemetry.API
}

func NewScraper(baseUrl string, http fetch.Client, tel telemetry.API) Scraper {
	assert.NotEmptyStr(baseUrl, "codeforces base url")
	assert.NotNil(http, "codeforces http client")
	assert.NotNil(tel, "telemetry")

	return Scraper{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		http:    http,
		tel:     telemetry.NewScopedAPI("codeforces_scraper", tel),
	}
}

func (s Scraper) Profile(ctx context.Context, handle string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "Profile")
	defer span.End()
	span.SetAttributes(attribute.String("handle", handle))

	endpoint := fmt.Sprintf("%s/api/user.info?handles=%s", s.baseUrl, url.QueryEscape(handle))
	s.tel.ReportDebug(report_scraper_profile, endpoint)

	fail := func(id string, err *profile.FetchError) (Profile, error) {
		s.tel.ReportBroken(id, err.Err, endpoint)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Kind.String())
		return Profile{}, err
	}

	body, err := s.http.Get(ctx, endpoint)
	if err != nil {
		// codeforces answers bad handles with 400 and a FAILED body
		var statusErr *fetch.StatusError
		if errors.As(err, &statusErr) {
			comment := failureComment(statusErr.Body)
			if comment != "" {
				err = fmt.Errorf("%s: %w", comment, err)
			}
		}
		return fail(report_scraper_profile, profile.NewFetchError(profile.Codeforces, fmt.Errorf("fetch: %w", err)))
	}

	var res userInfoResponse
	err = json.Unmarshal(body, &res)
	if err != nil {
		return fail(report_scraper_decode, profile.Malformed(profile.Codeforces, fmt.Errorf("decode: %w", err)))
	}
	if res.Status != "" && res.Status != "OK" {
		return fail(report_scraper_decode, profile.Malformed(
			profile.Codeforces,
			fmt.Errorf("status %s: %s", res.Status, res.Comment),
		))
	}
	if len(res.Result) == 0 {
		return fail(report_scraper_decode, profile.Empty(profile.Codeforces, errEmptyResult))
	}

	return reshape(res.Result[0], handle), nil
}

func failureComment(body []byte) string {
	var res userInfoResponse
	if json.Unmarshal(body, &res) != nil {
		return ""
	}
	return res.Comment
}
