package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
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

// DefaultBaseUrl is a public proxy in front of leetcode's graphql api.
const DefaultBaseUrl = "https://alfa-leetcode-api.onrender.com"

const (
	report_scraper_profile = "scraper.profile"
	report_scraper_decode  = "scraper.decode"
)

var tracer = otel.Tracer("cpprofile.internal.scrapers.leetcode")

// Profile is the json object returned by the api, keys and values are left untouched.
// Numbers are json.Number so they are written back exactly as received.
type Profile map[string]any

func NewHttpClient(timeout time.Duration, dump fetch.Output, tel telemetry.API) *fetch.RestyClient {
	return fetch.NewRestyClient(fetch.Options{
		Name:    "leetcode_http",
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
	assert.NotEmptyStr(baseUrl, "leetcode base url")
	assert.NotNil(http, "leetcode http client")
	assert.NotNil(tel, "telemetry")

	return Scraper{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		http:    http,
		tel:     telemetry.NewScopedAPI("leetcode_scraper", tel),
	}
}

func (s Scraper) Profile(ctx context.Context, username string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "Profile")
	defer span.End()
	span.SetAttributes(attribute.String("username", username))

	endpoint := fmt.Sprintf("%s/%s", s.baseUrl, url.PathEscape(username))
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
		return nil, profile.NewFetchError(profile.LeetCode, err)
	}

	result, err := decode(body)
	if err != nil {
		s.tel.ReportBroken(
			report_scraper_decode,
			fmt.Errorf("decode: %w", err),
			endpoint,
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return nil, profile.Malformed(profile.LeetCode, err)
	}

	return result, nil
}

var (
	errNotObject    = errors.New("top level value is not an object")
	errTrailingData = errors.New("unexpected data after the top level value")
)

func decode(body []byte) (Profile, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var result Profile
	err := decoder.Decode(&result)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errNotObject
	}
	if decoder.Decode(&struct{}{}) != io.EOF {
		return nil, errTrailingData
	}
	return result, nil
}
