package codeforces

import (
	"context"
	"errors"
	"testing"

	"cpprofile-backend/internal/components/fetch/fetchtest"
	"cpprofile-backend/internal/profile"
)

func FuzzProfile(f *testing.F) {
	f.Add(touristBody)
	f.Add(`{"status":"OK","result":[]}`)
	f.Add(`{"status":"FAILED","comment":"handles: not found"}`)
	f.Add(`{"result":[{"country":null}]}`)

	f.Fuzz(func(t *testing.T, body string) {
		scraper, _ := newTestScraper(map[string]fetchtest.Response{
			"https://codeforces.test/api/user.info?handles=fuzz": {Body: body},
		})

		result, err := scraper.Profile(context.Background(), "fuzz")
		if err != nil {
			var fetchErr *profile.FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("expected a FetchError, got %v", err)
			}
			return
		}
		if result.Username == "" || result.Country == "" || result.Organization == "" {
			t.Fatalf("profile has an empty defaulted field: %+v", result)
		}
	})
}
