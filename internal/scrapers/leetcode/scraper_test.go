package leetcode

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"cpprofile-backend/internal/components/fetch/fetchtest"
	"cpprofile-backend/internal/components/telemetry"
	"cpprofile-backend/internal/profile"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const userBody = `{
	"username": "neal_wu",
	"name": "Neal Wu",
	"ranking": 1,
	"reputation": 12345678901234567,
	"acceptanceRate": 67.25,
	"school": null,
	"skillTags": ["dynamic-programming", "graphs"],
	"badges": [{"id": "7588899", "displayName": "Knight"}]
}`

func TestProfilePassthrough(t *testing.T) {
	client := fetchtest.NewClient(map[string]fetchtest.Response{
		"https://leetcode.test/neal_wu": {Body: userBody},
	})
	scraper := NewScraper("https://leetcode.test", client, &telemetry.Recorder{})

	result, err := scraper.Profile(context.Background(), "neal_wu")
	require.NoError(t, err)

	expected := Profile{
		"username":       "neal_wu",
		"name":           "Neal Wu",
		"ranking":        json.Number("1"),
		"reputation":     json.Number("12345678901234567"),
		"acceptanceRate": json.Number("67.25"),
		"school":         nil,
		"skillTags":      []any{"dynamic-programming", "graphs"},
		"badges": []any{
			map[string]any{"id": "7588899", "displayName": "Knight"},
		},
	}
	diff := cmp.Diff(expected, result)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	client := fetchtest.NewClient(map[string]fetchtest.Response{
		"https://leetcode.test/neal_wu": {Body: userBody},
	})
	scraper := NewScraper("https://leetcode.test", client, &telemetry.Recorder{})

	result, err := scraper.Profile(context.Background(), "neal_wu")
	require.NoError(t, err)

	encoded, err := json.Marshal(result)
	require.NoError(t, err)

	require.JSONEq(t, userBody, string(encoded))
	require.Contains(t, string(encoded), `"reputation":12345678901234567`)
}

func TestProfileErrors(t *testing.T) {
	testCases := []struct {
		name     string
		response fetchtest.Response
		kind     profile.ErrorKind
	}{
		{name: "invalid json", response: fetchtest.Response{Body: "<html>rate limited</html>"}, kind: profile.KindMalformed},
		{name: "array", response: fetchtest.Response{Body: `[{"username": "neal_wu"}]`}, kind: profile.KindMalformed},
		{name: "null", response: fetchtest.Response{Body: `null`}, kind: profile.KindMalformed},
		{name: "trailing garbage", response: fetchtest.Response{Body: `{"a":1} garbage`}, kind: profile.KindMalformed},
		{name: "two objects", response: fetchtest.Response{Body: `{"a":1}{"b":2}`}, kind: profile.KindMalformed},
		{name: "server error", response: fetchtest.Response{Status: http.StatusInternalServerError}, kind: profile.KindStatus},
		{name: "unreachable", response: fetchtest.Response{Err: errors.New("dial tcp: i/o timeout")}, kind: profile.KindTransport},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			client := fetchtest.NewClient(map[string]fetchtest.Response{
				"https://leetcode.test/someone": test.response,
			})
			rec := &telemetry.Recorder{}
			scraper := NewScraper("https://leetcode.test/", client, rec)

			result, err := scraper.Profile(context.Background(), "someone")
			require.Nil(t, result)

			var fetchErr *profile.FetchError
			require.True(t, errors.As(err, &fetchErr))
			require.Equal(t, profile.LeetCode, fetchErr.Platform)
			require.Equal(t, test.kind, fetchErr.Kind)
			require.Equal(t, "Error fetching LeetCode profile", fetchErr.Message())
			require.Len(t, rec.Broken(), 1)
		})
	}
}

func TestDecodeTrailingWhitespace(t *testing.T) {
	result, err := decode([]byte("{\"username\": \"neal_wu\"}\n\n"))
	require.NoError(t, err)
	require.Equal(t, Profile{"username": "neal_wu"}, result)

	_, err = decode([]byte(`{"username": "neal_wu"} garbage`))
	require.ErrorIs(t, err, errTrailingData)
}
