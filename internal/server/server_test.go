package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cpprofile-backend/internal/components/fetch/fetchtest"
	"cpprofile-backend/internal/components/telemetry"
	"cpprofile-backend/internal/scrapers/codechef"
	"cpprofile-backend/internal/scrapers/codeforces"
	"cpprofile-backend/internal/scrapers/leetcode"
	"cpprofile-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const touristBody = `{
	"status": "OK",
	"result": [{
		"handle": "tourist",
		"rating": 3757,
		"maxRating": 4009,
		"rank": "legendary grandmaster",
		"maxRank": "tourist",
		"avatar": "https://userpic.codeforces.org/422/avatar/2b5dbe87f0d859a2.jpg",
		"contribution": 146
	}]
}`

const chefPage = `<html><body>
	<img class="profileImage" src="/pictures/chef.jpg">
	<h1 class="h2-style">Chef</h1>
	<div class="widget badges">
		<div class="badge"><p class="badge__title">Streak</p></div>
	</div>
</body></html>`

const leetBody = `{"username": "leet", "ranking": 42}`

func setupRouter(routes map[string]fetchtest.Response) (*gin.Engine, *telemetry.Recorder) {
	gin.SetMode(gin.TestMode)

	rec := &telemetry.Recorder{}
	client := fetchtest.NewClient(routes)
	svc := service.NewService(
		codechef.NewScraper("https://codechef.test", client, rec),
		leetcode.NewScraper("https://leetcode.test", client, rec),
		codeforces.NewScraper("https://codeforces.test", client, rec),
		rec,
	)
	srv := NewServer(svc, Options{}, rec)
	return srv.Router(), rec
}

var defaultRoutes = map[string]fetchtest.Response{
	"https://codechef.test/users/chef":                       {Body: chefPage},
	"https://leetcode.test/leet":                             {Body: leetBody},
	"https://codeforces.test/api/user.info?handles=tourist": {Body: touristBody},
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestWelcome(t *testing.T) {
	router, _ := setupRouter(defaultRoutes)

	w := get(router, "/")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message": "Welcome to the CodeChef, LeetCode, and Codeforces profile API"}`, w.Body.String())
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestHealth(t *testing.T) {
	router, _ := setupRouter(defaultRoutes)

	w := get(router, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestCodeforcesProfile(t *testing.T) {
	router, _ := setupRouter(defaultRoutes)

	w := get(router, "/profile/codeforces/tourist")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{
		"username": "tourist",
		"rating": 3757,
		"maxRating": 4009,
		"rank": "legendary grandmaster",
		"maxRank": "tourist",
		"country": "N/A",
		"organization": "N/A",
		"avatar": "https://userpic.codeforces.org/422/avatar/2b5dbe87f0d859a2.jpg",
		"contribution": 146
	}`, w.Body.String())
}

func TestCodeChefProfile(t *testing.T) {
	router, _ := setupRouter(defaultRoutes)

	w := get(router, "/profile/codechef/chef")
	require.Equal(t, http.StatusOK, w.Code)

	var result codechef.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Equal(t, "Chef", result.Username)
	require.Equal(t, "/pictures/chef.jpg", result.ProfilePicture)
	require.Equal(t, []codechef.Badge{{Title: "Streak"}}, result.Badges)
	require.Equal(t, "", result.Rating)
}

func TestCodeChefNotFound(t *testing.T) {
	router, rec := setupRouter(defaultRoutes)

	w := get(router, "/profile/codechef/baduser")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Error fetching CodeChef profile", w.Body.String())
	require.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	require.Contains(t, rec.Broken(), "server: server.profile")
}

func TestLeetCodeProfile(t *testing.T) {
	router, _ := setupRouter(defaultRoutes)

	w := get(router, "/profile/leetcode/leet")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, leetBody, w.Body.String())

	w = get(router, "/profile/leetcode/missing")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Error fetching LeetCode profile", w.Body.String())
}

func TestAggregateProfile(t *testing.T) {
	router, _ := setupRouter(defaultRoutes)

	w := get(router, "/profile/chef/leet/tourist")
	require.Equal(t, http.StatusOK, w.Code)

	var result map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result, 3)
	require.JSONEq(t, leetBody, string(result["leetcode"]))

	var cf codeforces.Profile
	require.NoError(t, json.Unmarshal(result["codeforces"], &cf))
	require.Equal(t, "N/A", cf.Country)

	var chef codechef.Profile
	require.NoError(t, json.Unmarshal(result["codechef"], &chef))
	require.Equal(t, "Chef", chef.Username)
}

func TestAggregateProfileFailure(t *testing.T) {
	router, rec := setupRouter(defaultRoutes)

	w := get(router, "/profile/chef/leet/nobody")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Error fetching Codeforces profile", w.Body.String())
	require.Contains(t, rec.Broken(), "server: server.aggregate")
}

func TestAggregateMessage(t *testing.T) {
	require.Equal(t, "Error fetching data", aggregateMessage(service.ErrNoPlatforms))
}

func TestCors(t *testing.T) {
	router, _ := setupRouter(defaultRoutes)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://portfolio.example")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsConfig(t *testing.T) {
	require.True(t, corsConfig(nil).AllowAllOrigins)
	require.True(t, corsConfig([]string{"https://a.example", "*"}).AllowAllOrigins)

	config := corsConfig([]string{"https://a.example"})
	require.False(t, config.AllowAllOrigins)
	require.Equal(t, []string{"https://a.example"}, config.AllowOrigins)
}

func TestAggregateProfileEmptySegment(t *testing.T) {
	paths := []string{
		"/profile//leet/tourist",
		"/profile/chef//tourist",
	}

	for _, path := range paths {
		router, _ := setupRouter(defaultRoutes)

		w := get(router, path)
		require.Equal(t, http.StatusNotFound, w.Code, path)
		require.NotContains(t, w.Body.String(), "leetcode", path)
	}
}

func TestAggregateProfilePlatformNamedUsers(t *testing.T) {
	routes := map[string]fetchtest.Response{
		"https://codechef.test/users/codechef":                   {Body: chefPage},
		"https://codechef.test/users/leetcode":                   {Body: chefPage},
		"https://leetcode.test/leet":                             {Body: leetBody},
		"https://leetcode.test/codeforces":                       {Body: leetBody},
		"https://codeforces.test/api/user.info?handles=tourist": {Body: touristBody},
	}
	paths := []string{
		"/profile/codechef/leet/tourist",
		"/profile/leetcode/leet/tourist",
		"/profile/codechef/codeforces/tourist",
	}

	for _, path := range paths {
		router, _ := setupRouter(routes)

		w := get(router, path)
		require.Equal(t, http.StatusOK, w.Code, path)

		var result map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		require.Len(t, result, 3, path)
	}
}

func TestPlatformProfileUnknownPlatform(t *testing.T) {
	router, _ := setupRouter(defaultRoutes)

	w := get(router, "/profile/atcoder/tourist")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAggregateProfileEmptyLeetCodeRecord(t *testing.T) {
	router, _ := setupRouter(map[string]fetchtest.Response{
		"https://codechef.test/users/chef":                       {Body: chefPage},
		"https://leetcode.test/empty":                            {Body: `{}`},
		"https://codeforces.test/api/user.info?handles=tourist": {Body: touristBody},
	})

	w := get(router, "/profile/chef/empty/tourist")
	require.Equal(t, http.StatusOK, w.Code)

	var result map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result, 3)
	require.Equal(t, "{}", string(result["leetcode"]))
}

func TestLeetCodeProfileTrailingGarbage(t *testing.T) {
	router, _ := setupRouter(map[string]fetchtest.Response{
		"https://leetcode.test/trail": {Body: `{"a":1} garbage`},
	})

	w := get(router, "/profile/leetcode/trail")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Error fetching LeetCode profile", w.Body.String())
}
