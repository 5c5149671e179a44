package server

import (
	"errors"
	"net/http"

	"cpprofile-backend/internal/profile"
	"cpprofile-backend/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	report_server_profile   = "server.profile"
	report_server_aggregate = "server.aggregate"
)

const (
	welcomeMessage        = "Welcome to the CodeChef, LeetCode, and Codeforces profile API"
	aggregateErrorMessage = "Error fetching data"
)

func (s *Server) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": welcomeMessage})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

const notFoundMessage = "404 page not found"

// fail writes the fixed plain text message of a platform failure, the underlying error is
// only reported server side.
func (s *Server) fail(c *gin.Context, platform profile.Platform, username string, err error) {
	s.tel.ReportBroken(report_server_profile, platform, username, err)
	c.String(http.StatusInternalServerError, profile.Message(platform))
}

// platformProfile serves /profile/<platform>/<username>.
func (s *Server) platformProfile(c *gin.Context) {
	platform := profile.Platform(c.Param("first"))
	username := c.Param("second")
	if username == "" {
		c.String(http.StatusNotFound, notFoundMessage)
		return
	}

	ctx := c.Request.Context()
	var result any
	var err error
	switch platform {
	case profile.CodeChef:
		result, err = s.service.CodeChef(ctx, username)
	case profile.LeetCode:
		result, err = s.service.LeetCode(ctx, username)
	case profile.Codeforces:
		result, err = s.service.Codeforces(ctx, username)
	default:
		c.String(http.StatusNotFound, notFoundMessage)
		return
	}
	if err != nil {
		s.fail(c, platform, username, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// aggregateProfile serves /profile/<codechef>/<leetcode>/<codeforces>, every segment must be
// non-empty.
func (s *Server) aggregateProfile(c *gin.Context) {
	usernames := service.Usernames{
		CodeChef:   c.Param("first"),
		LeetCode:   c.Param("second"),
		Codeforces: c.Param("third"),
	}
	if usernames.CodeChef == "" || usernames.LeetCode == "" || usernames.Codeforces == "" {
		c.String(http.StatusNotFound, notFoundMessage)
		return
	}

	result, err := s.service.Aggregate(c.Request.Context(), usernames)
	if err != nil {
		s.tel.ReportBroken(report_server_aggregate, usernames, err)
		c.String(http.StatusInternalServerError, aggregateMessage(err))
		return
	}
	c.JSON(http.StatusOK, result)
}

// aggregateMessage names the platform that failed first, or falls back to a generic
// message for errors that did not come from a scraper.
func aggregateMessage(err error) string {
	var fetchErr *profile.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Message()
	}
	return aggregateErrorMessage
}
