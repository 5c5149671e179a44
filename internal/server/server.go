package server

import (
	"context"
	"net/http"
	"slices"
	"time"

	"cpprofile-backend/internal/components/assert"
	"cpprofile-backend/internal/components/telemetry"
	"cpprofile-backend/internal/scrapers/codechef"
	"cpprofile-backend/internal/scrapers/codeforces"
	"cpprofile-backend/internal/scrapers/leetcode"
	"cpprofile-backend/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// ProfileService is what the handlers need from service.Service.
type ProfileService interface {
	CodeChef(ctx context.Context, username string) (codechef.Profile, error)
	LeetCode(ctx context.Context, username string) (leetcode.Profile, error)
	Codeforces(ctx context.Context, handle string) (codeforces.Profile, error)
	Aggregate(ctx context.Context, usernames service.Usernames) (service.Aggregate, error)
}

type Options struct {
	// ServiceName names the otelgin spans.
	ServiceName string
	// CorsOrigins defaults to every origin, "*" also allows every origin.
	CorsOrigins []string
}

type Server struct {
	router  *gin.Engine
	service ProfileService
	tel     telemetry.API
}

func NewServer(svc ProfileService, opts Options, tel telemetry.API) *Server {
	assert.NotNil(svc, "profile service")
	assert.NotNil(tel, "telemetry")

	if opts.ServiceName == "" {
		opts.ServiceName = "cpprofile-server"
	}

	s := &Server{
		service: svc,
		tel:     telemetry.NewScopedAPI("server", tel),
	}

	router := gin.New()
	router.Use(gin.CustomRecovery(s.onPanic))
	router.Use(requestLogger())
	router.Use(otelgin.Middleware(opts.ServiceName))
	router.Use(cors.New(corsConfig(opts.CorsOrigins)))
	router.Use(securityHeaders())

	s.router = router
	s.registerRoutes()
	return s
}

func corsConfig(origins []string) cors.Config {
	config := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	return config
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the internal gin engine for testing purposes.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.GET("/", s.welcome)
	s.router.GET("/health", s.health)

	// both routes are all params so that a username which happens to be a platform name
	// still reaches the aggregate route, ex. /profile/codechef/leet/tourist
	profiles := s.router.Group("/profile")
	{
		profiles.GET("/:first/:second", s.platformProfile)
		profiles.GET("/:first/:second/:third", s.aggregateProfile)
	}
}
