package server

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spacesedan/sentiscope/internal/dashboard"
	"github.com/spacesedan/sentiscope/internal/session"
)

const (
	SESSION_COOKIE  = "sentiscope_session"
	SESSION_CTX_KEY = "session"
)

//go:embed static/index.html
var indexHTML []byte

// DatasetRegistry remembers dataset identities across sessions.
type DatasetRegistry interface {
	MarkSeen(ctx context.Context, identity string) error
	Seen(ctx context.Context, identity string) bool
}

type Options struct {
	MaxUploadBytes int64
	SessionTTL     time.Duration
	// Registry is optional.
	Registry DatasetRegistry
}

type Server struct {
	echo      *echo.Echo
	store     *session.Store
	dash      *dashboard.Dashboard
	registry  DatasetRegistry
	maxUpload int64
	cookieTTL time.Duration
}

func New(store *session.Store, dash *dashboard.Dashboard, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:      e,
		store:     store,
		dash:      dash,
		registry:  opts.Registry,
		maxUpload: opts.MaxUploadBytes,
		cookieTTL: opts.SessionTTL,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			slog.Info("[Server] Request", attrs...)
			return nil
		},
	}))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/", s.handleIndex)

	g := s.echo.Group("", s.withSession)
	g.POST("/upload", s.handleUpload)
	g.POST("/column", s.handleSelectColumn)
	g.DELETE("/session", s.handleReset)
	g.GET("/api/state", s.handleState)
	g.GET("/api/techniques", s.handleTechniques)
	g.GET("/api/:technique", s.handlePage)
	g.GET("/api/:technique/chart.svg", s.handleChart)
	g.GET("/api/:technique/export.csv", s.handleExport)
	g.GET("/api/:technique/summary.csv", s.handleExportSummary)
}

func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) Start(addr string) error {
	slog.Info("[Server] Listening", slog.String("address", addr))
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// withSession attaches the caller's session, issuing a new cookie when the
// caller has none or it expired.
func (s *Server) withSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var id string
		if cookie, err := c.Cookie(SESSION_COOKIE); err == nil {
			id = cookie.Value
		}

		sess, created := s.store.GetOrCreate(id)
		if created {
			c.SetCookie(&http.Cookie{
				Name:     SESSION_COOKIE,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(s.cookieTTL.Seconds()),
			})
		}

		c.Set(SESSION_CTX_KEY, sess)
		return next(c)
	}
}

func sessionFrom(c echo.Context) *session.Session {
	return c.Get(SESSION_CTX_KEY).(*session.Session)
}
