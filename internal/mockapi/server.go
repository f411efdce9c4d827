// Package mockapi is a development stand-in for the SmartSum backend. It
// implements the four endpoints the client talks to, with the production
// service's validation rules and error envelopes, so the client can be
// exercised end to end without real credentials or a real summarizer.
package mockapi

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	e      *echo.Echo
	users  *userTable
	secret []byte
	ttl    time.Duration
	logger *log.Logger

	// Fetch resolves a URL to plain text; overridable in tests.
	Fetch func(c echo.Context, url string) (string, error)
}

// New builds the mock server. An empty secret gets a random one, which is
// fine for a process-local mock.
func New(secret []byte, ttl time.Duration) *Server {
	if len(secret) == 0 {
		secret = []byte(uuid.NewString())
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	s := &Server{
		e:      echo.New(),
		users:  newUserTable(),
		secret: secret,
		ttl:    ttl,
		logger: log.New(os.Stdout, "[MOCKAPI] ", log.LstdFlags),
	}
	s.Fetch = s.fetchReadable

	s.e.HideBanner = true
	s.e.Use(middleware.Recover())

	s.e.POST("/api/register/", s.register)
	s.e.POST("/api/token/", s.token)

	authed := s.e.Group("/api", s.authMiddleware())
	authed.POST("/fetch-url-content/", s.fetchURLContent)
	authed.POST("/summarize/", s.summarize)
	return s
}

// Handler exposes the underlying mux for httptest servers.
func (s *Server) Handler() http.Handler { return s.e }

// Start blocks serving on addr.
func (s *Server) Start(addr string) error {
	s.logger.Printf("mock backend listening on %s", addr)
	return s.e.Start(addr)
}

// errorBody mirrors the production error envelope.
type errorBody struct {
	Error     string   `json:"error"`
	Code      string   `json:"code"`
	Solutions []string `json:"solutions,omitempty"`
}

func jsonError(c echo.Context, status int, code, msg string, solutions ...string) error {
	return c.JSON(status, errorBody{Error: msg, Code: code, Solutions: solutions})
}
