package mockapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type user struct {
	ID           string
	Email        string
	PasswordHash []byte
}

type userTable struct {
	mu    sync.RWMutex
	users map[string]user // by username
}

func newUserTable() *userTable {
	return &userTable{users: make(map[string]user)}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid_input", err.Error())
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return jsonError(c, http.StatusBadRequest, "invalid_input", "username, password, and email are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "server_error", err.Error())
	}
	s.users.mu.Lock()
	defer s.users.mu.Unlock()
	if _, exists := s.users.users[req.Username]; exists {
		return jsonError(c, http.StatusBadRequest, "invalid_input", "username already exists")
	}
	s.users.users[req.Username] = user{ID: uuid.NewString(), Email: req.Email, PasswordHash: hash}
	return c.JSON(http.StatusCreated, map[string]string{"message": "user registered successfully"})
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid_input", err.Error())
	}
	s.users.mu.RLock()
	u, ok := s.users.users[req.Username]
	s.users.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		return jsonError(c, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
	}
	signed, err := s.signJWT(u.ID)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "server_error", err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"access": signed})
}

func (s *Server) signJWT(subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// authMiddleware validates bearer tokens; everything behind it answers 401
// for missing or invalid credentials, which is what drives the client's
// session-destruction path.
func (s *Server) authMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok := extractToken(c)
			if tok == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}
			parsed, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) { return s.secret, nil })
			if err != nil || !parsed.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if claims, ok := parsed.Claims.(jwt.MapClaims); ok {
				if sub, ok := claims["sub"].(string); ok {
					c.Set("user_id", sub)
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
	}
}

func extractToken(c echo.Context) string {
	if h := c.Request().Header.Get("Authorization"); len(h) > 7 && h[:7] == "Bearer " {
		return h[7:]
	}
	return ""
}
