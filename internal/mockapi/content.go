package mockapi

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/smartsum/internal/fault"
	"github.com/mohammad-safakhou/smartsum/internal/resolver"
)

const (
	minContentChars = 50
	maxContentChars = 15000
)

type fetchURLRequest struct {
	URL string `json:"url"`
}

func (s *Server) fetchURLContent(c echo.Context) error {
	var req fetchURLRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid_input", err.Error())
	}
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return jsonError(c, http.StatusBadRequest, "missing_url", "URL is required")
	}
	if err := resolver.ValidateURL(url); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid_url", "only http/https URLs are allowed")
	}

	content, err := s.Fetch(c, url)
	if err != nil {
		return s.fetchError(c, err)
	}
	content = strings.TrimSpace(content)
	if len(content) < minContentChars {
		return jsonError(c, http.StatusBadRequest, "no_content", "no readable content found on page",
			"Try a different URL")
	}
	if len(content) > maxContentChars {
		content = content[:maxContentChars]
	}
	return c.JSON(http.StatusOK, map[string]any{
		"content":    content,
		"source_url": url,
		"success":    true,
	})
}

// fetchReadable does a real page fetch with readability extraction, reusing
// the client's local resolver path.
func (s *Server) fetchReadable(c echo.Context, url string) (string, error) {
	local := resolver.NewLocal(resolver.DefaultTimeout)
	return local.Resolve(c.Request().Context(), url)
}

// fetchError translates resolver failures into the production error codes.
func (s *Server) fetchError(c echo.Context, err error) error {
	var f *fault.Failure
	if !errors.As(err, &f) {
		return jsonError(c, http.StatusBadRequest, "fetch_failed", "could not fetch URL content",
			"Try a different URL", "Check your connection")
	}
	switch f.Kind {
	case fault.KindTimeout:
		return jsonError(c, http.StatusRequestTimeout, "timeout", "website took too long to respond",
			"Try again later", "Check the URL")
	case fault.KindForbidden:
		return jsonError(c, http.StatusBadRequest, "forbidden", "access forbidden (403)",
			"Try a different URL", "The website may block automated requests")
	case fault.KindNotFound:
		return jsonError(c, http.StatusBadRequest, "http_404", "HTTP error 404", "Try a different URL")
	case fault.KindEmptyResult:
		return jsonError(c, http.StatusBadRequest, "no_content", "no readable content found on page",
			"Try a different URL", "The page may require JavaScript")
	case fault.KindValidation, fault.KindBadRequest:
		return jsonError(c, http.StatusBadRequest, "invalid_url", f.Message)
	default:
		return jsonError(c, http.StatusBadRequest, "fetch_failed", "could not fetch URL content",
			"Try a different URL", "Check your connection")
	}
}

type summarizeRequest struct {
	Text        string `json:"text"`
	SummaryType string `json:"summary_type"`
}

func (s *Server) summarize(c echo.Context) error {
	var req summarizeRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid_input", err.Error())
	}
	text := strings.TrimSpace(req.Text)
	summaryType := strings.ToLower(strings.TrimSpace(req.SummaryType))
	if summaryType == "" {
		summaryType = "medium"
	}
	switch summaryType {
	case "short", "medium", "long":
	default:
		return jsonError(c, http.StatusBadRequest, "invalid_input", "invalid summary_type, must be one of: short, medium, long")
	}
	if len(text) < minContentChars {
		return jsonError(c, http.StatusBadRequest, "invalid_input", "content too short (minimum 50 characters)")
	}
	if len(text) > maxContentChars {
		return jsonError(c, http.StatusBadRequest, "invalid_input", "content too long (maximum 15,000 characters)")
	}

	summary := truncateSummary(text, summaryType)
	if summary == "" {
		return jsonError(c, http.StatusUnprocessableEntity, "empty_summary", "failed to generate meaningful summary",
			"Try different content", "Use a different summary length")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"summary":      summary,
		"characters":   len(summary),
		"summary_type": summaryType,
		"success":      true,
	})
}

var sentenceEnd = regexp.MustCompile(`([.!?])\s+`)

// truncateSummary is the mock's deterministic summarizer: the leading
// sentences of the input, count keyed by tier.
func truncateSummary(text string, summaryType string) string {
	limits := map[string]int{"short": 2, "medium": 5, "long": 8}
	limit := limits[summaryType]

	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	sentences := strings.Split(marked, "\x00")
	if len(sentences) > limit {
		sentences = sentences[:limit]
	}
	return strings.TrimSpace(strings.Join(sentences, " "))
}
