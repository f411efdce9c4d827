package resolver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/mohammad-safakhou/smartsum/internal/fault"
)

const localMaxChars = 15000

// Local fetches the page directly and extracts the main content with
// readability. No credential is involved; nothing leaves the machine except
// the page fetch itself.
type Local struct {
	http     *http.Client
	maxChars int
}

func NewLocal(timeout time.Duration) *Local {
	return &Local{
		http:     &http.Client{Timeout: timeout},
		maxChars: localMaxChars,
	}
}

func (l *Local) Resolve(ctx context.Context, pageURL string) (string, error) {
	if err := ValidateURL(pageURL); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fault.Wrap(fault.StageResolve, fault.KindBadRequest, "this address could not be processed", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; smartsum/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := l.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fault.Wrap(fault.StageResolve, fault.KindTimeout, "the page took too long to respond", err)
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return "", fault.Wrap(fault.StageResolve, fault.KindTimeout, "the page took too long to respond", err)
		}
		return "", fault.Wrap(fault.StageResolve, fault.KindConnectivity, "could not reach this page, check your connection", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return "", fault.New(fault.StageResolve, fault.KindForbidden, "access to this page was denied")
	case resp.StatusCode == http.StatusNotFound:
		return "", fault.New(fault.StageResolve, fault.KindNotFound, "this page does not exist")
	case resp.StatusCode == http.StatusRequestTimeout:
		return "", fault.New(fault.StageResolve, fault.KindTimeout, "the page took too long to respond")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", fault.New(fault.StageResolve, fault.KindUnknown, "could not access this page")
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return "", fault.New(fault.StageResolve, fault.KindEmptyResult, "no summarizable content found on this page")
	}

	parsed, _ := url.Parse(pageURL)
	article, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		return "", fault.Wrap(fault.StageResolve, fault.KindEmptyResult, "no summarizable content found on this page", err)
	}
	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fault.New(fault.StageResolve, fault.KindEmptyResult, "no summarizable content found on this page")
	}
	if len(text) > l.maxChars {
		text = text[:l.maxChars]
	}
	return text, nil
}
