// Package resolver turns a web-page address into plain text ready for
// summarization. The remote mode delegates extraction to the backend; the
// local mode fetches the page itself and runs readability extraction.
package resolver

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mohammad-safakhou/smartsum/internal/apiclient"
	"github.com/mohammad-safakhou/smartsum/internal/fault"
)

const (
	DefaultTimeout = 20 * time.Second
	MaxTimeout     = 30 * time.Second
)

// Resolver extracts the summarizable text behind a URL.
type Resolver interface {
	Resolve(ctx context.Context, pageURL string) (string, error)
}

type Mode string

const (
	RemoteMode Mode = "remote"
	LocalMode  Mode = "local"
)

// New builds a resolver for the configured mode.
func New(mode Mode, client *apiclient.Client, timeout time.Duration) (Resolver, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}
	switch mode {
	case RemoteMode, "":
		return &Remote{client: client, timeout: timeout}, nil
	case LocalMode:
		return NewLocal(timeout), nil
	default:
		return nil, fmt.Errorf("unsupported resolver mode: %s", mode)
	}
}

// ValidateURL checks URL syntax locally; invalid addresses never reach the
// network. Only absolute http/https URLs are accepted.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fault.New(fault.StageValidate, fault.KindValidation, "please enter a URL to summarize")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return fault.New(fault.StageValidate, fault.KindValidation, "please enter a valid URL starting with http:// or https://")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fault.New(fault.StageValidate, fault.KindValidation, "please enter a valid URL starting with http:// or https://")
	}
	return nil
}
