// Package apiclient is the single funnel for calls to the SmartSum backend.
// It attaches the bearer credential to every outbound request and applies
// the auth-rejection policy (destroy session, signal login redirect) exactly
// once per call, regardless of which invoker triggered it.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/mohammad-safakhou/smartsum/internal/fault"
	"github.com/mohammad-safakhou/smartsum/internal/session"
)

// Navigator is signalled when the session is rejected and the user has to
// re-authenticate.
type Navigator interface {
	GoToLogin()
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func()

func (f NavigatorFunc) GoToLogin() { f() }

// ErrorBody is the backend's error envelope.
type ErrorBody struct {
	Error     string   `json:"error"`
	Code      string   `json:"code"`
	Solutions []string `json:"solutions,omitempty"`
}

// StatusError is a non-2xx response that is not an auth rejection. Invokers
// switch over Status (and Body.Code) to build their stage-specific failure.
type StatusError struct {
	Status int
	Body   ErrorBody
}

func (e *StatusError) Error() string {
	if e.Body.Error != "" {
		return fmt.Sprintf("backend %d: %s", e.Status, e.Body.Error)
	}
	return fmt.Sprintf("backend %d", e.Status)
}

type Client struct {
	baseURL  string
	http     *http.Client
	sessions session.Provider
	nav      Navigator
}

func New(baseURL string, sessions session.Provider, nav Navigator) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		sessions: sessions,
		nav:      nav,
	}
}

// PostJSON issues a POST with the credential attached and decodes a 2xx
// response into out. Non-2xx responses come back as *StatusError, except
// authentication rejections which come back as auth Failures after the
// session has been destroyed and the redirect signalled. Transport errors
// come back as timeout or connectivity Failures.
func (c *Client) PostJSON(ctx context.Context, stage fault.Stage, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fault.Wrap(stage, fault.KindUnknown, "could not encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fault.Wrap(stage, fault.KindUnknown, "could not build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tok, ok := c.sessions.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportFailure(stage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return c.rejectAuth(stage)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Status: resp.StatusCode}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&se.Body)
		return se
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fault.Wrap(stage, fault.KindUnknown, "could not decode response", err)
	}
	return nil
}

// rejectAuth applies the centralized 401 policy: the session is destroyed
// first, then the redirect is signalled, then the caller gets an auth failure.
func (c *Client) rejectAuth(stage fault.Stage) *fault.Failure {
	_ = c.sessions.Clear()
	if c.nav != nil {
		c.nav.GoToLogin()
	}
	return fault.New(stage, fault.KindAuth, "session expired, please log in again")
}

func (c *Client) transportFailure(stage fault.Stage, err error) *fault.Failure {
	if errors.Is(err, context.DeadlineExceeded) {
		return fault.Wrap(stage, fault.KindTimeout, "request took too long", err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fault.Wrap(stage, fault.KindTimeout, "request took too long", err)
	}
	return fault.Wrap(stage, fault.KindConnectivity, "could not reach the server, check your connection", err)
}
