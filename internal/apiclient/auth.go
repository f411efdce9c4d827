package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mohammad-safakhou/smartsum/internal/fault"
)

// TokenResponse mirrors the token endpoint payload; only the access token is
// stored, refresh flows are the backend's concern.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// Login exchanges credentials for a bearer token and stores it in the
// session provider. A 401 here means bad credentials, not an expired
// session, so the centralized rejection policy does not apply.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var tr TokenResponse
	if err := c.postUnauthenticated(ctx, "/api/token/", body, &tr); err != nil {
		return err
	}
	if tr.Access == "" {
		return fault.New(fault.StageClient, fault.KindUnknown, "login response carried no token")
	}
	if err := c.sessions.Set(tr.Access); err != nil {
		return fault.Wrap(fault.StageClient, fault.KindClientSystem, "could not store session token", err)
	}
	return nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.postUnauthenticated(ctx, "/api/register/", body, nil)
}

// Logout destroys the local session. The backend holds no session state for
// bearer flows, so this is purely local.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}

func (c *Client) postUnauthenticated(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fault.Wrap(fault.StageClient, fault.KindUnknown, "could not encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fault.Wrap(fault.StageClient, fault.KindUnknown, "could not build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportFailure(fault.StageClient, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return fault.New(fault.StageClient, fault.KindServiceReject, "invalid credentials")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb ErrorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&eb)
		msg := eb.Error
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return fault.New(fault.StageClient, fault.KindServiceReject, msg)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fault.Wrap(fault.StageClient, fault.KindUnknown, "could not decode response", err)
	}
	return nil
}
