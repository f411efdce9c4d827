package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mohammad-safakhou/smartsum/internal/fault"
	"github.com/mohammad-safakhou/smartsum/internal/session"
)

func TestAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(srv.URL, session.NewInMemoryStore("tok-123"), nil)
	if err := client.PostJSON(context.Background(), fault.StageSummarize, "/api/summarize/", map[string]string{}, nil); err != nil {
		t.Fatalf("post: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}

func TestMissingTokenProceedsUnauthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(srv.URL, session.NewInMemoryStore(""), nil)
	if err := client.PostJSON(context.Background(), fault.StageSummarize, "/", nil, nil); err != nil {
		t.Fatalf("post: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestAuthRejectionDestroysSessionAndSignalsRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sessions := session.NewInMemoryStore("stale-token")
	redirected := false
	client := New(srv.URL, sessions, NavigatorFunc(func() { redirected = true }))

	err := client.PostJSON(context.Background(), fault.StageResolve, "/api/fetch-url-content/", map[string]string{"url": "https://example.com"}, nil)
	var f *fault.Failure
	if !errors.As(err, &f) || f.Kind != fault.KindAuth {
		t.Fatalf("expected auth failure, got %v", err)
	}
	if _, ok := sessions.Token(); ok {
		t.Fatalf("session must be destroyed on 401")
	}
	if !redirected {
		t.Fatalf("login redirect must be signalled on 401")
	}
}

func TestStatusErrorCarriesBackendEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"content too short (minimum 50 characters)","code":"invalid_input"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, session.NewInMemoryStore("tok"), nil)
	err := client.PostJSON(context.Background(), fault.StageSummarize, "/api/summarize/", map[string]string{}, nil)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Status != http.StatusBadRequest || se.Body.Code != "invalid_input" {
		t.Fatalf("unexpected status error: %+v", se)
	}
}

func TestDeadlineMapsToTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := New(srv.URL, session.NewInMemoryStore("tok"), nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := client.PostJSON(ctx, fault.StageResolve, "/", nil, nil)
	var f *fault.Failure
	if !errors.As(err, &f) || f.Kind != fault.KindTimeout {
		t.Fatalf("expected timeout failure, got %v", err)
	}
}

func TestConnectivityFailure(t *testing.T) {
	// closed server: connection refused
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(srv.URL, session.NewInMemoryStore("tok"), nil)
	err := client.PostJSON(context.Background(), fault.StageResolve, "/", nil, nil)
	var f *fault.Failure
	if !errors.As(err, &f) || f.Kind != fault.KindConnectivity {
		t.Fatalf("expected connectivity failure, got %v", err)
	}
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/token/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"access":"fresh-token","refresh":"r"}`))
	}))
	defer srv.Close()

	sessions := session.NewInMemoryStore("")
	client := New(srv.URL, sessions, nil)
	if err := client.Login(context.Background(), "alice", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok, ok := sessions.Token(); !ok || tok != "fresh-token" {
		t.Fatalf("token not stored, got %q", tok)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sessions := session.NewInMemoryStore("")
	client := New(srv.URL, sessions, NavigatorFunc(func() { t.Error("login 401 must not signal a session redirect") }))
	err := client.Login(context.Background(), "alice", "wrong")
	var f *fault.Failure
	if !errors.As(err, &f) || f.Kind != fault.KindServiceReject {
		t.Fatalf("expected service-reject failure for bad credentials, got %v", err)
	}
}
