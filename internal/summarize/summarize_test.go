package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mohammad-safakhou/smartsum/internal/apiclient"
	"github.com/mohammad-safakhou/smartsum/internal/fault"
	"github.com/mohammad-safakhou/smartsum/internal/session"
)

func TestGranularityWireMapping(t *testing.T) {
	cases := []struct {
		g    Granularity
		want string
	}{
		{Brief, "short"},
		{Standard, "medium"},
		{Detailed, "long"},
	}
	for _, tc := range cases {
		var gotBody summarizeRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("decode body: %v", err)
			}
			w.Write([]byte(`{"summary":"ok summary"}`))
		}))

		inv := newInvoker(t, srv.URL, DefaultTimeout)
		if _, err := inv.Summarize(context.Background(), "some content", tc.g); err != nil {
			t.Fatalf("summarize(%s): %v", tc.g, err)
		}
		srv.Close()
		if gotBody.SummaryType != tc.want {
			t.Fatalf("summary_type = %q, want %q", gotBody.SummaryType, tc.want)
		}
		if gotBody.Text != "some content" {
			t.Fatalf("text = %q", gotBody.Text)
		}
	}
}

func TestParseGranularity(t *testing.T) {
	for in, want := range map[string]Granularity{
		"brief": Brief, "short": Brief,
		"standard": Standard, "medium": Standard, "": Standard,
		"Detailed": Detailed, "long": Detailed,
	} {
		got, err := ParseGranularity(in)
		if err != nil || got != want {
			t.Fatalf("ParseGranularity(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseGranularity("verbose"); err == nil {
		t.Fatalf("expected error for unknown granularity")
	}
}

func TestEmptySummaryIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"summary":"   "}`))
	}))
	defer srv.Close()

	inv := newInvoker(t, srv.URL, DefaultTimeout)
	_, err := inv.Summarize(context.Background(), "content", Standard)
	var f *fault.Failure
	if !errors.As(err, &f) || f.Kind != fault.KindEmptyResult {
		t.Fatalf("expected empty-result failure, got %v", err)
	}
}

func TestFailureMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   fault.Kind
	}{
		{"unavailable", http.StatusServiceUnavailable, `{"error":"AI service unavailable","code":"service_unavailable"}`, fault.KindServiceReject},
		{"empty summary", http.StatusUnprocessableEntity, `{"error":"failed to generate meaningful summary","code":"empty_summary"}`, fault.KindEmptyResult},
		{"rejected content", http.StatusBadRequest, `{"error":"content too short (minimum 50 characters)","code":"invalid_input"}`, fault.KindServiceReject},
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, fault.KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			inv := newInvoker(t, srv.URL, DefaultTimeout)
			_, err := inv.Summarize(context.Background(), "content", Standard)
			var f *fault.Failure
			if !errors.As(err, &f) || f.Kind != tc.want {
				t.Fatalf("expected %s, got %v", tc.want, err)
			}
			if f.Stage != fault.StageSummarize {
				t.Fatalf("stage = %s", f.Stage)
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	inv := newInvoker(t, srv.URL, 30*time.Millisecond)
	_, err := inv.Summarize(context.Background(), "content", Standard)
	var f *fault.Failure
	if !errors.As(err, &f) || f.Kind != fault.KindTimeout {
		t.Fatalf("expected timeout failure, got %v", err)
	}
}

func newInvoker(t *testing.T, baseURL string, timeout time.Duration) *Invoker {
	t.Helper()
	client := apiclient.New(baseURL, session.NewInMemoryStore("tok"), nil)
	return NewInvoker(client, timeout)
}
