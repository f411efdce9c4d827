// Package summarize invokes the backend summarization capability.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mohammad-safakhou/smartsum/internal/apiclient"
	"github.com/mohammad-safakhou/smartsum/internal/fault"
)

const DefaultTimeout = 20 * time.Second

// Granularity is the requested summary length tier.
type Granularity string

const (
	Brief    Granularity = "brief"
	Standard Granularity = "standard"
	Detailed Granularity = "detailed"
)

// wireType maps the client-side tier onto the backend's summary_type values.
func (g Granularity) wireType() (string, error) {
	switch g {
	case Brief:
		return "short", nil
	case Standard, "":
		return "medium", nil
	case Detailed:
		return "long", nil
	default:
		return "", fmt.Errorf("unknown granularity: %s", g)
	}
}

// ParseGranularity accepts both the client tier names and the wire names.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brief", "short":
		return Brief, nil
	case "standard", "medium", "":
		return Standard, nil
	case "detailed", "long":
		return Detailed, nil
	default:
		return "", fmt.Errorf("invalid summary type %q (want brief, standard or detailed)", s)
	}
}

// Invoker issues summarization calls with the credential attached.
type Invoker struct {
	client  *apiclient.Client
	timeout time.Duration
}

func NewInvoker(client *apiclient.Client, timeout time.Duration) *Invoker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Invoker{client: client, timeout: timeout}
}

type summarizeRequest struct {
	Text        string `json:"text"`
	SummaryType string `json:"summary_type"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// Summarize sends the resolved content and returns the produced summary.
// An empty result is a failure, never a successful empty summary.
func (i *Invoker) Summarize(ctx context.Context, content string, g Granularity) (string, error) {
	wire, err := g.wireType()
	if err != nil {
		return "", fault.Wrap(fault.StageValidate, fault.KindValidation, err.Error(), err)
	}
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	var out summarizeResponse
	if err := i.client.PostJSON(ctx, fault.StageSummarize, "/api/summarize/", summarizeRequest{Text: content, SummaryType: wire}, &out); err != nil {
		return "", i.mapFailure(err)
	}
	summary := strings.TrimSpace(out.Summary)
	if summary == "" {
		return "", fault.New(fault.StageSummarize, fault.KindEmptyResult, "the service returned an empty summary")
	}
	return summary, nil
}

func (i *Invoker) mapFailure(err error) error {
	var se *apiclient.StatusError
	if !errors.As(err, &se) {
		return fault.As(fault.StageSummarize, err)
	}
	switch {
	case se.Status == http.StatusServiceUnavailable:
		return fault.Wrap(fault.StageSummarize, fault.KindServiceReject, "the summarization service is unavailable right now", se)
	case se.Status == http.StatusUnprocessableEntity || se.Body.Code == "empty_summary":
		return fault.Wrap(fault.StageSummarize, fault.KindEmptyResult, "the service could not produce a meaningful summary", se)
	case se.Status == http.StatusBadRequest:
		msg := "the service rejected this content"
		if se.Body.Error != "" {
			msg = se.Body.Error
		}
		return fault.Wrap(fault.StageSummarize, fault.KindServiceReject, msg, se)
	default:
		return fault.Wrap(fault.StageSummarize, fault.KindUnknown, "summarization failed unexpectedly", se)
	}
}
