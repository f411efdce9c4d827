package resolver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mohammad-safakhou/smartsum/internal/apiclient"
	"github.com/mohammad-safakhou/smartsum/internal/fault"
)

// Remote calls the backend extraction endpoint with the credential attached.
type Remote struct {
	client  *apiclient.Client
	timeout time.Duration
}

type fetchRequest struct {
	URL string `json:"url"`
}

type fetchResponse struct {
	Content   string `json:"content"`
	SourceURL string `json:"source_url,omitempty"`
}

func (r *Remote) Resolve(ctx context.Context, pageURL string) (string, error) {
	if err := ValidateURL(pageURL); err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var out fetchResponse
	err := r.client.PostJSON(ctx, fault.StageResolve, "/api/fetch-url-content/", fetchRequest{URL: pageURL}, &out)
	if err != nil {
		return "", r.mapFailure(err)
	}
	text := strings.TrimSpace(out.Content)
	if text == "" {
		return "", fault.New(fault.StageResolve, fault.KindEmptyResult, "no summarizable content found on this page")
	}
	return text, nil
}

// mapFailure keeps each backend signal as its own case; the UI offers
// different remedial actions per category.
func (r *Remote) mapFailure(err error) error {
	var se *apiclient.StatusError
	if !errors.As(err, &se) {
		return fault.As(fault.StageResolve, err)
	}
	switch {
	case se.Status == http.StatusForbidden || se.Body.Code == "forbidden":
		return fault.Wrap(fault.StageResolve, fault.KindForbidden, "access to this page was denied", se)
	case se.Status == http.StatusRequestTimeout || se.Body.Code == "timeout":
		return fault.Wrap(fault.StageResolve, fault.KindTimeout, "the page took too long to respond", se)
	case se.Status == http.StatusNotFound || se.Body.Code == "http_404":
		return fault.Wrap(fault.StageResolve, fault.KindNotFound, "this page does not exist", se)
	case se.Body.Code == "no_content" || se.Body.Code == "non_html_content":
		return fault.Wrap(fault.StageResolve, fault.KindEmptyResult, "no summarizable content found on this page", se)
	case se.Status == http.StatusBadRequest:
		msg := "this address could not be processed"
		if se.Body.Error != "" {
			msg = se.Body.Error
		}
		return fault.Wrap(fault.StageResolve, fault.KindBadRequest, msg, se)
	default:
		return fault.Wrap(fault.StageResolve, fault.KindUnknown, "could not access this page", se)
	}
}
