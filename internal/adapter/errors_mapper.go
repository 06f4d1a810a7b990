package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// maxErrorBody caps how much of a provider error body ends up in logs.
const maxErrorBody = 256

// mapHTTPError classifies a non-2xx reply of a provider profile API.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	if body == "" {
		body = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return fmt.Errorf("%w: %d: %s", ErrTokenRejected, status, body)
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %d: %s", ErrProviderUnavailable, status, body)
	default:
		return fmt.Errorf("%w: %d: %s", ErrUnexpectedResponse, status, body)
	}
}
