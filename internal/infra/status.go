package infra

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"patriot-buddy/internal/domain"
)

const maxErrorBody = 512

// StatusError is a non-200 answer from an upstream service. It matches
// domain.ErrUpstreamStatus so callers can branch without knowing the adapter.
type StatusError struct {
	Service string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s API error %d", e.Service, e.Code)
	}
	return fmt.Sprintf("%s API error %d: %s", e.Service, e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == domain.ErrUpstreamStatus
}

// CheckStatus returns a *StatusError for anything but 200 OK. The body is
// read (and truncated) only on failure.
func CheckStatus(resp *http.Response, service string) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Service: service,
		Code:    resp.StatusCode,
		Body:    strings.TrimSpace(string(body)),
	}
}
