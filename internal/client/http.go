// Package client talks to the detection server's /detect and /stats
// endpoints.
package client

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Default timeouts for HTTP operations.
const (
	DefaultTimeout         = 30 * time.Second
	DefaultConnectTimeout  = 10 * time.Second
	DefaultKeepAlive       = 30 * time.Second
	DefaultIdleConnTimeout = 90 * time.Second
)

var (
	// ErrTransientRequest marks a failed request that the next scheduled
	// cycle will simply retry.
	ErrTransientRequest = errors.New("transient request failure")
	// ErrInvalidPayload is returned when a success response cannot be decoded.
	ErrInvalidPayload = errors.New("invalid response payload")
)

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.StatusCode)
}

// Unwrap makes every StatusError match ErrTransientRequest.
func (e *StatusError) Unwrap() error {
	return ErrTransientRequest
}

// NewHTTPClient creates an HTTP client with the specified timeout.
// A zero timeout uses DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DefaultConnectTimeout,
				KeepAlive: DefaultKeepAlive,
			}).DialContext,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   4,
			IdleConnTimeout:       DefaultIdleConnTimeout,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

func success(status int) bool {
	return status >= 200 && status < 300
}
