// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jcodagnone/filmloc/utils/httputils"
)

// ClientOptions configures the HTTP client shared by the providers.
type ClientOptions struct {
	// UserAgent is the User-Agent header to use in HTTP requests
	UserAgent string

	// Timeout bounds every provider request. Defaults to 10 seconds.
	Timeout time.Duration

	// Enables light tracing of HTTP requests and responses
	EnableHTTPTrace bool

	// Enables full HTTP body tracing
	EnableHTTPBodyTrace bool
}

// NewHTTPClient builds the HTTP client used to talk to geocoding providers.
func NewHTTPClient(options *ClientOptions) *http.Client {
	if options == nil {
		options = &ClientOptions{}
	}

	var httpLogWriter io.Writer
	if options.EnableHTTPTrace || options.EnableHTTPBodyTrace {
		httpLogWriter = os.Stderr
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          4,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       30 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
	}

	loggingTransport := &httputils.LoggingRoundTripper{
		Writer:    httpLogWriter,
		DumpBody:  options.EnableHTTPBodyTrace,
		Transport: transport,
	}

	userAgent := "filmloc/unknown"
	if options.UserAgent != "" {
		userAgent = options.UserAgent
	}

	headerTransport := &httputils.AppendRequestHeadersRoundTripper{
		Headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     "application/json",
		},
		Transport: loggingTransport,
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: headerTransport,
	}
}

// getJSON issues a GET request and decodes a JSON response into v. Non 200
// responses are classified with ClassifyHTTPError.
func getJSON(client *http.Client, req *http.Request, provider string, v any) error {
	resp, err := client.Do(req)
	if err != nil {
		return transportError(provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		const maxBody = 512

		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		geoErr := ClassifyHTTPError(resp.StatusCode, string(body))
		geoErr.Message = provider + ": " + geoErr.Message

		return geoErr
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s response: %w", provider, err)
	}

	return nil
}
