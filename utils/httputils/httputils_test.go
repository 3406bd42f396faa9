// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package httputils

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRoundTripper remembers the last request and answers with a fixed body.
type recordingRoundTripper struct {
	lastRequest *http.Request
	body        string
}

func (d *recordingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	d.lastRequest = req

	return &http.Response{
		Status:     "200 OK",
		StatusCode: http.StatusOK,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(d.body)),
		Request:    req,
	}, nil
}

func TestLoggingRoundTripper(t *testing.T) {
	var logBuffer bytes.Buffer

	lt := &LoggingRoundTripper{
		Transport: &recordingRoundTripper{body: `{"resourceSets":[]}`},
		Writer:    &logBuffer,
		DumpBody:  true,
	}

	req, err := http.NewRequest(http.MethodGet, "http://example.com/REST/v1/Locations?query=Paris&key=s3cr3t", nil)
	require.NoError(t, err)

	resp, err := lt.RoundTrip(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"resourceSets":[]}`, string(body), "body is still readable after the dump")

	logContent := logBuffer.String()
	assert.Contains(t, logContent, "> GET /REST/v1/Locations?query=Paris&key=<redacted>")
	assert.Contains(t, logContent, "< RESPONSE: [")
	assert.Contains(t, logContent, `{"resourceSets":[]}`)
	assert.NotContains(t, logContent, "s3cr3t")
}

func TestLoggingRoundTripperWithoutWriter(t *testing.T) {
	inner := &recordingRoundTripper{}
	lt := &LoggingRoundTripper{Transport: inner}

	req, err := http.NewRequest(http.MethodGet, "http://example.com/", nil)
	require.NoError(t, err)

	_, err = lt.RoundTrip(req)
	require.NoError(t, err)
	assert.Same(t, req, inner.lastRequest)
}

func TestRedactSecrets(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GET /json?address=Rome&key=abc HTTP/1.1", "GET /json?address=Rome&key=<redacted> HTTP/1.1"},
		{"GET /p/Rome.json?access_token=pk.123&limit=1 HTTP/1.1", "GET /p/Rome.json?access_token=<redacted>&limit=1 HTTP/1.1"},
		{"Authorization: Bearer abc", "Authorization: <redacted>"},
		{"GET /json?monkey=1 HTTP/1.1", "GET /json?monkey=1 HTTP/1.1"},
		{"Host: example.com", "Host: example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RedactSecrets(tt.in))
		})
	}
}

func TestAppendRequestHeadersRoundTripper(t *testing.T) {
	inner := &recordingRoundTripper{}
	atr := &AppendRequestHeadersRoundTripper{
		Transport: inner,
		Headers:   map[string]string{"User-Agent": "filmloc/test"},
	}

	req, err := http.NewRequest(http.MethodGet, "http://example.org", nil)
	require.NoError(t, err)

	_, err = atr.RoundTrip(req)
	require.NoError(t, err)

	require.NotNil(t, inner.lastRequest)
	assert.Equal(t, "filmloc/test", inner.lastRequest.Header.Get("User-Agent"))
	assert.Empty(t, req.Header.Get("User-Agent"), "caller request is not mutated")
}
