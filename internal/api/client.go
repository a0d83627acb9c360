// Package api wraps the remote aquaculture-monitoring REST API. All screens
// are thin views over it: the client performs no caching and no retries, so
// every call reflects current server state and every failure surfaces once.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/haiquanvn/aquamon/internal/config"
	"github.com/haiquanvn/aquamon/internal/metrics"
)

// TokenSource yields the current auth token. The session store implements
// it; an empty token means "not logged in".
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks to the remote API. Two request paths share one base URL:
// public calls carry no credentials, authed calls read the token fresh from
// the TokenSource on every request so a changed or cleared token takes
// effect on the very next call.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	conf    config.API
}

// New creates a Client for the given API configuration.
func New(conf config.API, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		conf:    conf,
	}
}

type requestOpts struct {
	// timeout overrides the default per-request deadline; zero keeps it.
	timeout time.Duration
	// authed attaches the bearer token.
	authed bool
}

// doJSON performs one JSON round trip. body and out may be nil.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, opts requestOpts) error {
	timeout := opts.timeout
	if timeout == 0 {
		timeout = c.conf.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out, opts.authed)
}

// doMultipart uploads a file as multipart form data under the given field
// name. The file is not parsed client-side.
func (c *Client) doMultipart(ctx context.Context, path, field, filename string, file io.Reader, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.conf.UploadTimeout)
	defer cancel()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("reading upload file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.send(req, out, true)
}

func (c *Client) send(req *http.Request, out any, authed bool) error {
	req.Header.Set("X-Request-ID", uuid.NewString())
	if authed {
		token, err := c.tokens.Token(req.Context())
		if err != nil {
			slog.Error("failed to read session token", slog.Any("err", err))
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	metrics.APIRequests.Inc()
	slog.Debug("api request", slog.String("method", req.Method), slog.String("path", req.URL.Path))

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.APIRequestErrors.Inc()
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIRequestErrors.Inc()
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		metrics.APIRequestErrors.Inc()
		return errorFromResponse(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
