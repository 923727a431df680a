package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/strandworks/genchat/core/generate"
	"github.com/strandworks/genchat/core/response"
	"github.com/strandworks/genchat/observability"
)

// streamScanBuffer sizes the SSE line scanner. Chunks carrying inline media
// can run far past bufio's default token limit.
const (
	streamScanBuffer   = 64 << 10
	streamScanMaxToken = 8 << 20
)

// GenerateContent issues a unary generateContent call and decodes the full
// response.
func (c *Client) GenerateContent(ctx context.Context, model string, req *generate.Request, opts *generate.RequestOptions) (*response.Response, error) {
	merged := c.callOptions(opts)

	ctx, cancel := c.withTimeout(ctx, merged)
	defer cancel()

	httpResp, err := c.do(ctx, merged, model, "generateContent", req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	var out response.Response
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.observer.OnEvent(ctx, observability.Event{
		Type:      EventRequestComplete,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "client.GenerateContent",
		Data: map[string]any{
			"model":      model,
			"status":     httpResp.StatusCode,
			"candidates": len(out.Candidates),
		},
	})

	return &out, nil
}

// GenerateContentStream issues a streamGenerateContent call with SSE framing
// and returns a live stream. Chunks are decoded on a background goroutine;
// the returned stream terminates with io.EOF on a clean end of stream and
// with the transport or decode error otherwise.
func (c *Client) GenerateContentStream(ctx context.Context, model string, req *generate.Request, opts *generate.RequestOptions) (*response.Stream, error) {
	merged := c.callOptions(opts)

	ctx, cancel := c.withTimeout(ctx, merged)

	httpResp, err := c.do(ctx, merged, model, "streamGenerateContent?alt=sse", req)
	if err != nil {
		cancel()
		return nil, err
	}

	stream := response.NewStream()
	go c.readStream(httpResp.Body, stream, cancel)
	return stream, nil
}

// do builds, sends and status-checks one HTTP request. The response body is
// the caller's to consume and close.
func (c *Client) do(ctx context.Context, opts generate.RequestOptions, model, verb string, req *generate.Request) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := c.endpoint(opts, model, verb)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)
	for k, v := range opts.Headers {
		httpReq.Header.Set(k, v)
	}

	c.observer.OnEvent(ctx, observability.Event{
		Type:      EventRequestStart,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "client.do",
		Data: map[string]any{
			"model":    model,
			"contents": len(req.Contents),
			"stream":   strings.HasPrefix(verb, "streamGenerateContent"),
		},
	})

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		defer httpResp.Body.Close()
		return nil, decodeAPIError(httpResp)
	}

	return httpResp, nil
}

// withTimeout derives a call context from the effective options. The
// returned cancel must run when the call's body is fully consumed.
func (c *Client) withTimeout(ctx context.Context, opts generate.RequestOptions) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return context.WithCancel(ctx)
}

// readStream decodes SSE data lines into response chunks until the body
// ends. Runs on its own goroutine and owns the body and the call context.
func (c *Client) readStream(body io.ReadCloser, stream *response.Stream, cancel context.CancelFunc) {
	defer cancel()
	defer body.Close()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, streamScanBuffer), streamScanMaxToken)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}

		var chunk response.Response
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			stream.Fail(fmt.Errorf("failed to decode stream chunk: %w", err))
			return
		}
		stream.Push(&chunk)
	}

	if err := scanner.Err(); err != nil {
		stream.Fail(fmt.Errorf("stream read failed: %w", err))
		return
	}
	stream.Close()
}
