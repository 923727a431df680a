package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/strandworks/genchat/client"
	"github.com/strandworks/genchat/core/content"
	"github.com/strandworks/genchat/core/generate"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := client.New(&client.Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func textRequest(text string) *generate.Request {
	return &generate.Request{Contents: []*content.Content{content.NewUserContent(content.Text(text))}}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := client.New(&client.Config{})
	if !errors.Is(err, client.ErrMissingAPIKey) {
		t.Errorf("got %v, want ErrMissingAPIKey", err)
	}

	_, err = client.New(nil)
	if !errors.Is(err, client.ErrMissingAPIKey) {
		t.Errorf("nil config: got %v, want ErrMissingAPIKey", err)
	}
}

func TestGenerateContent(t *testing.T) {
	var gotPath, gotKey string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"pong"}]},"finishReason":"STOP"}]}`)
	})

	resp, err := c.GenerateContent(context.Background(), "gemini-1.5-flash", textRequest("ping"), nil)
	if err != nil {
		t.Fatalf("GenerateContent failed: %v", err)
	}

	if gotPath != "/v1beta/models/gemini-1.5-flash:generateContent" {
		t.Errorf("got path %q, want the v1beta generateContent path", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("got api key header %q, want %q", gotKey, "test-key")
	}
	if resp.Text() != "pong" {
		t.Errorf("got text %q, want %q", resp.Text(), "pong")
	}
}

func TestGenerateContent_QualifiedModelName(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)
	})

	if _, err := c.GenerateContent(context.Background(), "tunedModels/my-tune", textRequest("hi"), nil); err != nil {
		t.Fatalf("GenerateContent failed: %v", err)
	}
	if gotPath != "/v1beta/tunedModels/my-tune:generateContent" {
		t.Errorf("got path %q, want the tuned model path untouched", gotPath)
	}
}

func TestGenerateContent_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
	})

	_, err := c.GenerateContent(context.Background(), "gemini-1.5-flash", textRequest("hi"), nil)
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("got status code %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Status != "INVALID_ARGUMENT" {
		t.Errorf("got status %q, want INVALID_ARGUMENT", apiErr.Status)
	}
	if apiErr.Message != "API key not valid" {
		t.Errorf("got message %q, want the service message", apiErr.Message)
	}
}

func TestGenerateContent_APIErrorPlainBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream unavailable")
	})

	_, err := c.GenerateContent(context.Background(), "gemini-1.5-flash", textRequest("hi"), nil)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T, want *APIError", err)
	}
	if apiErr.Message != "upstream unavailable" {
		t.Errorf("got message %q, want the raw body", apiErr.Message)
	}
}

func TestGenerateContent_RequestOptions(t *testing.T) {
	var gotPath, gotHeader string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeader = r.Header.Get("x-team")
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)
	})

	opts := &generate.RequestOptions{
		APIVersion: "v1",
		Headers:    map[string]string{"x-team": "ranking"},
	}
	if _, err := c.GenerateContent(context.Background(), "gemini-1.5-flash", textRequest("hi"), opts); err != nil {
		t.Fatalf("GenerateContent failed: %v", err)
	}

	if gotPath != "/v1/models/gemini-1.5-flash:generateContent" {
		t.Errorf("got path %q, want the v1 path", gotPath)
	}
	if gotHeader != "ranking" {
		t.Errorf("got header %q, want %q", gotHeader, "ranking")
	}
}

func TestGenerateContent_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		io.WriteString(w, `{"candidates":[]}`)
	})

	opts := &generate.RequestOptions{Timeout: 10 * time.Millisecond}
	_, err := c.GenerateContent(context.Background(), "gemini-1.5-flash", textRequest("hi"), opts)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got %v, want a deadline error", err)
	}
}

func TestGenerateContentStream(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "alt=sse" {
			t.Errorf("got query %q, want alt=sse", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, `data: {"candidates":[{"content":{"role":"model","parts":[{"text":"Hel"}]}}]}`+"\n\n")
		io.WriteString(w, `: keepalive comment`+"\n\n")
		io.WriteString(w, `data: {"candidates":[{"content":{"parts":[{"text":"lo"}]},"finishReason":"STOP"}]}`+"\n\n")
	})

	stream, err := c.GenerateContentStream(context.Background(), "gemini-1.5-flash", textRequest("hi"), nil)
	if err != nil {
		t.Fatalf("GenerateContentStream failed: %v", err)
	}

	ctx := context.Background()
	var texts []string
	for {
		chunk, recvErr := stream.Recv(ctx)
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			t.Fatalf("Recv failed: %v", recvErr)
		}
		texts = append(texts, chunk.Text())
	}
	if len(texts) != 2 || texts[0] != "Hel" || texts[1] != "lo" {
		t.Errorf("got chunks %v, want [Hel lo]", texts)
	}

	final, err := stream.Response(ctx)
	if err != nil {
		t.Fatalf("Response failed: %v", err)
	}
	if final.Text() != "Hello" {
		t.Errorf("got final text %q, want %q", final.Text(), "Hello")
	}
}

func TestGenerateContentStream_HTTPErrorBeforeStreaming(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`)
	})

	_, err := c.GenerateContentStream(context.Background(), "gemini-1.5-flash", textRequest("hi"), nil)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T (%v), want *APIError", err, err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("got status %d, want 429", apiErr.StatusCode)
	}
}

func TestGenerateContentStream_MalformedChunk(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"ok\"}]}}]}\n\n")
		io.WriteString(w, "data: {not json\n\n")
	})

	stream, err := c.GenerateContentStream(context.Background(), "gemini-1.5-flash", textRequest("hi"), nil)
	if err != nil {
		t.Fatalf("GenerateContentStream failed: %v", err)
	}

	ctx := context.Background()
	if _, err := stream.Recv(ctx); err != nil {
		t.Fatalf("first chunk should decode, got %v", err)
	}
	_, err = stream.Recv(ctx)
	if err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("got %v, want a decode error", err)
	}
	if _, respErr := stream.Response(ctx); respErr == nil {
		t.Fatal("Response should surface the decode error")
	}
}
