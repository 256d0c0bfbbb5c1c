package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", "key", "from@example.com", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", "key", "from@example.com", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestHTTPClientSend(t *testing.T) {
	var captured struct {
		method string
		path   string
		auth   string
		body   map[string]any
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&captured.body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"msg_1"}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "re_test_key", "Amvenit.ro <onboarding@resend.dev>", testLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	err = client.Send(context.Background(), Message{
		To:      "admin@example.com",
		Subject: "Cerere nouă",
		HTML:    "<p>salut</p>",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if captured.method != http.MethodPost || captured.path != "/emails" {
		t.Errorf("request = %s %s, want POST /emails", captured.method, captured.path)
	}
	if captured.auth != "Bearer re_test_key" {
		t.Errorf("authorization = %q", captured.auth)
	}
	if captured.body["from"] != "Amvenit.ro <onboarding@resend.dev>" {
		t.Errorf("from = %v", captured.body["from"])
	}
	to, ok := captured.body["to"].([]any)
	if !ok || len(to) != 1 || to[0] != "admin@example.com" {
		t.Errorf("to = %v", captured.body["to"])
	}
	if captured.body["subject"] != "Cerere nouă" {
		t.Errorf("subject = %v", captured.body["subject"])
	}
}

func TestHTTPClientSendErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "bad-key", "from@example.com", testLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	if err := client.Send(context.Background(), Message{To: "x@example.com"}); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestHTTPClientSendWithoutKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent without an API key")
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "", "from@example.com", testLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	if err := client.Send(context.Background(), Message{To: "x@example.com"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
