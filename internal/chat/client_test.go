package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Mamo1031/rag-evaluator/internal/config"
)

func testEnv(host string) *config.Env {
	return &config.Env{
		Host:           host + "/",
		APIKey:         "Bearer test-key",
		ProjectID:      42,
		RequestTimeout: 5,
		MaxRetries:     3,
	}
}

func TestComplete_LastReplaceMessageWins(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		lines := []string{
			`{"type":"status","message":"thinking"}`,
			``,
			`not json at all`,
			`{"type":"replace_message","message":"draft"}`,
			`{"type":"replace_message","message":" final answer "}`,
		}
		for _, line := range lines {
			w.Write([]byte(line + "\n"))
		}
	}))
	defer srv.Close()

	client := NewClient(testEnv(srv.URL), "gpt-4o-mini")
	got, err := client.Complete(context.Background(), "question", "template")
	if err != nil {
		t.Fatal(err)
	}
	if got != "final answer" {
		t.Errorf("Complete = %q, want %q", got, "final answer")
	}
	if gotReq.Action != "new" || gotReq.ProjectID != 42 || gotReq.ChatID != zeroChatID {
		t.Errorf("unexpected payload: %+v", gotReq)
	}
	if gotReq.UserInput != "question" || gotReq.Template != "template" {
		t.Errorf("prompt fields not forwarded: %+v", gotReq)
	}
	if gotReq.DataSourceItems == nil {
		t.Error("data_source_items should marshal as an empty list, not null")
	}
}

func TestComplete_NoReplaceMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"status","message":"only status"}` + "\n"))
	}))
	defer srv.Close()

	client := NewClient(testEnv(srv.URL), "")
	got, err := client.Complete(context.Background(), "q", "t")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("expected empty final message, got %q", got)
	}
}

func TestComplete_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(testEnv(srv.URL), "")
	_, err := client.Complete(context.Background(), "q", "t")
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error should mention status, got %v", err)
	}
}

func TestComplete_NotModifiedIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}))
	defer srv.Close()

	client := NewClient(testEnv(srv.URL), "")
	got, err := client.Complete(context.Background(), "q", "t")
	if err != nil {
		t.Fatalf("leftover 3xx status should not be an error, got %v", err)
	}
	if got != "" {
		t.Errorf("expected empty message, got %q", got)
	}
}

func TestComplete_ClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such project", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(testEnv(srv.URL), "")
	_, err := client.Complete(context.Background(), "q", "t")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("4xx must fail with the status, got %v", err)
	}
}

func TestComplete_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := NewClient(testEnv(srv.URL), "")
	if _, err := client.Complete(ctx, "q", "t"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestExtractFinalMessage(t *testing.T) {
	stream := strings.NewReader(
		`{"type":"replace_message","message":"one"}` + "\n" +
			`{"type":"append","message":"ignored"}` + "\n" +
			`{"type":"replace_message","message":"two"}` + "\n")
	got, err := extractFinalMessage(stream)
	if err != nil {
		t.Fatal(err)
	}
	if got != "two" {
		t.Errorf("extractFinalMessage = %q, want %q", got, "two")
	}
}
