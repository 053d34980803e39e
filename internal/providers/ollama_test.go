package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllama_Complete_NoKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("Authorization header should be absent without a key")
		}

		var req openaiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Model != "llama3" {
			t.Errorf("model = %q", req.Model)
		}

		json.NewEncoder(w).Encode(openaiResponse{
			Choices: []openaiChoice{
				{Message: openaiMessage{Role: "assistant", Content: "[]"}},
			},
		})
	}))
	defer server.Close()

	o := &Ollama{model: "llama3", baseURL: server.URL, client: server.Client()}

	resp, err := o.Complete(context.Background(), Request{System: "plan", Prompt: "diff"})
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if resp.Content != "[]" {
		t.Errorf("Content = %q", resp.Content)
	}
}

func TestOllama_Complete_WithKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer lm-key" {
			t.Error("missing bearer header when a key is configured")
		}
		json.NewEncoder(w).Encode(openaiResponse{
			Choices: []openaiChoice{
				{Message: openaiMessage{Role: "assistant", Content: "ok"}},
			},
		})
	}))
	defer server.Close()

	o := &Ollama{apiKey: "lm-key", model: "llama3", baseURL: server.URL, client: server.Client()}

	if _, err := o.Complete(context.Background(), Request{Prompt: "diff"}); err != nil {
		t.Fatalf("Complete error: %v", err)
	}
}

func TestOllama_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		w.Write([]byte("model not loaded"))
	}))
	defer server.Close()

	o := &Ollama{model: "llama3", baseURL: server.URL, client: server.Client()}

	_, err := o.Complete(context.Background(), Request{Prompt: "diff"})
	if !IsUnavailable(err) {
		t.Errorf("IsUnavailable(%v) = false, want true", err)
	}
}

func TestNewOllama_HostNormalization(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"", "http://localhost:11434/v1/chat/completions"},
		{"http://box:11434", "http://box:11434/v1/chat/completions"},
		{"http://box:11434/", "http://box:11434/v1/chat/completions"},
		{"http://box:11434/v1", "http://box:11434/v1/chat/completions"},
		{"http://box:11434/v1/chat/completions", "http://box:11434/v1/chat/completions"},
	}
	for _, tt := range tests {
		t.Setenv("OLLAMA_HOST", tt.host)
		o, err := NewOllama("llama3", "")
		if err != nil {
			t.Fatalf("NewOllama(%q) error: %v", tt.host, err)
		}
		if o.baseURL != tt.want {
			t.Errorf("host %q: baseURL = %q, want %q", tt.host, o.baseURL, tt.want)
		}
	}
}
