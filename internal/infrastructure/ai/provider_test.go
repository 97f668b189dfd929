package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/doeshing/retroshell/internal/domain"
)

func TestInferProviderKind(t *testing.T) {
	tests := []struct {
		endpoint string
		name     string
		want     domain.ProviderKind
	}{
		{"https://api.anthropic.com/v1/messages", "claude", domain.ProviderKindAnthropic},
		{"https://api.openai.com/v1/chat/completions", "gpt", domain.ProviderKindOpenAI},
		{"http://localhost:11434/api/chat", "llama3", domain.ProviderKindOllama},
		{"http://10.0.0.5:11434/api/chat", "whatever", domain.ProviderKindOllama},
		{"http://example.com/chat", "my-ollama", domain.ProviderKindOllama},
		{"http://example.com/chat", "mystery", domain.ProviderKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferProviderKind(tt.endpoint, tt.name); got != tt.want {
				t.Errorf("inferProviderKind(%q, %q) = %q, want %q", tt.endpoint, tt.name, got, tt.want)
			}
		})
	}
}

func TestFactoryUnknownEndpointFallsBackToHeuristic(t *testing.T) {
	provider, err := NewFactory().ForModel(domain.ModelDefinition{
		Name:     "mystery",
		Endpoint: "http://example.com/chat",
	})
	if err != nil {
		t.Fatalf("ForModel() error = %v", err)
	}
	if provider.Name() != "heuristic" {
		t.Errorf("provider = %q, want heuristic", provider.Name())
	}
}

func TestHTTPProviderChatOllama(t *testing.T) {
	var gotReq ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(ollamaResponse{
			Message: openaiMessage{Role: "assistant", Content: "try 'ls'"},
		})
	}))
	defer srv.Close()

	provider, err := NewFactory().ForModel(domain.ModelDefinition{
		Name:     "ollama",
		Endpoint: srv.URL,
		ModelID:  "llama3",
	})
	if err != nil {
		t.Fatalf("ForModel() error = %v", err)
	}

	reply, err := provider.Chat(context.Background(), "how do I see my files?", domain.ChatContext{
		WorkingDirectory: "/home/user",
		Context:          domain.TerminalContext,
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if reply != "try 'ls'" {
		t.Errorf("reply = %q", reply)
	}

	if gotReq.Model != "llama3" || gotReq.Stream {
		t.Errorf("request = %+v", gotReq)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("messages = %d, want system + user", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" || !strings.Contains(gotReq.Messages[0].Content, "/home/user") {
		t.Errorf("system message = %+v, want it to carry the working directory", gotReq.Messages[0])
	}
	if gotReq.Messages[1].Role != "user" || gotReq.Messages[1].Content != "how do I see my files?" {
		t.Errorf("user message = %+v", gotReq.Messages[1])
	}
}

func TestHTTPProviderDegradesWithoutCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("provider called the API without credentials")
	}))
	defer srv.Close()

	provider := newHTTPProvider("anthropic", domain.ModelDefinition{
		Name:       "claude",
		Endpoint:   srv.URL,
		AuthEnvVar: "TEST_MISSING_API_KEY",
	}, srv.Client(), anthropicDialect())

	t.Setenv("TEST_MISSING_API_KEY", "")

	reply, err := provider.Chat(context.Background(), "hello", domain.ChatContext{})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if !strings.Contains(reply, "offline") {
		t.Errorf("reply = %q, want the offline fallback", reply)
	}
}

func TestHeuristicProviderTopics(t *testing.T) {
	provider := NewHeuristicProvider()
	tctx := domain.ChatContext{WorkingDirectory: "/home/user", Context: domain.TerminalContext}

	tests := []struct {
		message string
		want    string
	}{
		{"where are my files?", "ls"},
		{"how do I write a basic program?", "PRINT"},
		{"what commands exist?", "help"},
		{"tell me a story", "offline"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			reply, err := provider.Chat(context.Background(), tt.message, tctx)
			if err != nil {
				t.Fatalf("Chat() error = %v", err)
			}
			if !strings.Contains(reply, tt.want) {
				t.Errorf("reply = %q, want mention of %q", reply, tt.want)
			}
		})
	}
}
