// Package ai provides chat-provider adapters for the terminal's
// natural-language path: HTTP providers for the supported chat APIs and an
// offline heuristic fallback.
package ai

import (
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/retroshell/internal/domain"
	"github.com/doeshing/retroshell/internal/ports"
)

const httpClientTimeout = 60 * time.Second

// Factory creates chat providers from model definitions, sharing one HTTP
// client across providers.
type Factory struct {
	httpClient *http.Client
}

// NewFactory builds a factory with a configured HTTP client.
func NewFactory() *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: httpClientTimeout},
	}
}

// ForModel infers the provider dialect from the model definition. Unknown
// endpoints get the offline heuristic provider.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.ChatProvider, error) {
	switch inferProviderKind(model.Endpoint, model.Name) {
	case domain.ProviderKindAnthropic:
		return newHTTPProvider("anthropic", model, f.httpClient, anthropicDialect()), nil
	case domain.ProviderKindOpenAI:
		return newHTTPProvider("openai", model, f.httpClient, openaiDialect()), nil
	case domain.ProviderKindOllama:
		return newHTTPProvider("ollama", model, f.httpClient, ollamaDialect()), nil
	default:
		return NewHeuristicProvider(), nil
	}
}

func inferProviderKind(endpoint, name string) domain.ProviderKind {
	nameLower := strings.ToLower(name)

	switch {
	case strings.Contains(endpoint, "anthropic.com"):
		return domain.ProviderKindAnthropic
	case strings.Contains(endpoint, "openai.com"):
		return domain.ProviderKindOpenAI
	case strings.Contains(nameLower, "ollama"), strings.Contains(endpoint, "11434"), strings.Contains(endpoint, "localhost"):
		return domain.ProviderKindOllama
	default:
		return domain.ProviderKindUnknown
	}
}

var _ ports.ChatProviderFactory = (*Factory)(nil)
