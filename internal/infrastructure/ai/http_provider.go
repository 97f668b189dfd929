package ai

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/doeshing/retroshell/internal/domain"
	"github.com/doeshing/retroshell/internal/ports"
)

// dialect captures what differs between chat APIs: request shape, response
// shape, and authentication headers.
type dialect struct {
	buildRequest  func(model domain.ModelDefinition, system, user string) ([]byte, error)
	parseResponse func(body []byte) (string, error)
	setHeaders    func(req *http.Request, model domain.ModelDefinition) error
}

type httpProvider struct {
	name       string
	model      domain.ModelDefinition
	httpClient *http.Client
	dialect    dialect
}

func newHTTPProvider(name string, model domain.ModelDefinition, client *http.Client, d dialect) ports.ChatProvider {
	return &httpProvider{name: name, model: model, httpClient: client, dialect: d}
}

func (p *httpProvider) Name() string {
	return p.name
}

// Chat implements ports.ChatProvider. When the provider's API key is not
// configured it degrades to the offline heuristic provider instead of
// failing the whole request.
func (p *httpProvider) Chat(ctx context.Context, message string, tctx domain.ChatContext) (string, error) {
	if p.model.AuthEnvVar != "" && os.Getenv(p.model.AuthEnvVar) == "" {
		return NewHeuristicProvider().Chat(ctx, message, tctx)
	}

	body, err := p.dialect.buildRequest(p.model, systemPrompt(tctx), message)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.model.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("content-type", "application/json")
	if err := p.dialect.setHeaders(req, p.model); err != nil {
		return "", err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%s: %s", p.name, resp.Status)
	}

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		return "", err
	}

	return p.dialect.parseResponse(responseBody.Bytes())
}

func systemPrompt(tctx domain.ChatContext) string {
	return fmt.Sprintf(`You are the resident assistant of a vintage computer terminal.
The user types free-form requests alongside shell-style commands.
Current directory: %s
Surface: %s
Answer concisely in plain text; suggest terminal commands where they help.`,
		tctx.WorkingDirectory, tctx.Context)
}

func resolveAuth(envVar, fallbackVar string) string {
	if envVar != "" {
		if key := os.Getenv(envVar); key != "" {
			return key
		}
	}
	return os.Getenv(fallbackVar)
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func valueOrDefaultInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
