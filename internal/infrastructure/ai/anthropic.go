package ai

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/doeshing/retroshell/internal/domain"
)

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

func (r anthropicResponse) FirstText() string {
	for _, block := range r.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text
		}
	}
	return ""
}

func anthropicDialect() dialect {
	return dialect{
		buildRequest: func(model domain.ModelDefinition, system, user string) ([]byte, error) {
			return json.Marshal(anthropicRequest{
				Model:     valueOrDefault(model.ModelID, "claude-3-5-sonnet-20240620"),
				MaxTokens: valueOrDefaultInt(model.MaxTokens, 1024),
				System:    system,
				Messages: []anthropicMessage{
					{
						Role:    "user",
						Content: []anthropicContent{{Type: "text", Text: user}},
					},
				},
			})
		},
		parseResponse: func(body []byte) (string, error) {
			var decoded anthropicResponse
			if err := json.Unmarshal(body, &decoded); err != nil {
				return "", err
			}
			return decoded.FirstText(), nil
		},
		setHeaders: func(req *http.Request, model domain.ModelDefinition) error {
			apiKey := resolveAuth(model.AuthEnvVar, "ANTHROPIC_API_KEY")
			if apiKey == "" {
				return fmt.Errorf("missing API key: set %s", valueOrDefault(model.AuthEnvVar, "ANTHROPIC_API_KEY"))
			}
			req.Header.Set("x-api-key", apiKey)
			req.Header.Set("anthropic-version", "2023-06-01")
			return nil
		},
	}
}
