package ai

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/doeshing/retroshell/internal/domain"
)

type openaiRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens,omitempty"`
	Messages  []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []struct {
		Message openaiMessage `json:"message"`
	} `json:"choices"`
}

func (r openaiResponse) FirstText() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

func openaiDialect() dialect {
	return dialect{
		buildRequest: func(model domain.ModelDefinition, system, user string) ([]byte, error) {
			return json.Marshal(openaiRequest{
				Model:     valueOrDefault(model.ModelID, "gpt-4o-mini"),
				MaxTokens: model.MaxTokens,
				Messages: []openaiMessage{
					{Role: "system", Content: system},
					{Role: "user", Content: user},
				},
			})
		},
		parseResponse: func(body []byte) (string, error) {
			var decoded openaiResponse
			if err := json.Unmarshal(body, &decoded); err != nil {
				return "", err
			}
			return decoded.FirstText(), nil
		},
		setHeaders: func(req *http.Request, model domain.ModelDefinition) error {
			apiKey := resolveAuth(model.AuthEnvVar, "OPENAI_API_KEY")
			if apiKey == "" {
				return fmt.Errorf("missing API key: set %s", valueOrDefault(model.AuthEnvVar, "OPENAI_API_KEY"))
			}
			req.Header.Set("authorization", "Bearer "+apiKey)
			return nil
		},
	}
}
