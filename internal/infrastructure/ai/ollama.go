package ai

import (
	"encoding/json"
	"net/http"

	"github.com/doeshing/retroshell/internal/domain"
)

type ollamaRequest struct {
	Model    string          `json:"model"`
	Stream   bool            `json:"stream"`
	Messages []openaiMessage `json:"messages"`
}

type ollamaResponse struct {
	Message openaiMessage `json:"message"`
}

func ollamaDialect() dialect {
	return dialect{
		buildRequest: func(model domain.ModelDefinition, system, user string) ([]byte, error) {
			return json.Marshal(ollamaRequest{
				Model:  valueOrDefault(model.ModelID, "llama3"),
				Stream: false,
				Messages: []openaiMessage{
					{Role: "system", Content: system},
					{Role: "user", Content: user},
				},
			})
		},
		parseResponse: func(body []byte) (string, error) {
			var decoded ollamaResponse
			if err := json.Unmarshal(body, &decoded); err != nil {
				return "", err
			}
			return decoded.Message.Content, nil
		},
		setHeaders: func(*http.Request, domain.ModelDefinition) error {
			// Local ollama needs no auth.
			return nil
		},
	}
}
