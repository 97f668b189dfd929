// Package basic provides program-runner adapters for BASIC code: an HTTP
// client for the emulator bridge, and an offline runner used when no bridge
// is configured.
package basic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/retroshell/internal/domain"
	"github.com/doeshing/retroshell/internal/ports"
)

const defaultBridgeTimeout = 30 * time.Second

// BridgeClient posts program code to the emulator bridge's execute endpoint.
type BridgeClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewBridgeClient builds a client for the given bridge base URL.
func NewBridgeClient(endpoint string, timeout time.Duration) *BridgeClient {
	if timeout <= 0 {
		timeout = defaultBridgeTimeout
	}
	return &BridgeClient{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type executeRequest struct {
	Code string `json:"code"`
}

type executeResponse struct {
	Output      string `json:"output"`
	Success     bool   `json:"success"`
	Explanation string `json:"explanation,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Run implements ports.ProgramRunner.
func (c *BridgeClient) Run(ctx context.Context, code string) (domain.RunResult, error) {
	body, err := json.Marshal(executeRequest{Code: code})
	if err != nil {
		return domain.RunResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/execute", bytes.NewReader(body))
	if err != nil {
		return domain.RunResult{}, err
	}
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RunResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return domain.RunResult{}, fmt.Errorf("bridge: %s", resp.Status)
	}

	var decoded executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RunResult{}, err
	}
	if decoded.Error != "" {
		return domain.RunResult{}, fmt.Errorf("bridge: %s", decoded.Error)
	}

	return domain.RunResult{
		Output:      decoded.Output,
		Success:     decoded.Success,
		Explanation: decoded.Explanation,
	}, nil
}

// NewRunner selects the bridge client when an endpoint is configured and the
// offline runner otherwise.
func NewRunner(cfg domain.BridgeSettings) ports.ProgramRunner {
	if cfg.Endpoint == "" {
		return NewOfflineRunner()
	}
	return NewBridgeClient(cfg.Endpoint, time.Duration(cfg.TimeoutSeconds)*time.Second)
}

var _ ports.ProgramRunner = (*BridgeClient)(nil)
