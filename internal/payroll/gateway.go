package payroll

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway moves actual money. Bookkeeping never depends on it succeeding.
type Gateway interface {
	ProcessPayment(ctx context.Context, req GatewayRequest) (txnID string, err error)
}

type GatewayRequest struct {
	TeacherID string  `json:"teacher_id"`
	Period    string  `json:"period"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
}

type gatewayResponse struct {
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
}

// HTTPGateway talks to the external payment provider with bearer auth.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *HTTPGateway) ProcessPayment(ctx context.Context, req GatewayRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/payments", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var parsed gatewayResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(raw))
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, parsed.Message)
	}

	return parsed.TransactionID, nil
}
