package zatca

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config for the submission client. Injected at construction so tests and
// per-environment deployments pick their own endpoint and credential; nothing
// here reads process-global state.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration // defaults to 30s when zero
}

// Client is the outbound port for the ZATCA API. The concrete implementation
// speaks REST; tests inject a fake or point HTTPClient at a local server.
// Every method returns a Result, never a transport error: failures of any
// kind (timeout, connection refused, non-200, malformed body) are converted
// into Success=false with a human-readable message, and callers decide user
// feedback from that alone.
type Client interface {
	SubmitInvoice(ctx context.Context, payload *InvoicePayload) *Result
	CheckStatus(ctx context.Context, uuid string) *Result
	CancelInvoice(ctx context.Context, payload *CancelPayload) *Result
}

var _ Client = (*HTTPClient)(nil)

// HTTPClient implements Client over the ZATCA REST API with a bearer token
// and a fixed per-request timeout. It uses net/http directly, like the rest
// of this codebase's outbound integrations.
type HTTPClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewHTTPClient builds the client. A zero Timeout falls back to 30 seconds.
func NewHTTPClient(cfg Config) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SubmitInvoice POSTs the invoice payload to {base}/invoices.
// A 200 response is the only success; its body must parse as JSON and is
// returned verbatim in Result.Data.
func (c *HTTPClient) SubmitInvoice(ctx context.Context, payload *InvoicePayload) *Result {
	res := c.do(ctx, http.MethodPost, c.cfg.BaseURL+"/invoices", payload)
	if res.Success {
		res.Message = "Invoice submitted successfully"
	}
	return res
}

// CheckStatus GETs {base}/invoices/{uuid}. It never mutates anything; the
// caller decides what to do with the authority's view of the invoice.
func (c *HTTPClient) CheckStatus(ctx context.Context, uuid string) *Result {
	res := c.do(ctx, http.MethodGet, c.cfg.BaseURL+"/invoices/"+uuid, nil)
	if res.Success {
		res.Message = "Status retrieved"
	}
	return res
}

// CancelInvoice POSTs {uuid, reason} to {base}/invoices/{uuid}/cancel.
func (c *HTTPClient) CancelInvoice(ctx context.Context, payload *CancelPayload) *Result {
	res := c.do(ctx, http.MethodPost, c.cfg.BaseURL+"/invoices/"+payload.UUID+"/cancel", payload)
	if res.Success {
		res.Message = "Invoice cancelled successfully"
	}
	return res
}

// do performs one authority call and normalizes every outcome into a Result.
func (c *HTTPClient) do(ctx context.Context, method, url string, payload interface{}) *Result {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return failure(fmt.Sprintf("Error: encode request: %v", err), 0, "")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return failure(fmt.Sprintf("Error: build request: %v", err), 0, "")
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failure(fmt.Sprintf("Network error: %v", err), 0, "")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(fmt.Sprintf("Network error: read response: %v", err), resp.StatusCode, "")
	}
	bodyStr := strings.TrimSpace(string(raw))

	if resp.StatusCode != http.StatusOK {
		return failure(fmt.Sprintf("ZATCA API Error: %d", resp.StatusCode), resp.StatusCode, bodyStr)
	}

	data := emptyObject
	if bodyStr != "" {
		if !json.Valid(raw) {
			return failure("Error: malformed response body", resp.StatusCode, bodyStr)
		}
		data = json.RawMessage(raw)
	}

	return &Result{
		Success:    true,
		StatusCode: resp.StatusCode,
		Body:       bodyStr,
		Data:       data,
	}
}
