package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/yanqian/listing-insights/internal/domain/listing"
)

const (
	maxResponseBytes = 1 << 20
	maxErrorBytes    = 64 << 10
)

// Client talks to the price-class prediction service.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a client. A zero timeout leaves calls bounded only by the caller's context.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict posts payload to {apiURL}/predict and reshapes the reply.
func (c *Client) Predict(ctx context.Context, apiURL string, payload listing.APIPayload) (listing.PredictionResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return listing.PredictionResponse{}, fmt.Errorf("encode prediction payload: %w", err)
	}

	endpoint := strings.TrimRight(apiURL, "/") + "/predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return listing.PredictionResponse{}, &listing.UpstreamError{Kind: listing.UpstreamNetwork, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return listing.PredictionResponse{}, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		return listing.PredictionResponse{}, statusError(resp.StatusCode, errBody)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return listing.PredictionResponse{}, &listing.UpstreamError{Kind: listing.UpstreamNetwork, StatusCode: resp.StatusCode, Err: err}
	}
	var decoded listing.APIPredictionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return listing.PredictionResponse{}, &listing.UpstreamError{Kind: listing.UpstreamMalformed, StatusCode: resp.StatusCode, Err: err}
	}
	out, err := decoded.Reshape()
	if err != nil {
		return listing.PredictionResponse{}, &listing.UpstreamError{Kind: listing.UpstreamMalformed, StatusCode: resp.StatusCode, Err: err}
	}
	return out, nil
}

// Enums fetches GET {baseURL}/enums/{kind}, a JSON array of strings.
func (c *Client) Enums(ctx context.Context, baseURL string, kind listing.EnumKind) ([]string, error) {
	endpoint := fmt.Sprintf("%s/enums/%s", strings.TrimRight(baseURL, "/"), kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build enum request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enum request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("enum request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var values []string
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&values); err != nil {
		return nil, fmt.Errorf("decode enum response: %w", err)
	}
	return values, nil
}

// validationBody is a 422 reply. A nil Detail means the key was absent or null.
type validationBody struct {
	Detail *[]validationIssue `json:"detail"`
}

type validationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func (v validationIssue) text() string {
	parts := make([]string, 0, len(v.Loc))
	for _, p := range v.Loc {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ".") + " - " + v.Msg
}

func statusError(code int, body []byte) error {
	if code == http.StatusUnprocessableEntity {
		var parsed validationBody
		if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != nil {
			detail := ""
			if issues := *parsed.Detail; len(issues) > 0 {
				detail = issues[0].text()
			}
			return &listing.UpstreamError{Kind: listing.UpstreamValidation, StatusCode: code, Detail: detail}
		}
	}
	return &listing.UpstreamError{Kind: listing.UpstreamStatus, StatusCode: code, Detail: genericDetail(code, body)}
}

func genericDetail(code int, body []byte) string {
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Sprintf("An API error occurred: %d %s", code, http.StatusText(code))
	}
	if detail, ok := parsed["detail"]; ok && string(detail) != "null" {
		var text string
		if err := json.Unmarshal(detail, &text); err == nil {
			return "API Error: " + text
		}
		return "API Error: " + compactJSON(detail)
	}
	return "API Error: " + compactJSON(body)
}

func compactJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// transportError separates "nothing is listening" from other failures.
func transportError(err error) error {
	kind := listing.UpstreamNetwork
	if unreachable(err) {
		kind = listing.UpstreamUnreachable
	}
	return &listing.UpstreamError{Kind: kind, Err: err}
}

func unreachable(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
