package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mealcart/payouts/models"
)

// RazorpayX drives payouts through the RazorpayX payout API using key-pair
// basic auth.
type RazorpayX struct {
	BaseURL       string
	KeyID         string
	KeySecret     string
	AccountNumber string
	Client        *http.Client
}

// NewRazorpayX builds a client with a sane request timeout.
func NewRazorpayX(baseURL, keyID, keySecret, accountNumber string) *RazorpayX {
	return &RazorpayX{
		BaseURL:       baseURL,
		KeyID:         keyID,
		KeySecret:     keySecret,
		AccountNumber: accountNumber,
		Client:        &http.Client{Timeout: 30 * time.Second},
	}
}

type razorpayPayout struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	ReferenceID string `json:"reference_id"`
	ProcessedAt *int64 `json:"processed_at"`
}

type razorpayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (g *RazorpayX) InitiateTransfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	payload := map[string]any{
		"account_number":  g.AccountNumber,
		"fund_account_id": req.BeneficiaryID,
		"amount":          int64(req.Amount),
		"currency":        currency,
		"mode":            "IMPS",
		"purpose":         "vendor_payout",
		"reference_id":    req.ReferenceID,
		"narration":       req.Narration,
	}
	body, err := g.do(ctx, http.MethodPost, "/payouts", payload)
	if err != nil {
		return nil, err
	}
	return parseTransfer(body)
}

func (g *RazorpayX) TransferStatus(ctx context.Context, transferID string) (*TransferResult, error) {
	body, err := g.do(ctx, http.MethodGet, "/payouts/"+transferID, nil)
	if err != nil {
		return nil, err
	}
	return parseTransfer(body)
}

func (g *RazorpayX) Balance(ctx context.Context) (models.Money, error) {
	body, err := g.do(ctx, http.MethodGet, "/balance?account_number="+g.AccountNumber, nil)
	if err != nil {
		return 0, err
	}
	var resp struct {
		Balance int64 `json:"balance"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("decoding balance response: %w", err)
	}
	return models.Money(resp.Balance), nil
}

func (g *RazorpayX) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.BaseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(g.KeyID, g.KeySecret)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		var apiErr razorpayError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("gateway %s %s: %s (%s)", method, path,
				apiErr.Error.Description, apiErr.Error.Code)
		}
		return nil, fmt.Errorf("gateway %s %s: status %d", method, path, resp.StatusCode)
	}
	return body, nil
}

func parseTransfer(body []byte) (*TransferResult, error) {
	var p razorpayPayout
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decoding transfer response: %w", err)
	}
	result := &TransferResult{
		TransferID: p.ID,
		Status:     mapProviderStatus(p.Status),
		Raw:        json.RawMessage(body),
	}
	if p.ProcessedAt != nil {
		t := time.Unix(*p.ProcessedAt, 0).UTC()
		result.CompletedAt = &t
	}
	return result, nil
}

// mapProviderStatus folds RazorpayX payout states onto our vocabulary.
// Anything unrecognized is treated as FAILED so it stays in the retry loop
// rather than sitting in limbo.
func mapProviderStatus(s string) models.PayoutStatus {
	switch s {
	case "queued", "pending", "processing", "scheduled":
		return models.PayoutStatusPending
	case "processed":
		return models.PayoutStatusComplete
	case "rejected", "cancelled":
		return models.PayoutStatusRejected
	case "reversed":
		return models.PayoutStatusReversed
	case "failed":
		return models.PayoutStatusFailed
	default:
		return models.PayoutStatusFailed
	}
}

// ParseWebhookEvent decodes a RazorpayX payout webhook body into a
// TransferEvent. Events that are not about payouts return (nil, nil).
func ParseWebhookEvent(body []byte) (*TransferEvent, error) {
	var envelope struct {
		Event   string `json:"event"`
		Payload struct {
			Payout struct {
				Entity razorpayPayout `json:"entity"`
			} `json:"payout"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding webhook body: %w", err)
	}
	if envelope.Payload.Payout.Entity.ID == "" {
		return nil, nil
	}
	entity := envelope.Payload.Payout.Entity
	event := &TransferEvent{
		TransferID:  entity.ID,
		ReferenceID: entity.ReferenceID,
		Status:      mapProviderStatus(entity.Status),
		Raw:         json.RawMessage(body),
	}
	if entity.ProcessedAt != nil {
		t := time.Unix(*entity.ProcessedAt, 0).UTC()
		event.CompletedAt = &t
	}
	return event, nil
}
