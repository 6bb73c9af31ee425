package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mealcart/payouts/models"
)

func testClient(t *testing.T, handler http.HandlerFunc) *RazorpayX {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRazorpayX(srv.URL, "key", "secret", "409000000001")
}

func TestInitiateTransfer(t *testing.T) {
	var gotBody map[string]any
	g := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/payouts" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if u, p, _ := r.BasicAuth(); u != "key" || p != "secret" {
			t.Errorf("basic auth = %s:%s", u, p)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"id":           "pout_tr123",
			"status":       "processing",
			"reference_id": gotBody["reference_id"],
		})
	})

	result, err := g.InitiateTransfer(context.Background(), TransferRequest{
		ReferenceID:   "pout_abc",
		BeneficiaryID: "ben_1",
		Amount:        9900,
	})
	if err != nil {
		t.Fatalf("InitiateTransfer: %v", err)
	}
	if result.Status != models.PayoutStatusPending {
		t.Errorf("status = %s, want PENDING for processing", result.Status)
	}
	if result.TransferID != "pout_tr123" {
		t.Errorf("transfer id = %s", result.TransferID)
	}
	if gotBody["amount"] != float64(9900) {
		t.Errorf("amount = %v, want 9900 minor units", gotBody["amount"])
	}
	if gotBody["currency"] != "INR" {
		t.Errorf("currency = %v, want INR default", gotBody["currency"])
	}
}

func TestTransferStatusCompleted(t *testing.T) {
	g := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":           "pout_tr123",
			"status":       "processed",
			"processed_at": 1790000000,
		})
	})

	result, err := g.TransferStatus(context.Background(), "pout_tr123")
	if err != nil {
		t.Fatalf("TransferStatus: %v", err)
	}
	if result.Status != models.PayoutStatusComplete {
		t.Errorf("status = %s, want COMPLETE", result.Status)
	}
	if result.CompletedAt == nil || result.CompletedAt.Unix() != 1790000000 {
		t.Errorf("completed at = %v, want gateway epoch", result.CompletedAt)
	}
}

func TestGatewayErrorResponse(t *testing.T) {
	g := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"code":        "BAD_REQUEST_ERROR",
				"description": "fund account does not exist",
			},
		})
	})

	_, err := g.TransferStatus(context.Background(), "pout_missing")
	if err == nil {
		t.Fatal("want error for 4xx response")
	}
}

func TestBalance(t *testing.T) {
	g := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("account_number") != "409000000001" {
			t.Errorf("account_number = %s", r.URL.Query().Get("account_number"))
		}
		json.NewEncoder(w).Encode(map[string]any{"balance": 1500000})
	})

	balance, err := g.Balance(context.Background())
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 1500000 {
		t.Errorf("balance = %d, want 1500000", balance)
	}
}

func TestMapProviderStatus(t *testing.T) {
	tests := []struct {
		provider string
		want     models.PayoutStatus
	}{
		{"queued", models.PayoutStatusPending},
		{"processing", models.PayoutStatusPending},
		{"processed", models.PayoutStatusComplete},
		{"failed", models.PayoutStatusFailed},
		{"rejected", models.PayoutStatusRejected},
		{"reversed", models.PayoutStatusReversed},
		{"something-new", models.PayoutStatusFailed},
	}
	for _, tt := range tests {
		if got := mapProviderStatus(tt.provider); got != tt.want {
			t.Errorf("mapProviderStatus(%q) = %s, want %s", tt.provider, got, tt.want)
		}
	}
}

func TestParseWebhookEvent(t *testing.T) {
	body := []byte(`{
		"event": "payout.processed",
		"payload": {"payout": {"entity": {
			"id": "pout_tr123",
			"status": "processed",
			"reference_id": "pout_abc",
			"processed_at": 1790000000
		}}}
	}`)

	event, err := ParseWebhookEvent(body)
	if err != nil {
		t.Fatalf("ParseWebhookEvent: %v", err)
	}
	if event == nil {
		t.Fatal("want event, got nil")
	}
	if event.ReferenceID != "pout_abc" || event.Status != models.PayoutStatusComplete {
		t.Errorf("event = %+v", event)
	}
	if event.CompletedAt == nil {
		t.Error("completed at missing")
	}
}

func TestParseWebhookEventNonPayout(t *testing.T) {
	event, err := ParseWebhookEvent([]byte(`{"event": "fund_account.validated", "payload": {}}`))
	if err != nil {
		t.Fatalf("ParseWebhookEvent: %v", err)
	}
	if event != nil {
		t.Errorf("non-payout event should yield nil, got %+v", event)
	}
}
