package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPayoutFilterInputValidate(t *testing.T) {
	amount := func(m Money) *Money { return &m }
	date := func(s string) *time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return &t
	}

	tests := []struct {
		name    string
		input   PayoutFilterInput
		wantMsg bool
	}{
		{"empty defaults ok", PayoutFilterInput{}, false},
		{"unknown status", PayoutFilterInput{Statuses: []PayoutStatus{"DONE"}}, true},
		{"negative amount", PayoutFilterInput{AmountMin: amount(-1)}, true},
		{"inverted amounts", PayoutFilterInput{AmountMin: amount(100), AmountMax: amount(50)}, true},
		{"inverted dates", PayoutFilterInput{
			StartDate: date("2026-08-10T00:00:00Z"),
			EndDate:   date("2026-08-01T00:00:00Z"),
		}, true},
		{"bad sort order", PayoutFilterInput{SortOrder: "up"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.input.Validate()
			if (msg != "") != tt.wantMsg {
				t.Errorf("Validate() = %q, wantMsg=%v", msg, tt.wantMsg)
			}
		})
	}
}

func TestPayoutFilterInputDefaults(t *testing.T) {
	f := PayoutFilterInput{PageSize: 9999}
	if msg := f.Validate(); msg != "" {
		t.Fatalf("Validate: %s", msg)
	}
	if f.SortOrder != "desc" {
		t.Errorf("sort order = %q, want desc default", f.SortOrder)
	}
	if f.Page != 1 {
		t.Errorf("page = %d, want 1", f.Page)
	}
	if f.PageSize != 25 {
		t.Errorf("page size = %d, want clamp to 25", f.PageSize)
	}
}

func TestMarkCompleteInputValidate(t *testing.T) {
	valid := MarkCompleteInput{
		TransactionDetails: json.RawMessage(`{"utr":"X"}`),
		CompletedTime:      time.Now(),
	}
	if msg := valid.Validate(); msg != "" {
		t.Errorf("valid input rejected: %s", msg)
	}

	missing := MarkCompleteInput{CompletedTime: time.Now()}
	if msg := missing.Validate(); msg == "" {
		t.Error("missing transaction_details accepted")
	}

	badJSON := MarkCompleteInput{
		TransactionDetails: json.RawMessage(`{broken`),
		CompletedTime:      time.Now(),
	}
	if msg := badJSON.Validate(); msg == "" {
		t.Error("invalid JSON accepted")
	}

	noTime := MarkCompleteInput{TransactionDetails: json.RawMessage(`{}`)}
	if msg := noTime.Validate(); msg == "" {
		t.Error("zero completed_time accepted")
	}
}

func TestPayoutStatusValid(t *testing.T) {
	for _, s := range []PayoutStatus{PayoutStatusInit, PayoutStatusPending, PayoutStatusFailed,
		PayoutStatusComplete, PayoutStatusRejected, PayoutStatusReversed} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if PayoutStatus("PAID").Valid() {
		t.Error("PAID should be invalid")
	}
}
