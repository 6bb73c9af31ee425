package models

import "testing"

func TestMoneyString(t *testing.T) {
	tests := []struct {
		amount Money
		want   string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{123450, "1234.50"},
		{-9900, "-99.00"},
	}
	for _, tt := range tests {
		if got := tt.amount.String(); got != tt.want {
			t.Errorf("Money(%d).String() = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestMoneyRupees(t *testing.T) {
	if got := Money(9950).Rupees(); got != 99.50 {
		t.Errorf("Rupees() = %v, want 99.50", got)
	}
}
