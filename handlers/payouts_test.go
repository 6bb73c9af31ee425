package handlers

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/mealcart/payouts/models"
)

func TestExportRecordsCollectsAllPages(t *testing.T) {
	// 450 matches span three pages of 200; every row must reach the export.
	all := make([]models.Payout, 450)
	for i := range all {
		all[i].ID = fmt.Sprintf("p%03d", i)
	}

	var pages []int
	fetch := func(_ context.Context, f models.PayoutFilterInput) ([]models.Payout, int, error) {
		pages = append(pages, f.Page)
		start := (f.Page - 1) * f.PageSize
		if start >= len(all) {
			return nil, len(all), nil
		}
		end := start + f.PageSize
		if end > len(all) {
			end = len(all)
		}
		return all[start:end], len(all), nil
	}

	got, err := exportRecords(context.Background(), models.PayoutFilterInput{}, fetch)
	if err != nil {
		t.Fatalf("exportRecords: %v", err)
	}
	if len(got) != len(all) {
		t.Fatalf("collected %d payouts, want all %d", len(got), len(all))
	}
	if got[0].ID != "p000" || got[len(got)-1].ID != "p449" {
		t.Errorf("rows out of order: first %s last %s", got[0].ID, got[len(got)-1].ID)
	}
	if !reflect.DeepEqual(pages, []int{1, 2, 3}) {
		t.Errorf("pages fetched = %v, want [1 2 3]", pages)
	}
}

func TestExportRecordsSinglePage(t *testing.T) {
	fetch := func(_ context.Context, f models.PayoutFilterInput) ([]models.Payout, int, error) {
		if f.Page != 1 {
			t.Errorf("fetched page %d, want only page 1", f.Page)
		}
		return []models.Payout{{ID: "p1"}}, 1, nil
	}

	got, err := exportRecords(context.Background(), models.PayoutFilterInput{}, fetch)
	if err != nil {
		t.Fatalf("exportRecords: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("collected %d payouts, want 1", len(got))
	}
}

func TestExportRecordsStopsOnEmptyPage(t *testing.T) {
	// A total that overstates the match must not loop forever.
	calls := 0
	fetch := func(context.Context, models.PayoutFilterInput) ([]models.Payout, int, error) {
		calls++
		return nil, 37, nil
	}

	got, err := exportRecords(context.Background(), models.PayoutFilterInput{}, fetch)
	if err != nil {
		t.Fatalf("exportRecords: %v", err)
	}
	if len(got) != 0 || calls != 1 {
		t.Errorf("got %d rows after %d calls, want 0 rows from a single call", len(got), calls)
	}
}

func TestExportRecordsPropagatesError(t *testing.T) {
	boom := errors.New("query failed")
	fetch := func(context.Context, models.PayoutFilterInput) ([]models.Payout, int, error) {
		return nil, 0, boom
	}

	if _, err := exportRecords(context.Background(), models.PayoutFilterInput{}, fetch); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want fetch error propagated", err)
	}
}
