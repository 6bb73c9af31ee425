package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/mealcart/payouts/models"
)

// WriteCSV streams the reconciliation table for the given payouts to w.
func WriteCSV(w io.Writer, payouts []models.Payout) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range Rows(payouts) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
