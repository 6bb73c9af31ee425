// Package export flattens payout records with their contributing orders
// into tabular reconciliation reports for finance.
package export

import (
	"strconv"

	"github.com/mealcart/payouts/models"
)

// Header is the fixed column order of the reconciliation table. Both the CSV
// and XLSX exports share it.
var Header = []string{
	"Payout ID", "Restaurant ID", "Restaurant Name",
	"Start Time", "End Time", "Status",
	"Total Order Amount", "Transaction Charges", "Amount Paid To Vendor",
	"Transaction ID", "Processed On", "Vendor Remark",
	"Order ID", "Order Status", "Order Placed Time", "Order Amount",
}

const timeLayout = "2006-01-02 15:04:05"

// Rows flattens payouts into one row per (payout, contributing order) pair.
// A payout with no orders still yields one row with the order columns empty.
//
// Empty values render as the empty string except "Processed On" and "Vendor
// Remark", which render as the literal "N/A" when missing.
func Rows(payouts []models.Payout) [][]string {
	var rows [][]string
	for _, p := range payouts {
		base := payoutColumns(p)
		if len(p.Orders) == 0 {
			rows = append(rows, append(base, "", "", "", ""))
			continue
		}
		for _, o := range p.Orders {
			row := make([]string, 0, len(Header))
			row = append(row, base...)
			row = append(row,
				strconv.FormatInt(o.ID, 10),
				string(o.OrderStatus),
				o.OrderPlacedTime.Format(timeLayout),
				orderAmount(o).String(),
			)
			rows = append(rows, row)
		}
	}
	return rows
}

func payoutColumns(p models.Payout) []string {
	name, remark := "", ""
	if p.PayoutDetails != nil {
		name = p.PayoutDetails.RestaurantName
		remark = p.PayoutDetails.Remark
	}

	processedOn := "N/A"
	if p.PayoutCompletedTime != nil {
		processedOn = p.PayoutCompletedTime.Format(timeLayout)
	}
	if remark == "" {
		remark = "N/A"
	}

	return []string{
		p.ID, p.RestaurantID, name,
		p.StartTime.Format(timeLayout), p.EndTime.Format(timeLayout), string(p.Status),
		p.TotalOrderAmount.String(), p.TransactionCharges.String(), p.AmountPaidToVendor.String(),
		p.TransactionID, processedOn, remark,
	}
}

// orderAmount is the amount the order actually contributed: the settled
// refund amount when one exists, otherwise the nominal vendor amount.
func orderAmount(o models.Order) models.Money {
	if o.RefundSettledVendorPayoutAmount != nil {
		return *o.RefundSettledVendorPayoutAmount
	}
	if o.OrderStatus == models.OrderStatusCancelled {
		return 0
	}
	return o.VendorPayoutAmount
}

