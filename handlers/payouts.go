package handlers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mealcart/payouts/export"
	"github.com/mealcart/payouts/models"
)

// FilterResult is the paginated payout filter response.
type FilterResult struct {
	Records      []models.Payout `json:"records"`
	TotalRecords int             `json:"total_records"`
	TotalPages   int             `json:"total_pages"`
}

// FilterPayouts filters payouts for the admin panel
// @Summary      Filter payouts
// @Description  Filter payouts by restaurant, status, amount range, settlement window, retry flag and admin completion. Set csv=true (or format=xlsx) to download the reconciliation export instead of JSON.
// @Tags         admin-payouts
// @Accept       json
// @Produce      json
// @Param        filter  body      models.PayoutFilterInput  true  "Filter criteria"
// @Param        format  query     string                    false "Export format (csv or xlsx)"
// @Success      200     {object}  Response{data=FilterResult}
// @Failure      400     {object}  Response{error=string}
// @Router       /admin/payouts/filter [post]
// @Security     BasicAuth
func FilterPayouts(w http.ResponseWriter, r *http.Request) {
	var input models.PayoutFilterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	format := r.URL.Query().Get("format")
	if r.URL.Query().Get("csv") == "true" || input.CSV {
		format = "csv"
	}

	if format == "csv" || format == "xlsx" {
		// Exports cover the full match, not one page.
		records, err := exportRecords(r.Context(), input, Payouts.Filter)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		filename := "payouts-" + time.Now().UTC().Format("20060102") + "." + format
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if format == "csv" {
			err = export.WriteCSV(w, records)
		} else {
			err = export.WriteXLSX(w, records)
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	records, total, err := Payouts.Filter(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, FilterResult{
		Records:      records,
		TotalRecords: total,
		TotalPages:   int(math.Ceil(float64(total) / float64(input.PageSize))),
	})
}

// exportRecords pages through the filter until every matching payout is
// collected. A reconciliation export that drops rows past the first page
// would silently understate what was paid, so the loop only stops once the
// reported total is reached or a page comes back empty.
func exportRecords(ctx context.Context, input models.PayoutFilterInput,
	fetch func(context.Context, models.PayoutFilterInput) ([]models.Payout, int, error)) ([]models.Payout, error) {
	input.Page = 1
	input.PageSize = 200

	var all []models.Payout
	for {
		records, total, err := fetch(ctx, input)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
		if len(records) == 0 || len(all) >= total {
			return all, nil
		}
		input.Page++
	}
}

// GetPayout retrieves a single payout with its contributing orders
// @Summary      Get payout
// @Description  Get a payout by id, including the orders it settles.
// @Tags         admin-payouts
// @Produce      json
// @Param        id   path      string  true  "Payout ID"
// @Success      200  {object}  Response{data=models.Payout}
// @Failure      404  {object}  Response{error=string}
// @Router       /admin/payouts/{id} [get]
// @Security     BasicAuth
func GetPayout(w http.ResponseWriter, r *http.Request) {
	p, err := Payouts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetPayoutOrders lists the orders a payout settles
// @Summary      Get payout orders
// @Description  Get the contributing orders of a payout.
// @Tags         admin-payouts
// @Produce      json
// @Param        id   path      string  true  "Payout ID"
// @Success      200  {object}  Response{data=[]models.Order}
// @Failure      404  {object}  Response{error=string}
// @Router       /admin/payouts/{id}/orders [get]
// @Security     BasicAuth
func GetPayoutOrders(w http.ResponseWriter, r *http.Request) {
	p, err := Payouts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeOpError(w, err)
		return
	}
	orders := p.Orders
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// RetryPayout re-drives settlement for one payout
// @Summary      Retry payout
// @Description  Re-attempt transfer initiation (INIT/FAILED) or re-check gateway status (PENDING). Rejected for COMPLETE payouts.
// @Tags         admin-payouts
// @Produce      json
// @Param        id   path      string  true  "Payout ID"
// @Success      200  {object}  Response{data=models.Payout}
// @Failure      400  {object}  Response{error=string}
// @Failure      404  {object}  Response{error=string}
// @Router       /admin/payouts/{id}/retry [post]
// @Security     BasicAuth
func RetryPayout(w http.ResponseWriter, r *http.Request) {
	p, err := AdminOps.Retry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// StopRetryPayout removes a payout from automatic settlement
// @Summary      Stop retry
// @Description  Flip the retry flag off so the batch scheduler skips this payout. Status is unchanged.
// @Tags         admin-payouts
// @Produce      json
// @Param        id   path      string  true  "Payout ID"
// @Success      200  {object}  Response{data=models.Payout}
// @Failure      400  {object}  Response{error=string}
// @Failure      404  {object}  Response{error=string}
// @Router       /admin/payouts/{id}/stop-retry [post]
// @Security     BasicAuth
func StopRetryPayout(w http.ResponseWriter, r *http.Request) {
	p, err := AdminOps.StopRetry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// MarkCompletePayout manually closes a payout
// @Summary      Mark payout complete
// @Description  Force a payout COMPLETE with admin-supplied transaction details and completion time. Rejected when already COMPLETE.
// @Tags         admin-payouts
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Payout ID"
// @Param        body  body      models.MarkCompleteInput true  "Completion details"
// @Success      200   {object}  Response{data=models.Payout}
// @Failure      400   {object}  Response{error=string}
// @Failure      404   {object}  Response{error=string}
// @Router       /admin/payouts/{id}/mark-complete [post]
// @Security     BasicAuth
func MarkCompletePayout(w http.ResponseWriter, r *http.Request) {
	var input models.MarkCompleteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p, err := AdminOps.MarkComplete(r.Context(), chi.URLParam(r, "id"), adminIdentity(r), input)
	if err != nil {
		writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeletePayout soft-deletes a payout
// @Summary      Delete payout
// @Description  Soft-delete a payout record; it disappears from all reads but the row survives.
// @Tags         admin-payouts
// @Produce      json
// @Param        id   path      string  true  "Payout ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /admin/payouts/{id} [delete]
// @Security     BasicAuth
func DeletePayout(w http.ResponseWriter, r *http.Request) {
	if err := Payouts.SoftDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
