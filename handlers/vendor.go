package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mealcart/payouts/models"
)

// VendorFilterPayouts filters payouts scoped to one restaurant
// @Summary      Filter own payouts
// @Description  Same filter grammar as the admin endpoint, forcibly scoped to the path restaurant.
// @Tags         vendor-payouts
// @Accept       json
// @Produce      json
// @Param        restaurant_id  path      string                    true  "Restaurant ID"
// @Param        filter         body      models.PayoutFilterInput  true  "Filter criteria"
// @Success      200            {object}  Response{data=FilterResult}
// @Failure      400            {object}  Response{error=string}
// @Router       /vendor/{restaurant_id}/payouts/filter [post]
// @Security     BasicAuth
func VendorFilterPayouts(w http.ResponseWriter, r *http.Request) {
	var input models.PayoutFilterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	// Vendors only ever see their own payouts.
	input.RestaurantIDs = []string{chi.URLParam(r, "restaurant_id")}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
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

// VendorPayoutSummary aggregates a restaurant's payout history
// @Summary      Payout summary
// @Description  Counts and paid totals by status for the vendor dashboard.
// @Tags         vendor-payouts
// @Produce      json
// @Param        restaurant_id  path      string  true  "Restaurant ID"
// @Success      200            {object}  Response{data=models.PayoutSummary}
// @Router       /vendor/{restaurant_id}/payouts/summary [get]
// @Security     BasicAuth
func VendorPayoutSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := Payouts.SummaryForRestaurant(r.Context(), chi.URLParam(r, "restaurant_id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// VendorGetPayout retrieves one of the restaurant's own payouts
// @Summary      Get own payout
// @Description  Get a payout by id; payouts belonging to other restaurants look like 404.
// @Tags         vendor-payouts
// @Produce      json
// @Param        restaurant_id  path      string  true  "Restaurant ID"
// @Param        id             path      string  true  "Payout ID"
// @Success      200            {object}  Response{data=models.Payout}
// @Failure      404            {object}  Response{error=string}
// @Router       /vendor/{restaurant_id}/payouts/{id} [get]
// @Security     BasicAuth
func VendorGetPayout(w http.ResponseWriter, r *http.Request) {
	p, err := Payouts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeOpError(w, err)
		return
	}
	if p.RestaurantID != chi.URLParam(r, "restaurant_id") {
		writeError(w, http.StatusNotFound, "payout not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
