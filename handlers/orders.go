package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mealcart/payouts/models"
)

// ListOrders browses the order projection
// @Summary      List orders
// @Description  Read-only view of the orders the payout engine settles against.
// @Tags         orders
// @Produce      json
// @Param        restaurant_id  query     string  false  "Filter by restaurant"
// @Param        from           query     string  false  "Placed from (RFC3339)"
// @Param        to             query     string  false  "Placed before (RFC3339)"
// @Param        status         query     string  false  "Filter by order status"
// @Param        limit          query     int     false  "Max rows (default 100)"
// @Success      200            {object}  Response{data=[]models.Order}
// @Failure      400            {object}  Response{error=string}
// @Router       /admin/orders [get]
// @Security     BasicAuth
func ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var from, to *time.Time
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "from must be RFC3339")
			return
		}
		from = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "to must be RFC3339")
			return
		}
		to = &t
	}
	limit, _ := strconv.Atoi(q.Get("limit"))

	orders, err := Orders.List(r.Context(), q.Get("restaurant_id"), from, to, q.Get("status"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}
