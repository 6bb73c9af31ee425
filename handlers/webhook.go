package handlers

import (
	"io"
	"net/http"

	"github.com/mealcart/payouts/gateway"
)

// TransferWebhook ingests gateway transfer notifications
// @Summary      Transfer webhook
// @Description  Apply an async gateway status update. Events for unknown transfers are acknowledged and dropped.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      400  {object}  Response{error=string}
// @Router       /webhooks/transfers [post]
func TransferWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	event, err := gateway.ParseWebhookEvent(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if event == nil {
		// Not a payout event; acknowledge so the gateway stops resending.
		writeJSON(w, http.StatusOK, map[string]string{"message": "ignored"})
		return
	}

	if err := Recon.ApplyGatewayEvent(r.Context(), *event); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "applied"})
}
