package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mealcart/payouts/models"
)

// ListRestaurants lists all restaurants
// @Summary      List restaurants
// @Description  Get all live restaurants.
// @Tags         restaurants
// @Produce      json
// @Success      200  {object}  Response{data=[]models.Restaurant}
// @Router       /admin/restaurants [get]
// @Security     BasicAuth
func ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := Restaurants.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

// GetRestaurant retrieves a single restaurant
// @Summary      Get restaurant
// @Tags         restaurants
// @Produce      json
// @Param        id   path      string  true  "Restaurant ID"
// @Success      200  {object}  Response{data=models.Restaurant}
// @Failure      404  {object}  Response{error=string}
// @Router       /admin/restaurants/{id} [get]
// @Security     BasicAuth
func GetRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, err := Restaurants.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

// CreateRestaurant registers a restaurant
// @Summary      Create restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        restaurant  body      models.RestaurantInput  true  "Restaurant contents"
// @Success      201         {object}  Response{data=models.Restaurant}
// @Failure      400         {object}  Response{error=string}
// @Router       /admin/restaurants [post]
// @Security     BasicAuth
func CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var input models.RestaurantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	restaurant, err := Restaurants.Create(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, restaurant)
}

// UpdateRestaurant updates a restaurant's details
// @Summary      Update restaurant
// @Description  Update name, image, status or the payout hold flag.
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        id          path      string                  true  "Restaurant ID"
// @Param        restaurant  body      models.RestaurantInput  true  "Updated contents"
// @Success      200         {object}  Response{data=models.Restaurant}
// @Failure      400         {object}  Response{error=string}
// @Failure      404         {object}  Response{error=string}
// @Router       /admin/restaurants/{id} [put]
// @Security     BasicAuth
func UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	var input models.RestaurantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	restaurant, err := Restaurants.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

// AddPayoutAccount registers a bank account for a restaurant
// @Summary      Add payout account
// @Description  Register a bank beneficiary. A new primary account demotes the previous one.
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Restaurant ID"
// @Param        account  body      models.PayoutAccountInput  true  "Account details"
// @Success      201      {object}  Response{data=models.PayoutAccount}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /admin/restaurants/{id}/accounts [post]
// @Security     BasicAuth
func AddPayoutAccount(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "id")
	if _, err := Restaurants.GetByID(r.Context(), restaurantID); err != nil {
		writeOpError(w, err)
		return
	}

	var input models.PayoutAccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	input.RestaurantID = restaurantID

	account, err := Restaurants.AddAccount(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

// ListPayoutAccounts lists a restaurant's bank accounts
// @Summary      List payout accounts
// @Tags         restaurants
// @Produce      json
// @Param        id   path      string  true  "Restaurant ID"
// @Success      200  {object}  Response{data=[]models.PayoutAccount}
// @Router       /admin/restaurants/{id}/accounts [get]
// @Security     BasicAuth
func ListPayoutAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := Restaurants.AccountsFor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}
