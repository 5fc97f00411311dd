package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"rental-backend/internal/models"
	"rental-backend/internal/services"
	"rental-backend/pkg/utils"
)

type ChargeShareHandler struct {
	Service *services.ChargeShareService
}

func NewChargeShareHandler(service *services.ChargeShareService) *ChargeShareHandler {
	return &ChargeShareHandler{Service: service}
}

type setShareRequest struct {
	Category   string          `json:"category" validate:"required"`
	Percentage decimal.Decimal `json:"percentage"`
}

// SetShare handles PUT /api/properties/{id}/charge-shares. Upsert keyed by
// (property, category); WATER is rejected.
func (h *ChargeShareHandler) SetShare(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := propertyIDFromPath(w, r)
	if !ok {
		return
	}

	var req setShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	share, err := h.Service.SetShare(r.Context(), propertyID, models.ChargeCategory(req.Category), req.Percentage)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, share)
}

// ListShares handles GET /api/properties/{id}/charge-shares
func (h *ChargeShareHandler) ListShares(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := propertyIDFromPath(w, r)
	if !ok {
		return
	}

	shares, err := h.Service.SharesFor(r.Context(), propertyID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, shares)
}

// GetBuildingSummary handles GET /api/buildings/{id}/charge-shares/summary
func (h *ChargeShareHandler) GetBuildingSummary(w http.ResponseWriter, r *http.Request) {
	buildingID, ok := buildingIDFromPath(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.BuildingSummary(r.Context(), buildingID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, summary)
}

func propertyIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid property ID")
		return 0, false
	}
	return id, true
}
