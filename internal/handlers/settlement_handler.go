package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"rental-backend/internal/money"
	"rental-backend/internal/services"
	"rental-backend/pkg/utils"
)

type SettlementHandler struct {
	Service *services.SettlementService
}

func NewSettlementHandler(service *services.SettlementService) *SettlementHandler {
	return &SettlementHandler{Service: service}
}

type createSettlementRequest struct {
	PropertyID             int         `json:"property_id" validate:"required,gt=0"`
	ReferenceDate          string      `json:"reference_date" validate:"required,datetime=2006-01-02"`
	ProvisionalChargesPaid money.Money `json:"provisional_charges_paid"`
}

// CreateSettlement handles POST /api/buildings/{id}/settlements. The result
// is computed, not persisted; warnings ride in the response body.
func (h *SettlementHandler) CreateSettlement(w http.ResponseWriter, r *http.Request) {
	buildingID, ok := buildingIDFromPath(w, r)
	if !ok {
		return
	}

	var req createSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	referenceDate, _ := time.Parse(dateLayout, req.ReferenceDate)

	result, err := h.Service.CalculateChargeSettlement(r.Context(), buildingID, req.PropertyID, referenceDate, req.ProvisionalChargesPaid)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

// GetWaterAllocation handles
// GET /api/buildings/{id}/water-allocation?property_id=&period_start=&period_end=
func (h *SettlementHandler) GetWaterAllocation(w http.ResponseWriter, r *http.Request) {
	buildingID, ok := buildingIDFromPath(w, r)
	if !ok {
		return
	}
	propertyID, err := strconv.Atoi(r.URL.Query().Get("property_id"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "property_id parameter required")
		return
	}
	periodStart, ok := dateParam(w, r, "period_start")
	if !ok {
		return
	}
	periodEnd, ok := dateParam(w, r, "period_end")
	if !ok {
		return
	}

	alloc, err := h.Service.AllocateWater(r.Context(), buildingID, propertyID, periodStart, periodEnd)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, alloc)
}

func buildingIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid building ID")
		return 0, false
	}
	return id, true
}
