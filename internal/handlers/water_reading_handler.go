package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"rental-backend/internal/services"
	"rental-backend/pkg/utils"
)

type WaterReadingHandler struct {
	Service *services.WaterReadingService
}

func NewWaterReadingHandler(service *services.WaterReadingService) *WaterReadingHandler {
	return &WaterReadingHandler{Service: service}
}

type createReadingRequest struct {
	ReadingDate  string          `json:"reading_date" validate:"required,datetime=2006-01-02"`
	MeterReading decimal.Decimal `json:"meter_reading"`
}

// CreateReading handles POST /api/properties/{id}/water-readings. A reading
// lower than the previous one is stored but flagged in the response.
func (h *WaterReadingHandler) CreateReading(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := propertyIDFromPath(w, r)
	if !ok {
		return
	}

	var req createReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	readingDate, _ := time.Parse(dateLayout, req.ReadingDate)

	recorded, err := h.Service.RecordReading(r.Context(), propertyID, readingDate, req.MeterReading)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, recorded)
}

// ListReadings handles GET /api/properties/{id}/water-readings
func (h *WaterReadingHandler) ListReadings(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := propertyIDFromPath(w, r)
	if !ok {
		return
	}

	readings, err := h.Service.ListReadings(r.Context(), propertyID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, readings)
}
