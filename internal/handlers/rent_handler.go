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

const dateLayout = "2006-01-02"

type RentHandler struct {
	Service *services.RentService
}

func NewRentHandler(service *services.RentService) *RentHandler {
	return &RentHandler{Service: service}
}

// GetApplicableRent handles GET /api/leases/{id}/rent?date=YYYY-MM-DD
func (h *RentHandler) GetApplicableRent(w http.ResponseWriter, r *http.Request) {
	leaseID, ok := leaseIDFromPath(w, r)
	if !ok {
		return
	}
	onDate, ok := dateParam(w, r, "date")
	if !ok {
		return
	}

	rent, err := h.Service.GetApplicableRentForDate(r.Context(), leaseID, onDate)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rent)
}

// GetBalance handles GET /api/leases/{id}/balance?reference_date=YYYY-MM-DD
func (h *RentHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	leaseID, ok := leaseIDFromPath(w, r)
	if !ok {
		return
	}
	referenceDate, ok := dateParam(w, r, "reference_date")
	if !ok {
		return
	}

	stmt, err := h.Service.CalculateLeaseBalance(r.Context(), leaseID, referenceDate)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, stmt)
}

// GetPaymentHistory handles GET /api/leases/{id}/payment-history?reference_date=YYYY-MM-DD
func (h *RentHandler) GetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	leaseID, ok := leaseIDFromPath(w, r)
	if !ok {
		return
	}
	referenceDate, ok := dateParam(w, r, "reference_date")
	if !ok {
		return
	}

	records, err := h.Service.GetPaymentHistory(r.Context(), leaseID, referenceDate)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, records)
}

type createRevisionRequest struct {
	EffectiveDate string      `json:"effective_date" validate:"required,datetime=2006-01-02"`
	RentAmount    money.Money `json:"rent_amount"`
	ChargesAmount money.Money `json:"charges_amount"`
	Reason        string      `json:"reason"`
}

// CreateRevision handles POST /api/leases/{id}/revisions
func (h *RentHandler) CreateRevision(w http.ResponseWriter, r *http.Request) {
	leaseID, ok := leaseIDFromPath(w, r)
	if !ok {
		return
	}

	var req createRevisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	effectiveDate, _ := time.Parse(dateLayout, req.EffectiveDate)

	revision, err := h.Service.CreateRevision(r.Context(), leaseID, effectiveDate, req.RentAmount, req.ChargesAmount, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, revision)
}

func leaseIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid lease ID")
		return 0, false
	}
	return id, true
}

func dateParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		utils.Error(w, http.StatusBadRequest, name+" parameter required (YYYY-MM-DD)")
		return time.Time{}, false
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid "+name+", expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return parsed, true
}
