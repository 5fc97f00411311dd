package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"rental-backend/internal/ledger"
	"rental-backend/internal/repositories"
	"rental-backend/pkg/utils"
)

// validate is shared by every handler; request structs carry their own tags.
var validate = validator.New()

// writeError maps typed engine errors onto HTTP statuses. Soft anomalies
// never reach here: they travel inside result payloads as warnings.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrLeaseNotFound),
		errors.Is(err, repositories.ErrPropertyNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrOutOfRangeDate),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrWaterShareNotConfigurable),
		errors.Is(err, ledger.ErrUnknownCategory),
		errors.Is(err, ledger.ErrPropertyNotInBuilding):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrDuplicateRevisionDate):
		utils.Error(w, http.StatusConflict, err.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeValidationError(w http.ResponseWriter, err error) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		details := make(map[string]string, len(fieldErrors))
		for _, fe := range fieldErrors {
			details[fe.Field()] = "failed validation: " + fe.Tag()
		}
		utils.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "validation failed",
			"details": details,
		})
		return
	}
	utils.Error(w, http.StatusBadRequest, err.Error())
}
