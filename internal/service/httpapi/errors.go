package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
	"github.com/Seungpang/jwp-shopping-cart/internal/service/auth"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{
		Error:   code,
		Message: msg,
	})
}

// writeDomainError транслирует доменные ошибки в HTTP-статусы.
// Чужие и несуществующие сущности отдаются одинаковым 404,
// чтобы не раскрывать существование чужих данных.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsNotVisible(err),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrProductNameRequired),
		errors.Is(err, domain.ErrProductPriceNegative),
		errors.Is(err, domain.ErrLoginIDRequired),
		errors.Is(err, domain.ErrUsernameRequired),
		errors.Is(err, domain.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, domain.ErrCustomerExists):
		writeError(w, http.StatusConflict, "customer_exists", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, domain.ErrCartInconsistent):
		log.WithError(err).Error("cart referential integrity violated")
		writeError(w, http.StatusInternalServerError, "inconsistent_state", err.Error())
	default:
		log.WithError(err).Error("unhandled error in http handler")
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
