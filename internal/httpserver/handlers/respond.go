package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"kitchenequip/internal/store"
)

var validate = validator.New()

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// respondStoreErr maps store sentinels to HTTP statuses: conflicts are 409,
// missing records 404, bad credentials 401, anything else 500.
func respondStoreErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrDuplicateIdentity),
		errors.Is(err, store.ErrDuplicateSerial),
		errors.Is(err, store.ErrEquipmentAssigned):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, store.ErrInvalidCredentials):
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func uintParam(r *http.Request, name string) (uint, error) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	return uint(v), err
}
