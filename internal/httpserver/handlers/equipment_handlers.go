package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"kitchenequip/internal/auth"
	"kitchenequip/internal/models"
	"kitchenequip/internal/store"
)

func ListEquipment(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eq, err := st.ListEquipment(r.Context(), auth.UserID(r.Context()))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, eq)
	}
}

func UnassignedEquipment(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eq, err := st.UnassignedEquipment(r.Context(), auth.UserID(r.Context()))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, eq)
	}
}

type equipmentReq struct {
	SerialNumber string `json:"serial_number" validate:"required,max=100"`
	Description  string `json:"description" validate:"required,max=500"`
	Condition    string `json:"condition" validate:"required,oneof='Working' 'Not Working'"`
}

func CreateEquipment(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req equipmentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.SerialNumber = strings.TrimSpace(req.SerialNumber)
		req.Description = strings.TrimSpace(req.Description)
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		uid := auth.UserID(r.Context())
		eq := models.Equipment{
			SerialNumber: req.SerialNumber,
			Description:  req.Description,
			Condition:    req.Condition,
			UserID:       uid,
		}
		if err := st.CreateEquipment(r.Context(), &eq); err != nil {
			respondStoreErr(w, err)
			return
		}
		_ = st.RecordAction(r.Context(), &uid, "equipment.create", models.Meta(map[string]any{"equipment_id": eq.ID, "serial_number": eq.SerialNumber}))
		respondJSON(w, eq)
	}
}

func UpdateEquipment(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uintParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		var req struct {
			SerialNumber *string `json:"serial_number"`
			Description  *string `json:"description"`
			Condition    *string `json:"condition"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		eq, err := st.GetEquipment(r.Context(), auth.UserID(r.Context()), id)
		if err != nil {
			respondStoreErr(w, err)
			return
		}
		if req.SerialNumber != nil {
			sn := strings.TrimSpace(*req.SerialNumber)
			if sn == "" {
				http.Error(w, "serial_number required", http.StatusBadRequest)
				return
			}
			eq.SerialNumber = sn
		}
		if req.Description != nil {
			d := strings.TrimSpace(*req.Description)
			if d == "" {
				http.Error(w, "description required", http.StatusBadRequest)
				return
			}
			eq.Description = d
		}
		if req.Condition != nil {
			if *req.Condition != models.ConditionWorking && *req.Condition != models.ConditionNotWorking {
				http.Error(w, "invalid condition", http.StatusBadRequest)
				return
			}
			eq.Condition = *req.Condition
		}
		if err := st.UpdateEquipment(r.Context(), eq); err != nil {
			respondStoreErr(w, err)
			return
		}
		respondJSON(w, eq)
	}
}

func DeleteEquipment(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uintParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		uid := auth.UserID(r.Context())
		if err := st.DeleteEquipment(r.Context(), uid, id); err != nil {
			respondStoreErr(w, err)
			return
		}
		lg.Infow("equipment deleted", "equipment_id", id, "user_id", uid)
		_ = st.RecordAction(r.Context(), &uid, "equipment.delete", models.Meta(map[string]any{"equipment_id": id}))
		respondJSON(w, map[string]any{"deleted": true})
	}
}

// EquipmentSite reports where a piece of equipment currently is, or null
// when unassigned.
func EquipmentSite(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uintParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		if _, err := st.GetEquipment(r.Context(), auth.UserID(r.Context()), id); err != nil {
			respondStoreErr(w, err)
			return
		}
		site, err := st.CurrentSite(r.Context(), id)
		if err != nil {
			lg.Errorw("current site lookup failed", "equipment_id", id, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, map[string]any{"site": site})
	}
}
