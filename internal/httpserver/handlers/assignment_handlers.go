package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"kitchenequip/internal/auth"
	"kitchenequip/internal/models"
	"kitchenequip/internal/store"
)

// SiteEquipment lists the equipment assigned to a site.
func SiteEquipment(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, err := uintParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		eq, err := st.SiteEquipment(r.Context(), auth.UserID(r.Context()), siteID)
		if err != nil {
			respondStoreErr(w, err)
			return
		}
		respondJSON(w, eq)
	}
}

type assignReq struct {
	EquipmentID uint `json:"equipment_id" validate:"required"`
}

// AssignEquipment places one equipment record at the site. A second
// assignment for the same equipment is rejected with a conflict.
func AssignEquipment(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, err := uintParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		var req assignReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		uid := auth.UserID(r.Context())
		re, err := st.Assign(r.Context(), uid, req.EquipmentID, siteID)
		if err != nil {
			respondStoreErr(w, err)
			return
		}
		lg.Infow("equipment assigned", "equipment_id", req.EquipmentID, "site_id", siteID, "user_id", uid)
		_ = st.RecordAction(r.Context(), &uid, "equipment.assign", models.Meta(map[string]any{"equipment_id": req.EquipmentID, "site_id": siteID}))
		respondJSON(w, re)
	}
}

func UnassignEquipment(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, err := uintParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		equipmentID, err := uintParam(r, "equipment_id")
		if err != nil {
			http.Error(w, "invalid equipment id", http.StatusBadRequest)
			return
		}
		uid := auth.UserID(r.Context())
		if err := st.Unassign(r.Context(), uid, equipmentID, siteID); err != nil {
			respondStoreErr(w, err)
			return
		}
		_ = st.RecordAction(r.Context(), &uid, "equipment.unassign", models.Meta(map[string]any{"equipment_id": equipmentID, "site_id": siteID}))
		respondJSON(w, map[string]any{"removed": true})
	}
}

// OwnerOverview is the sites-with-counts plus unassigned-equipment summary.
func OwnerOverview(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ov, err := st.OwnerOverview(r.Context(), auth.UserID(r.Context()))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, ov)
	}
}
