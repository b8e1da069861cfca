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

func ListSites(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sites, err := st.ListSites(r.Context(), auth.UserID(r.Context()))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, sites)
	}
}

type siteReq struct {
	Description string `json:"description" validate:"required,max=500"`
	Active      *bool  `json:"active"`
}

func CreateSite(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req siteReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.Description = strings.TrimSpace(req.Description)
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		uid := auth.UserID(r.Context())
		site := models.Site{UserID: uid, Description: req.Description, Active: true}
		if req.Active != nil {
			site.Active = *req.Active
		}
		if err := st.CreateSite(r.Context(), &site); err != nil {
			respondStoreErr(w, err)
			return
		}
		_ = st.RecordAction(r.Context(), &uid, "site.create", models.Meta(map[string]any{"site_id": site.ID}))
		respondJSON(w, site)
	}
}

func UpdateSite(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uintParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		var req struct {
			Description *string `json:"description"`
			Active      *bool   `json:"active"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		site, err := st.GetSite(r.Context(), auth.UserID(r.Context()), id)
		if err != nil {
			respondStoreErr(w, err)
			return
		}
		if req.Description != nil {
			d := strings.TrimSpace(*req.Description)
			if d == "" {
				http.Error(w, "description required", http.StatusBadRequest)
				return
			}
			site.Description = d
		}
		if req.Active != nil {
			site.Active = *req.Active
		}
		if err := st.UpdateSite(r.Context(), site); err != nil {
			respondStoreErr(w, err)
			return
		}
		respondJSON(w, site)
	}
}

func DeleteSite(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uintParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		uid := auth.UserID(r.Context())
		if err := st.DeleteSite(r.Context(), uid, id); err != nil {
			respondStoreErr(w, err)
			return
		}
		lg.Infow("site deleted", "site_id", id, "user_id", uid)
		_ = st.RecordAction(r.Context(), &uid, "site.delete", models.Meta(map[string]any{"site_id": id}))
		respondJSON(w, map[string]any{"deleted": true})
	}
}
