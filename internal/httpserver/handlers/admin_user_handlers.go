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

func ListUsers(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := st.ListUsers(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, users)
	}
}

func UpdateUser(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uintParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		var req struct {
			FirstName *string `json:"first_name"`
			LastName  *string `json:"last_name"`
			Email     *string `json:"email"`
			UserName  *string `json:"user_name"`
			UserType  *string `json:"user_type"`
			Password  *string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		u, err := st.GetUser(r.Context(), id)
		if err != nil {
			respondStoreErr(w, err)
			return
		}
		if req.FirstName != nil {
			u.FirstName = strings.TrimSpace(*req.FirstName)
		}
		if req.LastName != nil {
			u.LastName = strings.TrimSpace(*req.LastName)
		}
		if req.Email != nil {
			if err := validate.Var(*req.Email, "required,email"); err != nil {
				http.Error(w, "invalid email", http.StatusBadRequest)
				return
			}
			u.Email = *req.Email
		}
		if req.UserName != nil {
			if strings.TrimSpace(*req.UserName) == "" {
				http.Error(w, "user_name required", http.StatusBadRequest)
				return
			}
			u.UserName = *req.UserName
		}
		if req.UserType != nil {
			if *req.UserType != models.RoleAdmin && *req.UserType != models.RoleSuperAdmin {
				http.Error(w, "invalid user_type", http.StatusBadRequest)
				return
			}
			u.UserType = *req.UserType
		}
		if req.Password != nil && *req.Password != "" {
			if len(*req.Password) < 6 {
				http.Error(w, "password must be at least 6 characters", http.StatusBadRequest)
				return
			}
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			u.PasswordHash = hash
		}
		if err := st.UpdateUser(r.Context(), u); err != nil {
			respondStoreErr(w, err)
			return
		}
		respondJSON(w, u)
	}
}

// DeleteUser removes a user and everything it owns. Deleting your own
// account is rejected, same as the original admin screen.
func DeleteUser(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uintParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		actor := auth.UserID(r.Context())
		if id == actor {
			http.Error(w, "cannot delete your own account", http.StatusBadRequest)
			return
		}
		if err := st.DeleteUser(r.Context(), id); err != nil {
			respondStoreErr(w, err)
			return
		}
		lg.Infow("user deleted", "user_id", id, "deleted_by", actor)
		_ = st.RecordAction(r.Context(), &actor, "user.delete", models.Meta(map[string]any{"user_id": id}))
		respondJSON(w, map[string]any{"deleted": true})
	}
}
