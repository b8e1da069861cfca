package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"kitchenequip/internal/auth"
	"kitchenequip/internal/models"
	"kitchenequip/internal/store"
)

// MyLogs returns recent audit log entries. Regular users see their own;
// a SuperAdmin can pass ?all=1 to see everyone's.
func MyLogs(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := r.URL.Query().Get("all") == "1"
		var (
			logs []models.AuditLog
			err  error
		)
		if all && auth.FromContext(r.Context()).HasRole(models.RoleSuperAdmin) {
			logs, err = st.ListAllActions(r.Context(), 200)
		} else {
			logs, err = st.ListActions(r.Context(), auth.UserID(r.Context()), 200)
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logs)
	}
}
