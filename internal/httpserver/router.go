package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"kitchenequip/internal/auth"
	"kitchenequip/internal/httpserver/handlers"
	"kitchenequip/internal/models"
	"kitchenequip/internal/store"
)

func NewRouter(st *store.Store, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)

	r.Post("/v1/auth/signup", handlers.Signup(st, lg))
	r.Post("/v1/auth/login", handlers.Login(st, lg))
	r.Get("/v1/auth/available", handlers.Availability(st, lg))

	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(st.DB()))
		protected.Post("/v1/auth/logout", handlers.Logout(st, lg))
		protected.Get("/v1/me", handlers.Me(st, lg))

		protected.Get("/v1/sites", handlers.ListSites(st, lg))
		protected.Post("/v1/sites", handlers.CreateSite(st, lg))
		protected.Patch("/v1/sites/{id}", handlers.UpdateSite(st, lg))
		protected.Delete("/v1/sites/{id}", handlers.DeleteSite(st, lg))
		protected.Get("/v1/sites/{id}/equipment", handlers.SiteEquipment(st, lg))
		protected.Post("/v1/sites/{id}/equipment", handlers.AssignEquipment(st, lg))
		protected.Delete("/v1/sites/{id}/equipment/{equipment_id}", handlers.UnassignEquipment(st, lg))

		protected.Get("/v1/equipment", handlers.ListEquipment(st, lg))
		protected.Get("/v1/equipment/unassigned", handlers.UnassignedEquipment(st, lg))
		protected.Post("/v1/equipment", handlers.CreateEquipment(st, lg))
		protected.Patch("/v1/equipment/{id}", handlers.UpdateEquipment(st, lg))
		protected.Delete("/v1/equipment/{id}", handlers.DeleteEquipment(st, lg))
		protected.Get("/v1/equipment/{id}/site", handlers.EquipmentSite(st, lg))

		protected.Get("/v1/overview", handlers.OwnerOverview(st, lg))
		protected.Get("/v1/logs", handlers.MyLogs(st, lg))

		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole(models.RoleSuperAdmin))
			admin.Get("/v1/admin/users", handlers.ListUsers(st, lg))
			admin.Patch("/v1/admin/users/{id}", handlers.UpdateUser(st, lg))
			admin.Delete("/v1/admin/users/{id}", handlers.DeleteUser(st, lg))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
