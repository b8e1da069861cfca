package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kitchenequip/internal/auth"
	"kitchenequip/internal/models"
	"kitchenequip/internal/store"
)

type signupReq struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	UserName        string `json:"user_name" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	UserType        string `json:"user_type" validate:"omitempty,oneof=Admin SuperAdmin"`
}

func Signup(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Password != req.ConfirmPassword {
			http.Error(w, "passwords do not match", http.StatusBadRequest)
			return
		}
		if req.UserType == "" {
			req.UserType = models.RoleAdmin
		}

		u := models.User{
			UserType:  req.UserType,
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			Email:     req.Email,
			UserName:  req.UserName,
		}
		if err := st.Register(r.Context(), &u, req.Password); err != nil {
			respondStoreErr(w, err)
			return
		}
		lg.Infow("user registered", "user_id", u.ID, "user_name", u.UserName)
		_ = st.RecordAction(r.Context(), &u.ID, "signup", models.Meta(map[string]any{"user_name": u.UserName}))
		respondJSON(w, map[string]any{"id": u.ID, "user_name": u.UserName, "email": u.Email})
	}
}

type loginReq struct {
	UserName string `json:"user_name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func Login(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		u, err := st.Authenticate(r.Context(), req.UserName, req.Password)
		if err != nil {
			respondStoreErr(w, err)
			return
		}
		jti := uuid.NewString()
		tok, err := auth.Sign(u.ID, u.UserType, jti)
		if err != nil {
			http.Error(w, "token error", http.StatusInternalServerError)
			return
		}
		if err := st.CreateSession(r.Context(), jti, u.ID, auth.TokenTTL()); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		lg.Infow("login", "user_id", u.ID, "user_name", u.UserName)
		_ = st.RecordAction(r.Context(), &u.ID, "login", models.Meta(map[string]any{"user_name": u.UserName}))
		respondJSON(w, map[string]any{
			"token": tok,
			"user": map[string]any{
				"id": u.ID, "user_name": u.UserName, "user_type": u.UserType,
				"first_name": u.FirstName, "last_name": u.LastName, "email": u.Email,
			},
		})
	}
}

func Logout(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		if err := st.RevokeSession(r.Context(), claims.JWTID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, map[string]any{"logged_out": true})
	}
}

// Availability is the signup pre-check: which of a candidate username and
// email are still free. Both checks are case-insensitive.
func Availability(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{}
		if name := r.URL.Query().Get("user_name"); name != "" {
			ok, err := st.UsernameAvailable(r.Context(), name)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			resp["user_name_available"] = ok
		}
		if email := r.URL.Query().Get("email"); email != "" {
			ok, err := st.EmailAvailable(r.Context(), email)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			resp["email_available"] = ok
		}
		respondJSON(w, resp)
	}
}

func Me(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := st.GetUser(r.Context(), auth.UserID(r.Context()))
		if err != nil {
			respondStoreErr(w, err)
			return
		}
		respondJSON(w, u)
	}
}
