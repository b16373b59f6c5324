package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cinevault/cinevault/pkg/httputil"
	"github.com/cinevault/cinevault/pkg/middleware"
	"github.com/cinevault/cinevault/pkg/observability"
	"github.com/cinevault/cinevault/pkg/validation"
)

// AuthHandlers serves the /api/auth routes.
type AuthHandlers struct {
	service   AuthService
	validator *validation.Validator
	authMW    *middleware.AuthMiddleware
	logger    *observability.Logger
}

// RegisterRoutes mounts the auth routes on the router.
func (h *AuthHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/auth/register", h.register).Methods("POST")
	router.HandleFunc("/api/auth/login", h.login).Methods("POST")
	router.HandleFunc("/api/auth/refresh", h.refresh).Methods("POST")
	router.HandleFunc("/api/auth/logout", h.logout).Methods("POST")
	router.Handle("/api/auth/me", h.authMW.Handler(http.HandlerFunc(h.me))).Methods("GET")
}

// validatedBody reads the body, checks it against the named schema, and
// decodes it. Returns false after writing the error response.
func (h *AuthHandlers) validatedBody(w http.ResponseWriter, r *http.Request, schema string, dest interface{}) bool {
	body, err := httputil.ReadBody(r)
	if err != nil {
		httputil.WriteBadRequest(w, "failed to read request body")
		return false
	}
	if err := h.validator.Validate(schema, body); err != nil {
		httputil.WriteError(w, err)
		return false
	}
	if err := httputil.ParseJSONBytes(body, dest); err != nil {
		httputil.WriteBadRequest(w, "request body must be valid JSON")
		return false
	}
	return true
}

// register handles POST /api/auth/register
func (h *AuthHandlers) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !h.validatedBody(w, r, validation.SchemaRegister, &req) {
		return
	}

	result, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.FromContext(r.Context()).WithField("user_id", result.User.ID).Info("user registered")
	httputil.WriteCreatedMessage(w, "user registered successfully", result)
}

// login handles POST /api/auth/login
func (h *AuthHandlers) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !h.validatedBody(w, r, validation.SchemaLogin, &req) {
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccessMessage(w, "login successful", result)
}

// refresh handles POST /api/auth/refresh
func (h *AuthHandlers) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if !h.validatedBody(w, r, validation.SchemaRefresh, &req) {
		return
	}

	result, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccessMessage(w, "token refreshed successfully", result)
}

// logout handles POST /api/auth/logout. Logout succeeds regardless of token
// state so repeated calls stay safe.
func (h *AuthHandlers) logout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := httputil.ParseJSON(r, &req); err != nil {
		httputil.WriteBadRequest(w, "request body must be valid JSON")
		return
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccessMessage(w, "logged out successfully", nil)
}

// me handles GET /api/auth/me
func (h *AuthHandlers) me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		httputil.WriteUnauthorized(w, "invalid or expired token")
		return
	}

	user, err := h.service.GetMe(r.Context(), claims.UserID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, user)
}
