package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cinevault/cinevault/pkg/httputil"
	"github.com/cinevault/cinevault/pkg/middleware"
	"github.com/cinevault/cinevault/pkg/observability"
)

// EmailHandlers serves the /api/email administration routes. All of them
// require authentication and act on the calling user.
type EmailHandlers struct {
	auth    AuthService
	mailer  TestMailer
	sweeper SweepRunner
	welcome WelcomeSender
	authMW  *middleware.AuthMiddleware
	logger  *observability.Logger
}

// RegisterRoutes mounts the email routes on the router.
func (h *EmailHandlers) RegisterRoutes(router *mux.Router) {
	protect := h.authMW.Handler
	router.Handle("/api/email/test", protect(http.HandlerFunc(h.sendTest))).Methods("POST")
	if h.sweeper != nil {
		router.Handle("/api/email/check-reminders", protect(http.HandlerFunc(h.checkReminders))).Methods("POST")
	}
	if h.welcome != nil {
		router.Handle("/api/email/resend-welcome", protect(http.HandlerFunc(h.resendWelcome))).Methods("POST")
	}
}

// sendTest handles POST /api/email/test. Sends a sample reminder email to
// the caller so operators can verify SMTP delivery end to end.
func (h *EmailHandlers) sendTest(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	user, err := h.auth.GetMe(r.Context(), claims.UserID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	subject, err := h.mailer.SendTest(r.Context(), user.Email, user.Name)
	if err != nil {
		h.logger.FromContext(r.Context()).WithError(err).Error("test email failed")
		httputil.WriteErrorMessage(w, http.StatusInternalServerError, "failed to send test email")
		return
	}

	httputil.WriteSuccessMessage(w, "test email sent successfully", map[string]string{
		"to":      user.Email,
		"subject": subject,
	})
}

// checkReminders handles POST /api/email/check-reminders, running the daily
// sweep outside its schedule.
func (h *EmailHandlers) checkReminders(w http.ResponseWriter, r *http.Request) {
	if err := h.sweeper.RunSweep(r.Context()); err != nil {
		h.logger.FromContext(r.Context()).WithError(err).Error("manual reminder sweep failed")
		httputil.WriteErrorMessage(w, http.StatusInternalServerError, "reminder sweep failed")
		return
	}

	httputil.WriteSuccessMessage(w, "reminder sweep completed", nil)
}

// resendWelcome handles POST /api/email/resend-welcome.
func (h *EmailHandlers) resendWelcome(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	user, err := h.auth.GetMe(r.Context(), claims.UserID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.welcome.WelcomeUser(r.Context(), *user)

	httputil.WriteSuccessMessage(w, "welcome email sent", map[string]string{
		"to": user.Email,
	})
}
