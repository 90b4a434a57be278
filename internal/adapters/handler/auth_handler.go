package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/lawmate/account-service/internal/adapters/middleware"
	"github.com/lawmate/account-service/internal/core/domain"
	"github.com/lawmate/account-service/internal/core/ports"
	"github.com/lawmate/account-service/internal/observability/metrics"
)

type AuthHandler struct {
	accounts ports.AccountService
}

func NewAuthHandler(accounts ports.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP handles POST /api/auth/verify-otp. All precondition failures
// map to 400 with the specific message; unlike password login, this
// endpoint does reveal whether the email exists.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	msg, err := h.accounts.VerifyOTP(r.Context(), req.Email, req.OTP)
	switch {
	case err == nil:
		metrics.OTPVerificationsTotal.WithLabelValues("success").Inc()
		writeMessage(w, http.StatusOK, msg)
	case errors.Is(err, domain.ErrNotFound):
		metrics.OTPVerificationsTotal.WithLabelValues("not_found").Inc()
		writeErrors(w, http.StatusBadRequest, "User not found")
	case errors.Is(err, domain.ErrAlreadyVerified):
		metrics.OTPVerificationsTotal.WithLabelValues("already_verified").Inc()
		writeErrors(w, http.StatusBadRequest, "Already verified")
	case errors.Is(err, domain.ErrInvalidOrExpiredOTP):
		metrics.OTPVerificationsTotal.WithLabelValues("invalid").Inc()
		writeErrors(w, http.StatusBadRequest, "Invalid or expired OTP")
	default:
		log.Printf("verify-otp: %v", err)
		metrics.OTPVerificationsTotal.WithLabelValues("error").Inc()
		writeErrors(w, http.StatusInternalServerError, "Server error")
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

// Login handles POST /api/auth/login. Unknown email and wrong password
// produce the same message to resist account enumeration.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		metrics.LoginsTotal.WithLabelValues("password", "success").Inc()
		writeJSON(w, http.StatusOK, loginResponse{Token: result.Token, User: result.User})
	case errors.Is(err, domain.ErrInvalidCredentials):
		metrics.LoginsTotal.WithLabelValues("password", "invalid_credentials").Inc()
		writeErrors(w, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, domain.ErrEmailNotVerified):
		metrics.LoginsTotal.WithLabelValues("password", "unverified").Inc()
		writeErrors(w, http.StatusForbidden, "Please verify your email before logging in")
	default:
		log.Printf("login: %v", err)
		metrics.LoginsTotal.WithLabelValues("password", "error").Inc()
		writeErrors(w, http.StatusInternalServerError, "Server error")
	}
}

type loginWithOTPRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginWithOTPResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    domain.PublicUser `json:"user"`
}

// LoginWithOTP handles POST /api/auth/login-otp. The operation takes no
// OTP code; it admits any (email, role) pair whose account completed
// verification, and it answers with single-message bodies rather than
// the errors list the other endpoints use.
func (h *AuthHandler) LoginWithOTP(w http.ResponseWriter, r *http.Request) {
	var req loginWithOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := h.accounts.LoginWithOTP(r.Context(), req.Email, domain.Role(req.Role))
	switch {
	case err == nil:
		metrics.LoginsTotal.WithLabelValues("otp", "success").Inc()
		writeJSON(w, http.StatusOK, loginWithOTPResponse{
			Message: "Login successful",
			Token:   result.Token,
			User:    result.User,
		})
	case errors.Is(err, domain.ErrMissingParameters):
		metrics.LoginsTotal.WithLabelValues("otp", "missing_params").Inc()
		writeMessage(w, http.StatusBadRequest, "Email and role are required")
	case errors.Is(err, domain.ErrNotFound):
		metrics.LoginsTotal.WithLabelValues("otp", "not_found").Inc()
		writeMessage(w, http.StatusBadRequest, "User not found")
	case errors.Is(err, domain.ErrOTPNotVerified):
		metrics.LoginsTotal.WithLabelValues("otp", "unverified").Inc()
		writeMessage(w, http.StatusUnauthorized, "OTP not verified")
	default:
		log.Printf("login-otp: %v", err)
		metrics.LoginsTotal.WithLabelValues("otp", "error").Inc()
		writeMessage(w, http.StatusInternalServerError, "Server error")
	}
}

type meResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Me handles GET /api/auth/me, echoing the identity asserted by the
// bearer token. It sits behind the role-gating middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(middleware.UserIDKey).(string)
	role, _ := r.Context().Value(middleware.RoleKey).(string)
	if userID == "" || role == "" {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, meResponse{ID: userID, Role: role})
}
