package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/lawmate/account-service/internal/core/domain"
	"github.com/lawmate/account-service/internal/core/ports"
	"github.com/lawmate/account-service/internal/observability/metrics"
)

type RegistrationHandler struct {
	accounts ports.AccountService
}

func NewRegistrationHandler(accounts ports.AccountService) *RegistrationHandler {
	return &RegistrationHandler{accounts: accounts}
}

// SignupUser handles POST /api/auth/signup/user.
func (h *RegistrationHandler) SignupUser(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		metrics.RegistrationsTotal.WithLabelValues(string(domain.RoleEndUser), "validation_error").Inc()
		writeErrors(w, http.StatusBadRequest, errs...)
		return
	}

	msg, err := h.accounts.RegisterUser(r.Context(), ports.RegisterUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	h.respond(w, domain.RoleEndUser, msg, err)
}

// SignupLawyer handles POST /api/auth/signup/lawyer.
func (h *RegistrationHandler) SignupLawyer(w http.ResponseWriter, r *http.Request) {
	var req LawyerSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		metrics.RegistrationsTotal.WithLabelValues(string(domain.RoleLawyer), "validation_error").Inc()
		writeErrors(w, http.StatusBadRequest, errs...)
		return
	}

	msg, err := h.accounts.RegisterLawyer(r.Context(), ports.RegisterLawyerInput{
		RegisterUserInput: ports.RegisterUserInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Password:  req.Password,
		},
		Specialization: req.Specialization,
		Experience:     *req.Experience,
		Location:       req.Location,
		BarNumber:      req.BarNumber,
		Bio:            req.Bio,
	})
	h.respond(w, domain.RoleLawyer, msg, err)
}

func (h *RegistrationHandler) respond(w http.ResponseWriter, role domain.Role, msg string, err error) {
	switch {
	case err == nil:
		metrics.RegistrationsTotal.WithLabelValues(string(role), "success").Inc()
		writeMessage(w, http.StatusCreated, msg)
	case errors.Is(err, domain.ErrDuplicateAccount):
		metrics.RegistrationsTotal.WithLabelValues(string(role), "duplicate").Inc()
		writeErrors(w, http.StatusConflict, "Email already exists")
	default:
		log.Printf("signup: %v", err)
		metrics.RegistrationsTotal.WithLabelValues(string(role), "error").Inc()
		writeErrors(w, http.StatusInternalServerError, "Server error")
	}
}
