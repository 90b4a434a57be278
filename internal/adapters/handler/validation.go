package handler

import "regexp"

// Field rules applied at the boundary, before the account service is
// invoked. Each rule contributes its own message, so one bad request can
// come back with several.
var (
	emailPattern        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsPattern       = regexp.MustCompile(`^[0-9]+$`)
	letterPattern       = regexp.MustCompile(`[A-Za-z]`)
	numberPattern       = regexp.MustCompile(`[0-9]`)
	alphanumericPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// SignupRequest is the end-user registration payload.
type SignupRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Agree           bool   `json:"agree"`
}

// LawyerSignupRequest adds the lawyer-only fields. Experience is a
// pointer so a missing field is distinguishable from zero.
type LawyerSignupRequest struct {
	SignupRequest
	Specialization string `json:"specialization"`
	Experience     *int   `json:"experience"`
	Location       string `json:"location"`
	BarNumber      string `json:"barNumber"`
	Bio            string `json:"bio"`
}

func (r *SignupRequest) Validate() []string {
	var errs []string

	if r.FirstName == "" {
		errs = append(errs, "First name is required")
	}
	if r.LastName == "" {
		errs = append(errs, "Last name is required")
	}
	if !emailPattern.MatchString(r.Email) {
		errs = append(errs, "Invalid email format")
	}
	if len(r.Phone) != 10 {
		errs = append(errs, "Phone must be exactly 10 digits")
	}
	if !digitsPattern.MatchString(r.Phone) {
		errs = append(errs, "Phone must contain only digits")
	}
	if len(r.Password) < 6 {
		errs = append(errs, "Password must be at least 6 characters")
	}
	if !letterPattern.MatchString(r.Password) {
		errs = append(errs, "Password must contain at least one letter")
	}
	if !numberPattern.MatchString(r.Password) {
		errs = append(errs, "Password must contain at least one number")
	}
	if r.ConfirmPassword != r.Password {
		errs = append(errs, "Passwords do not match")
	}
	if !r.Agree {
		errs = append(errs, "You must agree to the terms")
	}

	return errs
}

func (r *LawyerSignupRequest) Validate() []string {
	errs := r.SignupRequest.Validate()

	if r.Specialization == "" {
		errs = append(errs, "Specialization is required")
	}
	if r.Experience == nil || *r.Experience < 0 {
		errs = append(errs, "Experience must be a non-negative number")
	}
	if r.Location == "" {
		errs = append(errs, "Location is required")
	}
	if !alphanumericPattern.MatchString(r.BarNumber) {
		errs = append(errs, "Bar number must be alphanumeric")
	}
	if len(r.BarNumber) < 6 {
		errs = append(errs, "Bar number must be at least 6 characters")
	}
	if len(r.Bio) < 10 {
		errs = append(errs, "Bio must be at least 10 characters")
	}

	return errs
}
