package domain

import "time"

type Role string

const (
	RoleEndUser Role = "user"
	RoleLawyer  Role = "lawyer"
)

// User is the single persisted account record. The Role field is the
// discriminant: Lawyer is non-nil if and only if Role == RoleLawyer.
type User struct {
	ID            string
	Role          Role
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	PasswordHash  string
	AgreedToTerms bool
	Verified      bool

	// OTPCode and OTPExpiresAt are both set (unverified account with a
	// pending code) or both nil (code consumed on verification).
	OTPCode      *string
	OTPExpiresAt *time.Time

	Lawyer *LawyerProfile

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LawyerProfile carries the fields that only exist for lawyer accounts.
type LawyerProfile struct {
	Specialization string
	Experience     int
	Location       string
	BarNumber      string
	Bio            string
}

// PublicUser is the projection returned to clients after login. The
// password hash and OTP fields never leave the service.
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
