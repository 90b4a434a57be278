package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/lawmate/account-service/internal/core/domain"
	"github.com/lawmate/account-service/internal/core/ports"
)

const uniqueViolation = "23505"

// SQLRepository is the Postgres-backed user record store.
//
// Schema:
//
//	users(id, role, first_name, last_name, email UNIQUE, phone,
//	      password_hash, agreed_to_terms, is_verified,
//	      otp_code NULL, otp_expires_at NULL, created_at, updated_at)
//	lawyer_profiles(user_id REFERENCES users(id), specialization,
//	      experience, location, bar_number, bio)
type SQLRepository struct {
	db *sql.DB
}

var _ ports.UserRepository = (*SQLRepository)(nil)

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

const userColumns = `
	u.id, u.role, u.first_name, u.last_name, u.email, u.phone,
	u.password_hash, u.agreed_to_terms, u.is_verified,
	u.otp_code, u.otp_expires_at, u.created_at, u.updated_at,
	l.specialization, l.experience, l.location, l.bar_number, l.bio`

const userFrom = `
	FROM users u
	LEFT JOIN lawyer_profiles l ON l.user_id = u.id`

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT"+userColumns+userFrom+" WHERE u.email = $1", email)
	return scanUser(row)
}

func (r *SQLRepository) FindByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT"+userColumns+userFrom+" WHERE u.email = $1 AND u.role = $2",
		email, string(role))
	return scanUser(row)
}

func (r *SQLRepository) Create(ctx context.Context, user *domain.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users
			(id, role, first_name, last_name, email, phone, password_hash,
			 agreed_to_terms, is_verified, otp_code, otp_expires_at,
			 created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		user.ID,
		string(user.Role),
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.AgreedToTerms,
		user.Verified,
		user.OTPCode,
		user.OTPExpiresAt,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateAccount
		}
		return err
	}

	if user.Lawyer != nil {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO lawyer_profiles
				(user_id, specialization, experience, location, bar_number, bio)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			user.ID,
			user.Lawyer.Specialization,
			user.Lawyer.Experience,
			user.Lawyer.Location,
			user.Lawyer.BarNumber,
			user.Lawyer.Bio,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// MarkVerified flips the record with a compare-and-set so that of two
// racing verify calls at most one succeeds.
func (r *SQLRepository) MarkVerified(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET is_verified = TRUE, otp_code = NULL, otp_expires_at = NULL,
		     updated_at = NOW()
		 WHERE email = $1 AND is_verified = FALSE`,
		email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAlreadyVerified
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user         domain.User
		role         string
		otpCode      sql.NullString
		otpExpiresAt sql.NullTime
		spec         sql.NullString
		experience   sql.NullInt64
		location     sql.NullString
		barNumber    sql.NullString
		bio          sql.NullString
	)

	err := row.Scan(
		&user.ID, &role, &user.FirstName, &user.LastName, &user.Email,
		&user.Phone, &user.PasswordHash, &user.AgreedToTerms,
		&user.Verified, &otpCode, &otpExpiresAt,
		&user.CreatedAt, &user.UpdatedAt,
		&spec, &experience, &location, &barNumber, &bio,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	user.Role = domain.Role(role)
	if otpCode.Valid {
		code := otpCode.String
		user.OTPCode = &code
	}
	if otpExpiresAt.Valid {
		t := otpExpiresAt.Time.UTC()
		user.OTPExpiresAt = &t
	}
	if user.Role == domain.RoleLawyer && spec.Valid {
		user.Lawyer = &domain.LawyerProfile{
			Specialization: spec.String,
			Experience:     int(experience.Int64),
			Location:       location.String,
			BarNumber:      barNumber.String,
			Bio:            bio.String,
		}
	}

	// Normalize to UTC so OTP expiry comparisons are driver-independent.
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()

	return &user, nil
}
