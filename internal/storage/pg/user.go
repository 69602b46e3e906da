package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"

	"github.com/jobdeck-dev/jobdeck/internal/domain"
	internal_errors "github.com/jobdeck-dev/jobdeck/internal/errors"
)

const uniqueViolation = "23505"

// =========================================================================
// Public Methods (satisfy the service.AuthStorage interface)
// =========================================================================

// SaveUser creates a new account row. A duplicate email maps to a 400 so the
// validation-error path distinguishes it, matching the registration contract.
func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var id domain.UserId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(tx, user)
		return err
	})
	return id, err
}

func (s *Storage) UserByEmail(email domain.Email) (domain.User, error) {
	return s.user(s.db, "email = $1", email)
}

func (s *Storage) UserById(id domain.UserId) (domain.User, error) {
	return s.user(s.db, "id = $1", id)
}

// ActivateUser flips the activation flag with a single-row update.
func (s *Storage) ActivateUser(id domain.UserId) error {
	return s.updateOne("UPDATE users SET is_active = TRUE WHERE id = $1", id)
}

func (s *Storage) UpdatePassword(id domain.UserId, passHash string) error {
	return s.updateOne("UPDATE users SET password_hash = $2 WHERE id = $1", id, passHash)
}

func (s *Storage) UpdateProfile(id domain.UserId, profile domain.Profile) error {
	return s.updateOne(
		"UPDATE users SET first_name = $2, last_name = $3, organization_name = $4, website = $5 WHERE id = $1",
		id, profile.FirstName, profile.LastName, profile.OrganizationName, profile.Website)
}

func (s *Storage) DeleteUser(id domain.UserId) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec("DELETE FROM users WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) saveUser(q Querier, user domain.User) (domain.UserId, error) {
	var id domain.UserId
	err := q.QueryRow(`
		INSERT INTO users(email, password_hash, role, first_name, last_name, organization_name, website, is_active)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		user.Email, user.PassHash, string(user.Role),
		user.Profile.FirstName, user.Profile.LastName, user.Profile.OrganizationName, user.Profile.Website,
		user.IsActive).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return -1, &internal_errors.ErrorWithStatusCode{Message: "User with this email already exists", StatusCode: http.StatusBadRequest}
		}
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) user(q Querier, where string, arg any) (domain.User, error) {
	var user domain.User
	var role string
	err := q.QueryRow(`
		SELECT id, email, password_hash, role, first_name, last_name, organization_name, website, is_active, created_at
		FROM users WHERE `+where, arg).
		Scan(&user.Id, &user.Email, &user.PassHash, &role,
			&user.Profile.FirstName, &user.Profile.LastName, &user.Profile.OrganizationName, &user.Profile.Website,
			&user.IsActive, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	user.Role = domain.Role(role)
	return user, nil
}

// updateOne executes a single-row update inside a transaction, mapping a
// zero-row result to 404.
func (s *Storage) updateOne(query string, args ...any) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.Exec(query, args...)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return nil
	})
}
