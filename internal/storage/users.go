// ABOUTME: User account persistence for SQLite storage.
// ABOUTME: Usernames and emails are unique; login lookups accept either.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/healthtrack/internal/models"
)

const userColumns = `id, username, email, password_hash, nickname, height, gender, birthday, created_at, updated_at`

// CreateUser stores a new user. It returns ErrDuplicate when the username or
// email is taken.
func (d *DB) CreateUser(ctx context.Context, u *models.User) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID.String(), u.Username, u.Email, u.PasswordHash,
		nullString(u.Nickname), nullFloat(u.Height), genderArg(u.Gender), birthdayArg(u),
		formatTimestamp(u.CreatedAt), formatTimestamp(u.UpdatedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("create user %s: %w", u.Username, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindUserByID retrieves a user by ID.
func (d *DB) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := scanUser(d.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id.String()))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// FindUserByLogin retrieves a user by username or email.
func (d *DB) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	u, err := scanUser(d.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? OR email = ? LIMIT 1`, login, login))
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", login, err)
	}
	return u, nil
}

// ListUsers returns all users ordered by username.
func (d *DB) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser saves the profile fields of a user.
func (d *DB) UpdateUser(ctx context.Context, u *models.User) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE users SET email = ?, nickname = ?, height = ?, gender = ?, birthday = ?, updated_at = ?
		WHERE id = ?`,
		u.Email, nullString(u.Nickname), nullFloat(u.Height), genderArg(u.Gender), birthdayArg(u),
		formatTimestamp(u.UpdatedAt), u.ID.String())
	if isUniqueViolation(err) {
		return fmt.Errorf("update user: %w", ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return expectOneRow(res, "update user")
}

// UpdatePassword replaces a user's password hash.
func (d *DB) UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error {
	res, err := d.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, userID.String())
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return expectOneRow(res, "update password")
}

// DeleteUser removes a user and, through cascading keys, all their data.
func (d *DB) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return expectOneRow(res, "delete user")
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var id, createdAt, updatedAt string
	var nickname, gender, birthday sql.NullString
	var height sql.NullFloat64

	err := row.Scan(&id, &u.Username, &u.Email, &u.PasswordHash, &nickname, &height, &gender, &birthday, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}

	u.ID, _ = uuid.Parse(id)
	u.Nickname = stringPtr(nickname)
	u.Height = floatPtr(height)
	if gender.Valid {
		g := models.Gender(gender.String)
		u.Gender = &g
	}
	if birthday.Valid {
		b := parseDate(birthday.String)
		u.Birthday = &b
	}
	u.CreatedAt = parseTimestamp(createdAt)
	u.UpdatedAt = parseTimestamp(updatedAt)
	return &u, nil
}

func genderArg(g *models.Gender) sql.NullString {
	if g == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*g), Valid: true}
}

func birthdayArg(u *models.User) sql.NullString {
	if u.Birthday == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: models.FormatDate(*u.Birthday), Valid: true}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
