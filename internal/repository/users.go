package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/serragrande/logsgb/internal/metrics"
	"github.com/serragrande/logsgb/internal/models"
)

// ErrNoUser is returned when an equality-filtered user lookup matches
// nothing.
var ErrNoUser = errors.New("user not found")

// PostgresUserRepository persists registration records of the access gate.
type PostgresUserRepository struct {
	DB *sql.DB
}

// NewPostgresUserRepository creates a user repository over the given
// database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// ListAll returns every registration record.
func (r *PostgresUserRepository) ListAll(ctx context.Context) ([]models.UserAccount, error) {
	return r.list(ctx, `
		SELECT id, username, password, status, admin FROM app_users
	`)
}

// ListByStatus returns the registration records with the given status.
func (r *PostgresUserRepository) ListByStatus(ctx context.Context, status string) ([]models.UserAccount, error) {
	return r.list(ctx, `
		SELECT id, username, password, status, admin FROM app_users WHERE status = $1
	`, status)
}

func (r *PostgresUserRepository) list(ctx context.Context, query string, args ...any) ([]models.UserAccount, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	metrics.ObserveStore("app_users", "list", err)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.UserAccount
	for rows.Next() {
		var u models.UserAccount
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.Status, &u.Admin); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// FindByCredentials returns the account matching the username and password
// pair exactly, or ErrNoUser.
func (r *PostgresUserRepository) FindByCredentials(ctx context.Context, username, password string) (*models.UserAccount, error) {
	var u models.UserAccount
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, password, status, admin
		  FROM app_users
		 WHERE username = $1 AND password = $2
	`, username, password).Scan(&u.ID, &u.Username, &u.Password, &u.Status, &u.Admin)
	metrics.ObserveStore("app_users", "find", err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoUser
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// Insert stores a new registration record, assigning its identifier.
// A duplicate username surfaces the store's unique-violation error.
func (r *PostgresUserRepository) Insert(ctx context.Context, u models.UserAccount) (models.UserAccount, error) {
	u.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO app_users (id, username, password, status, admin)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID, u.Username, u.Password, u.Status, u.Admin)
	metrics.ObserveStore("app_users", "insert", err)
	if err != nil {
		return models.UserAccount{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// UpdateStatus transitions the account with the given ID to a new status.
func (r *PostgresUserRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE app_users SET status = $2 WHERE id = $1
	`, id, status)
	metrics.ObserveStore("app_users", "update", err)
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	return nil
}

// DeleteByID removes the registration record with the given ID.
func (r *PostgresUserRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM app_users WHERE id = $1`, id)
	metrics.ObserveStore("app_users", "delete", err)
	return err
}
