package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/serragrande/logsgb/internal/models"
)

func setupUserMock(t *testing.T) (*PostgresUserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresUserRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestFindByCredentials_Match(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "username", "password", "status", "admin"}).
		AddRow("u1", "joao", "secret", models.StatusApproved, false)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1 AND password = $2")).
		WithArgs("joao", "secret").
		WillReturnRows(rows)

	u, err := repo.FindByCredentials(context.Background(), "joao", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "joao" || u.Status != models.StatusApproved {
		t.Errorf("unexpected user: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFindByCredentials_NoMatch(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1 AND password = $2")).
		WithArgs("joao", "wrong").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "status", "admin"}))

	_, err := repo.FindByCredentials(context.Background(), "joao", "wrong")
	if !errors.Is(err, ErrNoUser) {
		t.Errorf("error = %v; want ErrNoUser", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUserInsert(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO app_users")).
		WithArgs(sqlmock.AnyArg(), "joao", "secret", models.StatusPending, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u, err := repo.Insert(context.Background(), models.UserAccount{
		Username: "joao", Password: "secret", Status: models.StatusPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == "" {
		t.Errorf("expected assigned ID, got empty")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUserInsert_DuplicateUsername(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO app_users")).
		WithArgs(sqlmock.AnyArg(), "joao", "secret", models.StatusPending, false).
		WillReturnError(errors.New("unique violation"))

	_, err := repo.Insert(context.Background(), models.UserAccount{
		Username: "joao", Password: "secret", Status: models.StatusPending,
	})
	if err == nil {
		t.Errorf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListByStatus(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "username", "password", "status", "admin"}).
		AddRow("u1", "ana", "pw", models.StatusPending, false).
		AddRow("u2", "rui", "pw", models.StatusPending, false)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1")).
		WithArgs(models.StatusPending).
		WillReturnRows(rows)

	users, err := repo.ListByStatus(context.Background(), models.StatusPending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("got %d users; want 2", len(users))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE app_users SET status = $2 WHERE id = $1")).
		WithArgs("u1", models.StatusApproved).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateStatus(context.Background(), "u1", models.StatusApproved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
