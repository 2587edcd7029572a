package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/arklim/contact-platform/internal/core/domain"
	"github.com/arklim/contact-platform/internal/repository"
)

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("johndoe", "hashed-password", "John Doe", nil).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	user := domain.User{Username: "johndoe", Name: "John Doe", PasswordHash: "hashed-password"}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	rows := pgxmock.NewRows([]string{"username", "password", "name", "token"}).
		AddRow("johndoe", "hashed-password", "John Doe", "session-token")

	mock.ExpectQuery(`SELECT .*FROM users`).WithArgs("johndoe").WillReturnRows(rows)

	user, err := repo.GetByUsername(context.Background(), "johndoe")
	if err != nil {
		t.Fatalf("GetByUsername returned error: %v", err)
	}
	if user.Username != "johndoe" || user.Name != "John Doe" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Token == nil || *user.Token != "session-token" {
		t.Fatalf("expected token pointer populated")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_GetByUsername_NullToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	rows := pgxmock.NewRows([]string{"username", "password", "name", "token"}).
		AddRow("johndoe", "hashed-password", "John Doe", nil)

	mock.ExpectQuery(`SELECT .*FROM users`).WithArgs("johndoe").WillReturnRows(rows)

	user, err := repo.GetByUsername(context.Background(), "johndoe")
	if err != nil {
		t.Fatalf("GetByUsername returned error: %v", err)
	}
	if user.Token != nil {
		t.Fatalf("expected nil token, got %q", *user.Token)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_GetByToken_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT .*FROM users`).
		WithArgs("stale-token").
		WillReturnRows(pgxmock.NewRows([]string{"username", "password", "name", "token"}))

	if _, err := repo.GetByToken(context.Background(), "stale-token"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_CountByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	rows := pgxmock.NewRows([]string{"count"}).AddRow(int64(1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).WithArgs("johndoe").WillReturnRows(rows)

	count, err := repo.CountByUsername(context.Background(), "johndoe")
	if err != nil {
		t.Fatalf("CountByUsername returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE users`).
		WithArgs("John Doe", "hashed-password", "ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	user := domain.User{Username: "ghost", Name: "John Doe", PasswordHash: "hashed-password"}
	if err := repo.Update(context.Background(), user); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_UpdateToken_Set(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	token := "fresh-token"
	mock.ExpectExec(`UPDATE users`).
		WithArgs(token, "johndoe").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.UpdateToken(context.Background(), "johndoe", &token); err != nil {
		t.Fatalf("UpdateToken returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_UpdateToken_Clear(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE users`).
		WithArgs(nil, "johndoe").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.UpdateToken(context.Background(), "johndoe", nil); err != nil {
		t.Fatalf("UpdateToken returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
