package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/arklim/contact-platform/internal/core/domain"
	"github.com/arklim/contact-platform/internal/infra/security"
	"github.com/arklim/contact-platform/internal/repository"
	"github.com/arklim/contact-platform/internal/validation"
)

type mockUserRepository struct {
	createErr   error
	createCalls int
	createdUser domain.User

	getByUsernameResult *domain.User
	getByUsernameErr    error
	getByUsernameCalls  int
	getByUsernameLast   string

	getByTokenResult *domain.User
	getByTokenErr    error
	getByTokenCalls  int
	getByTokenLast   string

	countResult int
	countErr    error
	countCalls  int
	countLast   string

	updateErr   error
	updateCalls int
	updatedUser domain.User

	updateTokenErr      error
	updateTokenCalls    int
	updateTokenUsername string
	updateTokenValues   []*string
}

func (m *mockUserRepository) Create(_ context.Context, user domain.User) error {
	m.createCalls++
	m.createdUser = user
	return m.createErr
}

func (m *mockUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.getByUsernameCalls++
	m.getByUsernameLast = username
	if m.getByUsernameResult != nil {
		copy := *m.getByUsernameResult
		return &copy, m.getByUsernameErr
	}
	return nil, m.getByUsernameErr
}

func (m *mockUserRepository) GetByToken(_ context.Context, token string) (*domain.User, error) {
	m.getByTokenCalls++
	m.getByTokenLast = token
	if m.getByTokenResult != nil {
		copy := *m.getByTokenResult
		return &copy, m.getByTokenErr
	}
	return nil, m.getByTokenErr
}

func (m *mockUserRepository) CountByUsername(_ context.Context, username string) (int, error) {
	m.countCalls++
	m.countLast = username
	return m.countResult, m.countErr
}

func (m *mockUserRepository) Update(_ context.Context, user domain.User) error {
	m.updateCalls++
	m.updatedUser = user
	return m.updateErr
}

func (m *mockUserRepository) UpdateToken(_ context.Context, username string, token *string) error {
	m.updateTokenCalls++
	m.updateTokenUsername = username
	if token != nil {
		value := *token
		m.updateTokenValues = append(m.updateTokenValues, &value)
	} else {
		m.updateTokenValues = append(m.updateTokenValues, nil)
	}
	return m.updateTokenErr
}

func strPtr(s string) *string {
	return &s
}

func TestUserService_Register_Success(t *testing.T) {
	repo := &mockUserRepository{}
	service := NewUserService(repo, nil)

	resource, err := service.Register(context.Background(), RegisterUserInput{
		Username: "johndoe",
		Password: "rahasia",
		Name:     "John Doe",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if resource.Username != "johndoe" || resource.Name != "John Doe" {
		t.Fatalf("unexpected resource: %+v", resource)
	}
	if resource.Token != "" {
		t.Fatalf("expected no token on registration, got %q", resource.Token)
	}

	if repo.countCalls != 1 || repo.countLast != "johndoe" {
		t.Fatalf("expected one uniqueness check for johndoe, got calls=%d last=%q", repo.countCalls, repo.countLast)
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected Create to be called once, got %d", repo.createCalls)
	}

	if repo.createdUser.PasswordHash == "rahasia" {
		t.Fatalf("expected password to be hashed before storage")
	}
	if ok, err := security.VerifyPassword("rahasia", repo.createdUser.PasswordHash); err != nil || !ok {
		t.Fatalf("expected stored hash to match original password")
	}
}

func TestUserService_Register_UsernameTaken(t *testing.T) {
	repo := &mockUserRepository{countResult: 1}
	service := NewUserService(repo, nil)

	_, err := service.Register(context.Background(), RegisterUserInput{
		Username: "johndoe",
		Password: "rahasia",
		Name:     "John Doe",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	if repo.createCalls != 0 {
		t.Fatalf("expected Create not to run for taken username, got %d calls", repo.createCalls)
	}
}

func TestUserService_Register_ValidationErrors(t *testing.T) {
	service := NewUserService(&mockUserRepository{}, nil)

	cases := []struct {
		name  string
		input RegisterUserInput
	}{
		{"missing username", RegisterUserInput{Password: "rahasia", Name: "John"}},
		{"missing password", RegisterUserInput{Username: "johndoe", Name: "John"}},
		{"missing name", RegisterUserInput{Username: "johndoe", Password: "rahasia"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), tc.input)
			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUserService_Login_Success(t *testing.T) {
	hash, err := security.HashPassword("rahasia")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	repo := &mockUserRepository{
		getByUsernameResult: &domain.User{Username: "johndoe", Name: "John Doe", PasswordHash: hash},
	}
	service := NewUserService(repo, nil)

	resource, err := service.Login(context.Background(), LoginUserInput{Username: "johndoe", Password: "rahasia"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if resource.Token == "" {
		t.Fatalf("expected a session token on login")
	}
	if repo.updateTokenCalls != 1 || repo.updateTokenUsername != "johndoe" {
		t.Fatalf("expected token stored once for johndoe, got calls=%d user=%q", repo.updateTokenCalls, repo.updateTokenUsername)
	}
	stored := repo.updateTokenValues[0]
	if stored == nil || *stored != resource.Token {
		t.Fatalf("expected stored token to match returned token")
	}
}

func TestUserService_Login_FreshTokenPerLogin(t *testing.T) {
	hash, err := security.HashPassword("rahasia")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	repo := &mockUserRepository{
		getByUsernameResult: &domain.User{Username: "johndoe", PasswordHash: hash},
	}
	service := NewUserService(repo, nil)

	first, err := service.Login(context.Background(), LoginUserInput{Username: "johndoe", Password: "rahasia"})
	if err != nil {
		t.Fatalf("first login returned error: %v", err)
	}
	second, err := service.Login(context.Background(), LoginUserInput{Username: "johndoe", Password: "rahasia"})
	if err != nil {
		t.Fatalf("second login returned error: %v", err)
	}

	if first.Token == second.Token {
		t.Fatalf("expected a fresh token on every login")
	}
}

func TestUserService_Login_UnknownUsername(t *testing.T) {
	repo := &mockUserRepository{getByUsernameErr: repository.ErrNotFound}
	service := NewUserService(repo, nil)

	_, err := service.Login(context.Background(), LoginUserInput{Username: "ghost", Password: "rahasia"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if repo.updateTokenCalls != 0 {
		t.Fatalf("expected no token to be issued, got %d UpdateToken calls", repo.updateTokenCalls)
	}
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	hash, err := security.HashPassword("rahasia")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	repo := &mockUserRepository{
		getByUsernameResult: &domain.User{Username: "johndoe", PasswordHash: hash},
	}
	service := NewUserService(repo, nil)

	_, wrongPassErr := service.Login(context.Background(), LoginUserInput{Username: "johndoe", Password: "salah"})
	if !errors.Is(wrongPassErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", wrongPassErr)
	}

	repo.getByUsernameResult = nil
	repo.getByUsernameErr = repository.ErrNotFound
	_, unknownUserErr := service.Login(context.Background(), LoginUserInput{Username: "ghost", Password: "salah"})

	// Wrong password and unknown username must be indistinguishable.
	if wrongPassErr.Error() != unknownUserErr.Error() {
		t.Fatalf("expected identical errors, got %q and %q", wrongPassErr, unknownUserErr)
	}
}

func TestUserService_Update_NameOnly(t *testing.T) {
	repo := &mockUserRepository{}
	service := NewUserService(repo, nil)

	user := domain.User{Username: "johndoe", Name: "John Doe", PasswordHash: "existing-hash"}

	resource, err := service.Update(context.Background(), user, UpdateUserInput{Name: strPtr("Johnny")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if resource.Name != "Johnny" {
		t.Fatalf("expected updated name, got %q", resource.Name)
	}
	if repo.updatedUser.PasswordHash != "existing-hash" {
		t.Fatalf("expected password hash untouched, got %q", repo.updatedUser.PasswordHash)
	}
}

func TestUserService_Update_PasswordRehashed(t *testing.T) {
	repo := &mockUserRepository{}
	service := NewUserService(repo, nil)

	user := domain.User{Username: "johndoe", Name: "John Doe", PasswordHash: "old-hash"}

	if _, err := service.Update(context.Background(), user, UpdateUserInput{Password: strPtr("baru")}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if repo.updatedUser.PasswordHash == "old-hash" || repo.updatedUser.PasswordHash == "baru" {
		t.Fatalf("expected password to be rehashed, got %q", repo.updatedUser.PasswordHash)
	}
	if ok, err := security.VerifyPassword("baru", repo.updatedUser.PasswordHash); err != nil || !ok {
		t.Fatalf("expected new hash to match new password")
	}
}

func TestUserService_Update_RejectsEmptyFields(t *testing.T) {
	service := NewUserService(&mockUserRepository{}, nil)

	_, err := service.Update(context.Background(), domain.User{Username: "johndoe"}, UpdateUserInput{Name: strPtr("")})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
}

func TestUserService_Logout_ClearsToken(t *testing.T) {
	repo := &mockUserRepository{}
	service := NewUserService(repo, nil)

	if err := service.Logout(context.Background(), domain.User{Username: "johndoe"}); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if repo.updateTokenCalls != 1 || repo.updateTokenUsername != "johndoe" {
		t.Fatalf("expected one UpdateToken call for johndoe, got %d", repo.updateTokenCalls)
	}
	if repo.updateTokenValues[0] != nil {
		t.Fatalf("expected token cleared to nil, got %v", *repo.updateTokenValues[0])
	}
}

func TestUserService_ResolveToken(t *testing.T) {
	token := "session-token"
	repo := &mockUserRepository{
		getByTokenResult: &domain.User{Username: "johndoe", Token: &token},
	}
	service := NewUserService(repo, nil)

	user, err := service.ResolveToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ResolveToken returned error: %v", err)
	}
	if user.Username != "johndoe" {
		t.Fatalf("expected johndoe, got %q", user.Username)
	}
	if repo.getByTokenLast != token {
		t.Fatalf("expected lookup by %q, got %q", token, repo.getByTokenLast)
	}
}

func TestUserService_ResolveToken_Empty(t *testing.T) {
	repo := &mockUserRepository{}
	service := NewUserService(repo, nil)

	if _, err := service.ResolveToken(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
	if repo.getByTokenCalls != 0 {
		t.Fatalf("expected no repository lookup for empty token")
	}
}

func TestUserService_ResolveToken_Unknown(t *testing.T) {
	repo := &mockUserRepository{getByTokenErr: repository.ErrNotFound}
	service := NewUserService(repo, nil)

	if _, err := service.ResolveToken(context.Background(), "stale"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown token, got %v", err)
	}
}
