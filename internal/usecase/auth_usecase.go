package usecase

import (
	"context"
	"errors"
	"strings"

	"ponto-backend/internal/auth"
	"ponto-backend/internal/model"
	"ponto-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrEmailTaken         = errors.New("email already in use")
)

type AuthUsecase struct {
	users  repository.UserRepository
	tokens *auth.TokenIssuer
}

func NewAuthUsecase(users repository.UserRepository, tokens *auth.TokenIssuer) *AuthUsecase {
	return &AuthUsecase{users: users, tokens: tokens}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	// 1. Find user by email
	user, err := u.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	// 2. Compare password with the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrInactiveUser
	}

	// 3. Token
	token, err := u.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (u *AuthUsecase) CurrentUser(ctx context.Context, id uint) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// ChangeCredentials replaces the email and password of userID and clears
// the default credentials flag.
func (u *AuthUsecase) ChangeCredentials(ctx context.Context, userID uint, email, password string) (*model.User, error) {
	email = normalizeEmail(email)

	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := u.users.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != user.ID:
		return nil, ErrEmailTaken
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.Email = email
	user.Password = hashed
	user.IsDefaultCredentials = false

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
