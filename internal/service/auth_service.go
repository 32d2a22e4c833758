// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// profilePostsLimit caps how many posts a profile response embeds.
const profilePostsLimit = 100

type AuthService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	guard    *auth.PasswordGuard
	tokens   *auth.TokenService
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

func NewAuthService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	guard *auth.PasswordGuard,
	tokens *auth.TokenService,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		postRepo: postRepo,
		guard:    guard,
		tokens:   tokens,
	}
}

// Register creates an account and returns the new user with a signed token.
// A username or email already in use surfaces as a conflict from the store.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}

	hash, err := s.guard.Hash(in.Password)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		PostIDs:  models.PostRefs{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !s.guard.Verify(user.Password, in.Password) {
		return nil, "", models.NewUnauthorizedError("Invalid credentials")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// ChangePassword rotates the caller's password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, viewer *auth.Identity, in ChangePasswordInput) error {
	if viewer == nil {
		return models.NewForbiddenError("Login required")
	}

	// The cached user copy has no password hash; verification needs the
	// stored row.
	user, err := s.userRepo.GetByIDUncached(ctx, viewer.UserID)
	if err != nil {
		return err
	}
	if !s.guard.Verify(user.Password, in.CurrentPassword) {
		return models.NewUnauthorizedError("Invalid credentials")
	}
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hash, err := s.guard.Hash(in.NewPassword)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = hash
	return s.userRepo.Update(ctx, user, true)
}

// Profile returns the caller's account hydrated with their posts, newest first.
func (s *AuthService) Profile(ctx context.Context, viewer *auth.Identity) (*models.User, error) {
	if viewer == nil {
		return nil, models.NewForbiddenError("Login required")
	}

	user, err := s.userRepo.GetByID(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByAuthor(ctx, user.Username, profilePostsLimit, 0)
	if err != nil {
		return nil, err
	}
	hydrated := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		hydrated = append(hydrated, *p)
	}
	user.Posts = hydrated
	return user, nil
}
