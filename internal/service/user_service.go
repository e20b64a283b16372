package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// UserService provides read access to user profiles, backing the assignee
// picker and the authenticated-profile endpoint.
type UserService interface {
	// List returns all registered users as id/email/name projections.
	List(ctx context.Context) ([]*domain.UserRef, error)

	// Get returns the profile of a single user.
	// Returns store.ErrUserNotFound if the user does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.UserRef, error)
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userStore store.UserStore, log *slog.Logger) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		logger:    log.With(slog.String("component", "user_service")),
	}, nil
}

// List implements UserService.List
func (s *userServiceImpl) List(ctx context.Context) ([]*domain.UserRef, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, err
	}

	refs := make([]*domain.UserRef, 0, len(users))
	for _, u := range users {
		refs = append(refs, u.Ref())
	}
	return refs, nil
}

// Get implements UserService.Get
func (s *userServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.UserRef, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Ref(), nil
}
