package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/developer-d723/user-service/pkg/models"
)

// UserRepository is the store contract for user rows, usable both inside
// and outside a transaction.
type UserRepository interface {
	// FindByID returns the user with the given ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.User, error)
	// FindAll returns all users in the store's natural order.
	FindAll(ctx context.Context) ([]models.User, error)
	// Save inserts u when its ID is empty, assigning ID and CreatedAt,
	// and otherwise updates name, email and age for the existing row.
	Save(ctx context.Context, u *models.User) error
	// DeleteByID removes the row with the given ID.
	DeleteByID(ctx context.Context, id string) error
}

// Store is a UserRepository that can also scope repository calls to a
// single transaction.
type Store interface {
	UserRepository

	// WithinTx runs fn against a transactional repository. The transaction
	// commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(repo UserRepository) error) error
}

// EventPublisher emits user notifications. Implementations are
// fire-and-forget: transport failures are handled (logged) internally and
// never surfaced to the service.
type EventPublisher interface {
	PublishUserEvent(ctx context.Context, event models.UserEvent)
}

// UserService orchestrates validation, persistence and event emission for
// the user use cases.
type UserService struct {
	store  Store
	events EventPublisher
}

// NewUserService creates a UserService on top of a store and a publisher.
func NewUserService(store Store, events EventPublisher) *UserService {
	return &UserService{store: store, events: events}
}

// CreateUser validates the request, persists a new user in one transaction
// and publishes a USER_CREATED event after the commit.
func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.UserResponse, error) {
	if err := validateUser(req.Name, req.Email, req.Age); err != nil {
		return models.UserResponse{}, err
	}

	user := models.ToUser(req)
	err := s.store.WithinTx(ctx, func(repo UserRepository) error {
		return repo.Save(ctx, &user)
	})
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("create user: %w", err)
	}

	// The create is committed; a lost notification must not undo it.
	s.events.PublishUserEvent(ctx, models.UserEvent{
		EventType: models.EventUserCreated,
		Email:     user.Email,
	})

	log.Printf("[Service] User created: id=%s email=%s", user.ID, user.Email)
	return models.ToUserResponse(user), nil
}

// FindUserByID returns the user with the given ID.
func (s *UserService) FindUserByID(ctx context.Context, id string) (models.UserResponse, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.UserResponse{}, &NotFoundError{ID: id}
		}
		return models.UserResponse{}, fmt.Errorf("find user: %w", err)
	}
	return models.ToUserResponse(*user), nil
}

// FindAllUsers returns all users in the store's return order.
func (s *UserService) FindAllUsers(ctx context.Context) ([]models.UserResponse, error) {
	users, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, models.ToUserResponse(u))
	}
	return responses, nil
}

// UpdateUser replaces name, email and age of an existing user in one
// transaction. The existence check runs before validation, so an update
// against a missing ID reports NotFound even when the payload is invalid.
// ID and CreatedAt are never touched, and no event is emitted.
func (s *UserService) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.UserResponse, error) {
	var updated models.User
	err := s.store.WithinTx(ctx, func(repo UserRepository) error {
		user, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := validateUser(req.Name, req.Email, req.Age); err != nil {
			return err
		}

		user.Name = req.Name
		user.Email = req.Email
		user.Age = req.Age

		if err := repo.Save(ctx, user); err != nil {
			return err
		}
		updated = *user
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.UserResponse{}, &NotFoundError{ID: id}
		}
		if IsValidationError(err) {
			return models.UserResponse{}, err
		}
		return models.UserResponse{}, fmt.Errorf("update user: %w", err)
	}

	log.Printf("[Service] User updated: id=%s", updated.ID)
	return models.ToUserResponse(updated), nil
}

// DeleteUser removes an existing user in one transaction and publishes a
// USER_DELETED event, keyed by the email the user had before deletion.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	var email string
	err := s.store.WithinTx(ctx, func(repo UserRepository) error {
		user, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		email = user.Email
		return repo.DeleteByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &NotFoundError{ID: id}
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.events.PublishUserEvent(ctx, models.UserEvent{
		EventType: models.EventUserDeleted,
		Email:     email,
	})

	log.Printf("[Service] User deleted: id=%s email=%s", id, email)
	return nil
}
