package services

import (
	"context"
	"time"

	"github.com/debtwise/debtwise-backend/internal/errs"
	"github.com/debtwise/debtwise-backend/internal/models"
	"github.com/debtwise/debtwise-backend/pkg/logger"
)

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type userService struct {
	Store userUSStore
}

func NewUserService(store userUSStore) *userService {
	return &userService{
		Store: store,
	}
}

func (s *userService) Register(ctx context.Context, uid, email, displayName string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		return errs.NewValidationError("email is required")
	}

	now := time.Now()
	user := &models.User{
		UID:         uid,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.CreateUser(ctx, user); err != nil {
		log.Error("failed to create user in store", "error", err)
		return err
	}

	log.Info("user registered", "display_name", displayName)
	return nil
}

func (s *userService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	return s.Store.GetUser(ctx, uid)
}
