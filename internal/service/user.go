package service

import (
	"context"
	"errors"

	"parcel-delivery-api/internal/model"
	"parcel-delivery-api/internal/repository"

	"gorm.io/gorm"
)

type UserService interface {
	UpsertUser(ctx context.Context, email, name string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUsers(ctx context.Context) ([]*model.User, error)
	UpdateRole(ctx context.Context, userID uint, role string) error
}

type userServiceImpl struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

func (s *userServiceImpl) UpsertUser(ctx context.Context, email, name string) (*model.User, error) {
	err := s.userRepo.Upsert(ctx, &model.User{
		Email: email,
		Name:  name,
		Role:  model.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	return s.userRepo.FindByEmail(ctx, email)
}

func (s *userServiceImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (s *userServiceImpl) GetUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *userServiceImpl) UpdateRole(ctx context.Context, userID uint, role string) error {
	if role != model.RoleUser && role != model.RoleAdmin {
		return ErrInvalidRole
	}

	err := s.userRepo.UpdateRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return nil
}
