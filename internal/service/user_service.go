package service

import (
	"context"

	"gamelearn/internal/domain"
	"gamelearn/internal/dto"
	"gamelearn/internal/repository"
)

// UserService exposes profile reads for authenticated users.
type UserService interface {
	GetMyProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) GetMyProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get user profile", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User " + userID + " not found")
	}
	return &dto.UserProfileResponse{
		ID:                user.ID,
		Email:             user.Email,
		Name:              user.Name,
		ProfilePictureURL: user.ProfilePictureURL,
	}, nil
}
