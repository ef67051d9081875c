package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID       uint
	Bio          *string
	ProfileImage string
}

// Profile bundles a user with their post count for the profile endpoints.
type Profile struct {
	User      *models.User
	PostCount int64
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns a user's profile. The email address is only included
// when the viewer is looking at their own profile.
func (s *UserService) GetProfile(ctx context.Context, userID, viewerID uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.userRepo.CountPosts(ctx, userID)
	if err != nil {
		return nil, err
	}

	if userID != viewerID {
		redacted := *user
		redacted.Email = ""
		user = &redacted
	}

	return &Profile{User: user, PostCount: count}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Bio != nil {
		if err := validation.ValidateBio(*in.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Bio = *in.Bio
	}
	if in.ProfileImage != "" {
		user.ProfileImage = in.ProfileImage
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	count, err := s.userRepo.CountPosts(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, PostCount: count}, nil
}
