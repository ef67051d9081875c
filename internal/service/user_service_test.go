package service

import (
	"context"
	"strings"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetProfileOwnSeesEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Username: "alice", Email: "alice@example.com"}, nil)
	mockRepo.On("CountPosts", mock.Anything, uint(1)).Return(int64(3), nil)

	profile, err := svc.GetProfile(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.User.Email)
	assert.Equal(t, int64(3), profile.PostCount)
}

func TestGetProfileOtherHidesEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Username: "alice", Email: "alice@example.com"}, nil)
	mockRepo.On("CountPosts", mock.Anything, uint(1)).Return(int64(3), nil)

	profile, err := svc.GetProfile(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Empty(t, profile.User.Email)
	assert.Equal(t, "alice", profile.User.Username)
}

func TestGetProfileNotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(99)).
		Return(nil, models.NewNotFoundError("User", 99))

	_, err := svc.GetProfile(context.Background(), 99, 1)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Username: "alice"}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Bio == "gopher" && u.ProfileImage == "/media/new.png"
	})).Return(nil)
	mockRepo.On("CountPosts", mock.Anything, uint(1)).Return(int64(0), nil)

	bio := "gopher"
	profile, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:       1,
		Bio:          &bio,
		ProfileImage: "/media/new.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "gopher", profile.User.Bio)
	mockRepo.AssertExpectations(t)
}

func TestUpdateProfileBioTooLong(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1}, nil)

	bio := strings.Repeat("x", 501)
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Bio: &bio})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)

	mockRepo.AssertNotCalled(t, "Update")
}

func TestUpdateProfileNilBioKeepsCurrent(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Bio: "existing"}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Bio == "existing"
	})).Return(nil)
	mockRepo.On("CountPosts", mock.Anything, uint(1)).Return(int64(0), nil)

	profile, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "existing", profile.User.Bio)
}
