package service

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockPosts := new(MockPostRepository)
	svc := NewCommentService(mockComments, mockPosts)

	mockPosts.On("GetByID", mock.Anything, uint(10), uint(2)).
		Return(&models.Post{ID: 10, UserID: 1}, nil)
	mockComments.On("Create", mock.Anything, mock.MatchedBy(func(cm *models.Comment) bool {
		return cm.PostID == 10 && cm.UserID == 2 && cm.Text == "nice"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Comment).ID = 5
	}).Return(nil)
	mockComments.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Comment{ID: 5, PostID: 10, UserID: 2, Text: "nice",
			User: models.User{ID: 2, Username: "bob"}}, nil)

	comment, err := svc.AddComment(context.Background(), AddCommentInput{
		UserID: 2, PostID: 10, Text: "nice",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", comment.User.Username)
	mockComments.AssertExpectations(t)
}

func TestAddCommentValidation(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockPosts := new(MockPostRepository)
	svc := NewCommentService(mockComments, mockPosts)

	_, err := svc.AddComment(context.Background(), AddCommentInput{UserID: 2, PostID: 10, Text: ""})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)

	mockPosts.AssertNotCalled(t, "GetByID")
}

func TestAddCommentMissingPost(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockPosts := new(MockPostRepository)
	svc := NewCommentService(mockComments, mockPosts)

	mockPosts.On("GetByID", mock.Anything, uint(99), uint(2)).
		Return(nil, models.NewNotFoundError("Post", 99))

	_, err := svc.AddComment(context.Background(), AddCommentInput{UserID: 2, PostID: 99, Text: "hi"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	mockComments.AssertNotCalled(t, "Create")
}

func TestListComments(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockPosts := new(MockPostRepository)
	svc := NewCommentService(mockComments, mockPosts)

	mockPosts.On("GetByID", mock.Anything, uint(10), uint(0)).
		Return(&models.Post{ID: 10}, nil)
	mockComments.On("ListByPost", mock.Anything, uint(10)).
		Return([]models.Comment{{ID: 1, Text: "first"}, {ID: 2, Text: "second"}}, nil)

	comments, err := svc.ListComments(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
}

func TestListCommentsMissingPost(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockPosts := new(MockPostRepository)
	svc := NewCommentService(mockComments, mockPosts)

	mockPosts.On("GetByID", mock.Anything, uint(99), uint(0)).
		Return(nil, models.NewNotFoundError("Post", 99))

	_, err := svc.ListComments(context.Background(), 99)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
