package service

import (
	"context"

	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID uint
	Text   string
	Media  models.Media
}

type ListPostsInput struct {
	ViewerID uint
	Limit    int
	Offset   int
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		UserID:    in.UserID,
		Text:      in.Text,
		MediaURL:  in.Media.URL,
		MediaKind: in.Media.Kind,
	}
	if post.MediaKind == "" {
		post.MediaKind = models.MediaNone
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Re-read so the computed engagement columns and author are populated.
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]models.Post, error) {
	return s.postRepo.List(ctx, in.ViewerID, in.Limit, in.Offset)
}

func (s *PostService) ListUserPosts(ctx context.Context, userID uint, in ListPostsInput) ([]models.Post, error) {
	return s.postRepo.ListByUser(ctx, userID, in.ViewerID, in.Limit, in.Offset)
}

func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID, viewerID)
}

// ToggleLike flips the caller's like on a post and reports the resulting
// state alongside the fresh like count.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (liked bool, likes int64, err error) {
	liked, likes, err = s.postRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		return false, 0, err
	}

	state := "unliked"
	if liked {
		state = "liked"
	}
	middleware.LikeToggles.WithLabelValues(state).Inc()

	return liked, likes, nil
}

// DeletePost removes a post and its engagement records. Only the author may
// delete their post.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, in.PostID)
}
