package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts and likes.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error)
	List(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error)
	ListByUser(ctx context.Context, userID, viewerID uint, limit, offset int) ([]models.Post, error)
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, userID, postID uint) (liked bool, likes int64, err error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails attaches the computed engagement columns to a post query.
// Counts are derived per row so listings never go stale against the likes
// and comments tables.
func applyPostDetails(query *gorm.DB, viewerID uint) *gorm.DB {
	return query.
		Select(`posts.*,
			(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count,
			(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count,
			EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS liked`, viewerID).
		Preload("User")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewUpstreamError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	var post models.Post
	load := func() error {
		err := applyPostDetails(r.db.WithContext(ctx).Model(&models.Post{}), viewerID).
			First(&post, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewUpstreamError(err)
		}
		return nil
	}

	// Anonymous reads carry no viewer-specific like state, so a single cache
	// entry can serve them all. Authenticated reads hit the database.
	if viewerID == 0 {
		if err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, load); err != nil {
			return nil, err
		}
		return &post, nil
	}

	if err := load(); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := applyPostDetails(r.db.WithContext(ctx).Model(&models.Post{}), viewerID).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewUpstreamError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID, viewerID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := applyPostDetails(r.db.WithContext(ctx).Model(&models.Post{}), viewerID).
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewUpstreamError(err)
	}
	return posts, nil
}

// Delete removes a post together with its likes and comments in a single
// transaction.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return models.NewUpstreamError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// ToggleLike flips the (user, post) like membership atomically. The insert
// relies on the unique index over (user_id, post_id): an untouched row means
// the like already existed and is removed instead.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, int64, error) {
	var liked bool
	var likes int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists models.Post
		if err := tx.Select("id").First(&exists, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return err
		}

		like := models.Like{UserID: userID, PostID: postID}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).Create(&like)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected > 0 {
			liked = true
		} else {
			if err := tx.Where("user_id = ? AND post_id = ?", userID, postID).
				Delete(&models.Like{}).Error; err != nil {
				return err
			}
			liked = false
		}

		return tx.Model(&models.Like{}).
			Where("post_id = ?", postID).
			Count(&likes).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return false, 0, err
		}
		return false, 0, models.NewUpstreamError(err)
	}

	cache.InvalidatePost(ctx, postID)
	return liked, likes, nil
}
