package server

import (
	"time"

	"ripple/internal/models"
	"ripple/internal/service"
)

// AuthorResponse is the public shape of a post or comment author.
type AuthorResponse struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	ProfileImage string `json:"profile_image"`
}

// PostResponse is the public shape of a post with its engagement counters.
type PostResponse struct {
	ID        uint           `json:"id"`
	Text      string         `json:"text"`
	MediaURL  string         `json:"media_url,omitempty"`
	MediaKind string         `json:"media_kind"`
	Author    AuthorResponse `json:"author"`
	Likes     int            `json:"likes"`
	Liked     bool           `json:"liked"`
	Comments  int            `json:"comments"`
	CreatedAt time.Time      `json:"created_at"`
}

// CommentResponse is the public shape of a comment.
type CommentResponse struct {
	ID        uint           `json:"id"`
	PostID    uint           `json:"post_id"`
	Text      string         `json:"text"`
	Author    AuthorResponse `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
}

// ProfileResponse is the public shape of a user profile. Email is only set
// when the viewer is the profile owner.
type ProfileResponse struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	Bio          string    `json:"bio"`
	ProfileImage string    `json:"profile_image"`
	PostCount    int64     `json:"post_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func presentAuthor(u models.User) AuthorResponse {
	image := u.ProfileImage
	if image == "" {
		image = models.DefaultProfileImage
	}
	return AuthorResponse{
		ID:           u.ID,
		Username:     u.Username,
		ProfileImage: image,
	}
}

func presentPost(p *models.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Text:      p.Text,
		MediaURL:  p.MediaURL,
		MediaKind: string(p.MediaKind),
		Author:    presentAuthor(p.User),
		Likes:     p.LikesCount,
		Liked:     p.Liked,
		Comments:  p.CommentsCount,
		CreatedAt: p.CreatedAt,
	}
}

func presentPosts(posts []models.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, presentPost(&posts[i]))
	}
	return out
}

func presentComment(cm *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        cm.ID,
		PostID:    cm.PostID,
		Text:      cm.Text,
		Author:    presentAuthor(cm.User),
		CreatedAt: cm.CreatedAt,
	}
}

func presentComments(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, presentComment(&comments[i]))
	}
	return out
}

func presentProfile(p *service.Profile) ProfileResponse {
	image := p.User.ProfileImage
	if image == "" {
		image = models.DefaultProfileImage
	}
	return ProfileResponse{
		ID:           p.User.ID,
		Username:     p.User.Username,
		Email:        p.User.Email,
		Bio:          p.User.Bio,
		ProfileImage: image,
		PostCount:    p.PostCount,
		CreatedAt:    p.User.CreatedAt,
	}
}
