package server

import (
	"strings"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts/create. The body is either JSON with a
// text field or a multipart form carrying text plus an optional media file.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var text string
	media := models.NoMedia

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		text = c.FormValue("text")

		if header, err := c.FormFile("media"); err == nil && header != nil {
			content, readErr := readFormFile(header)
			if readErr != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("Could not read uploaded file"))
			}

			uploaded, upErr := s.mediaService.Upload(ctx, service.UploadMediaInput{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Content:     content,
			})
			if upErr != nil {
				return models.RespondWithError(c, models.StatusForError(upErr), upErr)
			}
			media = uploaded
		}
	} else {
		var req struct {
			Text string `json:"text"`
		}
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
		text = req.Text
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID: userID,
		Text:   text,
		Media:  media,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(presentPost(post))
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	posts, err := s.postService.ListPosts(ctx, service.ListPostsInput{
		ViewerID: currentUserID(c),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(presentPosts(posts))
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	posts, listErr := s.postService.ListUserPosts(ctx, userID, service.ListPostsInput{
		ViewerID: currentUserID(c),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if listErr != nil {
		return models.RespondWithError(c, models.StatusForError(listErr), listErr)
	}

	return c.JSON(presentPosts(posts))
}

// ToggleLike handles POST /api/posts/:id/like. Liking an already-liked post
// removes the like.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, likes, toggleErr := s.postService.ToggleLike(ctx, currentUserID(c), postID)
	if toggleErr != nil {
		return models.RespondWithError(c, models.StatusForError(toggleErr), toggleErr)
	}

	return c.JSON(fiber.Map{
		"liked": liked,
		"likes": likes,
	})
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	delErr := s.postService.DeletePost(ctx, service.DeletePostInput{
		UserID: currentUserID(c),
		PostID: postID,
	})
	if delErr != nil {
		return models.RespondWithError(c, models.StatusForError(delErr), delErr)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
