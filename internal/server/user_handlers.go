package server

import (
	"strings"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/users/profile/:id
func (s *Server) GetProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, getErr := s.userService.GetProfile(ctx, userID, currentUserID(c))
	if getErr != nil {
		return models.RespondWithError(c, models.StatusForError(getErr), getErr)
	}

	return c.JSON(presentProfile(profile))
}

// UpdateProfile handles PUT /api/users/profile. Accepts JSON with a bio, or
// a multipart form carrying a bio and an optional profile image file.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	in := service.UpdateProfileInput{UserID: userID}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if form, err := c.MultipartForm(); err == nil && form != nil {
			if vals, ok := form.Value["bio"]; ok && len(vals) > 0 {
				bio := vals[0]
				in.Bio = &bio
			}
		}

		if header, err := c.FormFile("image"); err == nil && header != nil {
			content, readErr := readFormFile(header)
			if readErr != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("Could not read uploaded file"))
			}

			media, upErr := s.mediaService.Upload(ctx, service.UploadMediaInput{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Content:     content,
			})
			if upErr != nil {
				return models.RespondWithError(c, models.StatusForError(upErr), upErr)
			}
			if media.Kind != models.MediaImage {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("Profile image must be an image file"))
			}
			in.ProfileImage = media.URL
		}
	} else {
		var req struct {
			Bio *string `json:"bio"`
		}
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
		in.Bio = req.Bio
	}

	profile, err := s.userService.UpdateProfile(ctx, in)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(presentProfile(profile))
}
