package server

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

const maxImageSize = 10 << 20 // 10 MiB

// saveUploadedImage stores the image under the upload dir with a generated
// name and returns its public URL path.
func (s *Server) saveUploadedImage(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	if file.Size > maxImageSize {
		return "", models.NewValidationError("image too large (max 10MB)")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", models.NewValidationError("unsupported image type")
	}

	uploadDir := s.config.UploadDir
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	name := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(uploadDir, name)); err != nil {
		return "", models.NewInternalError(err)
	}
	return "/uploads/" + name, nil
}

// CreatePost handles POST /api/posts. Accepts JSON {text, image} where image
// is an already-hosted URL, or a multipart form with a text field and an
// optional image file.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var text, imageURL string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vals := form.Value["text"]; len(vals) > 0 {
			text = vals[0]
		}
		if file, err := c.FormFile("image"); err == nil && file != nil {
			url, saveErr := s.saveUploadedImage(c, file)
			if saveErr != nil {
				return models.RespondWithAppError(c, saveErr)
			}
			imageURL = url
		}
	} else {
		var req struct {
			Text  string `json:"text"`
			Image string `json:"image"`
		}
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
		text = req.Text
		imageURL = strings.TrimSpace(req.Image)
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:   userID,
		Text:     text,
		ImageURL: imageURL,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts. The feed is public; a valid bearer token
// personalizes the liked flags.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	viewerID, _ := s.optionalUserID(c)

	in := service.ListPostsInput{
		Limit:         p.Limit,
		Offset:        p.Offset,
		CurrentUserID: viewerID,
		Filter:        service.PostFilterAll,
	}
	if author := c.QueryInt("author", 0); author > 0 {
		in.AuthorID = uint(author)
	}

	posts, err := s.postService.ListPosts(c.Context(), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// GetMyPosts handles GET /api/posts/feed/mine.
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Limit:         p.Limit,
		Offset:        p.Offset,
		CurrentUserID: currentUserID(c),
		Filter:        service.PostFilterMine,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// GetLikedPosts handles GET /api/posts/feed/liked.
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Limit:         p.Limit,
		Offset:        p.Offset,
		CurrentUserID: currentUserID(c),
		Filter:        service.PostFilterLiked,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	post, svcErr := s.postService.GetPost(c.Context(), id, viewerID)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(post)
}

// ToggleLike handles PUT /api/posts/:id/like.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, svcErr := s.postService.ToggleLike(c.Context(), currentUserID(c), id)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		UserID: currentUserID(c),
		PostID: id,
	}); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("post %d deleted", id),
	})
}
