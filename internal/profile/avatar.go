package profile

import (
	"errors"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aingpt/aingpt-backend/internal/auth"
	"github.com/aingpt/aingpt-backend/internal/storage"
	"github.com/aingpt/aingpt-backend/pkg/logger"
	"github.com/aingpt/aingpt-backend/pkg/models"
)

const maxAvatarSize = 2 * 1024 * 1024

type Handler struct {
	db *gorm.DB
	sb *storage.Supabase
}

func NewHandler(db *gorm.DB, sb *storage.Supabase) *Handler {
	return &Handler{db: db, sb: sb}
}

// UploadAvatar replaces the user's avatar image.
//
// @Summary      Upload avatar
// @Description  Replace the user's avatar (2MB, JPEG/PNG/GIF/WEBP)
// @Tags         profile
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        avatar  formData file true "avatar image"
// @Success      200  {object}  map[string]interface{}  "url, path"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /profile/avatar [post]
func (h *Handler) UploadAvatar(c *fiber.Ctx) error {
	return h.replaceAvatar(c, models.RoleUser)
}

// UploadLawyerAvatar replaces the lawyer's avatar image.
//
// @Summary      Upload lawyer avatar
// @Description  Replace the lawyer's avatar (2MB, JPEG/PNG/GIF/WEBP)
// @Tags         profile
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        avatar  formData file true "avatar image"
// @Success      200  {object}  map[string]interface{}  "url, path"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /profile/lawyer-avatar [post]
func (h *Handler) UploadLawyerAvatar(c *fiber.Ctx) error {
	return h.replaceAvatar(c, models.RoleLawyer)
}

// replaceAvatar uploads the new object first, then points the row at it.
// If the row update fails, the fresh object is deleted so nothing orphaned
// stays in the bucket; the previously referenced object is removed
// best-effort after the row moves on.
func (h *Handler) replaceAvatar(c *fiber.Ctx, role models.Role) error {
	userID := auth.MustUserID(c)

	fh, err := c.FormFile("avatar")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "avatar file is required")
	}
	if fh.Size <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "empty file")
	}
	if fh.Size > maxAvatarSize {
		return fiber.NewError(fiber.StatusBadRequest, "max 2MB allowed")
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(filepath.Ext(fh.Filename))
	}
	switch ct {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		// ok
	default:
		return fiber.NewError(fiber.StatusBadRequest, "only JPEG, PNG, GIF or WEBP are allowed")
	}

	var u models.User
	if err := h.db.Where("id = ? AND role = ?", userID, role).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}

	f, err := fh.Open()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	key := h.sb.MakeAvatarKey(userID, ext)

	if err := h.sb.Upload(key, f, ct, fh.Size); err != nil {
		logger.Sugar().Errorw("avatar upload failed", "user", userID, "error", err)
		return fiber.ErrInternalServerError
	}

	oldKey := u.AvatarKey
	if err := h.db.Model(&models.User{}).Where("id = ?", u.ID).
		Update("avatar_key", key).Error; err != nil {
		// The row still points at the old object; remove the fresh one.
		if delErr := h.sb.Delete(key); delErr != nil {
			logger.Sugar().Errorw("orphaned avatar cleanup failed", "key", key, "error", delErr)
		}
		return fiber.ErrInternalServerError
	}

	if oldKey != "" && oldKey != key {
		if err := h.sb.Delete(oldKey); err != nil {
			logger.Sugar().Warnw("old avatar cleanup failed", "key", oldKey, "error", err)
		}
	}

	url, err := h.sb.SignedURL(key, 3600)
	if err != nil {
		// The avatar is stored and recorded; the URL can be re-requested.
		logger.Sugar().Warnw("avatar sign failed", "key", key, "error", err)
		url = ""
	}

	return c.JSON(fiber.Map{"url": url, "path": key})
}
