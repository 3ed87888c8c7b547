package cases

import (
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aingpt/aingpt-backend/internal/auth"
	"github.com/aingpt/aingpt-backend/pkg/models"
)

// UploadDocuments lets the case owner attach up to 10 PDF/PNG/JPEG files.
// Each file is validated, pushed to storage, then recorded as a
// case_documents row; per-file failures are reported in the result list
// without failing the whole batch.
//
// @Summary      Upload documents
// @Description  Owner uploads up to 10 files (PDF/PNG/JPEG, 10MB each)
// @Tags         cases
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        caseId   path     string true "case id (uuid)"
// @Param        files[]  formData file   true "files"
// @Success      201  {object}  map[string]interface{}  "per-file results"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Router       /cases/{caseId}/documents [post]
func (h *Handler) UploadDocuments(c *fiber.Ctx) error {
	userID := auth.MustUserID(c)
	caseID := c.Params("caseId")
	if _, err := uuid.Parse(caseID); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid case id")
	}

	var cs models.Case
	if err := h.db.Where("id = ? AND user_id = ?", caseID, userID).First(&cs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrForbidden
		}
		return fiber.ErrInternalServerError
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "multipart form required; use files[]")
	}
	files := form.File["files[]"]
	if len(files) == 0 {
		files = form.File["files"]
	}
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "files are required (use key: files[])")
	}
	if len(files) > 10 {
		return fiber.NewError(fiber.StatusBadRequest, "max 10 files allowed")
	}

	results := make([]fiber.Map, 0, len(files))

	for _, fh := range files {
		res := fiber.Map{
			"name": fh.Filename,
			"size": fh.Size,
		}

		if fh.Size <= 0 {
			res["error"] = "empty file"
			results = append(results, res)
			continue
		}
		if fh.Size > 10*1024*1024 {
			res["error"] = "max 10MB per file"
			results = append(results, res)
			continue
		}

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = mime.TypeByExtension(filepath.Ext(fh.Filename))
		}
		switch ct {
		case "application/pdf", "image/png", "image/jpeg":
			// ok
		default:
			res["error"] = "only PDF, PNG or JPEG are allowed"
			results = append(results, res)
			continue
		}

		f, err := fh.Open()
		if err != nil {
			res["error"] = "open failed"
			results = append(results, res)
			continue
		}

		key := h.sb.MakeObjectKey(caseID, fh.Filename)

		// Close per file; a deferred close would hold every handle until
		// the whole batch finished.
		uploadErr := h.sb.Upload(key, f, ct, fh.Size)
		f.Close()
		if uploadErr != nil {
			res["error"] = "upload failed"
			results = append(results, res)
			continue
		}

		rec := models.CaseDocument{
			CaseID:       cs.ID,
			DocumentPath: key,
			Mime:         ct,
			Size:         int(fh.Size),
			OriginalName: fh.Filename,
		}
		if err := h.db.Create(&rec).Error; err != nil {
			res["error"] = "database error"
			results = append(results, res)
			continue
		}

		res["id"] = rec.ID
		res["path"] = rec.DocumentPath
		results = append(results, res)
	}

	// 201 even when some items failed; caller checks per-item "error".
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"results": results})
}

// Download streams a case document by its original filename. Allowed for
// the case owner and for a lawyer with an acceptance on the case.
//
// @Summary      Download document
// @Description  Stream a document by original filename (owner or accepting lawyer)
// @Tags         cases
// @Security     BearerAuth
// @Produce      octet-stream
// @Param        caseId  path  string true "case id (uuid)"
// @Param        file    query string true "original filename"
// @Success      200  {file}    file
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /cases/{caseId}/download [get]
func (h *Handler) Download(c *fiber.Ctx) error {
	userID := auth.MustUserID(c)
	role := auth.MustRole(c)
	caseID := c.Params("caseId")
	if _, err := uuid.Parse(caseID); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid case id")
	}
	filename := strings.TrimSpace(c.Query("file"))
	if filename == "" {
		return fiber.NewError(fiber.StatusBadRequest, "file query parameter is required")
	}

	var cs models.Case
	if err := h.db.First(&cs, "id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}

	allowed := cs.UserID.String() == userID
	if !allowed && role == string(models.RoleLawyer) {
		var cnt int64
		if err := h.db.Model(&models.CaseAcceptance{}).
			Where("case_id = ? AND lawyer_id = ?", cs.ID, userID).
			Count(&cnt).Error; err != nil {
			return fiber.ErrInternalServerError
		}
		allowed = cnt > 0
	}
	if !allowed {
		return fiber.ErrForbidden
	}

	var doc models.CaseDocument
	if err := h.db.Where("case_id = ? AND original_name = ?", cs.ID, filename).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}

	body, ct, err := h.sb.Download(doc.DocumentPath)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if ct == "" {
		ct = doc.Mime
	}
	c.Set(fiber.HeaderContentType, ct)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.OriginalName+`"`)
	return c.Send(data)
}
