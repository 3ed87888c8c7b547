package cases

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aingpt/aingpt-backend/internal/auth"
	"github.com/aingpt/aingpt-backend/internal/storage"
	"github.com/aingpt/aingpt-backend/internal/tokens"
	"github.com/aingpt/aingpt-backend/pkg/database"
	"github.com/aingpt/aingpt-backend/pkg/logger"
	"github.com/aingpt/aingpt-backend/pkg/models"
	"github.com/aingpt/aingpt-backend/pkg/sanitize"
	"github.com/aingpt/aingpt-backend/pkg/validation"
)

/* =============================== DTOs ================================== */

type FileCaseRequest struct {
	CaseNumber      string `json:"caseNumber" validate:"required,casenum"`
	CaseType        string `json:"caseType" validate:"required,max=40"`
	Title           string `json:"title" validate:"required,max=120"`
	Description     string `json:"description" validate:"max=4000"`
	PersonsInvolved string `json:"personsInvolved" validate:"max=500"`
	IsPublic        bool   `json:"isPublic"`
}

type UpdateCaseRequest struct {
	Status   *string `json:"status" validate:"omitempty,max=30"`
	IsPublic *bool   `json:"isPublic"`
}

type Handler struct {
	db *gorm.DB
	sb *storage.Supabase
}

func NewHandler(db *gorm.DB, sb *storage.Supabase) *Handler {
	return &Handler{db: db, sb: sb}
}

func parsePage(c *fiber.Ctx) (page, size int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	size, _ = strconv.Atoi(c.Query("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 50 {
		size = 10
	}
	return
}

/* ============================ File a case =============================== */

// File creates a case and debits the filing fee in a single transaction.
// Either the debit, the ledger entry and the case row all commit, or none
// of them do; a duplicate case number therefore cannot leave the filer
// charged.
//
// @Summary      File a case
// @Description  User files a case, debiting the filing fee
// @Tags         cases
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  FileCaseRequest  true  "Case payload"
// @Success      200  {object}  map[string]interface{}  "case, newTokenBalance"
// @Failure      400  {object}  models.ErrorResponse  "insufficient tokens / duplicate case number"
// @Failure      401  {object}  models.ErrorResponse
// @Router       /cases/file [post]
func (h *Handler) File(c *fiber.Ctx) error {
	var in FileCaseRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	userID, _ := uuid.Parse(auth.MustUserID(c))

	cs := models.Case{
		UserID:          userID,
		CaseNumber:      strings.TrimSpace(in.CaseNumber),
		CaseType:        strings.TrimSpace(in.CaseType),
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		PersonsInvolved: strings.TrimSpace(in.PersonsInvolved),
		IsPublic:        in.IsPublic,
		Status:          models.CaseFiled,
	}

	tx := h.db.Begin()
	newBalance, err := tokens.Debit(tx, userID, models.RoleUser, tokens.CostCaseFiling, tokens.TxCaseFiling)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, tokens.ErrInsufficient) {
			return fiber.NewError(fiber.StatusBadRequest, "insufficient tokens")
		}
		return fiber.ErrInternalServerError
	}
	if err := tx.Create(&cs).Error; err != nil {
		tx.Rollback()
		if database.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusBadRequest, "case number already exists")
		}
		return fiber.ErrInternalServerError
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{"case": cs, "newTokenBalance": newBalance})
}

/* ============================== Listings ================================ */

type caseWithCounts struct {
	ID         uuid.UUID `json:"id"`
	CaseNumber string    `json:"case_number"`
	CaseType   string    `json:"case_type"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	IsPublic   bool      `json:"is_public"`
	CreatedAt  time.Time `json:"created_at"`
	Documents  int64     `json:"documents"`
}

// ListMine returns the authenticated user's cases with document counts.
//
// @Summary      My cases
// @Description  User lists their own cases with document counts (paginated)
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Param        page      query int false "page"
// @Param        pageSize  query int false "pageSize"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  models.ErrorResponse
// @Router       /cases/mine [get]
func (h *Handler) ListMine(c *fiber.Ctx) error {
	userID := auth.MustUserID(c)
	page, size := parsePage(c)

	var total int64
	if err := h.db.Model(&models.Case{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	rows := make([]caseWithCounts, 0, size)
	if err := h.db.
		Table("cases").
		Select(`cases.id, cases.case_number, cases.case_type, cases.title, cases.status,
          cases.is_public, cases.created_at, COUNT(case_documents.id) AS documents`).
		Joins("LEFT JOIN case_documents ON case_documents.case_id = cases.id").
		Where("cases.user_id = ?", userID).
		Group("cases.id").
		Order("cases.created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Scan(&rows).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	if rows == nil {
		rows = []caseWithCounts{}
	}

	return c.JSON(fiber.Map{
		"page": page, "pageSize": size, "total": total,
		"pages": int(math.Ceil(float64(total) / float64(size))),
		"items": rows,
	})
}

type publicCaseItem struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CaseType  string    `json:"case_type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Preview   string    `json:"preview"`
}

// ListPublic returns the public case directory: cases whose owners marked
// them public, with PII-redacted description previews.
//
// @Summary      Public cases
// @Description  Public case directory with redacted previews
// @Tags         cases
// @Produce      json
// @Param        page      query int    false "page"
// @Param        pageSize  query int    false "pageSize"
// @Param        type      query string false "case type"
// @Success      200  {object}  map[string]interface{}
// @Router       /cases [get]
func (h *Handler) ListPublic(c *fiber.Ctx) error {
	page, size := parsePage(c)
	caseType := strings.TrimSpace(c.Query("type"))

	dbq := h.db.Model(&models.Case{}).Where("is_public = ?", true)
	if caseType != "" {
		dbq = dbq.Where("case_type = ?", caseType)
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	var list []models.Case
	if err := dbq.Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&list).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	items := make([]publicCaseItem, 0, len(list))
	for _, cs := range list {
		items = append(items, publicCaseItem{
			ID:        cs.ID,
			Title:     cs.Title,
			CaseType:  cs.CaseType,
			Status:    cs.Status,
			CreatedAt: cs.CreatedAt,
			Preview:   sanitize.Summary(sanitize.RedactPII(cs.Description), 240),
		})
	}

	return c.JSON(fiber.Map{
		"page": page, "pageSize": size, "total": total,
		"pages": int(math.Ceil(float64(total) / float64(size))),
		"items": items,
	})
}

/* =============================== Detail ================================= */

// GetDetail returns an owned case with its documents and outgoing requests.
//
// @Summary      Case detail
// @Description  Owner gets their case with documents and requests
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Param        caseId  path string true "case id (uuid)"
// @Success      200  {object}  models.Case
// @Failure      404  {object}  models.ErrorResponse
// @Router       /cases/{caseId} [get]
func (h *Handler) GetDetail(c *fiber.Ctx) error {
	userID := auth.MustUserID(c)
	id := c.Params("caseId")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid case id")
	}

	var cs models.Case
	err := h.db.
		Where("id = ? AND user_id = ?", id, userID).
		Preload("Documents", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Requests", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		First(&cs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}

	if cs.Documents == nil {
		cs.Documents = []models.CaseDocument{}
	}
	if cs.Requests == nil {
		cs.Requests = []models.CaseRequest{}
	}

	return c.JSON(cs)
}

/* =============================== Update ================================= */

// Update lets the owner change the status text or toggle visibility.
//
// @Summary      Update case
// @Description  Owner updates status or visibility
// @Tags         cases
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        caseId   path string            true "case id (uuid)"
// @Param        payload  body UpdateCaseRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /cases/{caseId} [patch]
func (h *Handler) Update(c *fiber.Ctx) error {
	userID := auth.MustUserID(c)
	id := c.Params("caseId")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid case id")
	}

	var in UpdateCaseRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}
	updates := map[string]any{}
	if in.Status != nil {
		s := strings.TrimSpace(*in.Status)
		if s == "" {
			return fiber.NewError(fiber.StatusBadRequest, "status must not be empty")
		}
		updates["status"] = s
	}
	if in.IsPublic != nil {
		updates["is_public"] = *in.IsPublic
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "nothing to update")
	}

	res := h.db.Model(&models.Case{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return fiber.ErrInternalServerError
	}
	if res.RowsAffected == 0 {
		return fiber.ErrNotFound
	}
	return c.JSON(fiber.Map{"ok": true})
}

/* =============================== Delete ================================= */

// Delete removes a case: document, request and acceptance rows first, then
// the case row, in one transaction. Storage objects are bulk-deleted only
// after the commit succeeds; a storage failure at that point is logged,
// never surfaced, since the authoritative rows are already gone.
//
// @Summary      Delete case
// @Description  Owner deletes a case with its documents, requests and acceptances
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Param        caseId  path string true "case id (uuid)"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /cases/{caseId} [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	userID := auth.MustUserID(c)
	id := c.Params("caseId")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid case id")
	}

	var cs models.Case
	if err := h.db.First(&cs, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}
	if cs.UserID.String() != userID {
		return fiber.ErrForbidden
	}

	var docs []models.CaseDocument
	if err := h.db.Find(&docs, "case_id = ?", cs.ID).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	tx := h.db.Begin()
	// Documents must go before their case; there is no DB-level cascade.
	if err := tx.Delete(&models.CaseDocument{}, "case_id = ?", cs.ID).Error; err != nil {
		tx.Rollback()
		return fiber.ErrInternalServerError
	}
	if err := tx.Delete(&models.CaseRequest{}, "case_id = ?", cs.ID).Error; err != nil {
		tx.Rollback()
		return fiber.ErrInternalServerError
	}
	// Acceptances too; an orphaned acceptance would keep counting toward
	// the lawyer's accepted-case total.
	if err := tx.Delete(&models.CaseAcceptance{}, "case_id = ?", cs.ID).Error; err != nil {
		tx.Rollback()
		return fiber.ErrInternalServerError
	}
	if err := tx.Delete(&models.Case{}, "id = ?", cs.ID).Error; err != nil {
		tx.Rollback()
		return fiber.ErrInternalServerError
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.ErrInternalServerError
	}

	if h.sb != nil && len(docs) > 0 {
		keys := make([]string, 0, len(docs))
		for _, d := range docs {
			keys = append(keys, d.DocumentPath)
		}
		if err := h.sb.BulkDelete(keys); err != nil {
			logger.Sugar().Errorw("case document cleanup failed",
				"case", cs.ID, "keys", len(keys), "error", err)
		}
	}

	return c.JSON(fiber.Map{"ok": true})
}
