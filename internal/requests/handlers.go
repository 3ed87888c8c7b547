package requests

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aingpt/aingpt-backend/internal/auth"
	"github.com/aingpt/aingpt-backend/internal/tokens"
	"github.com/aingpt/aingpt-backend/pkg/database"
	"github.com/aingpt/aingpt-backend/pkg/models"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler { return &Handler{db: db} }

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

/* ========================= Create case request ========================== */

type createReq struct {
	CaseID   string `json:"case_id"`
	LawyerID string `json:"lawyer_id"`
}

// Create proposes the user's own case to a lawyer, debiting the request
// fee. The debit, ledger entry and request row commit in one transaction:
// a duplicate (case, lawyer) pair hits the unique index, the transaction
// rolls back, and the requester is not charged.
//
// @Summary      Create case request
// @Description  User proposes their own case to a lawyer, debiting the request fee
// @Tags         case-requests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  createReq  true  "Request payload"
// @Success      201  {object}  map[string]interface{}  "request, newTokenBalance"
// @Failure      400  {object}  models.ErrorResponse  "insufficient tokens"
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse  "request already exists for this lawyer"
// @Router       /case-requests [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	userIDStr := auth.MustUserID(c)

	var in createReq
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	in.CaseID = strings.TrimSpace(in.CaseID)
	in.LawyerID = strings.TrimSpace(in.LawyerID)
	if in.CaseID == "" || in.LawyerID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "case_id and lawyer_id are required")
	}

	caseID, err := uuid.Parse(in.CaseID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid case_id")
	}
	lawyerID, err := uuid.Parse(in.LawyerID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lawyer_id")
	}
	userID, _ := uuid.Parse(userIDStr)

	tx := h.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	// 1) The case must exist and belong to the requester.
	var cs models.Case
	if err := tx.First(&cs, "id = ?", caseID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}
	if cs.UserID != userID {
		tx.Rollback()
		return fiber.ErrForbidden
	}

	// 2) The target must be a lawyer account.
	var cnt int64
	if err := tx.Model(&models.User{}).
		Where("id = ? AND role = ?", lawyerID, models.RoleLawyer).
		Count(&cnt).Error; err != nil {
		tx.Rollback()
		return fiber.ErrInternalServerError
	}
	if cnt == 0 {
		tx.Rollback()
		return fiber.NewError(fiber.StatusNotFound, "lawyer not found")
	}

	// 3) Charge, then insert. The unique index on (case_id, lawyer_id)
	// makes the duplicate check race-free.
	newBalance, err := tokens.Debit(tx, userID, models.RoleUser, tokens.CostCaseRequest, tokens.TxCaseRequest)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, tokens.ErrInsufficient) {
			return fiber.NewError(fiber.StatusBadRequest, "insufficient tokens")
		}
		return fiber.ErrInternalServerError
	}

	req := models.CaseRequest{
		CaseID:   caseID,
		LawyerID: lawyerID,
		UserID:   userID,
	}
	if err := tx.Create(&req).Error; err != nil {
		tx.Rollback()
		if database.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "request already exists for this lawyer")
		}
		return fiber.ErrInternalServerError
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"request":         req,
		"newTokenBalance": newBalance,
	})
}

/* ======================== Withdraw / reject ============================= */

// Delete withdraws (requester) or rejects (targeted lawyer) a request.
// No refund is issued either way. The locked read and the delete share one
// transaction so two concurrent deletes cannot both pass the party check.
//
// @Summary      Delete request
// @Description  Requester withdraws or targeted lawyer rejects; no refund
// @Tags         case-requests
// @Security     BearerAuth
// @Produce      json
// @Param        requestId  path string true "request id (uuid)"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /case-requests/{requestId} [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	userID := auth.MustUserID(c)
	id := c.Params("requestId")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}

	tx := h.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var req models.CaseRequest
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}
	if req.UserID.String() != userID && req.LawyerID.String() != userID {
		tx.Rollback()
		return fiber.ErrForbidden
	}

	if err := tx.Delete(&models.CaseRequest{}, "id = ?", req.ID).Error; err != nil {
		tx.Rollback()
		return fiber.ErrInternalServerError
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"ok": true})
}

/* ============================== Listings ================================ */

type outgoingItem struct {
	ID         uuid.UUID `json:"id"`
	CaseID     uuid.UUID `json:"case_id"`
	CaseTitle  string    `json:"case_title"`
	LawyerID   uuid.UUID `json:"lawyer_id"`
	LawyerName string    `json:"lawyer_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListMine returns the user's outgoing requests with case and lawyer names.
//
// @Summary      My requests
// @Description  User's outgoing requests (paginated)
// @Tags         case-requests
// @Security     BearerAuth
// @Produce      json
// @Param        page      query int false "page"
// @Param        pageSize  query int false "pageSize"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  models.ErrorResponse
// @Router       /case-requests/mine [get]
func (h *Handler) ListMine(c *fiber.Ctx) error {
	userID := auth.MustUserID(c)
	page, size := parsePage(c)

	q := h.db.Table("case_requests").
		Select(`case_requests.id, case_requests.case_id, cases.title AS case_title,
          case_requests.lawyer_id, users.name AS lawyer_name, case_requests.created_at`).
		Joins("JOIN cases ON cases.id = case_requests.case_id").
		Joins("JOIN users ON users.id = case_requests.lawyer_id").
		Where("case_requests.user_id = ?", userID)

	var total int64
	if err := h.db.Model(&models.CaseRequest{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	rows := make([]outgoingItem, 0, size)
	if err := q.Order("case_requests.created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Scan(&rows).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"page": page, "pageSize": size, "total": total,
		"pages": int(math.Ceil(float64(total) / float64(size))),
		"items": rows,
	})
}

type incomingItem struct {
	ID        uuid.UUID `json:"id"`
	CaseID    uuid.UUID `json:"case_id"`
	CaseTitle string    `json:"case_title"`
	CaseType  string    `json:"case_type"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

// ListIncoming returns the requests targeting the authenticated lawyer.
//
// @Summary      Incoming requests
// @Description  Requests targeting the authenticated lawyer (paginated)
// @Tags         case-requests
// @Security     BearerAuth
// @Produce      json
// @Param        page      query int false "page"
// @Param        pageSize  query int false "pageSize"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  models.ErrorResponse
// @Router       /lawyer/case-requests [get]
func (h *Handler) ListIncoming(c *fiber.Ctx) error {
	lawyerID := auth.MustUserID(c)
	page, size := parsePage(c)

	q := h.db.Table("case_requests").
		Select(`case_requests.id, case_requests.case_id, cases.title AS case_title,
          cases.case_type, case_requests.user_id, users.name AS user_name,
          case_requests.created_at`).
		Joins("JOIN cases ON cases.id = case_requests.case_id").
		Joins("JOIN users ON users.id = case_requests.user_id").
		Where("case_requests.lawyer_id = ?", lawyerID)

	var total int64
	if err := h.db.Model(&models.CaseRequest{}).
		Where("lawyer_id = ?", lawyerID).Count(&total).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	rows := make([]incomingItem, 0, size)
	if err := q.Order("case_requests.created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Scan(&rows).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"page": page, "pageSize": size, "total": total,
		"pages": int(math.Ceil(float64(total) / float64(size))),
		"items": rows,
	})
}
