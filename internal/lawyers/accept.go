package lawyers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aingpt/aingpt-backend/internal/auth"
	"github.com/aingpt/aingpt-backend/internal/tokens"
	"github.com/aingpt/aingpt-backend/pkg/database"
	"github.com/aingpt/aingpt-backend/pkg/models"
)

// Accept claims a case for the authenticated lawyer, debiting the
// acceptance fee. The case row is locked for the duration of the
// transaction, so the debit, ledger entry, acceptance row and the case
// status update commit together or not at all.
//
// @Summary      Accept case
// @Description  Lawyer accepts a case, debiting the acceptance fee
// @Tags         lawyers
// @Security     BearerAuth
// @Produce      json
// @Param        caseId  path string true "case id (uuid)"
// @Success      200  {object}  map[string]interface{}  "acceptance, newTokenBalance"
// @Failure      400  {object}  models.ErrorResponse  "insufficient tokens"
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse  "case already accepted by this lawyer"
// @Router       /lawyer/cases/{caseId}/accept [post]
func (h *Handler) Accept(c *fiber.Ctx) error {
	lawyerIDStr := auth.MustUserID(c)
	lawyerID, _ := uuid.Parse(lawyerIDStr)

	caseIDStr := c.Params("caseId")
	caseID, err := uuid.Parse(caseIDStr)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid case id")
	}

	tx := h.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	// 1) The case must exist; lock it while we claim it.
	var cs models.Case
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&cs, "id = ?", caseID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}

	// 2) Charge the lawyer.
	newBalance, err := tokens.Debit(tx, lawyerID, models.RoleLawyer, tokens.CostCaseAccept, tokens.TxCaseAcceptance)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, tokens.ErrInsufficient) {
			return fiber.NewError(fiber.StatusBadRequest, "insufficient tokens")
		}
		return fiber.ErrInternalServerError
	}

	// 3) Record the acceptance; the unique index on (case_id, lawyer_id)
	// rejects a second claim by the same lawyer race-free.
	acc := models.CaseAcceptance{
		CaseID:   caseID,
		LawyerID: lawyerID,
		Status:   models.CaseAccepted,
	}
	if err := tx.Create(&acc).Error; err != nil {
		tx.Rollback()
		if database.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "case already accepted by this lawyer")
		}
		return fiber.ErrInternalServerError
	}

	// 4) Reflect the acceptance on the case itself.
	if err := tx.Model(&models.Case{}).Where("id = ?", caseID).
		Update("status", models.CaseAccepted).Error; err != nil {
		tx.Rollback()
		return fiber.ErrInternalServerError
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"acceptance":      acc,
		"newTokenBalance": newBalance,
	})
}
