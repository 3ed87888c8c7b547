package lawyers

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
	"github.com/aingpt/aingpt-backend/pkg/database"
	"github.com/aingpt/aingpt-backend/pkg/models"
	"github.com/aingpt/aingpt-backend/pkg/validation"
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

/* ============================== Directory =============================== */

type directoryItem struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	AvatarKey    string    `json:"avatar_key"`
	Jurisdiction string    `json:"jurisdiction"`
	Specialty    string    `json:"specialty"`
	AvgRating    float64   `json:"avg_rating"`
	ReviewCount  int64     `json:"review_count"`
}

// List returns the lawyer directory with rating aggregates, optionally
// filtered by specialty or jurisdiction.
//
// @Summary      Directory
// @Description  Lawyer directory with rating aggregates
// @Tags         lawyers
// @Produce      json
// @Param        page          query int    false "page"
// @Param        pageSize      query int    false "pageSize"
// @Param        specialty     query string false "specialty"
// @Param        jurisdiction  query string false "ISO-3166 alpha-2"
// @Success      200  {object}  map[string]interface{}
// @Router       /lawyers [get]
func (h *Handler) List(c *fiber.Ctx) error {
	page, size := parsePage(c)
	specialty := strings.TrimSpace(c.Query("specialty"))
	jurisdiction := strings.TrimSpace(strings.ToUpper(c.Query("jurisdiction")))

	// Filters apply to both the count and the page query.
	filtered := func(q *gorm.DB) *gorm.DB {
		q = q.Joins("LEFT JOIN lawyer_profiles ON lawyer_profiles.user_id = users.id").
			Where("users.role = ?", models.RoleLawyer)
		if specialty != "" {
			q = q.Where("lawyer_profiles.specialty = ?", specialty)
		}
		if jurisdiction != "" {
			q = q.Where("lawyer_profiles.jurisdiction = ?", jurisdiction)
		}
		return q
	}

	var total int64
	if err := filtered(h.db.Table("users")).Count(&total).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	rows := make([]directoryItem, 0, size)
	if err := filtered(h.db.Table("users")).
		Select(`users.id, users.name, users.avatar_key,
          lawyer_profiles.jurisdiction, lawyer_profiles.specialty,
          COALESCE(AVG(lawyer_reviews.rating), 0) AS avg_rating,
          COUNT(lawyer_reviews.id) AS review_count`).
		Joins("LEFT JOIN lawyer_reviews ON lawyer_reviews.lawyer_id = users.id").
		Group("users.id, users.name, users.avatar_key, lawyer_profiles.jurisdiction, lawyer_profiles.specialty").
		Order("avg_rating DESC, users.name ASC").
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

/* =============================== Profile ================================ */

type reviewItem struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type profileResponse struct {
	ID            uuid.UUID                `json:"id"`
	Name          string                   `json:"name"`
	AvatarKey     string                   `json:"avatar_key"`
	Jurisdiction  string                   `json:"jurisdiction"`
	BarNumber     string                   `json:"bar_number"`
	Specialty     string                   `json:"specialty"`
	Bio           string                   `json:"bio"`
	YearsExp      int                      `json:"years_experience"`
	AvgRating     float64                  `json:"avg_rating"`
	ReviewCount   int64                    `json:"review_count"`
	AcceptedCases int64                    `json:"accepted_cases"`
	Educations    []models.LawyerEducation `json:"educations"`
	Reviews       []reviewItem             `json:"reviews"`
}

// Get returns a lawyer's public profile: bio, education, rating aggregates,
// accepted-case count and recent reviews.
//
// @Summary      Lawyer profile
// @Description  Public profile with education, ratings and recent reviews
// @Tags         lawyers
// @Produce      json
// @Param        lawyerId  path string true "lawyer id (uuid)"
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /lawyers/{lawyerId} [get]
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Params("lawyerId")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lawyer id")
	}

	var u models.User
	if err := h.db.Where("id = ? AND role = ?", id, models.RoleLawyer).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}

	resp := profileResponse{
		ID:        u.ID,
		Name:      u.Name,
		AvatarKey: u.AvatarKey,
	}

	var p models.LawyerProfile
	if err := h.db.First(&p, "user_id = ?", u.ID).Error; err == nil {
		resp.Jurisdiction = p.Jurisdiction
		resp.BarNumber = p.BarNumber
		resp.Specialty = p.Specialty
		resp.Bio = p.Bio
		resp.YearsExp = p.YearsExperience
	}

	if err := h.db.Order("year DESC").
		Find(&resp.Educations, "lawyer_id = ?", u.ID).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	if resp.Educations == nil {
		resp.Educations = []models.LawyerEducation{}
	}

	var agg struct {
		AvgRating   float64
		ReviewCount int64
	}
	if err := h.db.Model(&models.LawyerReview{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(id) AS review_count").
		Where("lawyer_id = ?", u.ID).
		Scan(&agg).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	resp.AvgRating = agg.AvgRating
	resp.ReviewCount = agg.ReviewCount

	if err := h.db.Model(&models.CaseAcceptance{}).
		Where("lawyer_id = ?", u.ID).
		Count(&resp.AcceptedCases).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	reviews := make([]reviewItem, 0, 20)
	if err := h.db.Table("lawyer_reviews").
		Select("lawyer_reviews.id, users.name AS user_name, lawyer_reviews.rating, lawyer_reviews.comment, lawyer_reviews.created_at").
		Joins("JOIN users ON users.id = lawyer_reviews.user_id").
		Where("lawyer_reviews.lawyer_id = ?", u.ID).
		Order("lawyer_reviews.created_at DESC").
		Limit(20).
		Scan(&reviews).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	resp.Reviews = reviews

	return c.JSON(resp)
}

/* ============================ Accepted cases ============================ */

type acceptedCaseItem struct {
	ID         uuid.UUID `json:"id"`
	CaseNumber string    `json:"case_number"`
	CaseType   string    `json:"case_type"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// ListAccepted returns the cases the authenticated lawyer has claimed.
//
// @Summary      Accepted cases
// @Description  Cases the authenticated lawyer accepted (paginated)
// @Tags         lawyers
// @Security     BearerAuth
// @Produce      json
// @Param        page      query int false "page"
// @Param        pageSize  query int false "pageSize"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  models.ErrorResponse
// @Router       /lawyer/cases [get]
func (h *Handler) ListAccepted(c *fiber.Ctx) error {
	lawyerID := auth.MustUserID(c)
	page, size := parsePage(c)

	var total int64
	if err := h.db.Model(&models.CaseAcceptance{}).
		Where("lawyer_id = ?", lawyerID).Count(&total).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	rows := make([]acceptedCaseItem, 0, size)
	if err := h.db.Table("case_acceptances").
		Select(`cases.id, cases.case_number, cases.case_type, cases.title, cases.status,
          case_acceptances.created_at AS accepted_at`).
		Joins("JOIN cases ON cases.id = case_acceptances.case_id").
		Where("case_acceptances.lawyer_id = ?", lawyerID).
		Order("case_acceptances.created_at DESC").
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

/* =============================== Reviews ================================ */

type createReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// CreateReview lets a user rate a lawyer who accepted one of their cases.
// One review per (lawyer, user), enforced by the unique index.
//
// @Summary      Create review
// @Description  Review a lawyer who accepted one of the reviewer's cases
// @Tags         lawyers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        lawyerId  path string              true "lawyer id (uuid)"
// @Param        payload   body createReviewRequest true "Review payload"
// @Success      201  {object}  models.LawyerReview
// @Failure      403  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse  "you already reviewed this lawyer"
// @Router       /lawyers/{lawyerId}/reviews [post]
func (h *Handler) CreateReview(c *fiber.Ctx) error {
	userIDStr := auth.MustUserID(c)
	userID, _ := uuid.Parse(userIDStr)

	lawyerIDStr := c.Params("lawyerId")
	lawyerID, err := uuid.Parse(lawyerIDStr)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lawyer id")
	}

	var in createReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	// Only users whose case this lawyer accepted may review them.
	var cnt int64
	if err := h.db.Table("case_acceptances").
		Joins("JOIN cases ON cases.id = case_acceptances.case_id").
		Where("case_acceptances.lawyer_id = ? AND cases.user_id = ?", lawyerID, userID).
		Count(&cnt).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	if cnt == 0 {
		return fiber.ErrForbidden
	}

	rev := models.LawyerReview{
		LawyerID: lawyerID,
		UserID:   userID,
		Rating:   in.Rating,
		Comment:  strings.TrimSpace(in.Comment),
	}
	if err := h.db.Create(&rev).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "you already reviewed this lawyer")
		}
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(rev)
}
