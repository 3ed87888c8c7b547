package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aingpt/aingpt-backend/internal/tokens"
	"github.com/aingpt/aingpt-backend/pkg/database"
	"github.com/aingpt/aingpt-backend/pkg/models"
	"github.com/aingpt/aingpt-backend/pkg/validation"
)

/* ================================ DTOs ================================= */

// Request body for /signup
type SignupRequest struct {
	Role     string `json:"role" validate:"required,oneof=user lawyer"`
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	// Optional, lawyers only
	Jurisdiction string `json:"jurisdiction" validate:"omitempty,jurisdiction"`
	BarNumber    string `json:"bar_number" validate:"omitempty,max=40"`
	Specialty    string `json:"specialty" validate:"omitempty,max=60"`
}

// Request body for /login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required"`
}

// Standard auth response
type AuthResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Profile response for /me
type ProfileResponse struct {
	ID           uuid.UUID             `json:"id"`
	Email        string                `json:"email"`
	Role         models.Role           `json:"role"`
	Name         string                `json:"name"`
	TokenBalance int                   `json:"token_balance"`
	AvatarKey    string                `json:"avatar_key,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	Lawyer       *models.LawyerProfile `json:"lawyer,omitempty"`
}

/* ============================== Handler ================================= */

type Handler struct{ db *gorm.DB }

func NewHandler(db *gorm.DB) *Handler { return &Handler{db: db} }

/* =============================== Signup ================================= */

// Signup registers a user or lawyer. The signup token grant and its ledger
// entry commit in the same transaction as the account row.
//
// @Summary      Sign up
// @Description  Register a new user or lawyer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  SignupRequest  true  "Signup payload"
// @Success      201      {object}  AuthResponse
// @Failure      400      {object}  models.ValidationErrorResponse
// @Failure      409      {object}  models.ErrorResponse  "email already exists"
// @Router       /signup [post]
func (h *Handler) Signup(c *fiber.Ctx) error {
	var in SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}

	// Normalize email
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)

	u := models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         models.Role(in.Role),
		Name:         strings.TrimSpace(in.Name),
	}

	tx := h.db.Begin()
	if err := tx.Create(&u).Error; err != nil {
		tx.Rollback()
		if database.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "email already exists")
		}
		return fiber.ErrInternalServerError
	}
	if u.Role == models.RoleLawyer {
		p := models.LawyerProfile{
			UserID:       u.ID,
			Jurisdiction: strings.ToUpper(strings.TrimSpace(in.Jurisdiction)),
			BarNumber:    strings.TrimSpace(in.BarNumber),
			Specialty:    strings.TrimSpace(in.Specialty),
		}
		if err := tx.Create(&p).Error; err != nil {
			tx.Rollback()
			return fiber.ErrInternalServerError
		}
	}
	if err := tokens.Credit(tx, u.ID, u.Role, tokens.SignupBonus, tokens.TxSignupBonus); err != nil {
		tx.Rollback()
		return fiber.ErrInternalServerError
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.ErrInternalServerError
	}

	token, _ := IssueToken(u.ID.String(), string(u.Role))
	return c.Status(fiber.StatusCreated).JSON(AuthResponse{Token: token, Role: string(u.Role)})
}

/* ================================ Login ================================= */

// @Summary      Login
// @Description  Authenticate and receive a JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  LoginRequest  true  "Login payload"
// @Success      200      {object}  AuthResponse
// @Failure      400      {object}  models.ValidationErrorResponse
// @Failure      401      {object}  models.ErrorResponse
// @Router       /login [post]
func (h *Handler) Login(c *fiber.Ctx) error {
	var in LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	var u models.User
	if err := h.db.Where("email = ?", in.Email).First(&u).Error; err != nil {
		return fiber.ErrUnauthorized
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return fiber.ErrUnauthorized
	}

	token, _ := IssueToken(u.ID.String(), string(u.Role))
	return c.JSON(AuthResponse{Token: token, Role: string(u.Role)})
}

/* ================================= Me =================================== */

// Me returns the authenticated account's profile, including the current
// token balance and the lawyer profile when one exists.
//
// @Summary      Current profile
// @Description  Return the authenticated account's profile including token balance
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  models.ErrorResponse
// @Router       /me [get]
func (h *Handler) Me(c *fiber.Ctx) error {
	userID := MustUserID(c)

	var u models.User
	if err := h.db.First(&u, "id = ?", userID).Error; err != nil {
		return fiber.ErrUnauthorized
	}

	resp := ProfileResponse{
		ID:           u.ID,
		Email:        u.Email,
		Role:         u.Role,
		Name:         u.Name,
		TokenBalance: u.TokenBalance,
		AvatarKey:    u.AvatarKey,
		CreatedAt:    u.CreatedAt,
	}
	if u.Role == models.RoleLawyer {
		var p models.LawyerProfile
		if err := h.db.First(&p, "user_id = ?", u.ID).Error; err == nil {
			resp.Lawyer = &p
		}
	}
	return c.JSON(resp)
}
