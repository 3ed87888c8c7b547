package models

import (
	"time"

	"github.com/google/uuid"
)

/* =============================== Enums ================================== */

// Role defines the type of account in the system.
type Role string

const (
	RoleUser   Role = "user"
	RoleLawyer Role = "lawyer"
)

// Case status is free text on the row; these are the values the backend
// itself writes.
const (
	CaseFiled    = "filed"
	CaseAccepted = "accepted"
)

/* =============================== Entities =============================== */

// User represents a case filer or a lawyer. Both share the users table and
// carry a token balance; lawyers additionally have a LawyerProfile.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null" json:"role"`
	Name         string    `json:"name"`
	TokenBalance int       `gorm:"not null;default:0" json:"token_balance"`
	AvatarKey    string    `json:"avatar_key"`
	CreatedAt    time.Time `json:"created_at"`
}

// LawyerProfile holds the lawyer-only fields shown in the directory.
type LawyerProfile struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Jurisdiction    string    `json:"jurisdiction"`
	BarNumber       string    `json:"bar_number"`
	Specialty       string    `json:"specialty"`
	Bio             string    `json:"bio"`
	YearsExperience int       `json:"years_experience"`
	CreatedAt       time.Time `json:"created_at"`
}

// LawyerEducation is one education record on a lawyer profile.
type LawyerEducation struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LawyerID uuid.UUID `gorm:"type:uuid;not null;index" json:"lawyer_id"`
	School   string    `gorm:"not null" json:"school"`
	Degree   string    `json:"degree"`
	Year     int       `json:"year"`
}

// Case represents a legal case filed by a user.
type Case struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CaseNumber      string    `gorm:"uniqueIndex;not null" json:"case_number"`
	CaseType        string    `gorm:"not null" json:"case_type"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `json:"description"`
	PersonsInvolved string    `json:"persons_involved"`
	IsPublic        bool      `gorm:"not null;default:false" json:"is_public"`
	Status          string    `gorm:"type:varchar(30);not null;default:'filed'" json:"status"`
	CreatedAt       time.Time `json:"created_at"`

	// Relations
	Documents []CaseDocument `json:"documents,omitempty"`
	Requests  []CaseRequest  `json:"requests,omitempty"`
}

// CaseDocument is a file attached to a case. There is no DB-level cascade:
// document rows (and storage objects) are removed before their case.
type CaseDocument struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CaseID       uuid.UUID `gorm:"type:uuid;not null;index" json:"case_id"`
	DocumentPath string    `gorm:"not null" json:"document_path"`
	OriginalName string    `json:"original_name"`
	Mime         string    `gorm:"not null" json:"mime"`
	Size         int       `gorm:"not null" json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

// CaseRequest is a user-initiated proposal offering a specific lawyer the
// chance to take their case. At most one per (case, lawyer).
type CaseRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CaseID    uuid.UUID `gorm:"type:uuid;not null;index:idx_request_case_lawyer,unique" json:"case_id"`
	LawyerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_request_case_lawyer,unique" json:"lawyer_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CaseAcceptance is a lawyer-initiated claim on a case. At most one per
// (case, lawyer); no user-facing delete path, rows go only when their
// case is deleted.
type CaseAcceptance struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CaseID    uuid.UUID `gorm:"type:uuid;not null;index:idx_acceptance_case_lawyer,unique" json:"case_id"`
	LawyerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_acceptance_case_lawyer,unique" json:"lawyer_id"`
	Status    string    `gorm:"type:varchar(20);not null;default:'accepted'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// UserTokenEntry is an append-only ledger row for user balance changes.
// Amount is signed: negative = debit.
type UserTokenEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TransactionType string    `gorm:"type:varchar(40);not null" json:"transaction_type"`
	Amount          int       `gorm:"not null" json:"amount"`
	CreatedAt       time.Time `json:"created_at"`
}

func (UserTokenEntry) TableName() string { return "user_tokens" }

// LawyerTokenEntry is the lawyer-side ledger, same shape as user_tokens.
type LawyerTokenEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LawyerID        uuid.UUID `gorm:"type:uuid;not null;index" json:"lawyer_id"`
	TransactionType string    `gorm:"type:varchar(40);not null" json:"transaction_type"`
	Amount          int       `gorm:"not null" json:"amount"`
	CreatedAt       time.Time `json:"created_at"`
}

func (LawyerTokenEntry) TableName() string { return "lawyer_tokens" }

// LawyerReview is a user rating on a lawyer who accepted one of their cases.
type LawyerReview struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LawyerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_review_lawyer_user,unique" json:"lawyer_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_review_lawyer_user,unique" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
