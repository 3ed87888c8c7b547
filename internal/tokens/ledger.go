package tokens

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aingpt/aingpt-backend/pkg/models"
)

// Fixed costs of the pay-per-action economy.
const (
	CostCaseFiling  = 100
	CostCaseRequest = 5
	CostCaseAccept  = 5
	SignupBonus     = 500
)

// Ledger transaction_type labels.
const (
	TxSignupBonus    = "signup_bonus"
	TxCaseFiling     = "case_filing"
	TxCaseRequest    = "case_request"
	TxCaseAcceptance = "case_acceptance"
)

// ErrInsufficient is returned when a debit would take the balance negative.
var ErrInsufficient = errors.New("insufficient tokens")

// Debit atomically subtracts amount from the account's balance and appends
// the matching ledger entry. Both writes happen on tx, so a caller wrapping
// this in a transaction gets all-or-nothing semantics: there is no window
// where the balance moved but the ledger (or a later insert in the same
// flow) did not.
//
// The balance check is a conditional UPDATE, not a read-then-write, so two
// concurrent debits can never overdraw the account.
func Debit(tx *gorm.DB, accountID uuid.UUID, role models.Role, amount int, txType string) (int, error) {
	res := tx.Model(&models.User{}).
		Where("id = ? AND token_balance >= ?", accountID, amount).
		UpdateColumn("token_balance", gorm.Expr("token_balance - ?", amount))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrInsufficient
	}

	if err := appendEntry(tx, accountID, role, -amount, txType); err != nil {
		return 0, err
	}

	var u models.User
	if err := tx.Select("token_balance").First(&u, "id = ?", accountID).Error; err != nil {
		return 0, err
	}
	return u.TokenBalance, nil
}

// Credit adds amount to the account's balance and appends a ledger entry.
func Credit(tx *gorm.DB, accountID uuid.UUID, role models.Role, amount int, txType string) error {
	res := tx.Model(&models.User{}).
		Where("id = ?", accountID).
		UpdateColumn("token_balance", gorm.Expr("token_balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return appendEntry(tx, accountID, role, amount, txType)
}

// appendEntry writes to user_tokens or lawyer_tokens depending on the role
// of the account being charged.
func appendEntry(tx *gorm.DB, accountID uuid.UUID, role models.Role, amount int, txType string) error {
	if role == models.RoleLawyer {
		return tx.Create(&models.LawyerTokenEntry{
			LawyerID:        accountID,
			TransactionType: txType,
			Amount:          amount,
		}).Error
	}
	return tx.Create(&models.UserTokenEntry{
		UserID:          accountID,
		TransactionType: txType,
		Amount:          amount,
	}).Error
}
