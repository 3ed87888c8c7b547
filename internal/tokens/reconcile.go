package tokens

import (
	"gorm.io/gorm"

	"github.com/aingpt/aingpt-backend/pkg/logger"
	"github.com/aingpt/aingpt-backend/pkg/models"
)

// Reconciler compares each account's token_balance against the sum of its
// ledger entries and logs any drift. Balances and ledger entries commit in
// the same transaction, so drift means manual intervention happened (or a
// bug) - the sweep exists to surface that, not to repair it.
type Reconciler struct {
	db *gorm.DB
}

func NewReconciler(db *gorm.DB) *Reconciler { return &Reconciler{db: db} }

type driftRow struct {
	ID        string
	Balance   int
	LedgerSum int
}

// Run executes one sweep over both ledgers. Intended to be scheduled via
// cron; safe to call concurrently with request traffic (read-only).
func (r *Reconciler) Run() {
	r.sweep(models.RoleUser, "user_tokens", "user_id")
	r.sweep(models.RoleLawyer, "lawyer_tokens", "lawyer_id")
}

func (r *Reconciler) sweep(role models.Role, ledgerTable, ownerCol string) {
	var rows []driftRow
	err := r.db.
		Table("users").
		Select("users.id AS id, users.token_balance AS balance, COALESCE(SUM(l.amount), 0) AS ledger_sum").
		Joins("LEFT JOIN "+ledgerTable+" l ON l."+ownerCol+" = users.id").
		Where("users.role = ?", role).
		Group("users.id").
		Having("users.token_balance <> COALESCE(SUM(l.amount), 0)").
		Scan(&rows).Error
	if err != nil {
		logger.Sugar().Errorw("ledger reconciliation failed", "ledger", ledgerTable, "error", err)
		return
	}
	for _, row := range rows {
		logger.Sugar().Warnw("ledger drift detected",
			"ledger", ledgerTable,
			"account", row.ID,
			"balance", row.Balance,
			"ledger_sum", row.LedgerSum,
		)
	}
	if len(rows) == 0 {
		logger.Sugar().Infow("ledger reconciliation clean", "ledger", ledgerTable)
	}
}
