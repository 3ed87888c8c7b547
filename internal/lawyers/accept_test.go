package lawyers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aingpt/aingpt-backend/internal/tokens"
	"github.com/aingpt/aingpt-backend/pkg/models"
)

/* ===== helpers ===== */

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	_ = godotenv.Load()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.LawyerProfile{}, &models.LawyerEducation{},
		&models.Case{}, &models.CaseAcceptance{},
		&models.UserTokenEntry{}, &models.LawyerTokenEntry{},
		&models.LawyerReview{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		sql := `
TRUNCATE TABLE
	lawyer_reviews,
	case_acceptances,
	cases,
	lawyer_educations,
	lawyer_profiles,
	user_tokens,
	lawyer_tokens,
	users
RESTART IDENTITY CASCADE`
		if err := db.Exec(sql).Error; err != nil {
			t.Logf("truncate failed (ignored): %v", err)
		}
	})

	return db
}

func injectAuth(userID uuid.UUID, role string) fiber.Handler {
	id := userID.String()
	return func(c *fiber.Ctx) error {
		c.Locals("userID", id)
		c.Locals("role", role)
		return c.Next()
	}
}

func newTestApp(h *Handler, userID uuid.UUID, role string) *fiber.App {
	app := fiber.New()
	app.Use(injectAuth(userID, role))
	app.Get("/api/lawyers", h.List)
	app.Get("/api/lawyers/:lawyerId", h.Get)
	app.Post("/api/lawyers/:lawyerId/reviews", h.CreateReview)
	app.Get("/api/lawyer/cases", h.ListAccepted)
	app.Post("/api/lawyer/cases/:caseId/accept", h.Accept)
	return app
}

func seedLawyer(t *testing.T, db *gorm.DB, balance int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	if err := db.Create(&models.User{
		ID: id, Email: fmt.Sprintf("l+%s@test.local", uuid.NewString()),
		PasswordHash: "x", Role: models.RoleLawyer, Name: "L", TokenBalance: balance,
	}).Error; err != nil {
		t.Fatal(err)
	}
	return id
}

func seedCase(t *testing.T, db *gorm.DB) (ownerID, caseID uuid.UUID) {
	t.Helper()
	ownerID = uuid.New()
	if err := db.Create(&models.User{
		ID: ownerID, Email: fmt.Sprintf("u+%s@test.local", uuid.NewString()),
		PasswordHash: "x", Role: models.RoleUser, Name: "U", TokenBalance: 100,
	}).Error; err != nil {
		t.Fatal(err)
	}
	cs := models.Case{
		ID: uuid.New(), UserID: ownerID,
		CaseNumber: "CN-" + uuid.NewString()[:8],
		CaseType:   "civil", Title: "T", Status: models.CaseFiled,
	}
	if err := db.Create(&cs).Error; err != nil {
		t.Fatal(err)
	}
	return ownerID, cs.ID
}

func accept(app *fiber.App, caseID uuid.UUID) int {
	req := httptest.NewRequest("POST", "/api/lawyer/cases/"+caseID.String()+"/accept", nil)
	resp, _ := app.Test(req)
	return resp.StatusCode
}

func lawyerBalance(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var u models.User
	if err := db.First(&u, "id = ?", id).Error; err != nil {
		t.Fatal(err)
	}
	return u.TokenBalance
}

/* ================== TESTS ================== */

// An accept below the fee is rejected outright: no acceptance row, no
// ledger entry, balance untouched.
func Test_Accept_InsufficientTokens(t *testing.T) {
	db := openTestDB(t)
	lawyerID := seedLawyer(t, db, 3)
	_, caseID := seedCase(t, db)

	app := newTestApp(NewHandler(db), lawyerID, string(models.RoleLawyer))
	if code := accept(app, caseID); code != 400 {
		t.Fatalf("want 400, got %d", code)
	}

	if got := lawyerBalance(t, db, lawyerID); got != 3 {
		t.Fatalf("balance must stay 3, got %d", got)
	}
	var cnt int64
	_ = db.Model(&models.CaseAcceptance{}).Where("lawyer_id = ?", lawyerID).Count(&cnt).Error
	if cnt != 0 {
		t.Fatalf("no acceptance row expected, got %d", cnt)
	}
	var entries int64
	_ = db.Model(&models.LawyerTokenEntry{}).Where("lawyer_id = ?", lawyerID).Count(&entries).Error
	if entries != 0 {
		t.Fatalf("no ledger entry expected, got %d", entries)
	}
}

// A successful accept debits the fee, writes the ledger entry and flips the
// case status, all in one commit.
func Test_Accept_DebitsAndMarksCase(t *testing.T) {
	db := openTestDB(t)
	lawyerID := seedLawyer(t, db, 50)
	_, caseID := seedCase(t, db)

	app := newTestApp(NewHandler(db), lawyerID, string(models.RoleLawyer))
	if code := accept(app, caseID); code != 200 {
		t.Fatalf("want 200, got %d", code)
	}

	if got := lawyerBalance(t, db, lawyerID); got != 45 {
		t.Fatalf("want balance 45, got %d", got)
	}

	var cs models.Case
	if err := db.First(&cs, "id = ?", caseID).Error; err != nil {
		t.Fatal(err)
	}
	if cs.Status != models.CaseAccepted {
		t.Fatalf("want case status %q, got %q", models.CaseAccepted, cs.Status)
	}

	var entries []models.LawyerTokenEntry
	if err := db.Find(&entries, "lawyer_id = ? AND transaction_type = ?",
		lawyerID, tokens.TxCaseAcceptance).Error; err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Amount != -5 {
		t.Fatalf("want one -5 acceptance entry, got %+v", entries)
	}
}

// Accepting the same case twice conflicts and never double-charges.
func Test_Accept_Duplicate_NoDoubleDebit(t *testing.T) {
	db := openTestDB(t)
	lawyerID := seedLawyer(t, db, 50)
	_, caseID := seedCase(t, db)

	app := newTestApp(NewHandler(db), lawyerID, string(models.RoleLawyer))
	if code := accept(app, caseID); code != 200 {
		t.Fatalf("first want 200, got %d", code)
	}
	if code := accept(app, caseID); code != 409 {
		t.Fatalf("duplicate want 409, got %d", code)
	}

	if got := lawyerBalance(t, db, lawyerID); got != 45 {
		t.Fatalf("duplicate must not double-debit, balance=%d", got)
	}
	var cnt int64
	_ = db.Model(&models.CaseAcceptance{}).
		Where("case_id = ? AND lawyer_id = ?", caseID, lawyerID).Count(&cnt).Error
	if cnt != 1 {
		t.Fatalf("want exactly one acceptance row, got %d", cnt)
	}
}

func Test_Accept_UnknownCase_NotFound(t *testing.T) {
	db := openTestDB(t)
	lawyerID := seedLawyer(t, db, 50)

	app := newTestApp(NewHandler(db), lawyerID, string(models.RoleLawyer))
	if code := accept(app, uuid.New()); code != 404 {
		t.Fatalf("want 404, got %d", code)
	}
	if got := lawyerBalance(t, db, lawyerID); got != 50 {
		t.Fatalf("404 must not charge, balance=%d", got)
	}
}

// Reviews require a prior acceptance of one of the reviewer's cases.
func Test_CreateReview_RequiresAcceptance(t *testing.T) {
	db := openTestDB(t)
	lawyerID := seedLawyer(t, db, 50)
	ownerID, caseID := seedCase(t, db)

	body := `{"rating":5,"comment":"thorough and fast"}`
	postReview := func() int {
		req := httptest.NewRequest("POST",
			"/api/lawyers/"+lawyerID.String()+"/reviews", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		app := newTestApp(NewHandler(db), ownerID, string(models.RoleUser))
		resp, _ := app.Test(req)
		return resp.StatusCode
	}

	// No acceptance yet.
	if code := postReview(); code != 403 {
		t.Fatalf("want 403 before acceptance, got %d", code)
	}

	lawApp := newTestApp(NewHandler(db), lawyerID, string(models.RoleLawyer))
	if code := accept(lawApp, caseID); code != 200 {
		t.Fatalf("accept want 200, got %d", code)
	}

	if code := postReview(); code != 201 {
		t.Fatalf("want 201 after acceptance, got %d", code)
	}
	if code := postReview(); code != 409 {
		t.Fatalf("second review want 409, got %d", code)
	}

	var cnt int64
	_ = db.Model(&models.LawyerReview{}).
		Where("lawyer_id = ? AND user_id = ?", lawyerID, ownerID).Count(&cnt).Error
	if cnt != 1 {
		t.Fatalf("want exactly one review, got %d", cnt)
	}
}

// The directory filters by specialty and reports rating aggregates.
func Test_Directory_FiltersAndAggregates(t *testing.T) {
	db := openTestDB(t)

	civilID := seedLawyer(t, db, 0)
	taxID := seedLawyer(t, db, 0)
	if err := db.Create(&models.LawyerProfile{
		UserID: civilID, Jurisdiction: "CA", Specialty: "civil", BarNumber: "B1",
	}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&models.LawyerProfile{
		UserID: taxID, Jurisdiction: "NY", Specialty: "tax", BarNumber: "B2",
	}).Error; err != nil {
		t.Fatal(err)
	}

	reviewerID, _ := seedCase(t, db)
	if err := db.Create(&models.LawyerReview{
		LawyerID: civilID, UserID: reviewerID, Rating: 4, Comment: "ok",
	}).Error; err != nil {
		t.Fatal(err)
	}

	app := newTestApp(NewHandler(db), reviewerID, string(models.RoleUser))
	req := httptest.NewRequest("GET", "/api/lawyers?specialty=civil", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	var out struct {
		Total int64 `json:"total"`
		Items []struct {
			ID        uuid.UUID `json:"id"`
			AvgRating float64   `json:"avg_rating"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Total != 1 || len(out.Items) != 1 {
		t.Fatalf("want one civil lawyer, got total=%d items=%d", out.Total, len(out.Items))
	}
	if out.Items[0].ID != civilID || out.Items[0].AvgRating != 4 {
		t.Fatalf("unexpected directory row: %+v", out.Items[0])
	}
}
