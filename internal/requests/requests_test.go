package requests

import (
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
		&models.User{}, &models.Case{}, &models.CaseRequest{},
		&models.UserTokenEntry{}, &models.LawyerTokenEntry{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		sql := `
TRUNCATE TABLE
	case_requests,
	cases,
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
	app.Post("/api/case-requests", h.Create)
	app.Get("/api/case-requests/mine", h.ListMine)
	app.Delete("/api/case-requests/:requestId", h.Delete)
	return app
}

type seedOut struct {
	UserID   uuid.UUID
	LawyerID uuid.UUID
	CaseID   uuid.UUID
}

func seedUserAndCase(t *testing.T, db *gorm.DB, balance int) seedOut {
	t.Helper()
	userID := uuid.New()
	lawyerID := uuid.New()

	if err := db.Create(&models.User{
		ID: userID, Email: fmt.Sprintf("u+%s@test.local", uuid.NewString()),
		PasswordHash: "x", Role: models.RoleUser, Name: "U", TokenBalance: balance,
	}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&models.User{
		ID: lawyerID, Email: fmt.Sprintf("l+%s@test.local", uuid.NewString()),
		PasswordHash: "x", Role: models.RoleLawyer, Name: "L", TokenBalance: 0,
	}).Error; err != nil {
		t.Fatal(err)
	}

	cs := models.Case{
		ID: uuid.New(), UserID: userID,
		CaseNumber: "CN-" + uuid.NewString()[:8],
		CaseType:   "civil", Title: "T", Status: models.CaseFiled,
	}
	if err := db.Create(&cs).Error; err != nil {
		t.Fatal(err)
	}

	return seedOut{UserID: userID, LawyerID: lawyerID, CaseID: cs.ID}
}

func createBody(s seedOut) string {
	return `{"case_id":"` + s.CaseID.String() + `","lawyer_id":"` + s.LawyerID.String() + `"}`
}

func post(app *fiber.App, body string) int {
	req := httptest.NewRequest("POST", "/api/case-requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	return resp.StatusCode
}

func balance(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var u models.User
	if err := db.First(&u, "id = ?", id).Error; err != nil {
		t.Fatal(err)
	}
	return u.TokenBalance
}

/* ================== TESTS ================== */

// A request debits the fee and writes one ledger entry.
func Test_CreateRequest_DebitsAndRecords(t *testing.T) {
	db := openTestDB(t)
	s := seedUserAndCase(t, db, 500)

	app := newTestApp(NewHandler(db), s.UserID, string(models.RoleUser))
	if code := post(app, createBody(s)); code != 201 {
		t.Fatalf("want 201, got %d", code)
	}

	if got := balance(t, db, s.UserID); got != 495 {
		t.Fatalf("want balance 495, got %d", got)
	}

	var entries []models.UserTokenEntry
	if err := db.Find(&entries, "user_id = ? AND transaction_type = ?",
		s.UserID, tokens.TxCaseRequest).Error; err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Amount != -5 {
		t.Fatalf("want one -5 case_request entry, got %+v", entries)
	}
}

// A second request for the same (case, lawyer) pair conflicts and must not
// charge the requester again.
func Test_CreateRequest_Duplicate_NoDoubleDebit(t *testing.T) {
	db := openTestDB(t)
	s := seedUserAndCase(t, db, 500)

	app := newTestApp(NewHandler(db), s.UserID, string(models.RoleUser))
	if code := post(app, createBody(s)); code != 201 {
		t.Fatalf("first want 201, got %d", code)
	}
	if code := post(app, createBody(s)); code != 409 {
		t.Fatalf("duplicate want 409, got %d", code)
	}

	if got := balance(t, db, s.UserID); got != 495 {
		t.Fatalf("duplicate must not double-debit, balance=%d", got)
	}

	var cnt int64
	_ = db.Model(&models.CaseRequest{}).
		Where("case_id = ? AND lawyer_id = ?", s.CaseID, s.LawyerID).Count(&cnt).Error
	if cnt != 1 {
		t.Fatalf("want exactly one request row, got %d", cnt)
	}
}

// Below the fee: rejected, nothing written.
func Test_CreateRequest_InsufficientTokens(t *testing.T) {
	db := openTestDB(t)
	s := seedUserAndCase(t, db, 3)

	app := newTestApp(NewHandler(db), s.UserID, string(models.RoleUser))
	if code := post(app, createBody(s)); code != 400 {
		t.Fatalf("want 400, got %d", code)
	}

	if got := balance(t, db, s.UserID); got != 3 {
		t.Fatalf("balance must be unchanged, got %d", got)
	}
	var cnt int64
	_ = db.Model(&models.CaseRequest{}).Where("user_id = ?", s.UserID).Count(&cnt).Error
	if cnt != 0 {
		t.Fatalf("no request row expected, got %d", cnt)
	}
}

// Proposing someone else's case is forbidden and free.
func Test_CreateRequest_NotOwner_Forbidden(t *testing.T) {
	db := openTestDB(t)
	s := seedUserAndCase(t, db, 500)

	otherID := uuid.New()
	if err := db.Create(&models.User{
		ID: otherID, Email: fmt.Sprintf("o+%s@test.local", uuid.NewString()),
		PasswordHash: "x", Role: models.RoleUser, Name: "O", TokenBalance: 500,
	}).Error; err != nil {
		t.Fatal(err)
	}

	app := newTestApp(NewHandler(db), otherID, string(models.RoleUser))
	if code := post(app, createBody(s)); code != 403 {
		t.Fatalf("want 403, got %d", code)
	}
	if got := balance(t, db, otherID); got != 500 {
		t.Fatalf("forbidden request must not charge, balance=%d", got)
	}
}

// Requester and targeted lawyer may delete; outsiders may not. Deleting
// never refunds.
func Test_DeleteRequest_PartiesOnly_NoRefund(t *testing.T) {
	db := openTestDB(t)
	s := seedUserAndCase(t, db, 500)

	userApp := newTestApp(NewHandler(db), s.UserID, string(models.RoleUser))
	if code := post(userApp, createBody(s)); code != 201 {
		t.Fatalf("create want 201")
	}

	var req models.CaseRequest
	if err := db.First(&req, "case_id = ?", s.CaseID).Error; err != nil {
		t.Fatal(err)
	}

	// Outsider → 403
	outsider := uuid.New()
	_ = db.Create(&models.User{
		ID: outsider, Email: fmt.Sprintf("x+%s@test.local", uuid.NewString()),
		PasswordHash: "x", Role: models.RoleUser, Name: "X",
	}).Error
	outApp := newTestApp(NewHandler(db), outsider, string(models.RoleUser))
	r1 := httptest.NewRequest("DELETE", "/api/case-requests/"+req.ID.String(), nil)
	resp1, _ := outApp.Test(r1)
	if resp1.StatusCode != 403 {
		t.Fatalf("outsider want 403, got %d", resp1.StatusCode)
	}

	// Targeted lawyer → 200
	lawApp := newTestApp(NewHandler(db), s.LawyerID, string(models.RoleLawyer))
	r2 := httptest.NewRequest("DELETE", "/api/case-requests/"+req.ID.String(), nil)
	resp2, _ := lawApp.Test(r2)
	if resp2.StatusCode != 200 {
		t.Fatalf("lawyer want 200, got %d", resp2.StatusCode)
	}

	var cnt int64
	_ = db.Model(&models.CaseRequest{}).Where("id = ?", req.ID).Count(&cnt).Error
	if cnt != 0 {
		t.Fatalf("request should be gone")
	}
	if got := balance(t, db, s.UserID); got != 495 {
		t.Fatalf("delete must not refund, balance=%d", got)
	}

	// A repeat delete finds nothing: the locked read and the delete share
	// one transaction, so a delete that lost the race sees the row gone.
	r3 := httptest.NewRequest("DELETE", "/api/case-requests/"+req.ID.String(), nil)
	resp3, _ := lawApp.Test(r3)
	if resp3.StatusCode != 404 {
		t.Fatalf("repeat delete want 404, got %d", resp3.StatusCode)
	}
}
