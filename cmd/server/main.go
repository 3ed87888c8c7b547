// @title           AinGPT API
// @version         1.0
// @description     Legal-services marketplace: users file cases and propose them to lawyers, lawyers accept cases, every paid action debits a token balance.
// @BasePath        /api
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Format: Bearer <token>
package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	_ "github.com/aingpt/aingpt-backend/docs"
	"github.com/aingpt/aingpt-backend/internal/auth"
	"github.com/aingpt/aingpt-backend/internal/cases"
	"github.com/aingpt/aingpt-backend/internal/lawyers"
	"github.com/aingpt/aingpt-backend/internal/profile"
	"github.com/aingpt/aingpt-backend/internal/requests"
	"github.com/aingpt/aingpt-backend/internal/storage"
	"github.com/aingpt/aingpt-backend/internal/tokens"
	"github.com/aingpt/aingpt-backend/pkg/database"
	"github.com/aingpt/aingpt-backend/pkg/logger"
	"github.com/aingpt/aingpt-backend/pkg/models"
)

func main() {
	_ = godotenv.Load()
	logger.Init()
	defer logger.Log.Sync()

	db := database.Init()
	if err := db.AutoMigrate(
		&models.User{}, &models.LawyerProfile{}, &models.LawyerEducation{},
		&models.Case{}, &models.CaseDocument{},
		&models.CaseRequest{}, &models.CaseAcceptance{},
		&models.UserTokenEntry{}, &models.LawyerTokenEntry{},
		&models.LawyerReview{},
	); err != nil {
		logger.Sugar().Fatalw("migration failed", "error", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: auth.ErrorHandler,
		BodyLimit:    12 * 1024 * 1024, // case documents go up to 10MB
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(fiberlog.New())
	app.Use(limiter.New(limiter.Config{Max: 120}))

	app.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := app.Group("/api")

	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	// Auth
	authH := auth.NewHandler(db)
	api.Post("/signup", authH.Signup)
	api.Post("/login", authH.Login)
	api.Get("/me", auth.RequireAuth(), authH.Me)

	// Storage helper (SUPABASE_URL / SUPABASE_SERVICE_KEY / SUPABASE_BUCKET)
	sb := storage.NewSupabase()

	// Cases
	caseH := cases.NewHandler(db, sb)
	api.Get("/cases", caseH.ListPublic)
	api.Post("/cases/file", auth.RequireAuth(), auth.RequireRole("user"), caseH.File)
	api.Get("/cases/mine", auth.RequireAuth(), auth.RequireRole("user"), caseH.ListMine)
	api.Get("/cases/:caseId/download", auth.RequireAuth(), caseH.Download)
	api.Post("/cases/:caseId/documents", auth.RequireAuth(), auth.RequireRole("user"), caseH.UploadDocuments)
	api.Get("/cases/:caseId", auth.RequireAuth(), auth.RequireRole("user"), caseH.GetDetail)
	api.Patch("/cases/:caseId", auth.RequireAuth(), auth.RequireRole("user"), caseH.Update)
	api.Delete("/cases/:caseId", auth.RequireAuth(), auth.RequireRole("user"), caseH.Delete)

	// Case requests
	reqH := requests.NewHandler(db)
	api.Post("/case-requests", auth.RequireAuth(), auth.RequireRole("user"), reqH.Create)
	api.Get("/case-requests/mine", auth.RequireAuth(), auth.RequireRole("user"), reqH.ListMine)
	api.Delete("/case-requests/:requestId", auth.RequireAuth(), reqH.Delete)

	// Lawyer side
	lawH := lawyers.NewHandler(db)
	api.Get("/lawyers", lawH.List)
	api.Get("/lawyers/:lawyerId", lawH.Get)
	api.Post("/lawyers/:lawyerId/reviews", auth.RequireAuth(), auth.RequireRole("user"), lawH.CreateReview)
	api.Get("/lawyer/cases", auth.RequireAuth(), auth.RequireRole("lawyer"), lawH.ListAccepted)
	api.Post("/lawyer/cases/:caseId/accept", auth.RequireAuth(), auth.RequireRole("lawyer"), lawH.Accept)
	api.Get("/lawyer/case-requests", auth.RequireAuth(), auth.RequireRole("lawyer"), reqH.ListIncoming)

	// Profile
	profH := profile.NewHandler(db, sb)
	api.Post("/profile/avatar", auth.RequireAuth(), auth.RequireRole("user"), profH.UploadAvatar)
	api.Post("/profile/lawyer-avatar", auth.RequireAuth(), auth.RequireRole("lawyer"), profH.UploadLawyerAvatar)

	// Nightly ledger sweep: balances and ledgers commit together, so any
	// drift this finds is worth waking someone up for.
	rec := tokens.NewReconciler(db)
	cr := cron.New()
	if _, err := cr.AddFunc("0 2 * * *", rec.Run); err != nil {
		logger.Sugar().Fatalw("cron setup failed", "error", err)
	}
	cr.Start()
	defer cr.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	logger.Sugar().Infow("server running", "port", port)
	logger.Sugar().Fatalw("server stopped", "error", app.Listen(":"+port))
}
