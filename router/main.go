package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/internadmin/internship-api/config"
	"github.com/internadmin/internship-api/database"
	"github.com/internadmin/internship-api/handlers"
	internship_handlers "github.com/internadmin/internship-api/handlers/internship"
	"github.com/internadmin/internship-api/services"
	"github.com/internadmin/internship-api/services/storage"
	"github.com/internadmin/internship-api/utils"
	"github.com/internadmin/internship-api/utils/auth"
	"github.com/internadmin/internship-api/utils/cache"
	"github.com/internadmin/internship-api/utils/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	// Get JWT secret from environment
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "internship-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret: jwtSecret,
		Expiry: 24 * time.Hour, // Access token expires in 24 hours
		Issuer: jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	env, err := config.Get()
	if err != nil {
		log.Fatal("Failed to read environment configuration")
	}

	// Initialize Redis cache for certificate render rate limiting
	redisURL := env.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Render rate limiting will be disabled.", err)
	}

	// Rate limit the rasterization routes; pass-through when Redis is down
	renderLimit := func(c *fiber.Ctx) error { return c.Next() }
	if redisCache != nil {
		renderLimit = middleware.NewRenderLimiter(redisCache, 10, time.Minute).Limit()
	}

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Optional certificate archival to Spaces
	var archiver services.CertificateArchiver
	if storage.Configured(env) {
		spaces, err := storage.NewSpacesClient(env)
		if err != nil {
			log.Printf("Warning: Failed to initialize Spaces client: %v. Certificate archival disabled.", err)
		} else {
			archiver = spaces
		}
	}

	// Initialize services
	emailService := services.NewEmailService(env)
	notifier := services.NewNotifier(db, emailService, env.ADMIN_EMAIL)
	rasterizer := services.NewRasterizer(env.CHROME_PATH)
	certificateService := services.NewCertificateService(db)
	internshipService := services.NewInternshipService(db, notifier, rasterizer, archiver)
	remarkService := services.NewRemarkService(db, notifier)

	internshipHandler := internship_handlers.NewInternshipHandler(
		db, internshipService, remarkService, certificateService, rasterizer)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// API v1 group
	api := app.Group("/api/v1")

	// Internship routes. Static and multi-segment paths are registered before
	// the bare /:id wildcards so they are not shadowed.
	internships := api.Group("/internships")

	internships.Post("/", authMiddleware.RequireAdmin(), internshipHandler.CreateInternship)  // Admin only: Create internship
	internships.Get("/", authMiddleware.RequireAdmin(), internshipHandler.ListInternships)    // Admin only: List all internships
	internships.Get("/dashboard", authMiddleware.Required(), internshipHandler.GetDashboard)  // Current user's dashboard stats
	internships.Get("/my-internships", authMiddleware.Required(), internshipHandler.GetMyInternships)
	internships.Get("/my-internships/:id/details", authMiddleware.Required(), internshipHandler.GetInternshipDetails)
	internships.Get("/my-remarks", authMiddleware.Required(), internshipHandler.GetMyRemarks)
	internships.Get("/user/:userId", authMiddleware.Required(), internshipHandler.GetUserInternships)

	// Remark routes
	internships.Post("/remarks", authMiddleware.Required(), internshipHandler.CreateRemark)
	internships.Get("/admin/remarks", authMiddleware.RequireAdmin(), internshipHandler.ListAllRemarks)
	internships.Patch("/admin/remarks/:remarkId", authMiddleware.RequireAdmin(), internshipHandler.RespondToRemark)
	internships.Get("/:id/remarks", authMiddleware.Required(), internshipHandler.GetInternshipRemarks) // Owner only

	// Certificate routes
	internships.Get("/:id/certificate-data", internshipHandler.GetCertificateData)         // Public: structured data
	internships.Get("/:id/certificate-template", internshipHandler.GetCertificateTemplate) // Public: inline HTML
	internships.Get("/:id/certificate-download", internshipHandler.GetCertificateDownload) // Public: HTML attachment
	internships.Get("/:id/certificate-preview", internshipHandler.GetCertificatePreview)   // Public: frame-embeddable HTML
	internships.Get("/:id/certificate-eligibility", authMiddleware.Required(), internshipHandler.GetEligibility)
	internships.Get("/:id/certificate-pdf", authMiddleware.Required(), renderLimit, internshipHandler.GetCertificatePDF) // Owner or admin
	internships.Get("/:id/certificate-png", authMiddleware.Required(), renderLimit, internshipHandler.GetCertificatePNG) // Owner or admin

	// Generic CRUD, registered last
	internships.Get("/:id", authMiddleware.Required(), internshipHandler.GetInternship)
	internships.Patch("/:id", authMiddleware.RequireAdmin(), internshipHandler.UpdateInternship)  // Admin only
	internships.Delete("/:id", authMiddleware.RequireAdmin(), internshipHandler.DeleteInternship) // Admin only
}
