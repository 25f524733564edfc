package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/learnfx/academy-api/config"
	"github.com/learnfx/academy-api/database"
	"github.com/learnfx/academy-api/handlers"
	catalog_handlers "github.com/learnfx/academy-api/handlers/catalog"
	course_handlers "github.com/learnfx/academy-api/handlers/course"
	review_handlers "github.com/learnfx/academy-api/handlers/review"
	"github.com/learnfx/academy-api/services"
	"github.com/learnfx/academy-api/services/storage"
	"github.com/learnfx/academy-api/utils/auth"
	"github.com/learnfx/academy-api/utils/cache"
	"github.com/learnfx/academy-api/utils/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage, redisCache *cache.RedisCache) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to load configuration")
	}

	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}
	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "learnfx-academy-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: getEnv.JWT_SECRET,
		Expiry: 24 * time.Hour,
		Issuer: jwtIssuer,
	})

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Spaces client is optional; without it media fields stay raw keys.
	var spacesClient *storage.SpacesClient
	if getEnv.SPACES_ACCESS_KEY != "" {
		spacesClient, err = storage.NewSpacesClient(storage.SpacesConfig{
			AccessKey: getEnv.SPACES_ACCESS_KEY,
			SecretKey: getEnv.SPACES_SECRET_KEY,
			Bucket:    getEnv.SPACES_BUCKET,
			Region:    getEnv.SPACES_REGION,
			Endpoint:  getEnv.SPACES_ENDPOINT,
			CDNURL:    getEnv.SPACES_CDN_URL,
		})
		if err != nil {
			log.Printf("Warning: failed to initialize Spaces client: %v. Media URLs will not be resolved.", err)
		}
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Services
	catalogService := services.NewCatalogService(db, redisCache, spacesClient)
	enrollmentService := services.NewEnrollmentService(db)
	accessService := services.NewAccessService(db)
	progressService := services.NewProgressService(db)
	reviewService := services.NewReviewService(db, redisCache)

	// Handlers
	catalogHandler := catalog_handlers.NewCatalogHandler(catalogService)
	courseHandler := course_handlers.NewCourseHandler(enrollmentService, accessService, progressService, catalogService)
	reviewHandler := review_handlers.NewReviewHandler(reviewService)

	// Security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth(store))

	// API v1 group
	api := app.Group("/api/v1")

	// Catalog routes (public)
	api.Get("/categories", catalogHandler.ListCategories)

	courses := api.Group("/courses")
	courses.Get("/", catalogHandler.ListCourses)
	courses.Get("/:course_slug", catalogHandler.GetCourse)

	// Enrollment routes (protected)
	courses.Post("/:course_slug/enroll", authMiddleware.Required(), courseHandler.Enroll)
	api.Get("/enrollments", authMiddleware.Required(), courseHandler.ListEnrollments)

	// Lesson routes (protected; preview access is decided per lesson,
	// but the caller must still be identified)
	courses.Get("/:course_slug/lessons/:lesson_slug", authMiddleware.Required(), courseHandler.GetLesson)
	courses.Post("/:course_slug/lessons/:lesson_slug/progress", authMiddleware.Required(), courseHandler.UpdateProgress)

	// Review routes
	courses.Get("/:course_slug/reviews", reviewHandler.ListReviews)
	courses.Post("/:course_slug/reviews", authMiddleware.Required(), reviewHandler.CreateReview)
}
