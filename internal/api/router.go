package api

import (
	"log/slog"

	"github.com/ezzcrafts/testimania/internal/api/handlers"
	"github.com/ezzcrafts/testimania/internal/api/middleware"
	"github.com/ezzcrafts/testimania/internal/auth"
	"github.com/ezzcrafts/testimania/pkg/crypto"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *slog.Logger
	JWTService     *auth.JWTService
	AuthService    *auth.Service
	Encryptor      *crypto.Encryptor
	AllowedOrigins []string // CORS allowed origins
	RateLimitReqs  int      // Global rate limit requests per window
	RateLimitSecs  int      // Global rate limit window in seconds
	MailLimitReqs  int      // Verification-mail rate limit per window
	MailLimitSecs  int      // Verification-mail window in seconds
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	// CORS: the wall-of-love embed and testimonial form are served into
	// third-party pages, so the public routes must answer cross-origin.
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.AuthService, cfg.Logger)
	spaceHandler := handlers.NewSpaceHandler(cfg.DB)
	questionHandler := handlers.NewQuestionHandler(cfg.DB)
	testimonialHandler := handlers.NewTestimonialHandler(cfg.DB, cfg.Encryptor, cfg.Logger)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	mailThrottle := middleware.MailThrottle(cfg.Redis, cfg.MailLimitReqs, cfg.MailLimitSecs)

	// Public auth endpoints
	r.With(mailThrottle).Post("/signup", authHandler.Signup)
	r.With(mailThrottle).Post("/resend-verification-mail", authHandler.ResendVerification)
	r.Post("/verify", authHandler.Verify)
	r.Get("/check-unique-username", authHandler.CheckUniqueUsername)
	r.Post("/verify-email", authHandler.VerifyEmail)
	r.Post("/signin", authHandler.SignIn)
	r.Post("/signin/token", authHandler.SignInWithToken)
	r.Post("/signout", authHandler.SignOut)

	// Public respondent endpoints: anonymous visitors read the form and
	// submit testimonials without a session.
	r.Get("/get-space-data", spaceHandler.GetByName)
	r.Get("/question", questionHandler.List)
	r.Post("/testimonial/{spaceId}", testimonialHandler.Submit)
	r.Get("/wall-of-love", testimonialHandler.WallOfLove)

	// Owner endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTService))

		r.Get("/me", authHandler.Me)

		r.Get("/space", spaceHandler.List)
		r.Post("/space", spaceHandler.CreateOrUpdate)
		r.Delete("/space", spaceHandler.Delete)
		r.Get("/space/{spaceId}", spaceHandler.Get)

		r.Post("/question", questionHandler.Create)
		r.Put("/question", questionHandler.Update)
		r.Delete("/question", questionHandler.Delete)

		r.Get("/testimonial", testimonialHandler.Stats)
		r.Get("/testimonial/{spaceId}", testimonialHandler.ListForSpace)
		r.Post("/like/{testimonialId}", testimonialHandler.ToggleLike)
		r.Get("/like", testimonialHandler.ListLiked)
	})

	return &Router{r}
}
