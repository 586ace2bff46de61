package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/swinglens/swinglens-api/internal/application/auth"
	"github.com/swinglens/swinglens-api/internal/application/feedback"
	"github.com/swinglens/swinglens-api/internal/application/player"
	"github.com/swinglens/swinglens-api/internal/application/progress"
	"github.com/swinglens/swinglens-api/internal/application/video"
	"github.com/swinglens/swinglens-api/internal/config"
	"github.com/swinglens/swinglens-api/internal/domain"
	jwtinfra "github.com/swinglens/swinglens-api/internal/infrastructure/jwt"
	"github.com/swinglens/swinglens-api/internal/infrastructure/postgres"
	redisinfra "github.com/swinglens/swinglens-api/internal/infrastructure/redis"
	s3infra "github.com/swinglens/swinglens-api/internal/infrastructure/s3"
	"github.com/swinglens/swinglens-api/internal/infrastructure/sns"
	"github.com/swinglens/swinglens-api/internal/pkg/otp"
	"github.com/swinglens/swinglens-api/internal/transport/http/handler"
	appmiddleware "github.com/swinglens/swinglens-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	PlayerRepo     *postgres.PlayerRepo
	CoachRepo      *postgres.CoachRepo
	VideoRepo      *postgres.VideoRepo
	FrameRepo      *postgres.FrameRepo
	ComparisonRepo *postgres.ComparisonRepo
	FeedbackRepo   *postgres.FeedbackRepo
	ProgressRepo   *postgres.ProgressRepo
	OTPStore       *redisinfra.OTPStore
	S3Store        *s3infra.Store
	SMSSender      sns.SMSSender
	JWTProvider    *jwtinfra.Provider
	OTPGenerator   otp.Generator
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10, applied to the public auth endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		OTPStore:   deps.OTPStore,
		PlayerRepo: deps.PlayerRepo,
		CoachRepo:  deps.CoachRepo,
		Tokens:     deps.JWTProvider,
		SMSSender:  deps.SMSSender,
		CodeGen:    deps.OTPGenerator,
		OTPTTL:     time.Duration(cfg.OTPTTLSeconds) * time.Second,
	})
	playerSvc := player.NewService(deps.PlayerRepo)
	videoSvc := video.NewService(video.ServiceDeps{
		VideoRepo:      deps.VideoRepo,
		FrameRepo:      deps.FrameRepo,
		ComparisonRepo: deps.ComparisonRepo,
		PlayerRepo:     deps.PlayerRepo,
		Objects:        deps.S3Store,
	})
	feedbackSvc := feedback.NewService(deps.FeedbackRepo, deps.VideoRepo, deps.PlayerRepo)
	progressSvc := progress.NewService(deps.ProgressRepo, deps.PlayerRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	playerH := handler.NewPlayerHandler(playerSvc)
	videoH := handler.NewVideoHandler(videoSvc)
	feedbackH := handler.NewFeedbackHandler(feedbackSvc)
	progressH := handler.NewProgressHandler(progressSvc)

	r.Route("/api/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health", healthH.Check)
		r.With(sensitiveRL.Limit).Post("/auth/player/otp/send", authH.SendOTP)
		r.With(sensitiveRL.Limit).Post("/auth/player/otp/verify", authH.VerifyOTP)
		r.With(sensitiveRL.Limit).Post("/auth/coach/login", authH.CoachLogin)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			// Player-only
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RolePlayer))
				r.Get("/players/me", playerH.GetMe)
				r.Put("/players/me", playerH.UpdateMe)
				r.Get("/players/me/progress", progressH.ListMine)
				r.Post("/videos", videoH.Upload)
				r.Get("/videos", videoH.ListMine)
				r.Get("/feedback", feedbackH.ListMine)
				r.Put("/feedback/{id}/read", feedbackH.MarkAsRead)
			})

			// Coach-only
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleCoach))
				r.Get("/players", playerH.ListRoster)
				r.Get("/players/{id}", playerH.GetForCoach)
				r.Get("/players/{id}/progress", progressH.ListForCoach)
				r.Post("/players/{id}/progress", progressH.Create)
				r.Post("/videos/{id}/feedback", feedbackH.Create)
			})

			// Either role; per-resource access is enforced in the services.
			r.Get("/videos/{id}", videoH.Get)
			r.Get("/videos/{id}/frames", videoH.ListFrames)
			r.Get("/frames/{id}/comparisons", videoH.ListComparisons)
		})
	})

	return r
}
