package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/swinglens/swinglens-api/internal/config"
	jwtinfra "github.com/swinglens/swinglens-api/internal/infrastructure/jwt"
	"github.com/swinglens/swinglens-api/internal/infrastructure/postgres"
	redisinfra "github.com/swinglens/swinglens-api/internal/infrastructure/redis"
	s3infra "github.com/swinglens/swinglens-api/internal/infrastructure/s3"
	"github.com/swinglens/swinglens-api/internal/infrastructure/sns"
	"github.com/swinglens/swinglens-api/internal/pkg/otp"
	transporthttp "github.com/swinglens/swinglens-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	redisClient, err := redisinfra.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	jwtProvider := jwtinfra.NewProvider(cfg.JWTSecretKey, time.Duration(cfg.JWTExpiryMinutes)*time.Minute)

	s3Client, err := s3infra.NewClient(cfg)
	if err != nil {
		log.Fatalf("s3: %v", err)
	}
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SNS SMS sender (optional — graceful fallback for local development).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	// The fixed code exists for manual testing against local stacks and must
	// never be reachable in production.
	var codeGen otp.Generator = otp.RandomGenerator{}
	if cfg.AppEnv == "development" {
		codeGen = otp.FixedGenerator("123456")
		log.Println("WARN: development mode, OTP generation is fixed")
	}

	deps := &transporthttp.Deps{
		PlayerRepo:     postgres.NewPlayerRepo(db),
		CoachRepo:      postgres.NewCoachRepo(db),
		VideoRepo:      postgres.NewVideoRepo(db),
		FrameRepo:      postgres.NewFrameRepo(db),
		ComparisonRepo: postgres.NewComparisonRepo(db),
		FeedbackRepo:   postgres.NewFeedbackRepo(db),
		ProgressRepo:   postgres.NewProgressRepo(db),
		OTPStore:       redisinfra.NewOTPStore(redisClient),
		S3Store:        s3Store,
		SMSSender:      smsSender,
		JWTProvider:    jwtProvider,
		OTPGenerator:   codeGen,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
