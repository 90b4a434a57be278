package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/lawmate/account-service/internal/adapters/handler"
	"github.com/lawmate/account-service/internal/adapters/middleware"
	"github.com/lawmate/account-service/internal/adapters/notifier"
	"github.com/lawmate/account-service/internal/adapters/repository"
	"github.com/lawmate/account-service/internal/config"
	"github.com/lawmate/account-service/internal/core/domain"
	"github.com/lawmate/account-service/internal/core/services"
	"github.com/lawmate/account-service/internal/observability/metrics"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	metrics.MustRegister()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Authenticated with Redis successfully")

	userRepo := repository.NewCachedUserRepository(
		repository.NewSQLRepository(db),
		redisClient,
	)

	accountService := services.NewAccountService(
		userRepo,
		services.NewBcryptHasher(),
		services.NewNumericOTPGenerator(),
		services.NewTokenService(cfg.JWTPrivateKey),
		notifier.NewOutboxNotifier(db),
	)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTPublicKey)

	registrationHandler := handler.NewRegistrationHandler(accountService)
	authHandler := handler.NewAuthHandler(accountService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	mux := http.NewServeMux()

	// Health endpoints (OpenShift compatible)
	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/health/ready", healthHandler.Ready)
	mux.HandleFunc("/health/live", healthHandler.Live)

	mux.Handle("/metrics", promhttp.Handler())

	// API endpoints
	mux.HandleFunc("/api/auth/signup/user", registrationHandler.SignupUser)
	mux.HandleFunc("/api/auth/signup/lawyer", registrationHandler.SignupLawyer)
	mux.HandleFunc("/api/auth/verify-otp", authHandler.VerifyOTP)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/login-otp", authHandler.LoginWithOTP)

	mux.Handle("/api/auth/me",
		authMiddleware.RequireRole(
			[]string{string(domain.RoleEndUser), string(domain.RoleLawyer)},
			http.HandlerFunc(authHandler.Me),
		),
	)

	root := middleware.CORSMiddleware(cfg.AllowedOrigins)(middleware.MetricsMiddleware(mux))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: root,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %s\n", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("received signal %v, shutting down...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("error shutting down server: %v", err)
	}
}
