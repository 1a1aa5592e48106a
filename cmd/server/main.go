package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/fbafinance/directory-api/internal/config"
	"github.com/fbafinance/directory-api/internal/database"
	"github.com/fbafinance/directory-api/internal/handler"
	"github.com/fbafinance/directory-api/internal/middleware"
	"github.com/fbafinance/directory-api/internal/queue"
	"github.com/fbafinance/directory-api/internal/repository"
	"github.com/fbafinance/directory-api/internal/router"
	"github.com/fbafinance/directory-api/internal/service"
	"github.com/fbafinance/directory-api/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response caching disabled")
	}

	accounts := repository.NewAccountRepo(db)
	revoked := repository.NewRevocationRepo(db)

	codec := utils.NewTokenCodec(cfg.JWTSecret, time.Duration(cfg.TokenTTLMin)*time.Minute)
	authSvc := service.NewAuthService(accounts, revoked, codec)
	registrar := service.NewRegistrar(accounts, cfg.BcryptCost)

	e := echo.New()
	e.HideBanner = true

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(authSvc, registrar), authSvc, limiter)
	router.RegisterBusiness(e, handler.NewBusinessHandler(accounts), authSvc, cache)

	go queue.StartRegistrationConsumer()
	go pruneRevocations(revoked)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// pruneRevocations periodically drops ledger rows whose token already
// expired on its own.  Expiry rejects those tokens regardless, so the rows
// are dead weight; without this the ledger grows without bound.
func pruneRevocations(revoked *repository.RevocationRepo) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for range t.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := revoked.DeleteExpiredBefore(ctx, time.Now().UTC())
		cancel()
		if err != nil {
			log.Printf("revocation prune failed: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("revocation prune removed %d expired records", n)
		}
	}
}
