package app

import (
	"context"

	"github.com/hoangtrungt373/chat-api-service/internal/auth/handler"
	"github.com/hoangtrungt373/chat-api-service/internal/auth/provider"
	"github.com/hoangtrungt373/chat-api-service/internal/auth/provider/facebook"
	"github.com/hoangtrungt373/chat-api-service/internal/auth/provider/google"
	"github.com/hoangtrungt373/chat-api-service/internal/config"
	"github.com/hoangtrungt373/chat-api-service/internal/middleware"
	"github.com/hoangtrungt373/chat-api-service/internal/statetoken"
	"github.com/hoangtrungt373/chat-api-service/internal/token"
	"github.com/hoangtrungt373/chat-api-service/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	directory := user.NewDirectory(user.NewPostgresStore(infra.DB))
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenLifetime, cfg.RefreshTokenLifetime)
	stateStore := statetoken.NewRedisStore(infra.Redis.Client)

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
	)
	if err != nil {
		return nil, nil, err
	}

	facebookProvider, err := facebook.New(
		cfg.FacebookClientID,
		cfg.FacebookClientSecret,
		cfg.FacebookRedirectURL,
	)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(
		googleProvider,
		facebookProvider,
	)

	authHandler := handler.NewHandler(
		registry,
		directory,
		issuer,
		stateStore,
		cfg.FrontendURL,
		cfg.StateTokenTTL,
	)

	authMiddleware := middleware.NewAuthMiddleware(issuer)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// ----------------------------
	// Routes
	// ----------------------------

	authHandler.RegisterRoutes(router, authMiddleware)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if err := infra.Redis.Close(); err != nil {
			return err
		}
		return infra.DB.Close()
	}, nil
}
