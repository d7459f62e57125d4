package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/auth"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/brands"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/cart"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/categories"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/checkout"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/config"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/db"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/user"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/logging"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/mail"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/payment"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/products"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/uploads"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.AppEnv)

	if cfg.MigrationsDir != "" {
		if err := db.Migrate(cfg.MigrationsDir, cfg.DatabaseURL); err != nil {
			log.Fatal(err)
		}
	}

	pool, err := db.NewPostgres(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	var listingCache *products.ListingCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		listingCache = products.NewListingCache(rdb, time.Duration(cfg.CatalogCacheTTL)*time.Second)
	}

	mailer := mail.NewSMTPMailer(mail.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})

	jwtMgr := auth.NewJWTManager(auth.JWTConfig{
		Issuer:         cfg.JWTIssuer,
		AccessSecret:   cfg.JWTAccessSecret,
		RefreshSecret:  cfg.JWTRefreshSecret,
		AccessTTLMin:   cfg.AccessTokenTTLMin,
		RefreshTTLDays: cfg.RefreshTokenTTLDays,
	})

	userRepo := auth.NewUserRepo(pool)
	refreshRepo := auth.NewRefreshRepo(pool)
	resetRepo := auth.NewResetRepo(pool)
	otpRepo := auth.NewOTPRepo(pool)

	authHandler := auth.NewHandler(auth.Dependencies{
		Cfg:     cfg,
		JWT:     jwtMgr,
		Users:   userRepo,
		Refresh: refreshRepo,
		Resets:  resetRepo,
		OTP:     otpRepo,
		Mailer:  mailer,
	})

	catRepo := categories.NewRepo(pool)
	brandRepo := brands.NewRepo(pool)
	prodRepo := products.NewRepo(pool)
	diskStore := uploads.NewDiskStore(cfg.UploadDir)
	prodHandler := products.NewHandler(prodRepo, listingCache, diskStore, logger)

	var catHandler *categories.Handler
	var brandHandler *brands.Handler
	if listingCache != nil {
		catHandler = categories.NewHandler(catRepo, listingCache)
		brandHandler = brands.NewHandler(brandRepo, listingCache)
	} else {
		catHandler = categories.NewHandler(catRepo, nil)
		brandHandler = brands.NewHandler(brandRepo, nil)
	}

	uploadHandler := uploads.NewHandler(
		prodRepo,
		diskStore,
		uploads.DefaultRules(cfg.UploadMaxBytes),
		logger,
	)

	cartRepo := cart.NewRepo(pool, cfg.PaymentCurrency)
	cartHandler := cart.NewHandler(cartRepo, logger)

	gateway := payment.NewClient(cfg.GatewayBaseURL, cfg.GatewaySecretKey,
		time.Duration(cfg.GatewayTimeoutSec)*time.Second)

	checkoutRepo := checkout.NewRepo(pool)
	checkoutSvc := checkout.NewService(cartRepo, checkoutRepo, userRepo, gateway, logger,
		cfg.PaymentCurrency, cfg.AppBaseURL+cfg.CallbackPath)
	checkoutHandler := checkout.NewHandler(checkoutSvc, checkoutRepo, cfg.GatewayPublicKey, logger)

	r := gin.Default()

	r.Static("/uploads", cfg.UploadDir)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/verify-email", authHandler.VerifyEmailOTP)
		authGroup.POST("/resend-verify", authHandler.ResendVerifyOTP)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
	}

	// Public catalog
	api.GET("/categories", catHandler.ListPublic)
	api.GET("/brands", brandHandler.ListPublic)
	api.GET("/products", prodHandler.ListPublic)
	api.GET("/products/:id", prodHandler.GetPublic)

	// Gateway redirect target and widget config; no login, the
	// reference is only a lookup key
	api.GET("/checkout/callback", checkoutHandler.Callback)
	api.GET("/checkout/config", checkoutHandler.Config)

	protected := api.Group("/")
	protected.Use(auth.AuthMiddleware(jwtMgr))
	{
		protected.GET("/me", authHandler.Me)

		protected.GET("/cart", cartHandler.GetMyCart)
		protected.POST("/cart/items", cartHandler.AddItem)
		protected.PATCH("/cart/items", cartHandler.UpdateQty)
		protected.DELETE("/cart/items", cartHandler.RemoveItem)

		protected.POST("/checkout", checkoutHandler.Initiate)
		protected.GET("/orders", checkoutHandler.MyOrders)

		producerOnly := protected.Group("/producer")
		producerOnly.Use(auth.RequireRole(user.RoleProducer, user.RoleAdmin))
		{
			producerOnly.POST("/products", prodHandler.Create)
			producerOnly.PATCH("/products/:id", prodHandler.Update)
			producerOnly.DELETE("/products/:id", prodHandler.Delete)
			producerOnly.POST("/products/:id/images", uploadHandler.UploadImages)
		}

		adminOnly := protected.Group("/admin")
		adminOnly.Use(auth.RequireRole(user.RoleAdmin))
		{
			adminOnly.GET("/categories", catHandler.AdminList)
			adminOnly.POST("/categories", catHandler.AdminCreate)
			adminOnly.PATCH("/categories/:id", catHandler.AdminUpdate)

			adminOnly.GET("/brands", brandHandler.AdminList)
			adminOnly.POST("/brands", brandHandler.AdminCreate)
			adminOnly.PATCH("/brands/:id", brandHandler.AdminUpdate)
		}
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
