package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"servicemarket/internal/config"
	"servicemarket/internal/database"
	"servicemarket/internal/domain/upload"
	"servicemarket/internal/middleware"
	"servicemarket/internal/modules/auth"
	"servicemarket/internal/modules/offer"
	"servicemarket/internal/modules/order"
	"servicemarket/internal/modules/profile"
	"servicemarket/internal/modules/review"
	jwtsvc "servicemarket/internal/pkg/jwt"
	"servicemarket/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	uploadRepo := upload.NewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authHandler := auth.NewHandler(auth.NewService(userRepo, profileRepo, j))
	profileHandler := profile.NewHandler(profile.NewService(profileRepo, userRepo))
	offerHandler := offer.NewHandler(offer.NewService(offerRepo, profileRepo))
	orderHandler := order.NewHandler(order.NewService(orderRepo, offerRepo, userRepo))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, offerRepo))
	uploadHandler := upload.NewHandler(upload.NewService(uploadRepo, cfg.UploadDir, cfg.StaticBase))

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.Static(cfg.StaticBase, cfg.UploadDir)

	api := r.Group("/api")
	{
		// public
		authHandler.RegisterRoutes(api)

		// protected
		protected := api.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			profileHandler.RegisterRoutes(protected)
			offerHandler.RegisterRoutes(protected)
			orderHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
			upload.RegisterRoutes(protected, uploadHandler)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
