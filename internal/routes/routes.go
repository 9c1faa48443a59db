package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront-api/internal/config"
	"storefront-api/internal/handlers"
	"storefront-api/internal/middleware"
	"storefront-api/internal/repository"
)

func RegisterRoutes(router *gin.Engine, db *mongo.Database, uploader handlers.ImageUploader, cfg *config.Config) {
	products := repository.NewProductRepository(db.Collection("products"))
	reviews := repository.NewReviewRepository(db.Collection("reviews"))

	// The sparse unique homeIndex index backs the carousel-slot invariant.
	if err := products.EnsureIndexes(context.Background()); err != nil {
		log.Error().Err(err).Msg("could not ensure product indexes")
	}

	h := handlers.NewProductHandler(products, reviews, uploader)

	group := router.Group("/api/products")
	{
		group.POST("/uploadImages", h.UploadImages)
		group.POST("/create-product", h.CreateProduct)
		group.GET("/", h.GetProducts)
		group.GET("/product/:id", h.GetProduct)
		group.PATCH("/update-product/:id", middleware.VerifyToken(cfg.JWTSecret), middleware.VerifyAdmin, h.UpdateProduct)
		group.DELETE("/:id", h.DeleteProduct)
		group.GET("/related/:id", h.RelatedProducts)
	}
}
