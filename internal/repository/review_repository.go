package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront-api/internal/models"
)

type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(collection *mongo.Collection) *ReviewRepository {
	return &ReviewRepository{
		collection: collection,
	}
}

// FindByProductID lists the reviews of a product with the reviewer joined.
func (r *ReviewRepository) FindByProductID(ctx context.Context, productID primitive.ObjectID) ([]models.ReviewWithUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := []bson.D{
		{{Key: "$match", Value: bson.M{"productId": productID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "userDoc",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$userDoc",
			"preserveNullAndEmptyArrays": true,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]models.ReviewWithUser, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}

	return reviews, nil
}

// DeleteByProductID removes every review referencing the product.
func (r *ReviewRepository) DeleteByProductID(ctx context.Context, productID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"productId": productID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
