package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-api/internal/models"
)

// ErrNotFound is returned when no product matches the given id.
var ErrNotFound = errors.New("product not found")

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *ProductRepository {
	return &ProductRepository{
		collection: collection,
	}
}

// EnsureIndexes creates the sparse unique index backing the homepage
// carousel slots. Sparse keeps documents without a homeIndex out of the
// uniqueness constraint.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "homeIndex", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	})
	return err
}

// Create inserts a new product with a generated id and timestamps.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	product.ID = primitive.NewObjectID()
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, product)
	return err
}

// authorLookup joins the referenced user document into authorDoc.
func authorLookup() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "author",
			"foreignField": "_id",
			"as":           "authorDoc",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$authorDoc",
			"preserveNullAndEmptyArrays": true,
		}}},
	}
}

// FindByID fetches a single product with its author joined.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProductWithAuthor, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	pipeline := append([]bson.D{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}, authorLookup()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.ProductWithAuthor
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNotFound
	}

	return &products[0], nil
}

// FindRaw fetches a single product without any join.
func (r *ProductRepository) FindRaw(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

// Find lists products matching filter, newest first, with the author
// joined. The returned count is taken against the unpaginated filter.
func (r *ProductRepository) Find(ctx context.Context, filter bson.M, page, limit int) ([]models.ProductWithAuthor, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := (page - 1) * limit
	pipeline := append([]bson.D{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$skip", Value: int64(skip)}},
		{{Key: "$limit", Value: int64(limit)}},
	}, authorLookup()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := make([]models.ProductWithAuthor, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// FindRelated matches products that share a name token or the category of
// the given product, excluding the product itself, newest first.
func (r *ProductRepository) FindRelated(ctx context.Context, product *models.Product) ([]models.ProductWithAuthor, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"_id": bson.M{"$ne": product.ID},
		"$or": []bson.M{
			{"name": bson.M{"$regex": RelatedPattern(product.Name), "$options": "i"}},
			{"category": product.Category},
		},
	}

	pipeline := append([]bson.D{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}, authorLookup()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.ProductWithAuthor, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	return products, nil
}

// RelatedPattern builds a case-insensitive alternation from the name
// tokens longer than one character. Tokens are escaped so names match
// literally.
func RelatedPattern(name string) string {
	var tokens []string
	for _, word := range strings.Fields(name) {
		if utf8.RuneCountInString(word) > 1 {
			tokens = append(tokens, regexp.QuoteMeta(word))
		}
	}
	return strings.Join(tokens, "|")
}

// Update applies a partial $set and returns the updated document.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

// Delete removes a product and returns the deleted document.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var product models.Product
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}
