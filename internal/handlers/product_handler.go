package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront-api/internal/localize"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// legacyHennaCategory is the one category whose listings also filter on
// size, kept from the first storefront iteration.
const legacyHennaCategory = "حناء بودر"

// categoriesNeedSize lists the categories that cannot be created without a
// size. The labels use the typographic apostrophe the storefront sends.
var categoriesNeedSize = map[string]bool{
	"Men’s Washes":     true,
	"Women’s Washes":   true,
	"Liquid Bath Soap": true,
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProductWithAuthor, error)
	FindRaw(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Find(ctx context.Context, filter bson.M, page, limit int) ([]models.ProductWithAuthor, int64, error)
	FindRelated(ctx context.Context, product *models.Product) ([]models.ProductWithAuthor, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

type ReviewStore interface {
	FindByProductID(ctx context.Context, productID primitive.ObjectID) ([]models.ReviewWithUser, error)
	DeleteByProductID(ctx context.Context, productID primitive.ObjectID) (int64, error)
}

type ImageUploader interface {
	UploadMany(ctx context.Context, images []string) ([]string, error)
	UploadFile(ctx context.Context, file io.Reader) (string, error)
}

type ProductHandler struct {
	products ProductStore
	reviews  ReviewStore
	uploader ImageUploader
}

func NewProductHandler(products ProductStore, reviews ReviewStore, uploader ImageUploader) *ProductHandler {
	return &ProductHandler{
		products: products,
		reviews:  reviews,
		uploader: uploader,
	}
}

// UploadImages hosts a batch of base64/data-URL payloads and returns the
// resulting URLs.
func (h *ProductHandler) UploadImages(c *gin.Context) {
	var req struct {
		Images []string `json:"images"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Images == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "an array of images is required"})
		return
	}

	urls, err := h.uploader.UploadMany(c.Request.Context(), req.Images)
	if err != nil {
		log.Error().Err(err).Msg("error uploading images")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload images"})
		return
	}

	c.JSON(http.StatusOK, urls)
}

// CreateProduct validates the payload, derives the legacy and bilingual
// name fields, and persists the document.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if req.Name == "" || req.Category == "" || req.Description == "" || req.Price <= 0 ||
		len(req.Image) == 0 || req.Author == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "all required fields must be provided"})
		return
	}

	needsSize := categoriesNeedSize[req.Category]
	if needsSize && req.Size == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "size is required for this category"})
		return
	}

	homeIndex, ok := parseHomeIndex(req.HomeIndex)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "homeIndex must be a number between 1 and 6"})
		return
	}

	authorID, err := primitive.ObjectIDFromHex(req.Author)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid author id"})
		return
	}

	product := &models.Product{
		Name:          suffixName(req.Name, req.Size, needsSize),
		Category:      req.Category,
		Description:   req.Description,
		NameEn:        suffixName(fallback(req.NameEn, req.Name), req.Size, needsSize),
		NameAr:        suffixName(fallback(req.NameAr, req.Name), req.Size, needsSize),
		DescriptionEn: fallback(req.DescriptionEn, req.Description),
		DescriptionAr: fallback(req.DescriptionAr, req.Description),
		CategoryEn:    fallback(req.CategoryEn, req.Category),
		CategoryAr:    fallback(req.CategoryAr, req.Category),
		Price:         req.Price,
		OldPrice:      req.OldPrice,
		Image:         req.Image,
		Author:        authorID,
		HomeIndex:     homeIndex,
	}
	if needsSize {
		product.Size = req.Size
	}

	if err := h.products.Create(c.Request.Context(), product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "homeIndex is already taken by another product"})
			return
		}
		log.Error().Err(err).Msg("error creating new product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create new product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProducts lists products with filters, pagination and localization.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	filter := h.buildListFilter(c)
	page, limit := h.paginationParams(c)

	products, total, err := h.products.Find(c.Request.Context(), filter, page, limit)
	if err != nil {
		log.Error().Err(err).Msg("error fetching products")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
		return
	}

	totalPages := int64(math.Ceil(float64(total) / float64(limit)))

	c.JSON(http.StatusOK, gin.H{
		"products":      localize.Products(products, langOf(c)),
		"totalPages":    totalPages,
		"totalProducts": total,
	})
}

// GetProduct fetches one product with its reviews. lang=raw bypasses
// localization for administrative consumers.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	objID, err := parseProductID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	product, err := h.products.FindByID(c.Request.Context(), objID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		log.Error().Err(err).Msg("error fetching the product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch the product"})
		return
	}

	reviews, err := h.reviews.FindByProductID(c.Request.Context(), objID)
	if err != nil {
		log.Error().Err(err).Msg("error fetching product reviews")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch the product"})
		return
	}

	if strings.ToLower(c.Query("lang")) == "raw" {
		c.JSON(http.StatusOK, gin.H{"product": product, "reviews": reviews})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": localize.Product(*product, langOf(c)),
		"reviews": reviews,
	})
}

// UpdateProduct applies a partial update from a multipart form. The image
// array is only rewritten when kept or newly uploaded images are supplied.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	objID, err := parseProductID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	if _, err := h.products.FindRaw(c.Request.Context(), objID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		log.Error().Err(err).Msg("error fetching product for update")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	category := c.PostForm("category")
	priceStr := c.PostForm("price")
	description := strings.TrimSpace(c.PostForm("description"))
	if name == "" || category == "" || priceStr == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "all required fields must be provided"})
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid price"})
		return
	}

	set := bson.M{
		"name":        name,
		"category":    category,
		"price":       price,
		"description": description,
		"inStock":     strings.ToLower(c.PostForm("inStock")) == "true",
	}

	// oldPrice is cleared unless a parseable value was supplied.
	if oldPrice, err := strconv.ParseFloat(c.PostForm("oldPrice"), 64); err == nil {
		set["oldPrice"] = oldPrice
	} else {
		set["oldPrice"] = nil
	}

	if homeIndexStr := c.PostForm("homeIndex"); homeIndexStr != "" {
		n, err := strconv.ParseFloat(homeIndexStr, 64)
		if err != nil || n != math.Trunc(n) || n < 1 || n > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "homeIndex must be a number between 1 and 6"})
			return
		}
		set["homeIndex"] = int(n)
	}

	if author := c.PostForm("author"); author != "" {
		if authorID, err := primitive.ObjectIDFromHex(author); err == nil {
			set["author"] = authorID
		}
	}

	optional := map[string]string{
		"size":           c.PostForm("size"),
		"name_en":        c.PostForm("name_en"),
		"name_ar":        c.PostForm("name_ar"),
		"description_en": c.PostForm("description_en"),
		"description_ar": c.PostForm("description_ar"),
		"category_en":    c.PostForm("category_en"),
		"category_ar":    c.PostForm("category_ar"),
	}
	for field, value := range optional {
		if value != "" {
			set[field] = value
		}
	}

	keepImages := parseKeepImages(c.PostForm("keepImages"))

	var newImageURLs []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, header := range form.File["image"] {
			file, err := header.Open()
			if err != nil {
				log.Error().Err(err).Str("file", header.Filename).Msg("error reading uploaded image")
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
				return
			}
			url, err := h.uploader.UploadFile(c.Request.Context(), file)
			file.Close()
			if err != nil {
				log.Error().Err(err).Str("file", header.Filename).Msg("error uploading image")
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
				return
			}
			newImageURLs = append(newImageURLs, url)
		}
	}

	// Only rewrite the image array when the request actually supplied
	// images; otherwise the stored array is left untouched.
	if len(keepImages) > 0 || len(newImageURLs) > 0 {
		set["image"] = append(keepImages, newImageURLs...)
	}

	product, err := h.products.Update(c.Request.Context(), objID, set)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "homeIndex is already taken by another product"})
			return
		}
		log.Error().Err(err).Msg("error updating product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product updated successfully", "product": product})
}

// DeleteProduct removes a product and cascades its reviews best-effort.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	objID, err := parseProductID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	if _, err := h.products.Delete(c.Request.Context(), objID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		log.Error().Err(err).Msg("error deleting the product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete the product"})
		return
	}

	// No transaction around the cascade: a failure here leaves orphaned
	// reviews and is only logged.
	if _, err := h.reviews.DeleteByProductID(c.Request.Context(), objID); err != nil {
		log.Error().Err(err).Str("productId", objID.Hex()).Msg("error deleting product reviews")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// RelatedProducts lists products sharing a name token or the category with
// the given product.
func (h *ProductHandler) RelatedProducts(c *gin.Context) {
	objID, err := parseProductID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	product, err := h.products.FindRaw(c.Request.Context(), objID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		log.Error().Err(err).Msg("error fetching the product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch related products"})
		return
	}

	related, err := h.products.FindRelated(c.Request.Context(), product)
	if err != nil {
		log.Error().Err(err).Msg("error fetching related products")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch related products"})
		return
	}

	c.JSON(http.StatusOK, localize.Products(related, langOf(c)))
}

// --- helpers ---

// parseProductID rejects empty ids, the literal "undefined" sent by broken
// frontend states, and structurally invalid ObjectIDs.
func parseProductID(id string) (primitive.ObjectID, error) {
	if id == "" || id == "undefined" {
		return primitive.NilObjectID, fmt.Errorf("invalid product id")
	}
	return primitive.ObjectIDFromHex(id)
}

// parseHomeIndex accepts an absent value, a JSON number, or a numeric
// string; anything else, or a value outside [1,6], is rejected.
func parseHomeIndex(value interface{}) (*int, bool) {
	var n float64
	switch v := value.(type) {
	case nil:
		return nil, true
	case string:
		if v == "" {
			return nil, true
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		n = parsed
	case float64:
		n = v
	default:
		return nil, false
	}

	if n != math.Trunc(n) || n < 1 || n > 6 {
		return nil, false
	}
	index := int(n)
	return &index, true
}

func (h *ProductHandler) buildListFilter(c *gin.Context) bson.M {
	filter := bson.M{}

	if category := c.Query("category"); category != "" && category != "all" {
		filter["category"] = category
		if category == legacyHennaCategory {
			if size := c.Query("size"); size != "" {
				filter["size"] = size
			}
		}
	}

	if homeIndex := c.Query("homeIndex"); homeIndex != "" && homeIndex != "null" {
		if n, err := strconv.ParseFloat(homeIndex, 64); err == nil {
			filter["homeIndex"] = n
		}
	}

	if color := c.Query("color"); color != "" && color != "all" {
		filter["color"] = color
	}

	// The price range is only applied when both bounds parse.
	if minStr, maxStr := c.Query("minPrice"), c.Query("maxPrice"); minStr != "" && maxStr != "" {
		min, errMin := strconv.ParseFloat(minStr, 64)
		max, errMax := strconv.ParseFloat(maxStr, 64)
		if errMin == nil && errMax == nil {
			filter["price"] = bson.M{"$gte": min, "$lte": max}
		}
	}

	return filter
}

func (h *ProductHandler) paginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// langOf normalizes the lang query parameter; anything but Arabic
// localizes to English.
func langOf(c *gin.Context) string {
	if strings.ToLower(c.Query("lang")) == localize.LangArabic {
		return localize.LangArabic
	}
	return localize.LangEnglish
}

func parseKeepImages(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil
	}
	kept := parsed[:0]
	for _, url := range parsed {
		if url != "" {
			kept = append(kept, url)
		}
	}
	return kept
}

func suffixName(name, size string, needsSize bool) string {
	if needsSize && size != "" {
		return fmt.Sprintf("%s - %s", name, size)
	}
	return name
}

func fallback(value, legacy string) string {
	if value != "" {
		return value
	}
	return legacy
}
