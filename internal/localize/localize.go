// Package localize flattens bilingual product documents into a single
// display shape for the requested language.
package localize

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-api/internal/models"
)

const (
	LangEnglish = "en"
	LangArabic  = "ar"
)

// Display is a localized product: one value per field instead of a
// per-language pair. Documents predating the bilingual fields produce the
// legacy values unchanged.
type Display struct {
	ID          primitive.ObjectID `json:"_id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Size        string             `json:"size,omitempty"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	OldPrice    *float64           `json:"oldPrice,omitempty"`
	Image       []string           `json:"image"`
	Rating      float64            `json:"rating"`
	Author      *models.UserRef    `json:"author,omitempty"`
	HomeIndex   *int               `json:"homeIndex,omitempty"`
	InStock     *bool              `json:"inStock,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// Product selects the language-specific field values, falling back to the
// legacy monolingual fields. The input document is not modified.
func Product(p models.ProductWithAuthor, lang string) Display {
	arabic := lang == LangArabic

	return Display{
		ID:          p.ID,
		Name:        pick(arabic, p.NameAr, p.NameEn, p.Name),
		Category:    pick(arabic, p.CategoryAr, p.CategoryEn, p.Category),
		Size:        p.Size,
		Description: pick(arabic, p.DescriptionAr, p.DescriptionEn, p.Description),
		Price:       p.Price,
		OldPrice:    p.OldPrice,
		Image:       p.Image,
		Rating:      p.Rating,
		Author:      p.Author,
		HomeIndex:   p.HomeIndex,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// Products localizes a list element-wise.
func Products(list []models.ProductWithAuthor, lang string) []Display {
	out := make([]Display, len(list))
	for i, p := range list {
		out[i] = Product(p, lang)
	}
	return out
}

func pick(arabic bool, arValue, enValue, legacy string) string {
	if arabic {
		if arValue != "" {
			return arValue
		}
		return legacy
	}
	if enValue != "" {
		return enValue
	}
	return legacy
}
