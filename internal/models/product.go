package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog document. The name/description/category triple keeps
// the legacy monolingual values; the *_en / *_ar shadow fields carry the
// bilingual values and win over the legacy ones when present.
type Product struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Category      string             `json:"category" bson:"category"`
	Size          string             `json:"size,omitempty" bson:"size,omitempty"`
	Description   string             `json:"description" bson:"description"`
	NameEn        string             `json:"name_en,omitempty" bson:"name_en,omitempty"`
	NameAr        string             `json:"name_ar,omitempty" bson:"name_ar,omitempty"`
	DescriptionEn string             `json:"description_en,omitempty" bson:"description_en,omitempty"`
	DescriptionAr string             `json:"description_ar,omitempty" bson:"description_ar,omitempty"`
	CategoryEn    string             `json:"category_en,omitempty" bson:"category_en,omitempty"`
	CategoryAr    string             `json:"category_ar,omitempty" bson:"category_ar,omitempty"`
	Price         float64            `json:"price" bson:"price"`
	OldPrice      *float64           `json:"oldPrice,omitempty" bson:"oldPrice,omitempty"`
	Image         []string           `json:"image" bson:"image"`
	Rating        float64            `json:"rating" bson:"rating"`
	Author        primitive.ObjectID `json:"author,omitempty" bson:"author,omitempty"`
	HomeIndex     *int               `json:"homeIndex,omitempty" bson:"homeIndex,omitempty"`
	InStock       *bool              `json:"inStock,omitempty" bson:"inStock,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// UserRef is the slice of a user document exposed on joined reads.
type UserRef struct {
	ID       primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email    string             `json:"email,omitempty" bson:"email,omitempty"`
	Username string             `json:"username,omitempty" bson:"username,omitempty"`
}

// ProductWithAuthor is the read shape produced by the author $lookup. The
// outer Author field shadows the embedded ObjectID reference so JSON
// responses carry the joined user instead of a bare id.
type ProductWithAuthor struct {
	Product `bson:",inline"`
	Author  *UserRef `json:"author,omitempty" bson:"authorDoc,omitempty"`
}

// CreateProductRequest is the create payload. HomeIndex is deliberately
// untyped: admin clients send it as a number or a numeric string.
type CreateProductRequest struct {
	Name          string      `json:"name"`
	Category      string      `json:"category"`
	Size          string      `json:"size"`
	Description   string      `json:"description"`
	Price         float64     `json:"price"`
	OldPrice      *float64    `json:"oldPrice"`
	Image         []string    `json:"image"`
	Author        string      `json:"author"`
	HomeIndex     interface{} `json:"homeIndex"`
	NameEn        string      `json:"name_en"`
	NameAr        string      `json:"name_ar"`
	DescriptionEn string      `json:"description_en"`
	DescriptionAr string      `json:"description_ar"`
	CategoryEn    string      `json:"category_en"`
	CategoryAr    string      `json:"category_ar"`
}
