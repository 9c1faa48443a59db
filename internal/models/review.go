package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review references a product and its reviewer by id.
type Review struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Comment   string             `json:"comment" bson:"comment"`
	Rating    float64            `json:"rating" bson:"rating"`
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ReviewWithUser is the read shape produced by the reviewer $lookup.
type ReviewWithUser struct {
	Review `bson:",inline"`
	UserID *UserRef `json:"userId,omitempty" bson:"userDoc,omitempty"`
}
