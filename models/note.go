package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Note holds the structure for the notes collection in mongo
type Note struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Note      string             `json:"note" bson:"note"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
