package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Lookup holds the structure shared by the reference-table collections
// (courts, caseTypes, policeStations, companies). Each is a named value the
// front-end offers when filling in case fields; cases store the name itself,
// not a reference.
type Lookup struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
