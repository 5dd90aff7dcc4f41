package databases

// go generate: mockery --name LookupDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/royalcases/royal-cases-api/models"
)

// Reference-table collection names. The legacy backend named them
// inconsistently; they are kept verbatim for storage compatibility.
const (
	CourtCollectionName         = "courts"
	CaseTypeCollectionName      = "caseTypes"
	PoliceStationCollectionName = "policeStations"
	CompanyCollectionName       = "companies"
)

// LookupDatabase contains the methods shared by the reference-table
// collections (courts, case types, police stations, companies)
type LookupDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Lookup, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Lookup, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error)
}

type lookupDatabase struct {
	db         DatabaseHelper
	collection string
}

// NewLookupDatabase initializes a lookup database over the named collection
func NewLookupDatabase(db DatabaseHelper, collection string) LookupDatabase {
	return &lookupDatabase{
		db:         db,
		collection: collection,
	}
}

func (l *lookupDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Lookup, error) {
	lookup := &models.Lookup{}
	err := l.db.Collection(l.collection).FindOne(ctx, filter, opts...).Decode(&lookup)
	if err != nil {
		return nil, err
	}
	return lookup, nil
}

func (l *lookupDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Lookup, error) {
	var lookups []models.Lookup
	cur := l.db.Collection(l.collection).Find(ctx, filter, opts...)
	err := cur.Decode(&lookups)
	if err != nil {
		return nil, err
	}
	return lookups, nil
}

func (l *lookupDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return l.db.Collection(l.collection).InsertOne(ctx, document, opts...)
}

// UpdateOne returns the matched count so handlers can 404 on a miss
func (l *lookupDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (int64, error) {
	res, err := l.db.Collection(l.collection).UpdateOne(ctx, filter, update, opts...)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (l *lookupDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	res, err := l.db.Collection(l.collection).DeleteOne(ctx, filter, opts...)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
