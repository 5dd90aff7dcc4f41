package databases

// go generate: mockery --name NoteDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/royalcases/royal-cases-api/models"
)

const noteCollectionName = "notes"

// NoteDatabase contains the methods to use with the daily-notes database
type NoteDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Note, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error)
}

type noteDatabase struct {
	db DatabaseHelper
}

// NewNoteDatabase initializes a new instance of note database with the provided db connection
func NewNoteDatabase(db DatabaseHelper) NoteDatabase {
	return &noteDatabase{
		db: db,
	}
}

func (n *noteDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Note, error) {
	var notes []models.Note
	cur := n.db.Collection(noteCollectionName).Find(ctx, filter, opts...)
	err := cur.Decode(&notes)
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (n *noteDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return n.db.Collection(noteCollectionName).CountDocuments(ctx, filter, opts...)
}

func (n *noteDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return n.db.Collection(noteCollectionName).InsertOne(ctx, document, opts...)
}

func (n *noteDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (int64, error) {
	res, err := n.db.Collection(noteCollectionName).UpdateOne(ctx, filter, update, opts...)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (n *noteDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	res, err := n.db.Collection(noteCollectionName).DeleteOne(ctx, filter, opts...)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
