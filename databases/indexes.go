package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureIndexes creates the indexes the API relies on. The unique compound
// index on (fileNo, caseNo, court) is what actually enforces the
// duplicate-case invariant; the handler pre-check only shapes the error
// message. Index failures are logged and skipped so a deployment holding
// legacy duplicates still boots.
func EnsureIndexes(ctx context.Context, db DatabaseHelper) {
	caseIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "fileNo", Value: 1}, {Key: "caseNo", Value: 1}, {Key: "court", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_fileNo_caseNo_court"),
		},
		{
			Keys:    bson.D{{Key: "statusRank", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("statusRank_createdAt"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("status_createdAt"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("date"),
		},
	}
	for _, model := range caseIndexes {
		if _, err := db.Collection(caseCollectionName).CreateIndex(ctx, model); err != nil {
			zap.S().Warnw("failed to create case index",
				"index", *model.Options.Name,
				"error", err,
			)
		}
	}

	lookupCollections := []string{
		CourtCollectionName,
		CaseTypeCollectionName,
		PoliceStationCollectionName,
		CompanyCollectionName,
	}
	for _, coll := range lookupCollections {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_name"),
		}
		if _, err := db.Collection(coll).CreateIndex(ctx, model); err != nil {
			zap.S().Warnw("failed to create lookup name index",
				"collection", coll,
				"error", err,
			)
		}
	}
}
