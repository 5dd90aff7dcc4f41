package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/royalcases/royal-cases-api/databases"
	"github.com/royalcases/royal-cases-api/databases/mocks"
	"github.com/royalcases/royal-cases-api/models"
)

func TestLookupDatabase_FindOne(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Lookup)
		(*arg).Name = "High Court"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", databases.CourtCollectionName).Return(collectionHelper)

	courtDba := databases.NewLookupDatabase(dbHelper, databases.CourtCollectionName)

	lookup, err := courtDba.FindOne(context.Background(), bson.M{"error": true})

	assert.Empty(t, lookup)
	assert.EqualError(t, err, "mocked-error")

	lookup, err = courtDba.FindOne(context.Background(), bson.M{"error": false})

	assert.Equal(t, "High Court", lookup.Name)
	assert.NoError(t, err)
}

func TestLookupDatabase_Find(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var curHelperCorrect databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	curHelperCorrect = &mocks.CursorHelper{}

	curHelperCorrect.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Lookup)
		(*arg) = []models.Lookup{{Name: "Civil"}, {Name: "Criminal"}}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{}).
		Return(curHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", databases.CaseTypeCollectionName).Return(collectionHelper)

	caseTypeDba := databases.NewLookupDatabase(dbHelper, databases.CaseTypeCollectionName)

	lookups, err := caseTypeDba.Find(context.Background(), bson.M{})

	assert.Len(t, lookups, 2)
	assert.NoError(t, err)
}

func TestLookupDatabase_UpdateOne(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", context.Background(), bson.M{"error": false}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", databases.CompanyCollectionName).Return(collectionHelper)

	companyDba := databases.NewLookupDatabase(dbHelper, databases.CompanyCollectionName)

	matched, err := companyDba.UpdateOne(context.Background(), bson.M{"error": false}, bson.M{"$set": bson.M{"name": "Acme"}})

	assert.Equal(t, int64(1), matched)
	assert.NoError(t, err)
}

func TestLookupDatabase_DeleteOne(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("DeleteOne", context.Background(), bson.M{"error": false}).
		Return(&mongo.DeleteResult{DeletedCount: 1}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", databases.PoliceStationCollectionName).Return(collectionHelper)

	stationDba := databases.NewLookupDatabase(dbHelper, databases.PoliceStationCollectionName)

	deleted, err := stationDba.DeleteOne(context.Background(), bson.M{"error": false})

	assert.Equal(t, int64(1), deleted)
	assert.NoError(t, err)
}
