package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/royalcases/royal-cases-api/api/handlers"
	"github.com/royalcases/royal-cases-api/databases"
	"github.com/royalcases/royal-cases-api/databases/mocks"
	"github.com/royalcases/royal-cases-api/models"
)

func newListMocks(t *testing.T, cases []models.Case, total int64) databases.DatabaseHelper {
	t.Helper()

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var curHelper databases.CursorHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	curHelper = &mocks.CursorHelper{}

	curHelper.(*mocks.CursorHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Case)
		(*arg) = cases
	})
	conn.(*mocks.CollectionHelper).On("Find", mock.Anything, mock.Anything, mock.Anything).Return(curHelper)
	conn.(*mocks.CollectionHelper).On("CountDocuments", mock.Anything, mock.Anything).Return(total, nil)
	db.(*MockDatabaseHelper).On("Collection", "all-cases").Return(conn)

	return db
}

// listQueryCapture records the filter and find options a listing handler
// hands to the store
type listQueryCapture struct {
	filter bson.M
	opts   *options.FindOptions
}

func newCaptureListMocks(t *testing.T, total int64) (databases.DatabaseHelper, *listQueryCapture) {
	t.Helper()

	captured := &listQueryCapture{}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var curHelper databases.CursorHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	curHelper = &mocks.CursorHelper{}

	curHelper.(*mocks.CursorHelper).On("Decode", mock.Anything).Return(nil)
	conn.(*mocks.CollectionHelper).On("Find", mock.Anything, mock.Anything, mock.Anything).Return(curHelper).Run(func(args mock.Arguments) {
		captured.filter = args.Get(1).(bson.M)
		captured.opts = args.Get(2).(*options.FindOptions)
	})
	conn.(*mocks.CollectionHelper).On("CountDocuments", mock.Anything, mock.Anything).Return(total, nil)
	db.(*MockDatabaseHelper).On("Collection", "all-cases").Return(conn)

	return db, captured
}

func TestCase_ListCasesHandlerDelegatesSortAndPaging(t *testing.T) {
	req, err := http.NewRequest("GET", "/cases?page=3&limit=5", nil)
	if err != nil {
		t.Fatal(err)
	}

	db, captured := newCaptureListMocks(t, 11)

	c := handlers.Case{DB: databases.NewCaseDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.ListCasesHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	// unfiltered listing orders by status priority then recency, paged
	assert.Equal(t, bson.M{}, captured.filter)
	assert.Equal(t, bson.D{{Key: "statusRank", Value: 1}, {Key: "createdAt", Value: -1}}, captured.opts.Sort)
	assert.Equal(t, int64(10), *captured.opts.Skip)
	assert.Equal(t, int64(5), *captured.opts.Limit)
}

func TestCase_RunningCasesHandlerDelegatesScopedQuery(t *testing.T) {
	req, err := http.NewRequest("GET", "/running-cases", nil)
	if err != nil {
		t.Fatal(err)
	}

	db, captured := newCaptureListMocks(t, 1)

	c := handlers.Case{DB: databases.NewCaseDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.RunningCasesHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	assert.Equal(t, models.StatusRunning, captured.filter["status"])
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, captured.opts.Sort)
	assert.Equal(t, int64(0), *captured.opts.Skip)
	assert.Equal(t, int64(8), *captured.opts.Limit)
}

func TestCase_TomorrowsCasesHandlerDelegatesDayWindow(t *testing.T) {
	req, err := http.NewRequest("GET", "/cases/tomorrow", nil)
	if err != nil {
		t.Fatal(err)
	}

	db, captured := newCaptureListMocks(t, 1)

	c := handlers.Case{DB: databases.NewCaseDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.TomorrowsCasesHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	window, ok := captured.filter["date"].(bson.M)
	assert.True(t, ok)
	start, _ := window["$gte"].(time.Time)
	end, _ := window["$lt"].(time.Time)

	// half-open 24h window anchored at tomorrow's local midnight
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.True(t, start.After(time.Now()))
	assert.Equal(t, start.AddDate(0, 0, 1), end)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, captured.opts.Sort)
}

func TestCase_ListCasesHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/cases?page=2", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := newListMocks(t, []models.Case{{FileNo: "F-101"}, {FileNo: "F-102"}}, 12)

	c := handlers.Case{DB: databases.NewCaseDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.ListCasesHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var resp models.CaseListResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Cases, 2)
	assert.Equal(t, int64(12), resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 2, resp.CurrentPage)
}

func TestCase_ListCasesHandlerEmptyPage(t *testing.T) {
	req, err := http.NewRequest("GET", "/cases?page=99", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := newListMocks(t, nil, 0)

	c := handlers.Case{DB: databases.NewCaseDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.ListCasesHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	// even an empty page answers with a json array, not null
	assert.Contains(t, rr.Body.String(), `"cases":[]`)
	assert.Contains(t, rr.Body.String(), `"totalPages":0`)
}

func TestCase_ListCasesHandlerFindError(t *testing.T) {
	req, err := http.NewRequest("GET", "/cases", nil)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var curHelper databases.CursorHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	curHelper = &mocks.CursorHelper{}

	curHelper.(*mocks.CursorHelper).On("Decode", mock.Anything).Return(errors.New("mocked-error"))
	conn.(*mocks.CollectionHelper).On("Find", mock.Anything, mock.Anything, mock.Anything).Return(curHelper)
	conn.(*mocks.CollectionHelper).On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	db.(*MockDatabaseHelper).On("Collection", "all-cases").Return(conn)

	c := handlers.Case{DB: databases.NewCaseDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.ListCasesHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusInternalServerError {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusInternalServerError)
	}

	assert.Contains(t, rr.Body.String(), "failed to get cases")
}

func TestCase_PendingCasesHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/cases/pending?search=murder", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := newListMocks(t, []models.Case{{FileNo: "F-101", Status: models.StatusPending}}, 1)

	c := handlers.Case{DB: databases.NewCaseDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.PendingCasesHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var resp models.CaseListResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Cases, 1)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, models.StatusPending, resp.Cases[0].Status)
}

func TestCase_TodaysCasesHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/cases/today", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := newListMocks(t, []models.Case{{FileNo: "F-103"}}, 1)

	c := handlers.Case{DB: databases.NewCaseDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.TodaysCasesHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var resp models.CaseListResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
}
