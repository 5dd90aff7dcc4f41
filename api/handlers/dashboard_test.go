package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/royalcases/royal-cases-api/api/handlers"
	"github.com/royalcases/royal-cases-api/databases"
	"github.com/royalcases/royal-cases-api/databases/mocks"
)

func newDashboard(caseConn, noteConn databases.CollectionHelper) handlers.Dashboard {
	db := &MockDatabaseHelper{}
	if caseConn != nil {
		db.On("Collection", "all-cases").Return(caseConn)
	}
	if noteConn != nil {
		db.On("Collection", "notes").Return(noteConn)
	}
	return handlers.Dashboard{
		CDB: databases.NewCaseDatabase(db),
		NDB: databases.NewNoteDatabase(db),
	}
}

func TestDashboard_AllCasesCountHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/dashboard/all-cases-count", nil)
	if err != nil {
		t.Fatal(err)
	}

	conn := &mocks.CollectionHelper{}
	conn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(42), nil)

	d := newDashboard(conn, nil)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(d.AllCasesCountHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	assert.JSONEq(t, `{"count":42}`, rr.Body.String())
}

func TestDashboard_PendingCasesCountHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/dashboard/pending-cases-count", nil)
	if err != nil {
		t.Fatal(err)
	}

	conn := &mocks.CollectionHelper{}
	conn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(7), nil)

	d := newDashboard(conn, nil)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(d.PendingCasesCountHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	assert.JSONEq(t, `{"count":7}`, rr.Body.String())
}

func TestDashboard_TodaysCasesCountHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/dashboard/todays-cases-count", nil)
	if err != nil {
		t.Fatal(err)
	}

	conn := &mocks.CollectionHelper{}
	conn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(3), nil)

	d := newDashboard(conn, nil)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(d.TodaysCasesCountHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	assert.JSONEq(t, `{"count":3}`, rr.Body.String())
}

func TestDashboard_AllNotesCountHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/dashboard/all-notes-count", nil)
	if err != nil {
		t.Fatal(err)
	}

	conn := &mocks.CollectionHelper{}
	conn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(5), nil)

	d := newDashboard(nil, conn)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(d.AllNotesCountHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	assert.JSONEq(t, `{"count":5}`, rr.Body.String())
}

func TestDashboard_CountError(t *testing.T) {
	req, err := http.NewRequest("GET", "/dashboard/all-cases-count", nil)
	if err != nil {
		t.Fatal(err)
	}

	conn := &mocks.CollectionHelper{}
	conn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), errors.New("mocked-error"))

	d := newDashboard(conn, nil)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(d.AllCasesCountHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusInternalServerError {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusInternalServerError)
	}

	assert.Contains(t, rr.Body.String(), "failed to count cases")
}
