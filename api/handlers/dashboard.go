package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/royalcases/royal-cases-api/api"
	"github.com/royalcases/royal-cases-api/config"
	"github.com/royalcases/royal-cases-api/databases"
	"github.com/royalcases/royal-cases-api/models"
)

// Dashboard exported for testing purposes
type Dashboard struct {
	CDB databases.CaseDatabase
	NDB databases.NoteDatabase
}

// AllCasesCountHandler returns the total number of cases
func (d Dashboard) AllCasesCountHandler(w http.ResponseWriter, r *http.Request) {
	d.caseCount(w, r, bson.M{})
}

// PendingCasesCountHandler returns the number of Pending cases
func (d Dashboard) PendingCasesCountHandler(w http.ResponseWriter, r *http.Request) {
	d.caseCount(w, r, bson.M{"status": models.StatusPending})
}

// RunningCasesCountHandler returns the number of Running cases
func (d Dashboard) RunningCasesCountHandler(w http.ResponseWriter, r *http.Request) {
	d.caseCount(w, r, bson.M{"status": models.StatusRunning})
}

// CompletedCasesCountHandler returns the number of Completed cases
func (d Dashboard) CompletedCasesCountHandler(w http.ResponseWriter, r *http.Request) {
	d.caseCount(w, r, bson.M{"status": models.StatusCompleted})
}

// TodaysCasesCountHandler returns the number of cases with a hearing today
func (d Dashboard) TodaysCasesCountHandler(w http.ResponseWriter, r *http.Request) {
	start, end := dayWindow(time.Now(), 0)
	d.caseCount(w, r, dateWindowFilter("date", start, end))
}

// TomorrowsCasesCountHandler returns the number of cases with a hearing tomorrow
func (d Dashboard) TomorrowsCasesCountHandler(w http.ResponseWriter, r *http.Request) {
	start, end := dayWindow(time.Now(), 1)
	d.caseCount(w, r, dateWindowFilter("date", start, end))
}

// AllNotesCountHandler returns the total number of daily notes
func (d Dashboard) AllNotesCountHandler(w http.ResponseWriter, r *http.Request) {
	d.noteCount(w, r, bson.M{})
}

// TodaysNotesCountHandler returns the number of notes created today
func (d Dashboard) TodaysNotesCountHandler(w http.ResponseWriter, r *http.Request) {
	start, end := dayWindow(time.Now(), 0)
	d.noteCount(w, r, dateWindowFilter("createdAt", start, end))
}

func (d Dashboard) caseCount(w http.ResponseWriter, r *http.Request, filter bson.M) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := d.CDB.CountDocuments(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to count cases", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.CountResponse{Count: count})
}

func (d Dashboard) noteCount(w http.ResponseWriter, r *http.Request, filter bson.M) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := d.NDB.CountDocuments(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to count notes", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.CountResponse{Count: count})
}
