package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/royalcases/royal-cases-api/api"
	"github.com/royalcases/royal-cases-api/config"
	"github.com/royalcases/royal-cases-api/models"
)

// ListCasesHandler returns the general case listing: free-text search,
// company and date-range filters, ordered by status priority (Pending,
// Running, Completed, everything else) then most recently created
func (c Case) ListCasesHandler(w http.ResponseWriter, r *http.Request) {
	params := parseCaseListParams(r, defaultListLimit)
	filter := buildCaseListFilter(params)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	c.serveCaseList(ctx, w, params, filter, statusPrioritySort)
}

// PendingCasesHandler returns the Pending-scoped listing
func (c Case) PendingCasesHandler(w http.ResponseWriter, r *http.Request) {
	c.statusScopedList(w, r, models.StatusPending)
}

// RunningCasesHandler returns the Running-scoped listing
func (c Case) RunningCasesHandler(w http.ResponseWriter, r *http.Request) {
	c.statusScopedList(w, r, models.StatusRunning)
}

// CompletedCasesHandler returns the Completed-scoped listing
func (c Case) CompletedCasesHandler(w http.ResponseWriter, r *http.Request) {
	c.statusScopedList(w, r, models.StatusCompleted)
}

// TodaysCasesHandler returns cases with a hearing inside today's
// [midnight, midnight+24h) window
func (c Case) TodaysCasesHandler(w http.ResponseWriter, r *http.Request) {
	c.dayScopedList(w, r, 0)
}

// TomorrowsCasesHandler returns cases with a hearing inside tomorrow's window
func (c Case) TomorrowsCasesHandler(w http.ResponseWriter, r *http.Request) {
	c.dayScopedList(w, r, 1)
}

func (c Case) statusScopedList(w http.ResponseWriter, r *http.Request, status string) {
	params := parseCaseListParams(r, defaultScopedLimit)
	filter := bson.M{"status": status}
	if params.Search != "" {
		filter["$or"] = searchClauses(params.Search)
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	c.serveCaseList(ctx, w, params, filter, recencySort)
}

func (c Case) dayScopedList(w http.ResponseWriter, r *http.Request, offsetDays int) {
	params := parseCaseListParams(r, defaultScopedLimit)
	start, end := dayWindow(time.Now(), offsetDays)
	filter := dateWindowFilter("date", start, end)
	if params.Search != "" {
		filter["$or"] = searchClauses(params.Search)
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	c.serveCaseList(ctx, w, params, filter, recencySort)
}

// serveCaseList runs the find and count in parallel, the sort/skip/limit
// delegated to the store, and writes the shared listing envelope
func (c Case) serveCaseList(ctx context.Context, w http.ResponseWriter, params caseListParams, filter bson.M, sort bson.D) {
	limit64 := int64(params.Limit)
	skip64 := params.Skip()

	type findResult struct {
		cases []models.Case
		err   error
	}
	type countResult struct {
		count int64
		err   error
	}

	findChan := make(chan findResult, 1)
	countChan := make(chan countResult, 1)

	go func() {
		cases, err := c.DB.Find(ctx, filter, &options.FindOptions{
			Sort:  sort,
			Skip:  &skip64,
			Limit: &limit64,
		})
		findChan <- findResult{cases: cases, err: err}
	}()

	go func() {
		count, err := c.DB.CountDocuments(ctx, filter)
		countChan <- countResult{count: count, err: err}
	}()

	findRes := <-findChan
	countRes := <-countChan

	if findRes.err != nil {
		config.ErrorStatus("failed to get cases", http.StatusInternalServerError, w, findRes.err)
		return
	}
	if countRes.err != nil {
		config.ErrorStatus("failed to count cases", http.StatusInternalServerError, w, countRes.err)
		return
	}

	cases := findRes.cases
	// the front-end expects a json array even when the page is empty
	if len(cases) == 0 {
		cases = []models.Case{}
	}

	response := models.CaseListResponse{
		Cases:       cases,
		Total:       countRes.count,
		TotalPages:  totalPages(countRes.count, params.Limit),
		CurrentPage: params.Page,
	}

	b, err := json.Marshal(response)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
