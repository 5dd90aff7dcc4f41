package handlers

import (
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/royalcases/royal-cases-api/models"
)

// Default page sizes: the general listing serves 10 per page, the
// status/date-scoped listings 8, matching the front-end's tables.
const (
	defaultListLimit   = 10
	defaultScopedLimit = 8
)

// caseListParams carries the parsed query parameters of a listing request
type caseListParams struct {
	Page      int
	Limit     int
	Search    string
	Company   string
	StartDate *time.Time
	EndDate   *time.Time
}

// Skip returns the number of documents ahead of the requested page
func (p caseListParams) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// parseCaseListParams reads page/limit/search/company/startDate/endDate from
// the request. Pages are 1-indexed; anything unparseable falls back to the
// defaults the way the front-end expects.
func parseCaseListParams(r *http.Request, defaultLimit int) caseListParams {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}

	p := caseListParams{
		Page:    page,
		Limit:   limit,
		Search:  strings.TrimSpace(q.Get("search")),
		Company: strings.TrimSpace(q.Get("company")),
	}

	if s := q.Get("startDate"); s != "" {
		t, err := models.ParseDate(s)
		if err != nil {
			zap.S().Warnf("ignoring unparseable startDate %q: %v", s, err)
		} else {
			p.StartDate = &t
		}
	}
	if s := q.Get("endDate"); s != "" {
		t, err := models.ParseDate(s)
		if err != nil {
			zap.S().Warnf("ignoring unparseable endDate %q: %v", s, err)
		} else {
			p.EndDate = &t
		}
	}
	return p
}

// searchClauses returns the OR clauses of the free-text search: a
// case-insensitive substring match over every searchable case field.
// The search text is quoted so regex metacharacters match literally.
func searchClauses(search string) []bson.M {
	fields := []string{
		"caseNo",
		"policeStation",
		"comments",
		"firstParty",
		"secondParty",
		"status",
		"lawSection",
	}
	pattern := regexp.QuoteMeta(search)
	clauses := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		clauses = append(clauses, bson.M{f: bson.M{"$regex": pattern, "$options": "i"}})
	}
	return clauses
}

// buildCaseListFilter translates listing parameters into a store filter.
// All clauses AND together; the multi-field search ORs internally. An empty
// parameter set yields an empty filter matching the whole collection.
func buildCaseListFilter(p caseListParams) bson.M {
	filter := bson.M{}
	if p.Company != "" {
		filter["company"] = p.Company
	}
	if p.Search != "" {
		filter["$or"] = searchClauses(p.Search)
	}
	if p.StartDate != nil || p.EndDate != nil {
		dateRange := bson.M{}
		if p.StartDate != nil {
			dateRange["$gte"] = *p.StartDate
		}
		if p.EndDate != nil {
			dateRange["$lte"] = *p.EndDate
		}
		filter["date"] = dateRange
	}
	return filter
}

// dayWindow returns the half-open 24-hour window [midnight+offset days,
// midnight+offset+1 days) anchored at local midnight of now
func dayWindow(now time.Time, offsetDays int) (time.Time, time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := midnight.AddDate(0, 0, offsetDays)
	return start, start.AddDate(0, 0, 1)
}

// dateWindowFilter is the store clause for a dayWindow
func dateWindowFilter(field string, start, end time.Time) bson.M {
	return bson.M{field: bson.M{"$gte": start, "$lt": end}}
}

// totalPages computes ceil(total/limit)
func totalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}

// listing sort orders, delegated to the store. The general listing orders by
// the persisted status rank then recency; scoped listings by recency alone.
var (
	statusPrioritySort = bson.D{{Key: "statusRank", Value: 1}, {Key: "createdAt", Value: -1}}
	recencySort        = bson.D{{Key: "createdAt", Value: -1}}
)
