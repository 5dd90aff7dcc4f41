// Package docs Royal Cases API.
//
// Documentation of the Royal Cases legal practice API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// swagger:meta
package docs

import (
	"github.com/royalcases/royal-cases-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route GET /cases cases listCases
// Lists cases with search, company and date-range filters, paginated.
// responses:
//   200: caseListResponse

// A page of cases plus the pagination envelope.
// swagger:response caseListResponse
type caseListResponseWrapper struct {
	// in:body
	Body models.CaseListResponse
}

// swagger:route GET /cases/{case_id} cases caseByID
// Gets a single case by ID.
// responses:
//   200: caseByIDResponse

// Shows a single case by the given {case_id}
// swagger:response caseByIDResponse
type caseByIDResponseWrapper struct {
	// in:body
	Body models.Case
}

// swagger:route GET /dashboard/all-cases-count dashboard allCasesCount
// Counts all cases for the dashboard.
// responses:
//   200: countResponse

// A single aggregate count.
// swagger:response countResponse
type countResponseWrapper struct {
	// in:body
	Body models.CountResponse
}

// swagger:route GET /courts lookups listCourts
// Lists the court reference table.
// responses:
//   200: lookupListResponse

// All entries of a reference table.
// swagger:response lookupListResponse
type lookupListResponseWrapper struct {
	// in:body
	Body []models.Lookup
}

// swagger:route GET /daily-notes notes listNotes
// Lists the daily notes, newest first.
// responses:
//   200: noteListResponse

// All daily notes.
// swagger:response noteListResponse
type noteListResponseWrapper struct {
	// in:body
	Body []models.Note
}
