package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/royalcases/royal-cases-api/api"
	"github.com/royalcases/royal-cases-api/config"
	"github.com/royalcases/royal-cases-api/databases"
	"github.com/royalcases/royal-cases-api/models"
)

// Case exported for testing purposes
type Case struct {
	DB databases.CaseDatabase
}

type createCaseRequest struct {
	FileNo        string `json:"fileNo"`
	CaseNo        string `json:"caseNo"`
	Court         string `json:"court"`
	FirstParty    string `json:"firstParty"`
	SecondParty   string `json:"secondParty"`
	Company       string `json:"company"`
	AppointedBy   string `json:"appointedBy"`
	CaseType      string `json:"caseType"`
	PoliceStation string `json:"policeStation"`
	MobileNo      string `json:"mobileNo"`
	LawSection    string `json:"lawSection"`
	Comments      string `json:"comments"`
	Date          string `json:"date"`
	FixedFor      string `json:"fixedFor"`
}

// CreateCaseHandler creates a new case. The (fileNo, caseNo, court) triple
// must be unique; the existence pre-check shapes the error message while the
// unique index is what actually rejects a concurrent duplicate.
func (c Case) CreateCaseHandler(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if req.FileNo == "" || req.CaseNo == "" || req.Court == "" || req.FirstParty == "" || req.Date == "" {
		config.ErrorStatus("Required fields are missing.", http.StatusBadRequest, w, fmt.Errorf("fileNo, caseNo, court, firstParty and date are required"))
		return
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		config.ErrorStatus("invalid date", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dupFilter := bson.M{"fileNo": req.FileNo, "caseNo": req.CaseNo, "court": req.Court}
	_, err = c.DB.FindOne(ctx, dupFilter)
	if err == nil {
		config.ErrorStatus("This case already exists.", http.StatusBadRequest, w, fmt.Errorf("case with fileNo %q, caseNo %q, court %q already exists", req.FileNo, req.CaseNo, req.Court))
		return
	}
	if err != mongo.ErrNoDocuments {
		config.ErrorStatus("failed to check for existing case", http.StatusInternalServerError, w, err)
		return
	}

	newCase := models.Case{
		ID:            primitive.NewObjectID(),
		FileNo:        req.FileNo,
		CaseNo:        req.CaseNo,
		Court:         req.Court,
		FirstParty:    req.FirstParty,
		SecondParty:   req.SecondParty,
		Company:       req.Company,
		AppointedBy:   req.AppointedBy,
		CaseType:      req.CaseType,
		PoliceStation: req.PoliceStation,
		MobileNo:      req.MobileNo,
		LawSection:    req.LawSection,
		Comments:      req.Comments,
		Date:          models.DateTimes{primitive.NewDateTimeFromTime(date)},
		Status:        models.StatusPending,
		StatusRank:    models.StatusRank(models.StatusPending),
		CreatedAt:     primitive.NewDateTimeFromTime(time.Now()),
	}
	if req.FixedFor != "" {
		newCase.FixedFor = models.StringList{req.FixedFor}
	}

	res, err := c.DB.InsertOne(ctx, newCase)
	if err != nil {
		// a concurrent create can slip past the pre-check; the unique
		// index turns the second insert into a duplicate-key error
		if mongo.IsDuplicateKeyError(err) {
			config.ErrorStatus("This case already exists.", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to create case", http.StatusInternalServerError, w, err)
		return
	}

	insertedID := newCase.ID.Hex()
	if id, ok := res.Decode().(primitive.ObjectID); ok {
		insertedID = id.Hex()
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.CreatedResponse{
		Message: "Case added successfully!",
		Data:    insertedID,
	})
}

// CaseByIDHandler returns a case by ID. A missing case answers 200 with a
// null body, which is what the front-end's detail view checks for.
func (c Case) CaseByIDHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.DB.FindOne(ctx, bson.M{"_id": cID})
	if err == mongo.ErrNoDocuments {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("null"))
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get case by ID", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type caseDetailsRequest struct {
	Description *string    `json:"description"`
	Laws        *string    `json:"laws"`
	Fees        *feesInput `json:"fees"`
}

type feesInput struct {
	Payable interface{} `json:"payable"`
	Paid    interface{} `json:"paid"`
}

// UpdateCaseDetailsHandler sets the narrative/financial details of a case:
// description, laws and fees. Fee amounts are numerically coerced, anything
// non-numeric stored as 0.
func (c Case) UpdateCaseDetailsHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("Invalid Case ID", http.StatusBadRequest, w, err)
		return
	}

	var req caseDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Laws != nil {
		set["laws"] = *req.Laws
	}
	if req.Fees != nil {
		set["fees"] = models.Fees{
			Payable: toNumber(req.Fees.Payable),
			Paid:    toNumber(req.Fees.Paid),
		}
	}
	if len(set) == 0 {
		config.ErrorStatus("no updatable fields supplied", http.StatusBadRequest, w, fmt.Errorf("expected at least one of description, laws, fees"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	matched, _, err := c.DB.UpdateOne(ctx, bson.M{"_id": cID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update case details", http.StatusInternalServerError, w, err)
		return
	}
	if matched == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.SuccessResponse{Success: false, Message: "Case not found"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.SuccessResponse{Success: true, Message: "Case details updated successfully"})
}

// PatchCaseHandler applies a schema-checked subset of case fields, the
// status change being the usual caller. Unknown or mistyped fields are
// rejected rather than merged into the document.
func (c Case) PatchCaseHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("Invalid Case ID", http.StatusBadRequest, w, err)
		return
	}

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	set, err := buildCaseUpdate(body)
	if err != nil {
		config.ErrorStatus("invalid update", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	matched, _, err := c.DB.UpdateOne(ctx, bson.M{"_id": cID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update case", http.StatusInternalServerError, w, err)
		return
	}
	if matched == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.SuccessResponse{Success: false, Message: "Case not found"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.SuccessResponse{Success: true, Message: "Case updated successfully"})
}

// requiredCaseFields are checked, in order, by the whole-record update
var requiredCaseFields = []string{"fileNo", "caseNo", "date", "court", "firstParty"}

// UpdateWholeCaseHandler replaces the editable fields of a case record. The
// date arrives as a date-only string and is re-anchored at UTC midnight,
// resetting the hearing schedule to a single entry.
func (c Case) UpdateWholeCaseHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("Invalid Case ID", http.StatusBadRequest, w, err)
		return
	}

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	for _, field := range requiredCaseFields {
		s, _ := body[field].(string)
		if strings.TrimSpace(s) == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.FieldErrorResponse{
				Field:   field,
				Message: fmt.Sprintf("%s is required", field),
			})
			return
		}
	}

	// replace the date entry before the generic coercion so the date-only
	// form is anchored at UTC midnight
	if s, ok := body["date"].(string); ok {
		date, err := parseDateOnly(s)
		if err != nil {
			config.ErrorStatus("invalid date", http.StatusBadRequest, w, err)
			return
		}
		body["date"] = date.UTC().Format(time.RFC3339)
	}

	set, err := buildCaseUpdate(body)
	if err != nil {
		config.ErrorStatus("invalid update", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	matched, modified, err := c.DB.UpdateOne(ctx, bson.M{"_id": cID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update case", http.StatusInternalServerError, w, err)
		return
	}
	if matched == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "Case not found"})
		return
	}
	if modified == 0 {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "No changes were made"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.MessageResponse{Message: "Case updated successfully!"})
}

type addDateRequest struct {
	Date     string `json:"date"`
	FixedFor string `json:"fixedFor"`
}

// AddCaseDateHandler appends a (date, fixedFor) pair to the case's hearing
// schedule. Legacy scalar-shaped records come back from the store already
// normalized to sequences, so the append keeps both arrays index-aligned.
func (c Case) AddCaseDateHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	var req addDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Date == "" || req.FixedFor == "" {
		config.ErrorStatus("date and fixedFor required", http.StatusBadRequest, w, fmt.Errorf("both date and fixedFor must be supplied"))
		return
	}

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("Invalid Case ID", http.StatusBadRequest, w, err)
		return
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		config.ErrorStatus("invalid date", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	existing, err := c.DB.FindOne(ctx, bson.M{"_id": cID})
	if err == mongo.ErrNoDocuments {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "Case not found"})
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get case by ID", http.StatusInternalServerError, w, err)
		return
	}

	dates := append(existing.Date, primitive.NewDateTimeFromTime(date))
	fixedFor := append(existing.FixedFor, req.FixedFor)

	after := options.After
	updated, err := c.DB.FindOneAndUpdate(ctx,
		bson.M{"_id": cID},
		bson.M{"$set": bson.M{"date": dates, "fixedFor": fixedFor}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	)
	if err != nil {
		config.ErrorStatus("failed to add date", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteCaseHandler removes a case by ID
func (c Case) DeleteCaseHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("Invalid Case ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := c.DB.DeleteOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to delete case", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.SuccessResponse{Success: false, Message: "Case not found"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.SuccessResponse{Success: true, Message: "Case deleted successfully"})
}

// buildCaseUpdate validates a request body against the updatable-field
// schema and returns the $set document. Unknown keys and mistyped values
// error out instead of being merged verbatim.
func buildCaseUpdate(body map[string]interface{}) (bson.M, error) {
	set := bson.M{}
	for key, value := range body {
		coerced, err := coerceCaseField(key, value)
		if err != nil {
			return nil, err
		}
		set[key] = coerced
		if key == "status" {
			set["statusRank"] = models.StatusRank(coerced.(string))
		}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no updatable fields supplied")
	}
	return set, nil
}

func coerceCaseField(key string, value interface{}) (interface{}, error) {
	switch key {
	case "fileNo", "caseNo", "court", "firstParty", "secondParty", "company",
		"appointedBy", "caseType", "policeStation", "mobileNo", "lawSection",
		"comments", "status", "description", "laws":
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("field %q must be a string", key)
		}
		return s, nil
	case "date":
		var dates models.DateTimes
		if err := reencode(value, &dates); err != nil {
			return nil, fmt.Errorf("field %q is invalid: %v", key, err)
		}
		return dates, nil
	case "fixedFor":
		var fixedFor models.StringList
		if err := reencode(value, &fixedFor); err != nil {
			return nil, fmt.Errorf("field %q is invalid: %v", key, err)
		}
		return fixedFor, nil
	case "fees":
		m, ok := value.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("field %q must be an object", key)
		}
		return models.Fees{Payable: toNumber(m["payable"]), Paid: toNumber(m["paid"])}, nil
	default:
		return nil, fmt.Errorf("unknown field %q", key)
	}
}

// reencode round-trips an already-decoded json value through a typed
// unmarshaler (used for the scalar-or-array schedule fields)
func reencode(value interface{}, out json.Unmarshaler) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return out.UnmarshalJSON(b)
}

// toNumber coerces a decoded json value to a number, 0 when it isn't one
func toNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// parseDateOnly parses the yyyy-mm-dd form the edit view sends, anchored at
// UTC midnight; full timestamps are accepted as a fallback
func parseDateOnly(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
