package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/royalcases/royal-cases-api/api"
	"github.com/royalcases/royal-cases-api/config"
	"github.com/royalcases/royal-cases-api/databases"
	"github.com/royalcases/royal-cases-api/models"
)

// Lookup serves one reference-table collection (courts, case types, police
// stations, companies). The four tables share the exact same CRUD shape, so
// one handler covers them all, labeled for error messages.
type Lookup struct {
	DB     databases.LookupDatabase
	Entity string
}

type lookupRequest struct {
	Name string `json:"name"`
}

// CreateLookupHandler adds a named entry, rejecting duplicates
func (l Lookup) CreateLookupHandler(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		config.ErrorStatus(fmt.Sprintf("%s name required", l.Entity), http.StatusBadRequest, w, fmt.Errorf("name must not be empty"))
		return
	}
	name := strings.TrimSpace(req.Name)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	_, err := l.DB.FindOne(ctx, bson.M{"name": name})
	if err == nil {
		config.ErrorStatus(fmt.Sprintf("%s already exists", l.Entity), http.StatusConflict, w, fmt.Errorf("%s %q already exists", l.Entity, name))
		return
	}
	if err != mongo.ErrNoDocuments {
		config.ErrorStatus(fmt.Sprintf("failed to check for existing %s", l.Entity), http.StatusInternalServerError, w, err)
		return
	}

	entry := models.Lookup{
		ID:        primitive.NewObjectID(),
		Name:      name,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now()),
	}
	_, err = l.DB.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			config.ErrorStatus(fmt.Sprintf("%s already exists", l.Entity), http.StatusConflict, w, err)
			return
		}
		config.ErrorStatus(fmt.Sprintf("failed to create %s", l.Entity), http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.CreatedResponse{
		Message: fmt.Sprintf("%s added successfully", l.Entity),
		Data:    entry.ID.Hex(),
	})
}

// ListLookupHandler returns every entry in the table
func (l Lookup) ListLookupHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := l.DB.Find(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus(fmt.Sprintf("failed to get %s list", l.Entity), http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Lookup{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateLookupHandler renames an entry, keeping the name unique and
// stamping updatedAt
func (l Lookup) UpdateLookupHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	oID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		config.ErrorStatus(fmt.Sprintf("Invalid %s ID", l.Entity), http.StatusBadRequest, w, err)
		return
	}

	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		config.ErrorStatus(fmt.Sprintf("%s name required", l.Entity), http.StatusBadRequest, w, fmt.Errorf("name must not be empty"))
		return
	}
	name := strings.TrimSpace(req.Name)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// the rename target must not collide with a different entry
	_, err = l.DB.FindOne(ctx, bson.M{"name": name, "_id": bson.M{"$ne": oID}})
	if err == nil {
		config.ErrorStatus(fmt.Sprintf("%s already exists", l.Entity), http.StatusConflict, w, fmt.Errorf("%s %q already exists", l.Entity, name))
		return
	}
	if err != mongo.ErrNoDocuments {
		config.ErrorStatus(fmt.Sprintf("failed to check for existing %s", l.Entity), http.StatusInternalServerError, w, err)
		return
	}

	matched, err := l.DB.UpdateOne(ctx,
		bson.M{"_id": oID},
		bson.M{"$set": bson.M{
			"name":      name,
			"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
		}},
	)
	if err != nil {
		config.ErrorStatus(fmt.Sprintf("failed to update %s", l.Entity), http.StatusInternalServerError, w, err)
		return
	}
	if matched == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: fmt.Sprintf("%s not found", l.Entity)})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.MessageResponse{Message: fmt.Sprintf("%s updated successfully", l.Entity)})
}

// DeleteLookupHandler removes an entry by ID
func (l Lookup) DeleteLookupHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	oID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		config.ErrorStatus(fmt.Sprintf("Invalid %s ID", l.Entity), http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := l.DB.DeleteOne(ctx, bson.M{"_id": oID})
	if err != nil {
		config.ErrorStatus(fmt.Sprintf("failed to delete %s", l.Entity), http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: fmt.Sprintf("%s not found", l.Entity)})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.MessageResponse{Message: fmt.Sprintf("%s deleted successfully", l.Entity)})
}
