package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/royalcases/royal-cases-api/api"
	"github.com/royalcases/royal-cases-api/config"
	"github.com/royalcases/royal-cases-api/databases"
	"github.com/royalcases/royal-cases-api/models"
)

// Note exported for testing purposes
type Note struct {
	DB databases.NoteDatabase
}

type noteRequest struct {
	Note string `json:"note"`
}

// CreateNoteHandler saves a free-form daily note
func (n Note) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Note == "" {
		config.ErrorStatus("note required", http.StatusBadRequest, w, fmt.Errorf("note must not be empty"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	note := models.Note{
		ID:        primitive.NewObjectID(),
		Note:      req.Note,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now()),
	}
	_, err := n.DB.InsertOne(ctx, note)
	if err != nil {
		config.ErrorStatus("failed to save note", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.CreatedResponse{
		Message: "Note added successfully",
		Data:    note.ID.Hex(),
	})
}

// NoteHandler returns all daily notes, newest first
func (n Note) NoteHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := n.DB.Find(ctx, bson.M{}, &options.FindOptions{
		Sort: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		config.ErrorStatus("failed to get notes", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Note{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateNoteHandler replaces the text of a note
func (n Note) UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["note_id"]

	oID, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		config.ErrorStatus("Invalid Note ID", http.StatusBadRequest, w, err)
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Note == "" {
		config.ErrorStatus("note required", http.StatusBadRequest, w, fmt.Errorf("note must not be empty"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	matched, err := n.DB.UpdateOne(ctx, bson.M{"_id": oID}, bson.M{"$set": bson.M{"note": req.Note}})
	if err != nil {
		config.ErrorStatus("failed to update note", http.StatusInternalServerError, w, err)
		return
	}
	if matched == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "Note not found"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.MessageResponse{Message: "Note updated successfully"})
}

// DeleteNoteHandler removes a note by ID
func (n Note) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["note_id"]

	oID, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		config.ErrorStatus("Invalid Note ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := n.DB.DeleteOne(ctx, bson.M{"_id": oID})
	if err != nil {
		config.ErrorStatus("failed to delete note", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "Note not found"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.MessageResponse{Message: "Note deleted successfully"})
}
