package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicmap/civicmap-api/api"
	"github.com/civicmap/civicmap-api/config"
	"github.com/civicmap/civicmap-api/databases"
	"github.com/civicmap/civicmap-api/models"
)

// Review handles review-related requests
type Review struct {
	RDB   databases.ReportDatabase
	RevDB databases.ReviewDatabase
}

// CreateReviewHandler attaches a new review to an existing report
func (rv Review) CreateReviewHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := reportIDFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid report id", http.StatusBadRequest, w, err)
		return
	}

	author, err := api.Principal(r)
	if err != nil {
		config.ErrorStatus("authentication required", http.StatusUnauthorized, w, err)
		return
	}

	var req models.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid review payload", http.StatusBadRequest, w, err)
		return
	}

	if _, err := rv.RDB.FindByID(ctx, id); err != nil {
		config.ErrorStatus("failed to get report by ID", http.StatusNotFound, w, err)
		return
	}

	review := models.Review{
		ID:        primitive.NewObjectID(),
		ReportID:  id,
		Comment:   req.Comment,
		Upvote:    req.Upvote,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now()),
		Author:    author,
	}

	if err := rv.RevDB.Create(ctx, review); err != nil {
		config.ErrorStatus("failed to create review", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "review added successfully",
		"id":      review.ID.Hex(),
	})
}
