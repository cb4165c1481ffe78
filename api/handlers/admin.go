package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/civicmap/civicmap-api/api"
	"github.com/civicmap/civicmap-api/config"
	"github.com/civicmap/civicmap-api/databases"
	"github.com/civicmap/civicmap-api/mailer"
)

// Admin handles administrative report actions
type Admin struct {
	RDB    databases.ReportDatabase
	UDB    databases.UserDatabase
	Mailer mailer.Mailer
	Hub    *Hub
}

// ResolveReportHandler marks a report resolved, stamps who resolved it and when,
// notifies the owner by email (best-effort) and pushes the change to the live feed
func (a Admin) ResolveReportHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := reportIDFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid report id", http.StatusBadRequest, w, err)
		return
	}

	adminID, err := api.Principal(r)
	if err != nil {
		config.ErrorStatus("authentication required", http.StatusUnauthorized, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	updated, err := a.RDB.Update(ctx, id, bson.M{
		"resolved":   true,
		"resolvedAt": now,
		"resolvedBy": adminID,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			config.ErrorStatus("failed to get report by ID", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to resolve report", http.StatusInternalServerError, w, err)
		return
	}

	// owner notification is best-effort, resolution already happened
	if a.Mailer != nil {
		owner, err := a.UDB.FindOne(ctx, bson.M{"_id": updated.CreatedBy})
		if err == nil && owner.Details.Email != "" {
			if err := a.Mailer.SendResolvedNotice(owner.Details.Email, owner.Details.Username, updated.Title); err != nil {
				zap.S().Warnw("failed to send resolution notice", "reportId", id.Hex(), "error", err)
			}
		}
	}

	if a.Hub != nil {
		a.Hub.BroadcastReport("report_resolved", *updated)
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
