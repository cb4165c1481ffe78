package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/civicmap/civicmap-api/api"
	"github.com/civicmap/civicmap-api/config"
	"github.com/civicmap/civicmap-api/databases"
	"github.com/civicmap/civicmap-api/geo"
	"github.com/civicmap/civicmap-api/images"
	"github.com/civicmap/civicmap-api/models"
)

var validate = validator.New()

// Report handles report-related requests
type Report struct {
	RDB               databases.ReportDatabase
	UDB               databases.UserDatabase
	ODB               databases.OrphanedImageDatabase
	RevDB             databases.ReviewDatabase
	Uploader          images.Uploader
	Geocoder          geo.Geocoder
	Hub               *Hub
	PlaceholderUserID string
}

// reportIDFromRequest pulls the report_id path variable and rejects structurally
// invalid values before any database work happens. The frontend has been observed
// sending the literal strings "undefined" and "null".
func reportIDFromRequest(r *http.Request) (primitive.ObjectID, error) {
	raw := mux.Vars(r)["report_id"]
	if raw == "" || raw == "undefined" || raw == "null" {
		return primitive.NilObjectID, fmt.Errorf("structurally invalid report id %q", raw)
	}
	return primitive.ObjectIDFromHex(raw)
}

// CreateReportHandler creates a new report. Validation and geocoding happen before any
// image is uploaded; a failed upload rolls back every image uploaded in this call.
func (re Report) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid report payload", http.StatusBadRequest, w, err)
		return
	}
	if req.Location == nil && req.Address == "" {
		config.ErrorStatus("invalid report payload", http.StatusBadRequest, w, errors.New("either location or address is required"))
		return
	}

	location := models.Location{}
	if req.Location != nil {
		location = *req.Location
	} else {
		loc, err := re.Geocoder.Geocode(ctx, req.Address)
		if err != nil {
			config.ErrorStatus("failed to geocode address", http.StatusBadRequest, w, err)
			return
		}
		location = loc
	}

	uploaded, err := re.uploadAll(ctx, req.NewImages)
	if err != nil {
		config.ErrorStatus("failed to upload image", http.StatusInternalServerError, w, err)
		return
	}

	owner, err := api.Principal(r)
	if err != nil {
		// explicit non-production shortcut until real authentication lands
		owner = re.PlaceholderUserID
		zap.S().Warnw("no identity on create request, using placeholder owner", "owner", owner)
	}

	report := models.Report{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    location,
		ImageURL:    uploaded[0].URL,
		Images:      uploaded,
		Resolved:    false,
		CreatedAt:   primitive.NewDateTimeFromTime(time.Now()),
		CreatedBy:   owner,
	}

	if err := re.RDB.Create(ctx, report); err != nil {
		re.rollbackUploads(ctx, uploaded, report.ID.Hex())
		config.ErrorStatus("failed to create report", http.StatusInternalServerError, w, err)
		return
	}

	if re.Hub != nil {
		re.Hub.BroadcastReport("report_created", report)
	}

	b, err := json.Marshal(report)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// uploadAll uploads images sequentially. On any failure the images uploaded so far in
// this call are rolled back and the upload error is returned.
func (re Report) uploadAll(ctx context.Context, newImages []models.NewImage) ([]models.ReportImage, error) {
	uploaded := make([]models.ReportImage, 0, len(newImages))
	for _, img := range newImages {
		hosted, err := re.Uploader.Upload(ctx, img)
		if err != nil {
			re.rollbackUploads(ctx, uploaded, "")
			return nil, err
		}
		uploaded = append(uploaded, hosted)
	}
	return uploaded, nil
}

// rollbackUploads undoes exactly the uploads made in the current call. A failed undo is
// queued for the janitor instead of surfacing to the client.
func (re Report) rollbackUploads(ctx context.Context, uploaded []models.ReportImage, reportID string) {
	for _, img := range uploaded {
		if err := re.Uploader.Destroy(ctx, img.PublicID); err != nil {
			zap.S().Warnw("rollback delete failed, queueing orphaned image",
				"publicId", img.PublicID,
				"error", err,
			)
			re.queueOrphan(ctx, img.PublicID, reportID, "rollback")
		}
	}
}

func (re Report) queueOrphan(ctx context.Context, publicID, reportID, reason string) {
	orphan := models.OrphanedImage{
		PublicID: publicID,
		ReportID: reportID,
		Reason:   reason,
		FailedAt: primitive.NewDateTimeFromTime(time.Now()),
	}
	if err := re.ODB.Enqueue(ctx, orphan); err != nil {
		zap.S().Errorw("failed to queue orphaned image", "publicId", publicID, "error", err)
	}
}

// ReportByIDHandler returns a report by ID with its owner populated; reviews are
// attached only when includeReviews=true
func (re Report) ReportByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := reportIDFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid report id", http.StatusBadRequest, w, err)
		return
	}

	report, err := re.RDB.FindByID(ctx, id)
	if err != nil {
		config.ErrorStatus("failed to get report by ID", http.StatusNotFound, w, err)
		return
	}

	detail := models.ReportDetail{Report: *report}

	owner, err := re.UDB.FindOne(ctx, bson.M{"_id": report.CreatedBy})
	if err != nil {
		zap.S().Debugw("report owner not found", "reportId", id.Hex(), "createdBy", report.CreatedBy)
	} else {
		detail.Owner = &models.ReportOwner{
			ID:       owner.ID,
			Username: owner.Details.Username,
			Email:    owner.Details.Email,
		}
	}

	if r.URL.Query().Get("includeReviews") == "true" {
		reviews, err := re.RevDB.FindByReport(ctx, id)
		if err != nil {
			config.ErrorStatus("failed to get report reviews", http.StatusInternalServerError, w, err)
			return
		}
		detail.Reviews = re.populateReviewAuthors(ctx, reviews)
	}

	b, err := json.Marshal(detail)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// populateReviewAuthors resolves review author IDs to usernames in one user query
func (re Report) populateReviewAuthors(ctx context.Context, reviews []models.Review) []models.ReviewDetail {
	ids := make([]string, 0, len(reviews))
	seen := map[string]bool{}
	for _, rev := range reviews {
		if !seen[rev.Author] {
			seen[rev.Author] = true
			ids = append(ids, rev.Author)
		}
	}

	usernames := map[string]string{}
	if len(ids) > 0 {
		users, err := re.UDB.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			zap.S().Warnw("failed to populate review authors", "error", err)
		}
		for _, u := range users {
			usernames[u.ID] = u.Details.Username
		}
	}

	details := make([]models.ReviewDetail, 0, len(reviews))
	for _, rev := range reviews {
		details = append(details, models.ReviewDetail{
			Comment:   rev.Comment,
			Upvote:    rev.Upvote,
			CreatedAt: rev.CreatedAt,
			Author:    models.ReviewAuthor{ID: rev.Author, Username: usernames[rev.Author]},
		})
	}
	return details
}

// ReportListHandler returns a page of report summaries plus pagination metadata
func (re Report) ReportListHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := listOptionsFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid list query", http.StatusBadRequest, w, err)
		return
	}

	reports, pagination, err := re.RDB.FindPage(ctx, opts)
	if err != nil {
		config.ErrorStatus("failed to get reports", http.StatusInternalServerError, w, err)
		return
	}

	ownerNames := re.ownerUsernames(ctx, reports)
	summaries := make([]models.ReportSummary, 0, len(reports))
	for _, report := range reports {
		summary := report.Summary()
		summary.OwnerName = ownerNames[report.CreatedBy]
		summaries = append(summaries, summary)
	}

	b, err := json.Marshal(models.ReportPage{Reports: summaries, Pagination: pagination})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func listOptionsFromRequest(r *http.Request) (databases.ReportListOptions, error) {
	opts := databases.ReportListOptions{Page: 1, Limit: 10}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return opts, fmt.Errorf("page must be a positive integer, got %q", raw)
		}
		opts.Page = page
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			return opts, fmt.Errorf("limit must be between 1 and 100, got %q", raw)
		}
		opts.Limit = limit
	}
	if category := r.URL.Query().Get("category"); category != "" {
		if !models.ValidCategory(category) {
			return opts, fmt.Errorf("unknown category %q", category)
		}
		opts.Category = category
	}
	if raw := r.URL.Query().Get("resolved"); raw != "" {
		resolved, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, fmt.Errorf("resolved must be a boolean, got %q", raw)
		}
		opts.Resolved = &resolved
	}
	return opts, nil
}

// ownerUsernames resolves the distinct owners of a report page in one user query.
// Failures only cost the ownerName field, never the listing.
func (re Report) ownerUsernames(ctx context.Context, reports []models.Report) map[string]string {
	ids := make([]string, 0, len(reports))
	seen := map[string]bool{}
	for _, report := range reports {
		if !seen[report.CreatedBy] {
			seen[report.CreatedBy] = true
			ids = append(ids, report.CreatedBy)
		}
	}

	usernames := map[string]string{}
	if len(ids) == 0 {
		return usernames
	}
	users, err := re.UDB.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		zap.S().Warnw("failed to populate report owners", "error", err)
		return usernames
	}
	for _, u := range users {
		usernames[u.ID] = u.Details.Username
	}
	return usernames
}

// UpdateReportHandler applies a field-level partial update to an owned report. Image
// deletions are best-effort; new image uploads are all-or-nothing for this call.
func (re Report) UpdateReportHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := reportIDFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid report id", http.StatusBadRequest, w, err)
		return
	}

	userID, err := api.Principal(r)
	if err != nil {
		config.ErrorStatus("authentication required", http.StatusUnauthorized, w, err)
		return
	}

	var req models.UpdateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	report, err := re.RDB.FindByID(ctx, id)
	if err != nil {
		config.ErrorStatus("failed to get report by ID", http.StatusNotFound, w, err)
		return
	}
	if report.CreatedBy != userID {
		config.ErrorStatus("only the report owner may modify it", http.StatusForbidden, w,
			fmt.Errorf("user %s does not own report %s", userID, id.Hex()))
		return
	}

	set := bson.M{}
	if req.Title != nil {
		if *req.Title == "" {
			config.ErrorStatus("invalid report payload", http.StatusBadRequest, w, errors.New("title must not be empty"))
			return
		}
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			config.ErrorStatus("invalid report payload", http.StatusBadRequest, w,
				fmt.Errorf("unknown category %q", *req.Category))
			return
		}
		set["category"] = *req.Category
	}
	if req.Location != nil {
		set["location"] = *req.Location
	} else if req.Address != nil && *req.Address != "" {
		loc, err := re.Geocoder.Geocode(ctx, *req.Address)
		if err != nil {
			config.ErrorStatus("failed to geocode address", http.StatusBadRequest, w, err)
			return
		}
		set["location"] = loc
	}

	remaining := report.Images
	imagesChanged := false

	if len(req.ImagesToDelete) > 0 {
		deleting := map[string]bool{}
		for _, publicID := range req.ImagesToDelete {
			deleting[publicID] = true
			if err := re.Uploader.Destroy(ctx, publicID); err != nil {
				// best-effort: a failed remote delete never aborts the update
				zap.S().Warnw("failed to delete hosted image during update, queueing orphan",
					"publicId", publicID,
					"error", err,
				)
				re.queueOrphan(ctx, publicID, id.Hex(), "update")
			}
		}
		kept := make([]models.ReportImage, 0, len(remaining))
		for _, img := range remaining {
			if !deleting[img.PublicID] {
				kept = append(kept, img)
			}
		}
		remaining = kept
		imagesChanged = true
	}

	if len(req.NewImages) > 0 {
		uploaded, err := re.uploadAll(ctx, req.NewImages)
		if err != nil {
			config.ErrorStatus("failed to upload image", http.StatusInternalServerError, w, err)
			return
		}
		remaining = append(remaining, uploaded...)
		imagesChanged = true
	}

	if imagesChanged {
		set["images"] = remaining
		if len(remaining) > 0 {
			set["imageUrl"] = remaining[0].URL
		} else {
			set["imageUrl"] = ""
		}
	}

	updated := report
	if len(set) > 0 {
		updated, err = re.RDB.Update(ctx, id, set)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				config.ErrorStatus("failed to get report by ID", http.StatusNotFound, w, err)
				return
			}
			config.ErrorStatus("failed to update report", http.StatusInternalServerError, w, err)
			return
		}
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteReportHandler deletes an owned report and every hosted image attached to it.
// Image deletion failures are swallowed into the orphan queue; the record delete is
// owner-checked again at the database layer.
func (re Report) DeleteReportHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := reportIDFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid report id", http.StatusBadRequest, w, err)
		return
	}

	userID, err := api.Principal(r)
	if err != nil {
		config.ErrorStatus("authentication required", http.StatusUnauthorized, w, err)
		return
	}

	report, err := re.RDB.FindByID(ctx, id)
	if err != nil {
		config.ErrorStatus("failed to get report by ID", http.StatusNotFound, w, err)
		return
	}
	if report.CreatedBy != userID {
		config.ErrorStatus("only the report owner may delete it", http.StatusForbidden, w,
			fmt.Errorf("user %s does not own report %s", userID, id.Hex()))
		return
	}

	for _, img := range report.Images {
		if err := re.Uploader.Destroy(ctx, img.PublicID); err != nil {
			zap.S().Warnw("failed to delete hosted image during report delete, queueing orphan",
				"publicId", img.PublicID,
				"error", err,
			)
			re.queueOrphan(ctx, img.PublicID, id.Hex(), "delete")
		}
	}

	deleted, err := re.RDB.DeleteIfOwner(ctx, id, userID)
	if err != nil {
		config.ErrorStatus("failed to delete report", http.StatusInternalServerError, w, err)
		return
	}
	if !deleted {
		config.ErrorStatus("failed to get report by ID", http.StatusNotFound, w,
			fmt.Errorf("report %s not found for owner %s", id.Hex(), userID))
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "report deleted successfully",
	})
}

// ReportFeaturesHandler returns the newest reports as a GeoJSON-like feature list for
// the map explorer client
func (re Report) ReportFeaturesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit64 := int64(500)
	reports, err := re.RDB.Find(ctx, bson.M{}, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		config.ErrorStatus("failed to get reports", http.StatusInternalServerError, w, err)
		return
	}

	fc := models.FeatureCollection{Type: "FeatureCollection", Features: []models.Feature{}}
	for _, report := range reports {
		fc.Features = append(fc.Features, models.NewReportFeature(report))
	}

	b, err := json.Marshal(fc)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
