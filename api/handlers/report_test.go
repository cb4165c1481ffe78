package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicmap/civicmap-api/api"
	"github.com/civicmap/civicmap-api/api/handlers"
	"github.com/civicmap/civicmap-api/databases"
	"github.com/civicmap/civicmap-api/databases/mocks"
	"github.com/civicmap/civicmap-api/models"
)

const testPlaceholderID = "000000000000000000000000"

func init() {
	api.SetupAuth("test-secret")
}

type fakeUploader struct {
	uploadFn  func(ctx context.Context, img models.NewImage) (models.ReportImage, error)
	destroyFn func(ctx context.Context, publicID string) error
}

func (u *fakeUploader) Upload(ctx context.Context, img models.NewImage) (models.ReportImage, error) {
	return u.uploadFn(ctx, img)
}

func (u *fakeUploader) Destroy(ctx context.Context, publicID string) error {
	return u.destroyFn(ctx, publicID)
}

type fakeGeocoder func(ctx context.Context, address string) (models.Location, error)

func (g fakeGeocoder) Geocode(ctx context.Context, address string) (models.Location, error) {
	return g(ctx, address)
}

// sequenceUploader hands out deterministic hosted images and records destroys
func sequenceUploader(destroyed *[]string) *fakeUploader {
	n := 0
	return &fakeUploader{
		uploadFn: func(ctx context.Context, img models.NewImage) (models.ReportImage, error) {
			hosted := models.ReportImage{
				URL:      fmt.Sprintf("https://img.host/pub-%d.jpg", n),
				PublicID: fmt.Sprintf("pub-%d", n),
			}
			n++
			return hosted, nil
		},
		destroyFn: func(ctx context.Context, publicID string) error {
			*destroyed = append(*destroyed, publicID)
			return nil
		},
	}
}

func createBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(models.CreateReportRequest{
		Title:    "Overflowing bin at park gate",
		Category: models.CategoryGarbage,
		Location: &models.Location{Lat: 12.97, Lng: 77.59},
		NewImages: []models.NewImage{
			{Data: "data:image/jpeg;base64,AAAA"},
			{Data: "data:image/jpeg;base64,BBBB"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewBuffer(body)
}

func TestReport_CreateReportHandler(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/report", createBody(t))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("user-id", "user-1")

	rdb := &mocks.ReportDatabase{}
	rdb.On("Create", mock.Anything, mock.AnythingOfType("models.Report")).Return(nil)

	var destroyed []string
	u := handlers.Report{
		RDB:               rdb,
		ODB:               &mocks.OrphanedImageDatabase{},
		Uploader:          sequenceUploader(&destroyed),
		PlaceholderUserID: testPlaceholderID,
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.CreateReportHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusCreated {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusCreated)
	}

	var got models.Report
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "user-1", got.CreatedBy)
	assert.Equal(t, "https://img.host/pub-0.jpg", got.ImageURL)
	assert.Len(t, got.Images, 2)
	assert.False(t, got.Resolved)
	assert.Empty(t, destroyed)
	rdb.AssertExpectations(t)
}

func TestReport_CreateReportHandlerPlaceholderOwner(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/report", createBody(t))
	if err != nil {
		t.Fatal(err)
	}
	// no identity headers at all

	rdb := &mocks.ReportDatabase{}
	rdb.On("Create", mock.Anything, mock.MatchedBy(func(r models.Report) bool {
		return r.CreatedBy == testPlaceholderID
	})).Return(nil)

	var destroyed []string
	u := handlers.Report{
		RDB:               rdb,
		ODB:               &mocks.OrphanedImageDatabase{},
		Uploader:          sequenceUploader(&destroyed),
		PlaceholderUserID: testPlaceholderID,
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.CreateReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	rdb.AssertExpectations(t)
}

func TestReport_CreateReportHandlerUploadRollback(t *testing.T) {
	body, _ := json.Marshal(models.CreateReportRequest{
		Title:    "Flooded underpass",
		Category: models.CategoryWaterlogging,
		Location: &models.Location{Lat: 12.9, Lng: 77.5},
		NewImages: []models.NewImage{
			{Data: "one"}, {Data: "two"}, {Data: "three"},
		},
	})
	req, err := http.NewRequest("POST", "/api/report", bytes.NewBuffer(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("user-id", "user-1")

	rdb := &mocks.ReportDatabase{}

	var destroyed []string
	n := 0
	u := handlers.Report{
		RDB: rdb,
		ODB: &mocks.OrphanedImageDatabase{},
		Uploader: &fakeUploader{
			uploadFn: func(ctx context.Context, img models.NewImage) (models.ReportImage, error) {
				if n == 1 {
					return models.ReportImage{}, errors.New("mocked-upload-error")
				}
				hosted := models.ReportImage{URL: fmt.Sprintf("https://img.host/pub-%d.jpg", n), PublicID: fmt.Sprintf("pub-%d", n)}
				n++
				return hosted, nil
			},
			destroyFn: func(ctx context.Context, publicID string) error {
				destroyed = append(destroyed, publicID)
				return nil
			},
		},
		PlaceholderUserID: testPlaceholderID,
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.CreateReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, []string{"pub-0"}, destroyed)
	rdb.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReport_CreateReportHandlerMissingLocation(t *testing.T) {
	body, _ := json.Marshal(models.CreateReportRequest{
		Title:     "No place given",
		Category:  models.CategoryOther,
		NewImages: []models.NewImage{{Data: "one"}},
	})
	req, err := http.NewRequest("POST", "/api/report", bytes.NewBuffer(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("user-id", "user-1")

	u := handlers.Report{RDB: &mocks.ReportDatabase{}, ODB: &mocks.OrphanedImageDatabase{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.CreateReportHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "invalid report payload", Error: "either location or address is required"}}
	b, _ := json.Marshal(expected)
	assert.Equal(t, string(b), rr.Body.String(), "handler returned unexpected body")
}

func TestReport_CreateReportHandlerGeocodeFailure(t *testing.T) {
	body, _ := json.Marshal(models.CreateReportRequest{
		Title:     "Somewhere unknown",
		Category:  models.CategoryOther,
		Address:   "nowhere at all",
		NewImages: []models.NewImage{{Data: "one"}},
	})
	req, err := http.NewRequest("POST", "/api/report", bytes.NewBuffer(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("user-id", "user-1")

	u := handlers.Report{
		RDB: &mocks.ReportDatabase{},
		ODB: &mocks.OrphanedImageDatabase{},
		Geocoder: fakeGeocoder(func(ctx context.Context, address string) (models.Location, error) {
			return models.Location{}, errors.New("could not geocode \"nowhere at all\": no results for address")
		}),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.CreateReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp models.ErrorMessageResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "failed to geocode address", resp.Response.Message)
}

func TestReport_ReportByIDHandlerInvalidIDs(t *testing.T) {
	for _, raw := range []string{"", "undefined", "null", "123"} {
		req, err := http.NewRequest("GET", "/api/report/"+raw, nil)
		if err != nil {
			t.Fatal(err)
		}
		req = mux.SetURLVars(req, map[string]string{"report_id": raw})

		rdb := &mocks.ReportDatabase{}
		u := handlers.Report{RDB: rdb}

		rr := httptest.NewRecorder()
		http.HandlerFunc(u.ReportByIDHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "id %q", raw)
		rdb.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	}
}

func TestReport_ReportByIDHandler(t *testing.T) {
	id := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/report/"+id.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"report_id": id.Hex()})

	rdb := &mocks.ReportDatabase{}
	rdb.On("FindByID", mock.Anything, id).Return(&models.Report{
		ID:        id,
		Title:     "Overflowing bin at park gate",
		Category:  models.CategoryGarbage,
		CreatedBy: "user-1",
	}, nil)

	udb := &mocks.UserDatabase{}
	udb.On("FindOne", mock.Anything, bson.M{"_id": "user-1"}).Return(&models.User{
		ID:      "user-1",
		Details: models.UserDetails{Username: "asha", Email: "asha@example.com"},
	}, nil)

	u := handlers.Report{RDB: rdb, UDB: udb}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.ReportByIDHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var got models.ReportDetail
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "Overflowing bin at park gate", got.Title)
	if assert.NotNil(t, got.Owner) {
		assert.Equal(t, "asha", got.Owner.Username)
	}
	assert.Empty(t, got.Reviews)
}

func TestReport_ReportByIDHandlerWithReviews(t *testing.T) {
	id := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/report/"+id.Hex()+"?includeReviews=true", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"report_id": id.Hex()})

	rdb := &mocks.ReportDatabase{}
	rdb.On("FindByID", mock.Anything, id).Return(&models.Report{ID: id, Title: "Pothole", CreatedBy: "user-1"}, nil)

	udb := &mocks.UserDatabase{}
	udb.On("FindOne", mock.Anything, bson.M{"_id": "user-1"}).Return(nil, errors.New("mocked-error"))
	udb.On("Find", mock.Anything, bson.M{"_id": bson.M{"$in": []string{"user-2"}}}).Return([]models.User{
		{ID: "user-2", Details: models.UserDetails{Username: "ravi"}},
	}, nil)

	revdb := &mocks.ReviewDatabase{}
	revdb.On("FindByReport", mock.Anything, id).Return([]models.Review{
		{ReportID: id, Comment: "still there", Upvote: true, Author: "user-2"},
	}, nil)

	u := handlers.Report{RDB: rdb, UDB: udb, RevDB: revdb}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.ReportByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got models.ReportDetail
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if assert.Len(t, got.Reviews, 1) {
		assert.Equal(t, "still there", got.Reviews[0].Comment)
		assert.Equal(t, "ravi", got.Reviews[0].Author.Username)
	}
}

func TestReport_ReportListHandlerLimitTooHigh(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/report?limit=150", nil)
	if err != nil {
		t.Fatal(err)
	}

	rdb := &mocks.ReportDatabase{}
	u := handlers.Report{RDB: rdb}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.ReportListHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rdb.AssertNotCalled(t, "FindPage", mock.Anything, mock.Anything)
}

func TestReport_ReportListHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/report?category=garbage&resolved=false", nil)
	if err != nil {
		t.Fatal(err)
	}

	resolved := false
	reports := []models.Report{
		{ID: primitive.NewObjectID(), Title: "Bin one", Category: models.CategoryGarbage, CreatedBy: "user-1"},
		{ID: primitive.NewObjectID(), Title: "Bin two", Category: models.CategoryGarbage, CreatedBy: "user-1"},
	}

	rdb := &mocks.ReportDatabase{}
	rdb.On("FindPage", mock.Anything, databases.ReportListOptions{
		Page: 1, Limit: 10, Category: models.CategoryGarbage, Resolved: &resolved,
	}).Return(reports, models.Pagination{Page: 1, Limit: 10, Total: 2, TotalPages: 1}, nil)

	udb := &mocks.UserDatabase{}
	udb.On("Find", mock.Anything, bson.M{"_id": bson.M{"$in": []string{"user-1"}}}).Return([]models.User{
		{ID: "user-1", Details: models.UserDetails{Username: "asha"}},
	}, nil)

	u := handlers.Report{RDB: rdb, UDB: udb}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.ReportListHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var got models.ReportPage
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	assert.Len(t, got.Reports, 2)
	assert.Equal(t, "asha", got.Reports[0].OwnerName)
	assert.Equal(t, "pending", got.Reports[0].Status)
	assert.Equal(t, int64(2), got.Pagination.Total)
	rdb.AssertExpectations(t)
}

func TestReport_UpdateReportHandlerUnauthenticated(t *testing.T) {
	id := primitive.NewObjectID()
	req, err := http.NewRequest("PATCH", "/api/report/"+id.Hex(), bytes.NewBufferString(`{"description":"x"}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"report_id": id.Hex()})

	u := handlers.Report{RDB: &mocks.ReportDatabase{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UpdateReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestReport_UpdateReportHandlerNonOwner(t *testing.T) {
	id := primitive.NewObjectID()
	req, err := http.NewRequest("PATCH", "/api/report/"+id.Hex(), bytes.NewBufferString(`{"description":"x"}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"report_id": id.Hex()})
	req.Header.Set("user-id", "intruder")

	rdb := &mocks.ReportDatabase{}
	rdb.On("FindByID", mock.Anything, id).Return(&models.Report{ID: id, CreatedBy: "owner"}, nil)

	u := handlers.Report{RDB: rdb}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UpdateReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	rdb.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestReport_UpdateReportHandlerDescriptionOnly(t *testing.T) {
	id := primitive.NewObjectID()
	req, err := http.NewRequest("PATCH", "/api/report/"+id.Hex(), bytes.NewBufferString(`{"description":"fresh details"}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"report_id": id.Hex()})
	req.Header.Set("user-id", "owner")

	existing := &models.Report{ID: id, Title: "Pothole", Description: "old", CreatedBy: "owner"}
	updated := &models.Report{ID: id, Title: "Pothole", Description: "fresh details", CreatedBy: "owner"}

	rdb := &mocks.ReportDatabase{}
	rdb.On("FindByID", mock.Anything, id).Return(existing, nil)
	rdb.On("Update", mock.Anything, id, mock.MatchedBy(func(set bson.M) bool {
		_, ok := set["description"]
		return ok && len(set) == 1
	})).Return(updated, nil)

	u := handlers.Report{RDB: rdb}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UpdateReportHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var got models.Report
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "fresh details", got.Description)
	assert.Equal(t, "Pothole", got.Title)
	rdb.AssertExpectations(t)
}

func TestReport_DeleteReportHandler(t *testing.T) {
	id := primitive.NewObjectID()
	req, err := http.NewRequest("DELETE", "/api/report/"+id.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"report_id": id.Hex()})
	req.Header.Set("user-id", "owner")

	rdb := &mocks.ReportDatabase{}
	rdb.On("FindByID", mock.Anything, id).Return(&models.Report{
		ID:        id,
		CreatedBy: "owner",
		Images: []models.ReportImage{
			{URL: "https://img.host/a.jpg", PublicID: "pub-a"},
			{URL: "https://img.host/b.jpg", PublicID: "pub-b"},
		},
	}, nil)
	rdb.On("DeleteIfOwner", mock.Anything, id, "owner").Return(true, nil)

	var destroyed []string
	u := handlers.Report{
		RDB: rdb,
		ODB: &mocks.OrphanedImageDatabase{},
		Uploader: &fakeUploader{
			uploadFn: func(ctx context.Context, img models.NewImage) (models.ReportImage, error) {
				return models.ReportImage{}, nil
			},
			destroyFn: func(ctx context.Context, publicID string) error {
				destroyed = append(destroyed, publicID)
				return nil
			},
		},
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.DeleteReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"pub-a", "pub-b"}, destroyed)
	assert.JSONEq(t, `{"message": "report deleted successfully"}`, rr.Body.String())
	rdb.AssertExpectations(t)
}

func TestReport_DeleteReportHandlerQueuesOrphans(t *testing.T) {
	id := primitive.NewObjectID()
	req, err := http.NewRequest("DELETE", "/api/report/"+id.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"report_id": id.Hex()})
	req.Header.Set("user-id", "owner")

	rdb := &mocks.ReportDatabase{}
	rdb.On("FindByID", mock.Anything, id).Return(&models.Report{
		ID:        id,
		CreatedBy: "owner",
		Images:    []models.ReportImage{{URL: "https://img.host/a.jpg", PublicID: "pub-a"}},
	}, nil)
	rdb.On("DeleteIfOwner", mock.Anything, id, "owner").Return(true, nil)

	odb := &mocks.OrphanedImageDatabase{}
	odb.On("Enqueue", mock.Anything, mock.MatchedBy(func(o models.OrphanedImage) bool {
		return o.PublicID == "pub-a" && o.Reason == "delete"
	})).Return(nil)

	u := handlers.Report{
		RDB: rdb,
		ODB: odb,
		Uploader: &fakeUploader{
			uploadFn: func(ctx context.Context, img models.NewImage) (models.ReportImage, error) {
				return models.ReportImage{}, nil
			},
			destroyFn: func(ctx context.Context, publicID string) error {
				return errors.New("mocked-delete-error")
			},
		},
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.DeleteReportHandler).ServeHTTP(rr, req)

	// the failed remote delete never blocks the record delete
	assert.Equal(t, http.StatusOK, rr.Code)
	odb.AssertExpectations(t)
	rdb.AssertExpectations(t)
}

func TestReport_ReportFeaturesHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/report/geojson", nil)
	if err != nil {
		t.Fatal(err)
	}

	rdb := &mocks.ReportDatabase{}
	rdb.On("Find", mock.Anything, bson.M{}, mock.Anything).Return([]models.Report{
		{
			ID:       primitive.NewObjectID(),
			Title:    "Flooded underpass",
			Category: models.CategoryWaterlogging,
			Location: models.Location{Lat: 12.97, Lng: 77.59},
			ImageURL: "https://img.host/a.jpg",
		},
	}, nil)

	u := handlers.Report{RDB: rdb}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.ReportFeaturesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got models.FeatureCollection
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "FeatureCollection", got.Type)
	if assert.Len(t, got.Features, 1) {
		// GeoJSON positions are ordered longitude first
		assert.Equal(t, [2]float64{77.59, 12.97}, got.Features[0].Geometry.Coordinates)
	}
}
