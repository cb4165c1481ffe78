package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicmap/civicmap-api/models"
)

func TestValidCategory(t *testing.T) {
	assert.True(t, models.ValidCategory("garbage"))
	assert.True(t, models.ValidCategory("waterlogging"))
	assert.True(t, models.ValidCategory("other"))
	assert.False(t, models.ValidCategory("potholes"))
	assert.False(t, models.ValidCategory(""))
}

func TestReportStatus(t *testing.T) {
	assert.Equal(t, "pending", models.Report{}.Status())
	assert.Equal(t, "resolved", models.Report{Resolved: true}.Status())
}

func TestReportSummary(t *testing.T) {
	id := primitive.NewObjectID()
	r := models.Report{
		ID:       id,
		Title:    "Flooded underpass",
		Category: models.CategoryWaterlogging,
		Location: models.Location{Lat: 12.9, Lng: 77.5},
		ImageURL: "https://img.host/a.jpg",
	}

	s := r.Summary()
	assert.Equal(t, id.Hex(), s.ID)
	assert.Equal(t, "https://img.host/a.jpg", s.Thumbnail)
	assert.Equal(t, "pending", s.Status)
}

func TestNewReportFeature(t *testing.T) {
	r := models.Report{
		Title:    "Flooded underpass",
		Category: models.CategoryWaterlogging,
		Location: models.Location{Lat: 12.9, Lng: 77.5},
		Resolved: true,
	}

	f := models.NewReportFeature(r)
	assert.Equal(t, "Feature", f.Type)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, [2]float64{77.5, 12.9}, f.Geometry.Coordinates)
	assert.Equal(t, "resolved", f.Properties["status"])
}
