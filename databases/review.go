package databases

// go generate: mockery --name ReviewDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicmap/civicmap-api/models"
)

const reviewName = "reviews"

// ReviewDatabase contains the methods to use with the review database
type ReviewDatabase interface {
	Create(ctx context.Context, review models.Review) error
	FindByReport(ctx context.Context, reportID primitive.ObjectID) ([]models.Review, error)
}

type reviewDatabase struct {
	db DatabaseHelper
}

// NewReviewDatabase initializes a new instance of review database with the provided db connection
func NewReviewDatabase(db DatabaseHelper) ReviewDatabase {
	return &reviewDatabase{
		db: db,
	}
}

func (c *reviewDatabase) Create(ctx context.Context, review models.Review) error {
	_, err := c.db.Collection(reviewName).InsertOne(ctx, review)
	return err
}

func (c *reviewDatabase) FindByReport(ctx context.Context, reportID primitive.ObjectID) ([]models.Review, error) {
	var reviews []models.Review
	cur, err := c.db.Collection(reviewName).Find(ctx, bson.M{"reportId": reportID})
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&reviews)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
