package databases

// go generate: mockery --name ReportDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/civicmap/civicmap-api/models"
)

const reportName = "reports"

// ReportListOptions narrows the report list query. Resolved is a tri-state: nil means
// no status filter.
type ReportListOptions struct {
	Page     int
	Limit    int
	Category string
	Resolved *bool
}

// ReportDatabase contains the methods to use with the report database
type ReportDatabase interface {
	Create(ctx context.Context, report models.Report) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Report, error)
	FindPage(ctx context.Context, opts ReportListOptions) ([]models.Report, models.Pagination, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Report, error)
	DeleteIfOwner(ctx context.Context, id primitive.ObjectID, userID string) (bool, error)
}

type reportDatabase struct {
	db DatabaseHelper
}

// NewReportDatabase initializes a new instance of report database with the provided db connection
func NewReportDatabase(db DatabaseHelper) ReportDatabase {
	return &reportDatabase{
		db: db,
	}
}

func (c *reportDatabase) Create(ctx context.Context, report models.Report) error {
	_, err := c.db.Collection(reportName).InsertOne(ctx, report)
	return err
}

func (c *reportDatabase) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	report := &models.Report{}
	err := c.db.Collection(reportName).FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (c *reportDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Report, error) {
	var reports []models.Report
	cur, err := c.db.Collection(reportName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&reports)
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// FindPage returns one page of reports, newest first, plus the pagination metadata
// computed from the total matching count.
func (c *reportDatabase) FindPage(ctx context.Context, opts ReportListOptions) ([]models.Report, models.Pagination, error) {
	filter := bson.M{}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}
	if opts.Resolved != nil {
		filter["resolved"] = *opts.Resolved
	}

	total, err := c.db.Collection(reportName).CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	limit64 := int64(opts.Limit)
	skip64 := int64((opts.Page - 1) * opts.Limit)
	findOpts := &options.FindOptions{
		Limit: &limit64,
		Skip:  &skip64,
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
	}

	reports, err := c.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	totalPages := int(total) / opts.Limit
	if int(total)%opts.Limit != 0 {
		totalPages++
	}

	return reports, models.Pagination{
		Page:       opts.Page,
		Limit:      opts.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// Update applies a partial $set and returns the document as it stands after the merge
func (c *reportDatabase) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Report, error) {
	after := options.After
	opts := &options.FindOneAndUpdateOptions{ReturnDocument: &after}

	report := &models.Report{}
	err := c.db.Collection(reportName).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&report)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// DeleteIfOwner deletes the report only when userID matches createdBy. The handler
// checks ownership first; the filter here is the second line of defense.
func (c *reportDatabase) DeleteIfOwner(ctx context.Context, id primitive.ObjectID, userID string) (bool, error) {
	deleted, err := c.db.Collection(reportName).DeleteOne(ctx, bson.M{"_id": id, "createdBy": userID})
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}
