package databases

// go generate: mockery --name OrphanedImageDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/civicmap/civicmap-api/models"
)

const orphanedImageName = "orphaned_images"

// OrphanedImageDatabase is the retry queue for hosted images whose deletion failed
type OrphanedImageDatabase interface {
	Enqueue(ctx context.Context, orphan models.OrphanedImage) error
	FindBatch(ctx context.Context, limit int64) ([]models.OrphanedImage, error)
	Remove(ctx context.Context, id primitive.ObjectID) error
	BumpAttempts(ctx context.Context, id primitive.ObjectID) error
}

type orphanedImageDatabase struct {
	db DatabaseHelper
}

// NewOrphanedImageDatabase initializes a new instance of the orphaned image queue with
// the provided db connection
func NewOrphanedImageDatabase(db DatabaseHelper) OrphanedImageDatabase {
	return &orphanedImageDatabase{
		db: db,
	}
}

func (c *orphanedImageDatabase) Enqueue(ctx context.Context, orphan models.OrphanedImage) error {
	_, err := c.db.Collection(orphanedImageName).InsertOne(ctx, orphan)
	return err
}

func (c *orphanedImageDatabase) FindBatch(ctx context.Context, limit int64) ([]models.OrphanedImage, error) {
	var orphans []models.OrphanedImage
	cur, err := c.db.Collection(orphanedImageName).Find(ctx, bson.M{}, &options.FindOptions{Limit: &limit})
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&orphans)
	if err != nil {
		return nil, err
	}
	return orphans, nil
}

func (c *orphanedImageDatabase) Remove(ctx context.Context, id primitive.ObjectID) error {
	_, err := c.db.Collection(orphanedImageName).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (c *orphanedImageDatabase) BumpAttempts(ctx context.Context, id primitive.ObjectID) error {
	return c.db.Collection(orphanedImageName).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"attempts": 1}})
}
