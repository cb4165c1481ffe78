package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// OrphanedImage records a hosted image whose remote deletion failed. Deletion failures
// are non-fatal on the request path; the janitor retries them from this queue.
type OrphanedImage struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PublicID string             `json:"publicId" bson:"publicId"`
	ReportID string             `json:"reportId" bson:"reportId"`
	Reason   string             `json:"reason" bson:"reason"`
	FailedAt primitive.DateTime `json:"failedAt" bson:"failedAt"`
	Attempts int                `json:"attempts" bson:"attempts"`
}
