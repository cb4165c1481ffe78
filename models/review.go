package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Review holds the structure for the review collection in mongo
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ReportID  primitive.ObjectID `json:"reportId" bson:"reportId"`
	Comment   string             `json:"comment" bson:"comment"`
	Upvote    bool               `json:"upvote" bson:"upvote"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	Author    string             `json:"author" bson:"author"`
}

// ReviewAuthor is the trimmed author projection attached to populated reviews
type ReviewAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ReviewDetail is a review with its author populated
type ReviewDetail struct {
	Comment   string             `json:"comment"`
	Upvote    bool               `json:"upvote"`
	CreatedAt primitive.DateTime `json:"createdAt"`
	Author    ReviewAuthor       `json:"author"`
}
