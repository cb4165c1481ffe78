package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Report categories accepted by the create and update paths.
const (
	CategoryGarbage      = "garbage"
	CategoryWaterlogging = "waterlogging"
	CategoryOther        = "other"
)

// ValidCategory reports whether c is one of the accepted report categories
func ValidCategory(c string) bool {
	switch c {
	case CategoryGarbage, CategoryWaterlogging, CategoryOther:
		return true
	}
	return false
}

// Location holds a latitude/longitude pair
type Location struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// ReportImage is a single hosted image attached to a report
type ReportImage struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"publicId" bson:"publicId"`
}

// Report holds the structure for the report collection in mongo
type Report struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Title       string              `json:"title" bson:"title"`
	Description string              `json:"description" bson:"description"`
	Category    string              `json:"category" bson:"category"`
	Location    Location            `json:"location" bson:"location"`
	ImageURL    string              `json:"imageUrl" bson:"imageUrl"`
	Images      []ReportImage       `json:"images" bson:"images"`
	Resolved    bool                `json:"resolved" bson:"resolved"`
	ResolvedAt  *primitive.DateTime `json:"resolvedAt" bson:"resolvedAt"`
	ResolvedBy  string              `json:"resolvedBy,omitempty" bson:"resolvedBy,omitempty"`
	CreatedAt   primitive.DateTime  `json:"createdAt" bson:"createdAt"`
	CreatedBy   string              `json:"createdBy" bson:"createdBy"`
}

// Status returns the display status used by the list and map projections
func (r Report) Status() string {
	if r.Resolved {
		return "resolved"
	}
	return "pending"
}

// ReportOwner is the populated owner projection returned on single-report reads
type ReportOwner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// ReportDetail is the full single-report projection, with the owner populated and
// reviews attached only when requested
type ReportDetail struct {
	Report
	Owner   *ReportOwner   `json:"owner,omitempty"`
	Reviews []ReviewDetail `json:"reviews,omitempty"`
}

// ReportSummary is the trimmed projection returned by the list endpoint
type ReportSummary struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Category  string             `json:"category"`
	Location  Location           `json:"location"`
	Thumbnail string             `json:"thumbnail"`
	Status    string             `json:"status"`
	CreatedAt primitive.DateTime `json:"createdAt"`
	OwnerName string             `json:"ownerName,omitempty"`
}

// Summary trims a report down to its list projection
func (r Report) Summary() ReportSummary {
	return ReportSummary{
		ID:        r.ID.Hex(),
		Title:     r.Title,
		Category:  r.Category,
		Location:  r.Location,
		Thumbnail: r.ImageURL,
		Status:    r.Status(),
		CreatedAt: r.CreatedAt,
	}
}

// Pagination holds the page metadata returned alongside report lists
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ReportPage is the list endpoint response body
type ReportPage struct {
	Reports    []ReportSummary `json:"reports"`
	Pagination Pagination      `json:"pagination"`
}
