package models

// NewImage is an image payload submitted on create/update. Data is either a base64
// data URI or a fetchable URL; the hosting service accepts both.
type NewImage struct {
	Data     string `json:"data" validate:"required"`
	Filename string `json:"filename"`
}

// CreateReportRequest is the POST /api/report body
type CreateReportRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category" validate:"required,oneof=garbage waterlogging other"`
	Location    *Location  `json:"location"`
	Address     string     `json:"address"`
	NewImages   []NewImage `json:"newImages" validate:"required,min=1,dive"`
}

// UpdateReportRequest is the PATCH /api/report/{report_id} body. Pointer fields
// distinguish "absent" from "set to zero"; only present fields are merged.
type UpdateReportRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Category       *string    `json:"category"`
	Location       *Location  `json:"location"`
	Address        *string    `json:"address"`
	NewImages      []NewImage `json:"newImages"`
	ImagesToDelete []string   `json:"imagesToDelete"`
}

// CreateReviewRequest is the POST /api/report/{report_id}/reviews body
type CreateReviewRequest struct {
	Comment string `json:"comment" validate:"required"`
	Upvote  bool   `json:"upvote"`
}
