package models

// User holds the structure for the user collection in mongo. User management lives in
// a separate service; this API only reads identity fields for owner/author population.
type User struct {
	ID      string      `json:"_id" bson:"_id"`
	Details UserDetails `json:"user" bson:"user"`
}

// UserDetails holds the inner user structure as defined in the user collection
type UserDetails struct {
	Username string `json:"username" bson:"username"`
	Email    string `json:"email" bson:"email"`
}
