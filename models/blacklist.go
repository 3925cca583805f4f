package models

// Blacklist holds access tokens invalidated by logout. The Authorize
// middleware rejects any token found here before validating claims.
type Blacklist struct {
	Model
	Email string `json:"email"`
	Token string `json:"token" gorm:"type:text"`
}
